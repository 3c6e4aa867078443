package domain

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"multibank-ledger/shared"
)

const DefaultDepositPeriod = 365

// DepositTier assigns AnnualRate to deposits opened with more than Min.
type DepositTier struct {
	Min        decimal.Decimal `json:"min" yaml:"min"`
	AnnualRate decimal.Decimal `json:"annualRate" yaml:"annualRate"`
}

type BankConfig struct {
	Name                      string
	DebitAnnualRate           decimal.Decimal
	DepositTiers              []DepositTier
	CreditLimit               decimal.Decimal
	CreditFee                 decimal.Decimal
	SuspiciousWithdrawalLimit decimal.Decimal
	SuspiciousTransferLimit   decimal.Decimal
}

func DefaultBankConfig(name string) BankConfig {
	return BankConfig{
		Name:            name,
		DebitAnnualRate: decimal.NewFromFloat(5.0),
		DepositTiers: []DepositTier{
			{Min: decimal.Zero, AnnualRate: decimal.NewFromFloat(3.0)},
			{Min: decimal.NewFromInt(50000), AnnualRate: decimal.NewFromFloat(3.5)},
			{Min: decimal.NewFromInt(100000), AnnualRate: decimal.NewFromFloat(4.0)},
		},
		CreditLimit:               decimal.NewFromInt(100000),
		CreditFee:                 decimal.NewFromInt(200),
		SuspiciousWithdrawalLimit: decimal.NewFromInt(20000),
		SuspiciousTransferLimit:   decimal.NewFromInt(20000),
	}
}

func (c BankConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: bank name cannot be empty", ErrInvalidConfig)
	}
	named := map[string]decimal.Decimal{
		"debit annual rate":           c.DebitAnnualRate,
		"credit limit":                c.CreditLimit,
		"credit fee":                  c.CreditFee,
		"suspicious withdrawal limit": c.SuspiciousWithdrawalLimit,
		"suspicious transfer limit":   c.SuspiciousTransferLimit,
	}
	for field, v := range named {
		if v.IsNegative() {
			return fmt.Errorf("%w: %s for bank %q cannot be negative: %s", ErrInvalidConfig, field, c.Name, v.String())
		}
	}
	for _, tier := range c.DepositTiers {
		if tier.Min.IsNegative() || tier.AnnualRate.IsNegative() {
			return fmt.Errorf("%w: deposit tier %s@%s for bank %q cannot be negative",
				ErrInvalidConfig, tier.AnnualRate.String(), tier.Min.String(), c.Name)
		}
	}
	return nil
}

// DepositRate picks the tier with the highest minimum strictly below initial.
func (c BankConfig) DepositRate(initial decimal.Decimal) decimal.Decimal {
	tiers := make([]DepositTier, len(c.DepositTiers))
	copy(tiers, c.DepositTiers)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].Min.LessThan(tiers[j].Min) })

	rate := decimal.Zero
	for _, tier := range tiers {
		if initial.GreaterThan(tier.Min) {
			rate = tier.AnnualRate
		}
	}
	return rate
}

// Bank owns a clearing account, a client roster and the clients' accounts.
// Accounts and clients are kept in insertion order so batch runs are
// deterministic.
type Bank struct {
	ID     shared.BankID
	Name   string
	Config BankConfig

	mu             sync.RWMutex
	clearing       *ClearingAccount
	accounts       map[shared.AccountID]Account
	accountOrder   []shared.AccountID
	clients        map[shared.ClientID]*Client
	clientOrder    []shared.ClientID
	clientAccounts map[shared.ClientID][]shared.AccountID
}

func NewBank(cfg BankConfig) (*Bank, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	id := shared.BankID(uuid.NewString())
	b := &Bank{
		ID:             id,
		Name:           cfg.Name,
		Config:         cfg,
		clearing:       newClearingAccount(id),
		accounts:       make(map[shared.AccountID]Account),
		clients:        make(map[shared.ClientID]*Client),
		clientAccounts: make(map[shared.ClientID][]shared.AccountID),
	}
	b.addAccount(b.clearing)
	return b, nil
}

func (b *Bank) addAccount(acc Account) {
	b.accounts[acc.ID()] = acc
	b.accountOrder = append(b.accountOrder, acc.ID())
}

// AddClient registers a client. Adding the same client twice is a no-op.
func (b *Bank) AddClient(c *Client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[c.ID]; ok {
		return
	}
	b.clients[c.ID] = c
	b.clientOrder = append(b.clientOrder, c.ID)
	b.clientAccounts[c.ID] = nil
}

func (b *Bank) Client(id shared.ClientID) (*Client, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.clients[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s in bank %s", ErrUnknownClient, id, b.Name)
	}
	return c, nil
}

func (b *Bank) Clients() []*Client {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]*Client, 0, len(b.clientOrder))
	for _, id := range b.clientOrder {
		out = append(out, b.clients[id])
	}
	return out
}

// OpenAccount creates an account of the given kind for a registered client,
// using the bank's configured rate, limit and fee.
func (b *Bank) OpenAccount(kind AccountKind, clientID shared.ClientID) (Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	client, ok := b.clients[clientID]
	if !ok {
		return nil, fmt.Errorf("%w: %s in bank %s", ErrUnknownClient, clientID, b.Name)
	}

	var acc Account
	switch kind {
	case DebitKind:
		acc = newDebitAccount(b.ID, b.clearing.ID(), client, b.Config.DebitAnnualRate)
	case DepositKind:
		acc = newDepositAccount(b.ID, b.clearing.ID(), client, DefaultDepositPeriod)
	case CreditKind:
		acc = newCreditAccount(b.ID, b.clearing.ID(), client, b.Config.CreditLimit, b.Config.CreditFee)
	default:
		return nil, NewDomainError("cannot open account of kind %q", kind)
	}

	b.addAccount(acc)
	b.clientAccounts[clientID] = append(b.clientAccounts[clientID], acc.ID())
	return acc, nil
}

// OpenDeposit fixes the deposit's rate from the initial amount, restarts its
// lock-up period and returns the top-up that funds it. The caller executes it.
func (b *Bank) OpenDeposit(acc *DepositAccount, initial decimal.Decimal, period int) (*Transaction, error) {
	if acc.BankID() != b.ID {
		return nil, fmt.Errorf("%w: deposit %s does not belong to bank %s", ErrUnknownAccount, acc.ID(), b.Name)
	}
	if period < 0 {
		return nil, NewDomainError("deposit period cannot be negative: %d", period)
	}
	tx, err := acc.TopUp(initial)
	if err != nil {
		return nil, err
	}

	acc.Lock()
	acc.open(b.Config.DepositRate(initial), period)
	acc.Unlock()
	return tx, nil
}

func (b *Bank) Account(id shared.AccountID) (Account, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	acc, ok := b.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s in bank %s", ErrUnknownAccount, id, b.Name)
	}
	return acc, nil
}

func (b *Bank) ClearingAccount() Account {
	return b.clearing
}

// Accounts lists every account, clearing account first, in opening order.
func (b *Bank) Accounts() []Account {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Account, 0, len(b.accountOrder))
	for _, id := range b.accountOrder {
		out = append(out, b.accounts[id])
	}
	return out
}

func (b *Bank) ClientAccounts(clientID shared.ClientID) ([]Account, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ids, ok := b.clientAccounts[clientID]
	if !ok {
		return nil, fmt.Errorf("%w: %s in bank %s", ErrUnknownClient, clientID, b.Name)
	}
	out := make([]Account, 0, len(ids))
	for _, id := range ids {
		out = append(out, b.accounts[id])
	}
	return out, nil
}

// DailyTransactions collects each account's daily posting in account order.
func (b *Bank) DailyTransactions() []*Transaction {
	var all []*Transaction
	for _, acc := range b.Accounts() {
		acc.Lock()
		tx := acc.DailyUpdate()
		acc.Unlock()
		if tx != nil {
			all = append(all, tx)
		}
	}
	return all
}

// Balances returns a consistent-per-account view of every balance.
func (b *Bank) Balances() []shared.Balance {
	accounts := b.Accounts()
	out := make([]shared.Balance, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, shared.Balance{
			AccountID: acc.ID(),
			Kind:      string(acc.Kind()),
			Amount:    LockedBalance(acc),
		})
	}
	return out
}
