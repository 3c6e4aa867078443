package domain

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"multibank-ledger/shared"
)

type AccountKind string

const (
	DebitKind    AccountKind = "Debit"
	DepositKind  AccountKind = "Deposit"
	CreditKind   AccountKind = "Credit"
	ClearingKind AccountKind = "Clearing"
)

// ParseAccountKind accepts the kinds a client may open; the clearing account
// is created by its bank only.
func ParseAccountKind(s string) (AccountKind, error) {
	switch AccountKind(s) {
	case DebitKind, DepositKind, CreditKind:
		return AccountKind(s), nil
	}
	return "", NewDomainError("unknown account kind %q (want Debit, Deposit or Credit)", s)
}

// Account is a balance owned by one bank. Implementations differ only in their
// withdrawal policy (Debit) and their end-of-day posting (DailyUpdate).
//
// Balances must only be read or mutated while the account's lock is held.
type Account interface {
	sync.Locker

	ID() shared.AccountID
	BankID() shared.BankID
	Kind() AccountKind
	Client() *Client
	Balance() decimal.Decimal

	// Credit adds amount to the balance. It never fails.
	Credit(amount decimal.Decimal)
	// Debit subtracts amount if the account's policy allows it, or
	// unconditionally when force is set, and returns the amount taken.
	Debit(amount decimal.Decimal, force bool) (decimal.Decimal, error)
	// DailyUpdate returns the interest or fee posting for today, if any.
	DailyUpdate() *Transaction

	TopUp(amount decimal.Decimal) (*Transaction, error)
	Transfer(amount decimal.Decimal, toBank shared.BankID, toAccount shared.AccountID) (*Transaction, error)
	Withdraw(amount decimal.Decimal) (*Transaction, error)
}

// LockedBalance reads the balance under the account's lock.
func LockedBalance(a Account) decimal.Decimal {
	a.Lock()
	defer a.Unlock()
	return a.Balance()
}

type baseAccount struct {
	sync.Mutex

	id         shared.AccountID
	bankID     shared.BankID
	clearingID shared.AccountID
	client     *Client
	balance    decimal.Decimal
}

func newBaseAccount(bankID shared.BankID, clearingID shared.AccountID, client *Client) baseAccount {
	return baseAccount{
		id:         shared.AccountID(uuid.NewString()),
		bankID:     bankID,
		clearingID: clearingID,
		client:     client,
		balance:    decimal.Zero,
	}
}

func (a *baseAccount) ID() shared.AccountID     { return a.id }
func (a *baseAccount) BankID() shared.BankID    { return a.bankID }
func (a *baseAccount) Client() *Client          { return a.client }
func (a *baseAccount) Balance() decimal.Decimal { return a.balance }

func (a *baseAccount) Credit(amount decimal.Decimal) {
	a.balance = a.balance.Add(amount)
}

func (a *baseAccount) take(amount decimal.Decimal) decimal.Decimal {
	a.balance = a.balance.Sub(amount)
	return amount
}

func (a *baseAccount) TopUp(amount decimal.Decimal) (*Transaction, error) {
	if err := checkAmount(amount); err != nil {
		return nil, fmt.Errorf("top-up of account %s: %w", a.id, err)
	}
	return newTransaction(KindTopUp, a.bankID, a.bankID, a.clearingID, a.id, amount), nil
}

func (a *baseAccount) Transfer(amount decimal.Decimal, toBank shared.BankID, toAccount shared.AccountID) (*Transaction, error) {
	if err := checkAmount(amount); err != nil {
		return nil, fmt.Errorf("transfer from account %s: %w", a.id, err)
	}
	if toBank == "" || toAccount == "" {
		return nil, NewDomainError("transfer from account %s needs a destination bank and account", a.id)
	}
	return newTransaction(KindTransfer, a.bankID, toBank, a.id, toAccount, amount), nil
}

func (a *baseAccount) Withdraw(amount decimal.Decimal) (*Transaction, error) {
	if err := checkAmount(amount); err != nil {
		return nil, fmt.Errorf("withdrawal from account %s: %w", a.id, err)
	}
	return newTransaction(KindWithdrawal, a.bankID, a.bankID, a.id, a.clearingID, amount), nil
}

func (a *baseAccount) interestPosting(annualRate decimal.Decimal) *Transaction {
	earned := DailyInterest(a.balance, annualRate)
	return newTransaction(KindInterest, a.bankID, a.bankID, a.clearingID, a.id, earned)
}

// DebitAccount earns interest and cannot be overdrawn.
type DebitAccount struct {
	baseAccount
	annualRate decimal.Decimal
}

func newDebitAccount(bankID shared.BankID, clearingID shared.AccountID, client *Client, annualRate decimal.Decimal) *DebitAccount {
	return &DebitAccount{
		baseAccount: newBaseAccount(bankID, clearingID, client),
		annualRate:  annualRate,
	}
}

func (a *DebitAccount) Kind() AccountKind           { return DebitKind }
func (a *DebitAccount) AnnualRate() decimal.Decimal { return a.annualRate }

func (a *DebitAccount) Debit(amount decimal.Decimal, force bool) (decimal.Decimal, error) {
	if !force && amount.GreaterThan(a.balance) {
		return decimal.Zero, fmt.Errorf("%w: requested %s, available %s", ErrInsufficientFunds, amount.String(), a.balance.String())
	}
	return a.take(amount), nil
}

func (a *DebitAccount) DailyUpdate() *Transaction {
	return a.interestPosting(a.annualRate)
}

// DepositAccount earns a tiered rate and refuses withdrawals until it has
// been open for Period days.
type DepositAccount struct {
	baseAccount
	annualRate  decimal.Decimal
	period      int
	currentDays int
}

func newDepositAccount(bankID shared.BankID, clearingID shared.AccountID, client *Client, period int) *DepositAccount {
	return &DepositAccount{
		baseAccount: newBaseAccount(bankID, clearingID, client),
		annualRate:  decimal.Zero,
		period:      period,
	}
}

func (a *DepositAccount) Kind() AccountKind           { return DepositKind }
func (a *DepositAccount) AnnualRate() decimal.Decimal { return a.annualRate }
func (a *DepositAccount) Period() int                 { return a.period }
func (a *DepositAccount) CurrentDays() int            { return a.currentDays }

// Unlocked reports whether the lock-up period has elapsed.
func (a *DepositAccount) Unlocked() bool {
	return a.currentDays >= a.period
}

func (a *DepositAccount) open(annualRate decimal.Decimal, period int) {
	a.annualRate = annualRate
	a.period = period
	a.currentDays = 0
}

func (a *DepositAccount) Debit(amount decimal.Decimal, force bool) (decimal.Decimal, error) {
	if force {
		return a.take(amount), nil
	}
	if !a.Unlocked() {
		return decimal.Zero, fmt.Errorf("%w: %d of %d days elapsed", ErrDepositLocked, a.currentDays, a.period)
	}
	if amount.GreaterThan(a.balance) {
		return decimal.Zero, fmt.Errorf("%w: requested %s, available %s", ErrInsufficientFunds, amount.String(), a.balance.String())
	}
	return a.take(amount), nil
}

// DailyUpdate also counts one more day towards the end of the lock-up period.
func (a *DepositAccount) DailyUpdate() *Transaction {
	tx := a.interestPosting(a.annualRate)
	if a.currentDays < a.period {
		a.currentDays++
	}
	return tx
}

// CreditAccount may go negative down to -Limit and pays Fee for every day
// it ends below zero.
type CreditAccount struct {
	baseAccount
	limit decimal.Decimal
	fee   decimal.Decimal
}

func newCreditAccount(bankID shared.BankID, clearingID shared.AccountID, client *Client, limit, fee decimal.Decimal) *CreditAccount {
	return &CreditAccount{
		baseAccount: newBaseAccount(bankID, clearingID, client),
		limit:       limit,
		fee:         fee,
	}
}

func (a *CreditAccount) Kind() AccountKind      { return CreditKind }
func (a *CreditAccount) Limit() decimal.Decimal { return a.limit }
func (a *CreditAccount) Fee() decimal.Decimal   { return a.fee }

func (a *CreditAccount) Debit(amount decimal.Decimal, force bool) (decimal.Decimal, error) {
	if !force && amount.GreaterThan(a.balance.Add(a.limit)) {
		return decimal.Zero, fmt.Errorf("%w: requested %s, balance %s, limit %s",
			ErrCreditLimitExceeded, amount.String(), a.balance.String(), a.limit.String())
	}
	return a.take(amount), nil
}

func (a *CreditAccount) DailyUpdate() *Transaction {
	if !a.balance.IsNegative() {
		return nil
	}
	return newTransaction(KindFee, a.bankID, a.bankID, a.id, a.clearingID, a.fee)
}

// ClearingAccount is the bank's own counterparty for top-ups, withdrawals,
// interest and fees. It has no client and no withdrawal limit.
type ClearingAccount struct {
	baseAccount
}

func newClearingAccount(bankID shared.BankID) *ClearingAccount {
	acc := &ClearingAccount{baseAccount: newBaseAccount(bankID, "", nil)}
	acc.clearingID = acc.id
	return acc
}

func (a *ClearingAccount) Kind() AccountKind { return ClearingKind }

func (a *ClearingAccount) Debit(amount decimal.Decimal, _ bool) (decimal.Decimal, error) {
	return a.take(amount), nil
}

func (a *ClearingAccount) DailyUpdate() *Transaction { return nil }
