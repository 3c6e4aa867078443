package domain

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"multibank-ledger/shared"
)

type State int

const (
	StateUnperformed State = iota
	StateExecuted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateUnperformed:
		return "UNPERFORMED"
	case StateExecuted:
		return "EXECUTED"
	case StateCancelled:
		return "CANCELLED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// IsTerminal reports whether Execute must leave a transaction in this state alone.
func (s State) IsTerminal() bool {
	return s == StateExecuted || s == StateCancelled
}

type TransactionKind string

const (
	KindTopUp      TransactionKind = "TopUp"
	KindTransfer   TransactionKind = "Transfer"
	KindWithdrawal TransactionKind = "Withdrawal"
	KindInterest   TransactionKind = "Interest"
	KindFee        TransactionKind = "Fee"
)

// Transaction moves an amount from one (bank, account) pair to another. The
// endpoints are logical references resolved by the engine at execution time.
// Everything but the state is fixed when the transaction is created.
type Transaction struct {
	id            shared.TransactionID
	kind          TransactionKind
	fromBankID    shared.BankID
	toBankID      shared.BankID
	fromAccountID shared.AccountID
	toAccountID   shared.AccountID
	amount        decimal.Decimal
	createdAt     time.Time

	mu     sync.Mutex
	state  State
	reason error
}

func newTransaction(kind TransactionKind, fromBank, toBank shared.BankID, from, to shared.AccountID, amount decimal.Decimal) *Transaction {
	return &Transaction{
		id:            shared.TransactionID(uuid.NewString()),
		kind:          kind,
		fromBankID:    fromBank,
		toBankID:      toBank,
		fromAccountID: from,
		toAccountID:   to,
		amount:        amount,
		createdAt:     time.Now().UTC(),
		state:         StateUnperformed,
	}
}

func (t *Transaction) ID() shared.TransactionID        { return t.id }
func (t *Transaction) Kind() TransactionKind           { return t.kind }
func (t *Transaction) FromBankID() shared.BankID       { return t.fromBankID }
func (t *Transaction) ToBankID() shared.BankID         { return t.toBankID }
func (t *Transaction) FromAccountID() shared.AccountID { return t.fromAccountID }
func (t *Transaction) ToAccountID() shared.AccountID   { return t.toAccountID }
func (t *Transaction) Amount() decimal.Decimal         { return t.amount }
func (t *Transaction) CreatedAt() time.Time            { return t.createdAt }

// IsTopUp reports whether the transaction is a top-up, which skips the fraud
// screen.
func (t *Transaction) IsTopUp() bool { return t.kind == KindTopUp }

// Validate checks what the engine relies on before touching any balance. A
// transaction built by an account factory always passes.
func (t *Transaction) Validate() error {
	if t.fromBankID == "" || t.fromAccountID == "" || t.toBankID == "" || t.toAccountID == "" {
		return fmt.Errorf("%w: transaction %q has an incomplete endpoint", ErrUnknownAccount, t.id)
	}
	if t.id == "" {
		return NewDomainError("transaction has no id")
	}
	if err := checkAmount(t.amount); err != nil {
		return fmt.Errorf("transaction %s: %w", t.id, err)
	}
	return nil
}

func (t *Transaction) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Reason is the business rule that cancelled the transaction, if any.
func (t *Transaction) Reason() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reason
}

// Transition moves the transaction along UNPERFORMED -> EXECUTED|CANCELLED or
// EXECUTED -> CANCELLED. Every other move fails with ErrInvalidState.
func (t *Transaction) Transition(to State, reason error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	allowed := false
	switch t.state {
	case StateUnperformed:
		allowed = to == StateExecuted || to == StateCancelled
	case StateExecuted:
		allowed = to == StateCancelled
	}
	if !allowed {
		return fmt.Errorf("%w: transaction %s cannot move from %s to %s", ErrInvalidState, t.id, t.state, to)
	}

	t.state = to
	if reason != nil {
		t.reason = reason
	}
	return nil
}

func (t *Transaction) String() string {
	return fmt.Sprintf("%s %s %s/%s -> %s/%s amount=%s state=%s",
		t.id, t.kind, t.fromBankID, t.fromAccountID, t.toBankID, t.toAccountID, t.amount.String(), t.State())
}
