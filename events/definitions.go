package events

import (
	"github.com/shopspring/decimal"

	"multibank-ledger/shared"
)

// Endpoints identifies both sides of a transaction.
type Endpoints struct {
	FromBankID    shared.BankID    `json:"fromBankId"`
	FromAccountID shared.AccountID `json:"fromAccountId"`
	ToBankID      shared.BankID    `json:"toBankId"`
	ToAccountID   shared.AccountID `json:"toAccountId"`
}

type TransactionExecutedEvent struct {
	BaseEvent
	Endpoints
	Kind   string          `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
	TopUp  bool            `json:"topUp"`
}

type TransactionRejectedEvent struct {
	BaseEvent
	Endpoints
	Kind   string          `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

// TransactionReversedEvent follows a TransactionExecutedEvent in the same
// stream when an executed transaction is cancelled.
type TransactionReversedEvent struct {
	BaseEvent
	Endpoints
	Amount decimal.Decimal `json:"amount"`
}
