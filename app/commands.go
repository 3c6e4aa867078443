package app

import (
	"github.com/shopspring/decimal"

	"multibank-ledger/domain"
)

// --- Command Struct Definitions ---
// Banks are referenced by ID or by name; accounts, clients and transactions by ID.

type CreateBankCommand struct {
	Config domain.BankConfig
}

type AddClientCommand struct {
	Bank           string
	Name           string
	Surname        string
	Address        string
	PassportNumber string
}

type OpenAccountCommand struct {
	Bank     string
	ClientID string
	Kind     domain.AccountKind
}

type OpenDepositCommand struct {
	Bank      string
	AccountID string
	Initial   decimal.Decimal
	Period    int
}

type TopUpCommand struct {
	Bank      string
	AccountID string
	Amount    decimal.Decimal
}

type WithdrawCommand struct {
	Bank      string
	AccountID string
	Amount    decimal.Decimal
}

type TransferCommand struct {
	Bank            string
	AccountID       string
	TargetBank      string
	TargetAccountID string
	Amount          decimal.Decimal
}

type CancelCommand struct {
	TransactionID string
}

// --- Query Structures ---

type GetBalanceQuery struct {
	Bank      string
	AccountID string
}

type GetHistoryQuery struct {
	TransactionID string
}
