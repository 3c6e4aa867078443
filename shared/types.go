package shared

import "github.com/shopspring/decimal"

type (
	BankID        string
	AccountID     string
	ClientID      string
	TransactionID string
)

// Balance is a read-only view of one account's balance, used in snapshots
// and query results.
type Balance struct {
	AccountID AccountID       `json:"accountId"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
}
