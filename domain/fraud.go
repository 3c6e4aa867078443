package domain

import "github.com/shopspring/decimal"

// Approved is the suspicious-client screen. It rejects only when the client
// exists, is suspicious, and amount reaches either limit. A nil client (the
// bank's clearing account) is always approved.
func Approved(client *Client, amount, withdrawalLimit, transferLimit decimal.Decimal) bool {
	if client == nil || !client.IsSuspicious() {
		return true
	}
	return amount.LessThan(withdrawalLimit) && amount.LessThan(transferLimit)
}
