package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multibank-ledger/app"
	"multibank-ledger/domain"
	"multibank-ledger/store"
)

func TestRunDemo(t *testing.T) {
	svc := app.NewLedgerService(domain.NewBankManager(), store.NewInMemoryEventStore(), store.NewInMemorySnapshotStore(), nil)
	require.NoError(t, runDemo(context.Background(), svc))

	banks := svc.Banks()
	require.Len(t, banks, 2)

	balances := map[string][]string{}
	for _, bank := range banks {
		for _, b := range bank.Balances() {
			balances[bank.Name] = append(balances[bank.Name], b.Amount.StringFixed(2))
		}
	}
	assert.Equal(t, []string{"-50005.48", "40005.48"}, balances["First"])
	assert.Equal(t, []string{"-60006.71", "70006.71"}, balances["Second"])

	assert.Len(t, svc.ExecutedTransactions(), 5)
	require.Len(t, svc.CancelledTransactions(), 1)
	assert.ErrorIs(t, svc.CancelledTransactions()[0].Reason(), domain.ErrFraudBlocked)
}

func TestResetFlags(t *testing.T) {
	require.NoError(t, transferCmd.Flags().Set("amount", "12"))
	resetFlags()
	assert.Equal(t, "", transferCmd.Flags().Lookup("amount").Value.String())
}
