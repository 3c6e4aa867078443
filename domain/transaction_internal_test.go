package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Validate(t *testing.T) {
	t.Run("FactoryBuiltPasses", func(t *testing.T) {
		tx := newTransaction(KindTransfer, "b1", "b2", "a1", "a2", decimal.NewFromInt(10))
		assert.NoError(t, tx.Validate())
		assert.False(t, tx.IsTopUp())
	})

	t.Run("NegativeAmount", func(t *testing.T) {
		tx := newTransaction(KindTransfer, "b1", "b1", "thief", "deposit", decimal.NewFromInt(-60000))
		assert.ErrorIs(t, tx.Validate(), ErrNegativeAmount)
	})

	t.Run("IncompleteEndpoint", func(t *testing.T) {
		tx := newTransaction(KindWithdrawal, "b1", "b1", "a1", "", decimal.NewFromInt(1))
		assert.ErrorIs(t, tx.Validate(), ErrUnknownAccount)
	})

	t.Run("ZeroValue", func(t *testing.T) {
		assert.ErrorIs(t, (&Transaction{}).Validate(), ErrUnknownAccount)
	})

	t.Run("MissingID", func(t *testing.T) {
		tx := newTransaction(KindTransfer, "b1", "b1", "a1", "a2", decimal.NewFromInt(1))
		tx.id = ""
		assert.Error(t, tx.Validate())
	})
}

func TestTransaction_TopUpFollowsKind(t *testing.T) {
	topUp := newTransaction(KindTopUp, "b1", "b1", "clearing", "a1", decimal.NewFromInt(1))
	assert.True(t, topUp.IsTopUp())

	for _, kind := range []TransactionKind{KindTransfer, KindWithdrawal, KindInterest, KindFee} {
		tx := newTransaction(kind, "b1", "b1", "a1", "a2", decimal.NewFromInt(1))
		assert.False(t, tx.IsTopUp(), kind)
	}
}
