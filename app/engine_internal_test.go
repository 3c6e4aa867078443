package app

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"multibank-ledger/domain"
	"multibank-ledger/shared"
)

// stubAccount implements only what rollback touches.
type stubAccount struct {
	domain.Account
	id       shared.AccountID
	balance  decimal.Decimal
	debitErr error
}

func (s *stubAccount) ID() shared.AccountID  { return s.id }
func (s *stubAccount) BankID() shared.BankID { return "bank" }

func (s *stubAccount) Credit(amount decimal.Decimal) { s.balance = s.balance.Add(amount) }

func (s *stubAccount) Debit(amount decimal.Decimal, _ bool) (decimal.Decimal, error) {
	if s.debitErr != nil {
		return decimal.Zero, s.debitErr
	}
	s.balance = s.balance.Sub(amount)
	return amount, nil
}

func TestEngine_Rollback(t *testing.T) {
	newEngine := func() (*Engine, *observer.ObservedLogs) {
		core, logs := observer.New(zapcore.InfoLevel)
		return &Engine{logger: zap.New(core), known: make(map[shared.TransactionID]*domain.Transaction)}, logs
	}
	amount := decimal.NewFromInt(40)

	t.Run("RestoresBothBalances", func(t *testing.T) {
		e, logs := newEngine()
		from := &stubAccount{id: "from", balance: decimal.NewFromInt(60)}
		to := &stubAccount{id: "to", balance: decimal.NewFromInt(40)}

		require.NoError(t, e.rollback(&domain.Transaction{}, endpoint{account: from}, endpoint{account: to}, amount))
		assert.True(t, from.balance.Equal(decimal.NewFromInt(100)))
		assert.True(t, to.balance.IsZero())
		assert.Zero(t, logs.Len())
	})

	t.Run("FailedForcedDebitIsReported", func(t *testing.T) {
		e, logs := newEngine()
		boom := errors.New("account frozen")
		from := &stubAccount{id: "from", balance: decimal.NewFromInt(60)}
		to := &stubAccount{id: "to", balance: decimal.NewFromInt(40), debitErr: boom}

		err := e.rollback(&domain.Transaction{}, endpoint{account: from}, endpoint{account: to}, amount)
		assert.ErrorIs(t, err, boom)
		// The source is not credited without the matching debit.
		assert.True(t, from.balance.Equal(decimal.NewFromInt(60)))
		assert.True(t, to.balance.Equal(decimal.NewFromInt(40)))

		entries := logs.FilterMessage("rollback could not take funds back").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		assert.Equal(t, "bank/to", entries[0].ContextMap()["account"])
	})
}
