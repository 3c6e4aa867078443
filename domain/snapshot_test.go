package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multibank-ledger/domain"
)

func TestCreateSnapshot(t *testing.T) {
	bank := newBank(t, nil)
	acc := openAccount(t, bank, domain.DebitKind)
	acc.Credit(dec("123.45"))

	snap, err := domain.CreateSnapshot(bank, 3)
	require.NoError(t, err)
	assert.Equal(t, string(bank.ID), snap.AggregateID)
	assert.Equal(t, 3, snap.Version)

	// Later movements do not leak into an existing snapshot.
	acc.Credit(dec("1"))

	balances, err := domain.SnapshotBalances(snap)
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.Equal(t, string(domain.ClearingKind), balances[0].Kind)
	assert.Equal(t, acc.ID(), balances[1].AccountID)
	assertAmount(t, "123.45", balances[1].Amount)
}

func TestSnapshotBalances_RejectsForeignState(t *testing.T) {
	first := newBank(t, nil)
	second := newBank(t, nil)

	snap, err := domain.CreateSnapshot(first, 1)
	require.NoError(t, err)
	snap.AggregateID = string(second.ID)

	_, err = domain.SnapshotBalances(snap)
	assert.Error(t, err)

	snap.State = []byte("{not json")
	_, err = domain.SnapshotBalances(snap)
	assert.Error(t, err)
}
