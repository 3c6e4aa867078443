package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multibank-ledger/domain"
)

func TestDailyInterest(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		rate    string
		want    string
	}{
		{"RoundsDown", "40000", "5", "5.48"},
		{"RoundsTier", "70000", "3.5", "6.71"},
		{"HalfCentRoundsUp", "36500", "0.005", "0.01"},
		{"Zero", "0", "5", "0"},
		{"Negative", "-1000", "5", "0"},
		{"NoRate", "1000", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAmount(t, tt.want, domain.DailyInterest(dec(tt.balance), dec(tt.rate)))
		})
	}
}

func TestParseAmount(t *testing.T) {
	amount, err := domain.ParseAmount(" 12.50 ")
	require.NoError(t, err)
	assertAmount(t, "12.5", amount)

	_, err = domain.ParseAmount("-3")
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)

	_, err = domain.ParseAmount("twelve")
	assert.Error(t, err)
}
