package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multibank-ledger/config"
	"multibank-ledger/domain"
)

const sample = `
logLevel: debug
banks:
  - name: First
  - name: Second
    debitAnnualRate: "4.25"
    depositTiers:
      - {min: "0", annualRate: "2.0"}
      - {min: "1000", annualRate: "2.5"}
    creditLimit: "5000"
    creditFee: "15"
    suspiciousWithdrawalLimit: "1000"
    suspiciousTransferLimit: "2000"
`

func amount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, got.Equal(decimal.RequireFromString(want)), "expected %s, got %s", want, got.String())
}

func TestParse(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)

	banks, err := cfg.BankConfigs()
	require.NoError(t, err)
	require.Len(t, banks, 2)

	t.Run("OmittedFieldsUseDefaults", func(t *testing.T) {
		assert.Equal(t, domain.DefaultBankConfig("First"), banks[0])
	})

	t.Run("Overrides", func(t *testing.T) {
		second := banks[1]
		assert.Equal(t, "Second", second.Name)
		amount(t, "4.25", second.DebitAnnualRate)
		amount(t, "5000", second.CreditLimit)
		amount(t, "15", second.CreditFee)
		amount(t, "1000", second.SuspiciousWithdrawalLimit)
		amount(t, "2000", second.SuspiciousTransferLimit)
		require.Len(t, second.DepositTiers, 2)
		amount(t, "2.5", second.DepositRate(decimal.NewFromInt(1500)))
	})
}

func TestParse_Empty(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader("  \n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Banks)
	banks, err := cfg.BankConfigs()
	require.NoError(t, err)
	assert.Empty(t, banks)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		isErr error
	}{
		{"UnknownField", "banks:\n  - name: First\n    overdraft: \"1\"\n", nil},
		{"NegativeFee", "banks:\n  - name: First\n    creditFee: \"-1\"\n", domain.ErrNegativeAmount},
		{"BadAmount", "banks:\n  - name: First\n    creditLimit: lots\n", nil},
		{"MissingName", "banks:\n  - creditFee: \"1\"\n", domain.ErrInvalidConfig},
		{"DuplicateName", "banks:\n  - name: First\n  - name: First\n", domain.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Parse(strings.NewReader(tt.yaml))
			if err == nil {
				_, err = cfg.BankConfigs()
			}
			require.Error(t, err)
			if tt.isErr != nil {
				assert.ErrorIs(t, err, tt.isErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Banks, 2)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
