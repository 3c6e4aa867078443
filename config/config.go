// Package config loads the banks to preload into the ledger from a YAML file.
//
//	logLevel: info
//	banks:
//	  - name: First
//	    debitAnnualRate: "5.0"
//	    depositTiers:
//	      - {min: "0", annualRate: "3.0"}
//	      - {min: "50000", annualRate: "3.5"}
//	    creditLimit: "100000"
//	    creditFee: "200"
//	    suspiciousWithdrawalLimit: "20000"
//	    suspiciousTransferLimit: "20000"
//
// Every amount is a quoted decimal string; omitted fields take the defaults
// of domain.DefaultBankConfig.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"multibank-ledger/domain"
)

type Config struct {
	LogLevel string `yaml:"logLevel"`
	Banks    []Bank `yaml:"banks"`
}

type Bank struct {
	Name                      string `yaml:"name"`
	DebitAnnualRate           string `yaml:"debitAnnualRate"`
	DepositTiers              []Tier `yaml:"depositTiers"`
	CreditLimit               string `yaml:"creditLimit"`
	CreditFee                 string `yaml:"creditFee"`
	SuspiciousWithdrawalLimit string `yaml:"suspiciousWithdrawalLimit"`
	SuspiciousTransferLimit   string `yaml:"suspiciousTransferLimit"`
}

type Tier struct {
	Min        string `yaml:"min"`
	AnnualRate string `yaml:"annualRate"`
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg Config
	if len(bytes.TrimSpace(data)) == 0 {
		return &cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// BankConfigs converts the YAML banks into validated domain configurations.
func (c *Config) BankConfigs() ([]domain.BankConfig, error) {
	seen := make(map[string]bool, len(c.Banks))
	out := make([]domain.BankConfig, 0, len(c.Banks))
	for i, b := range c.Banks {
		if seen[b.Name] {
			return nil, fmt.Errorf("%w: bank %q is listed twice", domain.ErrInvalidConfig, b.Name)
		}
		seen[b.Name] = true

		bc, err := b.toDomain()
		if err != nil {
			return nil, fmt.Errorf("bank #%d (%q): %w", i+1, b.Name, err)
		}
		if err := bc.Validate(); err != nil {
			return nil, err
		}
		out = append(out, bc)
	}
	return out, nil
}

func (b Bank) toDomain() (domain.BankConfig, error) {
	cfg := domain.DefaultBankConfig(b.Name)

	fields := []struct {
		name  string
		raw   string
		value *decimal.Decimal
	}{
		{"debitAnnualRate", b.DebitAnnualRate, &cfg.DebitAnnualRate},
		{"creditLimit", b.CreditLimit, &cfg.CreditLimit},
		{"creditFee", b.CreditFee, &cfg.CreditFee},
		{"suspiciousWithdrawalLimit", b.SuspiciousWithdrawalLimit, &cfg.SuspiciousWithdrawalLimit},
		{"suspiciousTransferLimit", b.SuspiciousTransferLimit, &cfg.SuspiciousTransferLimit},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		v, err := domain.ParseAmount(f.raw)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.value = v
	}

	if len(b.DepositTiers) > 0 {
		cfg.DepositTiers = make([]domain.DepositTier, 0, len(b.DepositTiers))
		for _, t := range b.DepositTiers {
			floor, err := domain.ParseAmount(t.Min)
			if err != nil {
				return cfg, fmt.Errorf("depositTiers.min: %w", err)
			}
			rate, err := domain.ParseAmount(t.AnnualRate)
			if err != nil {
				return cfg, fmt.Errorf("depositTiers.annualRate: %w", err)
			}
			cfg.DepositTiers = append(cfg.DepositTiers, domain.DepositTier{Min: floor, AnnualRate: rate})
		}
	}
	return cfg, nil
}
