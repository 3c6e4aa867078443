package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"multibank-ledger/domain"
)

func TestApproved(t *testing.T) {
	suspicious := domain.NewClient("John", "James")
	verified := domain.NewClient("Ada", "Lovelace", domain.WithAddress("x"), domain.WithPassportNumber("y"))

	tests := []struct {
		name       string
		client     *domain.Client
		amount     string
		withdrawal string
		transfer   string
		want       bool
	}{
		{"NilClient", nil, "1000000", "20000", "20000", true},
		{"VerifiedAboveLimits", verified, "1000000", "20000", "20000", true},
		{"SuspiciousAtTransferLimit", suspicious, "20000", "50000", "20000", false},
		{"SuspiciousJustBelowLimits", suspicious, "19999.99", "20000", "20000", true},
		{"SuspiciousAtWithdrawalLimitOnly", suspicious, "100", "100", "5000", false},
		{"SuspiciousBelowBoth", suspicious, "99.99", "100", "5000", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.Approved(tt.client, dec(tt.amount), dec(tt.withdrawal), dec(tt.transfer))
			assert.Equal(t, tt.want, got)
		})
	}
}
