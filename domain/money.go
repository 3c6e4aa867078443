package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places derived postings are rounded to.
const MoneyPlaces = 2

var (
	daysPerYear = decimal.NewFromInt(365)
	hundred     = decimal.NewFromInt(100)
)

// RoundMoney rounds half away from zero to MoneyPlaces.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}

// ParseAmount parses a non-negative decimal amount from user input.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount format %q: %w", s, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNegativeAmount, amount.String())
	}
	return amount, nil
}

// DailyInterest returns the simple daily interest earned on balance at the
// given annual percentage rate. Negative balances earn nothing.
func DailyInterest(balance, annualRate decimal.Decimal) decimal.Decimal {
	if !balance.IsPositive() || !annualRate.IsPositive() {
		return decimal.Zero
	}
	return RoundMoney(balance.Mul(annualRate).Div(daysPerYear.Mul(hundred)))
}

func checkAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeAmount, amount.String())
	}
	return nil
}
