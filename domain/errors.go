package domain

import "fmt"

type DomainError struct {
	message string
	parent  error
}

func NewDomainError(format string, args ...interface{}) *DomainError {
	return &DomainError{message: fmt.Sprintf(format, args...)}
}

// newPolicyError builds a sentinel that also matches its parent with errors.Is.
func newPolicyError(parent error, format string, args ...interface{}) *DomainError {
	return &DomainError{message: fmt.Sprintf(format, args...), parent: parent}
}

func (e *DomainError) Error() string {
	return e.message
}

func (e *DomainError) Unwrap() error {
	return e.parent
}

var (
	ErrInsufficientFunds  = NewDomainError("insufficient funds")
	ErrPolicyViolation    = NewDomainError("withdrawal policy violation")
	ErrFraudBlocked       = NewDomainError("blocked by suspicious client limits")
	ErrInvalidState       = NewDomainError("invalid transaction state")
	ErrUnknownAccount     = NewDomainError("account not found")
	ErrUnknownBank        = NewDomainError("bank not found")
	ErrUnknownClient      = NewDomainError("client not found")
	ErrUnknownTransaction = NewDomainError("transaction not found")
	ErrNegativeAmount     = NewDomainError("amount cannot be negative")
	ErrInvalidConfig      = NewDomainError("invalid bank configuration")

	ErrDepositLocked       = newPolicyError(ErrPolicyViolation, "deposit is still within its lock-up period")
	ErrCreditLimitExceeded = newPolicyError(ErrInsufficientFunds, "credit limit exceeded")
)
