package app

import (
	"multibank-ledger/domain"
	"multibank-ledger/shared"
)

// Registry resolves banks for the engine. domain.BankManager implements it.
//
//go:generate mockgen -destination=mocks/mock_registry.go -source=registry.go Registry
type Registry interface {
	Bank(id shared.BankID) (*domain.Bank, error)
	Banks() []*domain.Bank
}

var _ Registry = (*domain.BankManager)(nil)
