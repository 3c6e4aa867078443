package domain

import (
	"fmt"
	"sync"

	"multibank-ledger/shared"
)

// BankManager is the registry of banks, kept in creation order.
type BankManager struct {
	mu    sync.RWMutex
	banks map[shared.BankID]*Bank
	order []shared.BankID
}

func NewBankManager() *BankManager {
	return &BankManager{banks: make(map[shared.BankID]*Bank)}
}

func (m *BankManager) AddBank(cfg BankConfig) (*Bank, error) {
	bank, err := NewBank(cfg)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.banks[bank.ID] = bank
	m.order = append(m.order, bank.ID)
	return bank, nil
}

func (m *BankManager) Bank(id shared.BankID) (*Bank, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bank, ok := m.banks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBank, id)
	}
	return bank, nil
}

// BankByName finds a bank by its configured name.
func (m *BankManager) BankByName(name string) (*Bank, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		if m.banks[id].Name == name {
			return m.banks[id], nil
		}
	}
	return nil, fmt.Errorf("%w: no bank named %q", ErrUnknownBank, name)
}

func (m *BankManager) Banks() []*Bank {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Bank, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.banks[id])
	}
	return out
}
