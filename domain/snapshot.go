package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"multibank-ledger/shared"
)

// Snapshot records every balance of one bank at the end of a business day.
type Snapshot struct {
	AggregateID string    `json:"aggregateId"`
	Version     int       `json:"version"`
	State       []byte    `json:"state"`
	Timestamp   time.Time `json:"timestamp"`
}

type bankState struct {
	BankID   shared.BankID    `json:"bankId"`
	Name     string           `json:"name"`
	Balances []shared.Balance `json:"balances"`
}

func CreateSnapshot(bank *Bank, day int) (*Snapshot, error) {
	stateJSON, err := json.Marshal(bankState{
		BankID:   bank.ID,
		Name:     bank.Name,
		Balances: bank.Balances(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal balances for snapshot (bank: %s, day: %d): %w", bank.ID, day, err)
	}

	return &Snapshot{
		AggregateID: string(bank.ID),
		Version:     day,
		State:       stateJSON,
		Timestamp:   time.Now().UTC(),
	}, nil
}

// SnapshotBalances decodes the balances held in snap.
func SnapshotBalances(snap *Snapshot) ([]shared.Balance, error) {
	var state bankState
	if err := json.Unmarshal(snap.State, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot state (bank: %s, day: %d): %w", snap.AggregateID, snap.Version, err)
	}
	if string(state.BankID) != snap.AggregateID {
		return nil, fmt.Errorf("snapshot for bank %s (day %d) carries state of bank %s", snap.AggregateID, snap.Version, state.BankID)
	}
	if state.Balances == nil {
		state.Balances = []shared.Balance{}
	}
	return state.Balances, nil
}
