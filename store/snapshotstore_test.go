package store_test

import (
	"encoding/json"
	"testing"
	"time"

	"multibank-ledger/domain"
	"multibank-ledger/store"
)

func newSnapshot(bankID string, day int, stateData map[string]interface{}) *domain.Snapshot {
	stateBytes, _ := json.Marshal(stateData)
	return &domain.Snapshot{
		AggregateID: bankID,
		Version:     day,
		State:       stateBytes,
		Timestamp:   time.Now().UTC(),
	}
}

func TestInMemorySnapshotStore_SaveAndGetSnapshot(t *testing.T) {
	ss := store.NewInMemorySnapshotStore()
	bankID := "bank-1"

	t.Run("GetNotFound", func(t *testing.T) {
		snap, found, err := ss.GetLatestSnapshot(bankID)
		if err != nil {
			t.Fatalf("GetLatestSnapshot failed: %v", err)
		}
		if found || snap != nil {
			t.Errorf("Expected no snapshot, got %v", snap)
		}
	})

	t.Run("SaveAndGet", func(t *testing.T) {
		if err := ss.SaveSnapshot(newSnapshot(bankID, 1, map[string]interface{}{"total": 100})); err != nil {
			t.Fatalf("SaveSnapshot failed: %v", err)
		}

		retrieved, found, err := ss.GetLatestSnapshot(bankID)
		if err != nil || !found {
			t.Fatalf("Expected snapshot to be found, found=%v err=%v", found, err)
		}
		if retrieved.Version != 1 {
			t.Errorf("Expected day 1, got %d", retrieved.Version)
		}

		// Modify the returned copy and check the stored one is unchanged
		retrieved.State[0] = '['
		retrieved.Version = 99
		original, _, _ := ss.GetLatestSnapshot(bankID)
		if original.Version == 99 {
			t.Errorf("GetLatestSnapshot did not return a copy (version modified)")
		}
		var state map[string]interface{}
		if err := json.Unmarshal(original.State, &state); err != nil {
			t.Errorf("GetLatestSnapshot did not return a copy (state modified): %s", string(original.State))
		}
	})

	t.Run("LatestIsHighestDay", func(t *testing.T) {
		_ = ss.SaveSnapshot(newSnapshot(bankID, 3, map[string]interface{}{"total": 300}))
		_ = ss.SaveSnapshot(newSnapshot(bankID, 2, map[string]interface{}{"total": 200}))

		latest, found, _ := ss.GetLatestSnapshot(bankID)
		if !found || latest.Version != 3 {
			t.Fatalf("Expected latest day 3, got %+v", latest)
		}

		day2, found, err := ss.GetSnapshot(bankID, 2)
		if err != nil || !found {
			t.Fatalf("Expected day 2 snapshot, found=%v err=%v", found, err)
		}
		if day2.Version != 2 {
			t.Errorf("Expected day 2, got %d", day2.Version)
		}

		if _, found, _ := ss.GetSnapshot(bankID, 7); found {
			t.Errorf("Expected no snapshot for day 7")
		}
	})

	t.Run("RejectDuplicateDay", func(t *testing.T) {
		if err := ss.SaveSnapshot(newSnapshot(bankID, 3, nil)); err == nil {
			t.Errorf("Expected error when saving day 3 twice")
		}
	})

	t.Run("RejectNil", func(t *testing.T) {
		if err := ss.SaveSnapshot(nil); err == nil {
			t.Errorf("Expected error for nil snapshot")
		}
	})

	t.Run("BanksAreIndependent", func(t *testing.T) {
		if _, found, _ := ss.GetLatestSnapshot("bank-2"); found {
			t.Errorf("Expected no snapshot for another bank")
		}
	})
}
