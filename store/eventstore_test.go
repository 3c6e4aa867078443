package store_test

import (
	"errors"
	"sync"
	"testing"

	"multibank-ledger/events"
	"multibank-ledger/store"
)

// Simple event for testing
type TestEvent struct {
	events.BaseEvent
	Data string
}

func newTestEvent(txID string, version int, data string) events.Event {
	return TestEvent{
		BaseEvent: events.NewBaseEvent(txID, version, "TestEvent"),
		Data:      data,
	}
}

func TestInMemoryEventStore_SaveEvents(t *testing.T) {
	es := store.NewInMemoryEventStore()
	txID := "tx-save-1"

	t.Run("SaveFirstEvent", func(t *testing.T) {
		err := es.SaveEvents(txID, 0, []events.Event{newTestEvent(txID, 1, "executed")})
		if err != nil {
			t.Fatalf("SaveEvents failed for first event: %v", err)
		}
		if v := es.Version(txID); v != 1 {
			t.Errorf("Expected version 1, got %d", v)
		}
	})

	t.Run("SaveReversal", func(t *testing.T) {
		err := es.SaveEvents(txID, 1, []events.Event{newTestEvent(txID, 2, "reversed")})
		if err != nil {
			t.Fatalf("SaveEvents failed for second event: %v", err)
		}
		stream, _ := es.GetEvents(txID)
		if len(stream) != 2 {
			t.Fatalf("Expected 2 events, got %d", len(stream))
		}
		if stream[1].GetBase().Version != 2 {
			t.Errorf("Expected event version 2, got %d", stream[1].GetBase().Version)
		}
	})

	t.Run("FailOnOptimisticLock", func(t *testing.T) {
		err := es.SaveEvents(txID, 1, []events.Event{newTestEvent(txID, 2, "again")})
		if !errors.Is(err, store.ErrOptimisticLock) {
			t.Errorf("Expected ErrOptimisticLock, got %v", err)
		}
		stream, _ := es.GetEvents(txID)
		if len(stream) != 2 {
			t.Fatalf("Expected 2 events after optimistic lock failure, got %d", len(stream))
		}
	})

	t.Run("FailOnSequenceError", func(t *testing.T) {
		other := "tx-seq-err"
		err := es.SaveEvents(other, 0, []events.Event{newTestEvent(other, 1, "a"), newTestEvent(other, 3, "c")})
		if err == nil {
			t.Fatalf("Expected sequence error, got nil")
		}
		if errors.Is(err, store.ErrOptimisticLock) {
			t.Errorf("Expected sequence error, not optimistic lock error")
		}
		if v := es.Version(other); v != 0 {
			t.Fatalf("Expected nothing saved after sequence error, version is %d", v)
		}
	})

	t.Run("FailOnAggregateIDMismatch", func(t *testing.T) {
		other := "tx-id-match"
		err := es.SaveEvents(other, 0, []events.Event{newTestEvent("different-tx", 1, "bad")})
		if err == nil {
			t.Fatalf("Expected aggregate ID mismatch error, got nil")
		}
		if _, err := es.GetEvents(other); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound after mismatch, got %v", err)
		}
	})

	t.Run("EmptyBatchIsNoop", func(t *testing.T) {
		if err := es.SaveEvents("tx-empty", 5, nil); err != nil {
			t.Fatalf("Expected no error for empty batch, got %v", err)
		}
	})

	if es.Len() != 2 {
		t.Errorf("Expected 2 events in total, got %d", es.Len())
	}
}

func TestInMemoryEventStore_GetEvents(t *testing.T) {
	es := store.NewInMemoryEventStore()
	txID := "tx-get-1"
	_ = es.SaveEvents(txID, 0, []events.Event{newTestEvent(txID, 1, "one"), newTestEvent(txID, 2, "two")})

	t.Run("GetExistingStream", func(t *testing.T) {
		stream, err := es.GetEvents(txID)
		if err != nil {
			t.Fatalf("GetEvents failed: %v", err)
		}
		if len(stream) != 2 {
			t.Fatalf("Expected 2 events, got %d", len(stream))
		}
		// Modify returned slice and check the store is not affected
		stream[0] = newTestEvent("modified", 99, "modified")
		original, _ := es.GetEvents(txID)
		if original[0].GetBase().Version == 99 {
			t.Errorf("GetEvents did not return a copy, original stream modified")
		}
	})

	t.Run("GetNonExistentStream", func(t *testing.T) {
		_, err := es.GetEvents("tx-nonexistent")
		if !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
		if v := es.Version("tx-nonexistent"); v != 0 {
			t.Errorf("Expected version 0 for missing stream, got %d", v)
		}
	})
}

func TestInMemoryEventStore_ConcurrentStreams(t *testing.T) {
	es := store.NewInMemoryEventStore()
	ids := []string{"tx-a", "tx-b", "tx-c", "tx-d"}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for v := 1; v <= 50; v++ {
				if err := es.SaveEvents(id, v-1, []events.Event{newTestEvent(id, v, "x")}); err != nil {
					t.Errorf("SaveEvents(%s, %d) failed: %v", id, v, err)
					return
				}
			}
		}(id)
	}
	wg.Wait()

	for _, id := range ids {
		if v := es.Version(id); v != 50 {
			t.Errorf("Expected version 50 for %s, got %d", id, v)
		}
	}
	if es.Len() != 200 {
		t.Errorf("Expected 200 events, got %d", es.Len())
	}
}
