package store

import (
	"errors"
	"fmt"
	"sync"

	"multibank-ledger/events"
)

var (
	ErrOptimisticLock = errors.New("optimistic lock error: version conflict")
	ErrNotFound       = errors.New("aggregate not found")
)

// EventStore is the append-only lifecycle log of transactions, one stream per
// transaction ID.
type EventStore interface {
	SaveEvents(aggregateID string, expectedVersion int, eventsToSave []events.Event) error

	GetEvents(aggregateID string) ([]events.Event, error)

	// Version returns the version of the last event in the stream, 0 if none.
	Version(aggregateID string) int
}

type InMemoryEventStore struct {
	sync.RWMutex
	streams map[string][]events.Event
	total   int
}

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		streams: make(map[string][]events.Event),
	}
}

func (s *InMemoryEventStore) SaveEvents(aggregateID string, expectedVersion int, newEvents []events.Event) error {
	s.Lock()
	defer s.Unlock()

	if len(newEvents) == 0 {
		return nil
	}

	currentVersion := s.versionLocked(aggregateID)
	if currentVersion != expectedVersion {
		return fmt.Errorf("%w: expected version %d, but current version is %d for transaction %s",
			ErrOptimisticLock, expectedVersion, currentVersion, aggregateID)
	}

	nextVersion := expectedVersion
	for _, event := range newEvents {
		base := event.GetBase()
		nextVersion++
		if base.Version != nextVersion {
			return fmt.Errorf("event sequence error for transaction %s: expected version %d for event %T (%s), but got %d",
				aggregateID, nextVersion, event, base.EventID, base.Version)
		}
		if base.AggregateID != aggregateID {
			return fmt.Errorf("event aggregate ID mismatch: stream is for %s, but event %T (%s) has ID %s",
				aggregateID, event, base.EventID, base.AggregateID)
		}
	}

	s.streams[aggregateID] = append(s.streams[aggregateID], newEvents...)
	s.total += len(newEvents)
	return nil
}

func (s *InMemoryEventStore) GetEvents(aggregateID string) ([]events.Event, error) {
	s.RLock()
	defer s.RUnlock()

	streamData, ok := s.streams[aggregateID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, aggregateID)
	}

	copiedStream := make([]events.Event, len(streamData))
	copy(copiedStream, streamData)
	return copiedStream, nil
}

func (s *InMemoryEventStore) Version(aggregateID string) int {
	s.RLock()
	defer s.RUnlock()
	return s.versionLocked(aggregateID)
}

// Len returns the number of events across all streams.
func (s *InMemoryEventStore) Len() int {
	s.RLock()
	defer s.RUnlock()
	return s.total
}

func (s *InMemoryEventStore) versionLocked(aggregateID string) int {
	stream := s.streams[aggregateID]
	if len(stream) == 0 {
		return 0
	}
	return stream[len(stream)-1].GetBase().Version
}
