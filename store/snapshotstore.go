package store

import (
	"fmt"
	"sort"
	"sync"

	"multibank-ledger/domain"
)

// SnapshotStore keeps end-of-day balance snapshots per bank, keyed by day.
type SnapshotStore interface {
	SaveSnapshot(snapshot *domain.Snapshot) error

	GetLatestSnapshot(aggregateID string) (snapshot *domain.Snapshot, found bool, err error)

	GetSnapshot(aggregateID string, version int) (snapshot *domain.Snapshot, found bool, err error)
}

type InMemorySnapshotStore struct {
	sync.RWMutex
	snapshots map[string]map[int]*domain.Snapshot
}

func NewInMemorySnapshotStore() *InMemorySnapshotStore {
	return &InMemorySnapshotStore{
		snapshots: make(map[string]map[int]*domain.Snapshot),
	}
}

func (s *InMemorySnapshotStore) SaveSnapshot(snapshot *domain.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("cannot save nil snapshot")
	}
	s.Lock()
	defer s.Unlock()

	byVersion, ok := s.snapshots[snapshot.AggregateID]
	if !ok {
		byVersion = make(map[int]*domain.Snapshot)
		s.snapshots[snapshot.AggregateID] = byVersion
	}
	if _, exists := byVersion[snapshot.Version]; exists {
		return fmt.Errorf("snapshot for %s at version %d already exists", snapshot.AggregateID, snapshot.Version)
	}
	byVersion[snapshot.Version] = copySnapshot(snapshot)
	return nil
}

func (s *InMemorySnapshotStore) GetLatestSnapshot(aggregateID string) (*domain.Snapshot, bool, error) {
	s.RLock()
	defer s.RUnlock()

	byVersion := s.snapshots[aggregateID]
	if len(byVersion) == 0 {
		return nil, false, nil
	}
	versions := make([]int, 0, len(byVersion))
	for v := range byVersion {
		versions = append(versions, v)
	}
	sort.Ints(versions)
	return copySnapshot(byVersion[versions[len(versions)-1]]), true, nil
}

func (s *InMemorySnapshotStore) GetSnapshot(aggregateID string, version int) (*domain.Snapshot, bool, error) {
	s.RLock()
	defer s.RUnlock()

	snapshot, found := s.snapshots[aggregateID][version]
	if !found {
		return nil, false, nil
	}
	return copySnapshot(snapshot), true, nil
}

func copySnapshot(snapshot *domain.Snapshot) *domain.Snapshot {
	stateCopy := make([]byte, len(snapshot.State))
	copy(stateCopy, snapshot.State)
	return &domain.Snapshot{
		AggregateID: snapshot.AggregateID,
		Version:     snapshot.Version,
		State:       stateCopy,
		Timestamp:   snapshot.Timestamp,
	}
}
