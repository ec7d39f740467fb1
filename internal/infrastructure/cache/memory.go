package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/meetcost-team/meetcost/internal/usecase/tracker"
)

// MemorySnapshotStore keeps tracker snapshots in process memory. It does
// not survive a restart; use the Redis store for crash recovery.
type MemorySnapshotStore struct {
	mu    sync.RWMutex
	snaps map[uuid.UUID]tracker.Snapshot
}

var _ tracker.SnapshotStore = (*MemorySnapshotStore)(nil)

// NewMemorySnapshotStore creates a new in-memory snapshot store
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{
		snaps: make(map[uuid.UUID]tracker.Snapshot),
	}
}

// Save stores a snapshot, replacing any previous one for the meeting
func (ms *MemorySnapshotStore) Save(_ context.Context, snap tracker.Snapshot) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.snaps[snap.MeetingID] = snap
	return nil
}

// Delete removes the snapshot for a meeting
func (ms *MemorySnapshotStore) Delete(_ context.Context, meetingID uuid.UUID) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.snaps, meetingID)
	return nil
}

// Load returns the snapshot for a meeting, or nil when none exists
func (ms *MemorySnapshotStore) Load(_ context.Context, meetingID uuid.UUID) (*tracker.Snapshot, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	snap, ok := ms.snaps[meetingID]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

// LoadAll returns every stored snapshot
func (ms *MemorySnapshotStore) LoadAll(_ context.Context) ([]tracker.Snapshot, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	snaps := make([]tracker.Snapshot, 0, len(ms.snaps))
	for _, snap := range ms.snaps {
		snaps = append(snaps, snap)
	}
	return snaps, nil
}
