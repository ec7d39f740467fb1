package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/meetcost-team/meetcost/internal/usecase/tracker"
)

const snapshotKeyPrefix = "tracker:snapshot:"

// SnapshotStore persists tracker snapshots in Redis so running meetings
// survive a process restart
type SnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

var _ tracker.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a Redis-backed snapshot store. A zero ttl means
// snapshots never expire on their own.
func NewSnapshotStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *SnapshotStore {
	return &SnapshotStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func snapshotKey(meetingID uuid.UUID) string {
	return snapshotKeyPrefix + meetingID.String()
}

// Save writes the snapshot, replacing any previous one for the meeting
func (s *SnapshotStore) Save(ctx context.Context, snap tracker.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := s.client.Set(ctx, snapshotKey(snap.MeetingID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Delete removes the snapshot for a meeting. Deleting a missing key is not
// an error.
func (s *SnapshotStore) Delete(ctx context.Context, meetingID uuid.UUID) error {
	if err := s.client.Del(ctx, snapshotKey(meetingID)).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Load returns the snapshot for a meeting, or nil when none exists
func (s *SnapshotStore) Load(ctx context.Context, meetingID uuid.UUID) (*tracker.Snapshot, error) {
	payload, err := s.client.Get(ctx, snapshotKey(meetingID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap tracker.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// LoadAll scans for every stored snapshot. Entries that fail to decode are
// logged and skipped so one corrupt key cannot block recovery.
func (s *SnapshotStore) LoadAll(ctx context.Context) ([]tracker.Snapshot, error) {
	var snaps []tracker.Snapshot

	iter := s.client.Scan(ctx, 0, snapshotKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		payload, err := s.client.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load snapshot %s: %w", iter.Val(), err)
		}

		var snap tracker.Snapshot
		if err := json.Unmarshal(payload, &snap); err != nil {
			if s.logger != nil {
				s.logger.Warn("❌ Skipping corrupt tracker snapshot",
					zap.String("key", iter.Val()),
					zap.Error(err))
			}
			continue
		}
		snaps = append(snaps, snap)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan snapshots: %w", err)
	}

	return snaps, nil
}
