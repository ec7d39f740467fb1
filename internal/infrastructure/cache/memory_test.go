package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetcost-team/meetcost/internal/usecase/tracker"
)

func TestMemorySnapshotStore_RoundTrip(t *testing.T) {
	store := NewMemorySnapshotStore()
	ctx := context.Background()

	meetingID := uuid.New()
	snap := tracker.Snapshot{
		MeetingID:      meetingID,
		OrganizationID: uuid.New(),
		State:          tracker.StateRunning,
		StartedAt:      time.Now().Add(-10 * time.Minute),
		TakenAt:        time.Now(),
	}

	require.NoError(t, store.Save(ctx, snap))

	loaded, err := store.Load(ctx, meetingID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, meetingID, loaded.MeetingID)
	assert.Equal(t, tracker.StateRunning, loaded.State)

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, store.Delete(ctx, meetingID))

	loaded, err = store.Load(ctx, meetingID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMemorySnapshotStore_SaveReplaces(t *testing.T) {
	store := NewMemorySnapshotStore()
	ctx := context.Background()

	meetingID := uuid.New()
	snap := tracker.Snapshot{MeetingID: meetingID, State: tracker.StateRunning}
	require.NoError(t, store.Save(ctx, snap))

	snap.State = tracker.StateEnded
	require.NoError(t, store.Save(ctx, snap))

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, tracker.StateEnded, all[0].State)
}
