package tracker

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetcost-team/meetcost/internal/usecase/costing"
	usecaseErrors "github.com/meetcost-team/meetcost/internal/usecase/errors"
)

func fptr(v float64) *float64 { return &v }

func testFacts(participants ...costing.Participant) costing.MeetingFacts {
	return costing.MeetingFacts{
		MeetingID:        uuid.New(),
		OrganizationID:   uuid.New(),
		ScheduledStartAt: baseTime,
		ScheduledEndAt:   baseTime.Add(60 * time.Minute),
		Participants:     participants,
	}
}

func testReconciler() *costing.Reconciler {
	return costing.NewReconciler(costing.NewRateTable(4000), 5*time.Minute)
}

func TestTracker_StartTwiceFails(t *testing.T) {
	tr := NewTracker(testFacts(), testReconciler())

	require.NoError(t, tr.Start(baseTime))
	assert.ErrorIs(t, tr.Start(baseTime), usecaseErrors.ErrAlreadyStarted)
}

func TestTracker_OperationsBeforeStartFail(t *testing.T) {
	p := costing.Participant{ID: uuid.New()}
	tr := NewTracker(testFacts(p), testReconciler())

	assert.ErrorIs(t, tr.RecordJoin(p, baseTime), usecaseErrors.ErrNotRunning)
	assert.ErrorIs(t, tr.RecordLeave(p.ID, baseTime), usecaseErrors.ErrNotRunning)
	_, err := tr.Tick(baseTime)
	assert.ErrorIs(t, err, usecaseErrors.ErrNotRunning)
	_, _, err = tr.End(baseTime)
	assert.ErrorIs(t, err, usecaseErrors.ErrNotRunning)
}

func TestTracker_EndTwiceFails(t *testing.T) {
	tr := NewTracker(testFacts(), testReconciler())
	require.NoError(t, tr.Start(baseTime))

	_, _, err := tr.End(baseTime.Add(30 * time.Minute))
	require.NoError(t, err)

	_, _, err = tr.End(baseTime.Add(31 * time.Minute))
	assert.ErrorIs(t, err, usecaseErrors.ErrAlreadyEnded)
	assert.Equal(t, StateEnded, tr.State())
}

func TestTracker_CancelIsTerminalWithoutCost(t *testing.T) {
	tr := NewTracker(testFacts(), testReconciler())
	require.NoError(t, tr.Start(baseTime))

	require.NoError(t, tr.Cancel())
	assert.Equal(t, StateCancelled, tr.State())

	_, _, err := tr.End(baseTime.Add(time.Minute))
	assert.ErrorIs(t, err, usecaseErrors.ErrAlreadyEnded)
	assert.ErrorIs(t, tr.Cancel(), usecaseErrors.ErrAlreadyEnded)
}

func TestTracker_TickIsIdempotent(t *testing.T) {
	p := costing.Participant{ID: uuid.New(), PersonalHourlyRate: fptr(6000)}
	tr := NewTracker(testFacts(p), testReconciler())
	require.NoError(t, tr.Start(baseTime))
	require.NoError(t, tr.RecordJoin(p, baseTime))

	now := baseTime.Add(30 * time.Minute)
	first, err := tr.Tick(now)
	require.NoError(t, err)
	second, err := tr.Tick(now)
	require.NoError(t, err)

	assert.Equal(t, first.CurrentCost, second.CurrentCost)
	assert.Equal(t, first.ElapsedSeconds, second.ElapsedSeconds)
	assert.InDelta(t, 6000*30.0/60, first.CurrentCost, 1e-9)
	assert.Equal(t, 1, first.ParticipantCount)
}

func TestTracker_WalkInAdmittedAtFallbackRate(t *testing.T) {
	invited := costing.Participant{ID: uuid.New(), PersonalHourlyRate: fptr(8000)}
	tr := NewTracker(testFacts(invited), testReconciler())
	require.NoError(t, tr.Start(baseTime))

	walkIn := costing.Participant{ID: uuid.New()}
	require.NoError(t, tr.RecordJoin(walkIn, baseTime))

	rc, err := tr.Tick(baseTime.Add(60 * time.Minute))
	require.NoError(t, err)
	assert.InDelta(t, 4000.0, rc.CurrentCost, 1e-9)

	// walk-in is now on the roster, so leave works
	require.NoError(t, tr.RecordLeave(walkIn.ID, baseTime.Add(60*time.Minute)))
}

func TestTracker_LeaveForUnknownParticipantFails(t *testing.T) {
	tr := NewTracker(testFacts(), testReconciler())
	require.NoError(t, tr.Start(baseTime))

	err := tr.RecordLeave(uuid.New(), baseTime)
	assert.ErrorIs(t, err, usecaseErrors.ErrUnknownParticipant)
}

func TestTracker_EndClosesOpenSessions(t *testing.T) {
	p := costing.Participant{ID: uuid.New(), PersonalHourlyRate: fptr(6000)}
	tr := NewTracker(testFacts(p), testReconciler())
	require.NoError(t, tr.Start(baseTime))
	require.NoError(t, tr.RecordJoin(p, baseTime))

	cost, analytics, err := tr.End(baseTime.Add(60 * time.Minute))
	require.NoError(t, err)

	assert.InDelta(t, 6000.0, cost.DirectCost, 1e-9)
	assert.Equal(t, 1, cost.ParticipantCount)
	assert.Equal(t, 1, analytics.AttendedCount)
}

func TestTracker_SnapshotRoundTrip(t *testing.T) {
	p := costing.Participant{ID: uuid.New(), PersonalHourlyRate: fptr(8000)}
	tr := NewTracker(testFacts(p), testReconciler())
	require.NoError(t, tr.Start(baseTime))
	require.NoError(t, tr.RecordJoin(p, baseTime))

	snap := tr.Snapshot(baseTime.Add(10 * time.Minute))
	restored := RestoreTracker(snap, testReconciler())

	assert.Equal(t, StateRunning, restored.State())
	assert.Equal(t, tr.MeetingID(), restored.MeetingID())

	now := baseTime.Add(30 * time.Minute)
	want, err := tr.Tick(now)
	require.NoError(t, err)
	got, err := restored.Tick(now)
	require.NoError(t, err)
	assert.Equal(t, want.CurrentCost, got.CurrentCost)
	assert.Equal(t, want.ParticipantCount, got.ParticipantCount)
}
