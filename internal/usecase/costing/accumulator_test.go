package costing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usecaseErrors "github.com/meetcost-team/meetcost/internal/usecase/errors"
)

var baseTime = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func flatRate(rate float64) func(uuid.UUID) float64 {
	return func(uuid.UUID) float64 { return rate }
}

func tptr(t time.Time) *time.Time { return &t }

func TestComputeCost_InvalidWindow(t *testing.T) {
	window := Window{Start: baseTime, End: baseTime.Add(-time.Minute)}

	_, _, err := ComputeCost(nil, flatRate(4000), 0, window, Extras{})

	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidWindow)
}

func TestComputeCost_EmptyMeetingIsFree(t *testing.T) {
	window := Window{Start: baseTime, End: baseTime.Add(30 * time.Minute)}

	totals, usage, err := ComputeCost(nil, flatRate(4000), 0, window, Extras{})

	require.NoError(t, err)
	assert.Zero(t, totals.Total())
	assert.Empty(t, usage)
}

func TestComputeCost_SingleSession(t *testing.T) {
	id := uuid.New()
	window := Window{Start: baseTime, End: baseTime.Add(65 * time.Minute)}
	sessions := []Session{
		{ParticipantID: id, JoinedAt: baseTime, LeftAt: tptr(baseTime.Add(65 * time.Minute))},
	}

	totals, usage, err := ComputeCost(sessions, flatRate(8000), 0, window, Extras{})

	require.NoError(t, err)
	assert.InDelta(t, 8000*65.0/60, totals.Direct, 1e-9)
	assert.InDelta(t, 65.0, usage[id].Minutes, 1e-9)
}

func TestComputeCost_RejoinGapNotCounted(t *testing.T) {
	id := uuid.New()
	window := Window{Start: baseTime, End: baseTime.Add(60 * time.Minute)}
	// present 0-20 and 40-60, absent in between
	sessions := []Session{
		{ParticipantID: id, JoinedAt: baseTime, LeftAt: tptr(baseTime.Add(20 * time.Minute))},
		{ParticipantID: id, JoinedAt: baseTime.Add(40 * time.Minute), LeftAt: tptr(baseTime.Add(60 * time.Minute))},
	}

	totals, usage, err := ComputeCost(sessions, flatRate(6000), 0, window, Extras{})

	require.NoError(t, err)
	assert.InDelta(t, 40.0, usage[id].Minutes, 1e-9)
	assert.InDelta(t, 6000*40.0/60, totals.Direct, 1e-9)
}

func TestComputeCost_OverlappingSessionsNotDoubleCounted(t *testing.T) {
	id := uuid.New()
	window := Window{Start: baseTime, End: baseTime.Add(60 * time.Minute)}
	// two devices reporting overlapping presence 0-40 and 30-60
	sessions := []Session{
		{ParticipantID: id, JoinedAt: baseTime, LeftAt: tptr(baseTime.Add(40 * time.Minute))},
		{ParticipantID: id, JoinedAt: baseTime.Add(30 * time.Minute), LeftAt: tptr(baseTime.Add(60 * time.Minute))},
	}

	_, usage, err := ComputeCost(sessions, flatRate(6000), 0, window, Extras{})

	require.NoError(t, err)
	assert.InDelta(t, 60.0, usage[id].Minutes, 1e-9)
}

func TestComputeCost_OpenSessionRunsToWindowEnd(t *testing.T) {
	id := uuid.New()
	window := Window{Start: baseTime, End: baseTime.Add(45 * time.Minute)}
	sessions := []Session{
		{ParticipantID: id, JoinedAt: baseTime.Add(15 * time.Minute)},
	}

	_, usage, err := ComputeCost(sessions, flatRate(4000), 0, window, Extras{})

	require.NoError(t, err)
	assert.InDelta(t, 30.0, usage[id].Minutes, 1e-9)
}

func TestComputeCost_SessionsClippedToWindow(t *testing.T) {
	id := uuid.New()
	window := Window{Start: baseTime, End: baseTime.Add(60 * time.Minute)}
	// joined before the meeting started, left after it ended
	sessions := []Session{
		{ParticipantID: id, JoinedAt: baseTime.Add(-10 * time.Minute), LeftAt: tptr(baseTime.Add(70 * time.Minute))},
	}

	_, usage, err := ComputeCost(sessions, flatRate(4000), 0, window, Extras{})

	require.NoError(t, err)
	assert.InDelta(t, 60.0, usage[id].Minutes, 1e-9)
}

func TestComputeCost_RoomAccruesOverFullWindow(t *testing.T) {
	window := Window{Start: baseTime, End: baseTime.Add(90 * time.Minute)}

	totals, _, err := ComputeCost(nil, flatRate(4000), 2000, window, Extras{})

	require.NoError(t, err)
	assert.InDelta(t, 2000*90.0/60, totals.Room, 1e-9)
	assert.Equal(t, totals.Room, totals.Indirect())
}

func TestComputeCost_ExtrasIncludedInIndirect(t *testing.T) {
	window := Window{Start: baseTime, End: baseTime.Add(30 * time.Minute)}

	totals, _, err := ComputeCost(nil, flatRate(4000), 1000, window, Extras{Equipment: 300, Other: 50})

	require.NoError(t, err)
	assert.InDelta(t, 500+300+50, totals.Indirect(), 1e-9)
	assert.InDelta(t, totals.Direct+totals.Indirect(), totals.Total(), 1e-9)
}

func TestComputeCost_DirectCostMonotoneInWindowEnd(t *testing.T) {
	id := uuid.New()
	sessions := []Session{
		{ParticipantID: id, JoinedAt: baseTime}, // still present
	}

	prev := 0.0
	for m := 0; m <= 120; m += 7 {
		window := Window{Start: baseTime, End: baseTime.Add(time.Duration(m) * time.Minute)}
		totals, _, err := ComputeCost(sessions, flatRate(5000), 0, window, Extras{})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, totals.Direct, prev)
		prev = totals.Direct
	}
}
