package costing

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
	usecaseErrors "github.com/meetcost-team/meetcost/internal/usecase/errors"
)

func newTestReconciler() *Reconciler {
	return NewReconciler(NewRateTable(4000), 5*time.Minute)
}

func factsFor(participants []Participant, roomHourlyCost float64, scheduledMinutes int) MeetingFacts {
	return MeetingFacts{
		MeetingID:        uuid.New(),
		OrganizationID:   uuid.New(),
		ScheduledStartAt: baseTime,
		ScheduledEndAt:   baseTime.Add(time.Duration(scheduledMinutes) * time.Minute),
		RoomHourlyCost:   roomHourlyCost,
		Participants:     participants,
	}
}

func TestReconcile_InvalidWindow(t *testing.T) {
	r := newTestReconciler()
	facts := factsFor(nil, 0, 60)

	_, _, err := r.Reconcile(baseTime, baseTime.Add(-time.Second), nil, facts)

	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidWindow)
}

func TestReconcile_OverrunWithRoom(t *testing.T) {
	p := Participant{ID: uuid.New(), PersonalHourlyRate: fptr(8000)}
	facts := factsFor([]Participant{p}, 2000, 60)

	end := baseTime.Add(65 * time.Minute)
	sessions := []Session{{ParticipantID: p.ID, JoinedAt: baseTime, LeftAt: &end}}

	r := newTestReconciler()
	cost, analytics, err := r.Reconcile(baseTime, end, sessions, facts)

	require.NoError(t, err)
	assert.InDelta(t, 8000*65.0/60, cost.DirectCost, 1e-9)
	// room billed over the actual window by default
	assert.InDelta(t, 2000*65.0/60, cost.IndirectCost, 1e-9)
	assert.InDelta(t, cost.DirectCost+cost.IndirectCost, cost.TotalCost, 1e-9)
	assert.Equal(t, 65, cost.ActualDurationMinutes)
	assert.Equal(t, 60, cost.ScheduledDurationMinutes)
	assert.Equal(t, 1, cost.ParticipantCount)
	assert.Equal(t, 65, analytics.ActualDuration)
}

func TestReconcile_RoomCostScheduledPolicy(t *testing.T) {
	facts := factsFor(nil, 2000, 60)

	r := newTestReconciler()
	r.RoomCostScheduled = true

	cost, _, err := r.Reconcile(baseTime, baseTime.Add(65*time.Minute), nil, facts)

	require.NoError(t, err)
	assert.InDelta(t, 2000.0, cost.IndirectCost, 1e-9)
}

func TestReconcile_TwoFullAttendees(t *testing.T) {
	a := Participant{ID: uuid.New(), PersonalHourlyRate: fptr(15000)}
	b := Participant{ID: uuid.New(), PersonalHourlyRate: fptr(8000)}
	facts := factsFor([]Participant{a, b}, 0, 135)

	end := baseTime.Add(135 * time.Minute)
	sessions := []Session{
		{ParticipantID: a.ID, JoinedAt: baseTime, LeftAt: &end},
		{ParticipantID: b.ID, JoinedAt: baseTime, LeftAt: &end},
	}

	cost, analytics, err := newTestReconciler().Reconcile(baseTime, end, sessions, facts)

	require.NoError(t, err)
	assert.InDelta(t, 51750.0, cost.DirectCost, 1e-9)
	assert.InDelta(t, 11500.0, cost.AverageHourlyRate, 1e-9)
	assert.Equal(t, 2, analytics.AttendedCount)
	assert.InDelta(t, 1.0, analytics.AttendanceRate, 1e-9)
}

func TestReconcile_ROILargeMagnitude(t *testing.T) {
	p := Participant{ID: uuid.New(), OverrideHourlyRate: fptr(425000)}
	facts := factsFor([]Participant{p}, 0, 60)
	facts.ExpectedRevenue = fptr(500000000)

	end := baseTime.Add(60 * time.Minute)
	sessions := []Session{{ParticipantID: p.ID, JoinedAt: baseTime, LeftAt: &end}}

	cost, _, err := newTestReconciler().Reconcile(baseTime, end, sessions, facts)

	require.NoError(t, err)
	assert.InDelta(t, 425000.0, cost.TotalCost, 1e-6)
	require.NotNil(t, cost.ROIPercentage)
	want := (500000000.0 - 425000.0) / 425000.0 * 100
	assert.InDelta(t, want, *cost.ROIPercentage, 1e-6)
}

func TestReconcile_NoRevenueMeansNilROI(t *testing.T) {
	facts := factsFor(nil, 1000, 60)

	cost, analytics, err := newTestReconciler().Reconcile(baseTime, baseTime.Add(60*time.Minute), nil, facts)

	require.NoError(t, err)
	assert.Nil(t, cost.ROIPercentage)
	assert.Nil(t, analytics.ROIPercentage)
}

func TestReconcile_ZeroEverything(t *testing.T) {
	facts := factsFor(nil, 0, 0)
	facts.ScheduledEndAt = facts.ScheduledStartAt

	cost, analytics, err := newTestReconciler().Reconcile(baseTime, baseTime, nil, facts)

	require.NoError(t, err)
	assert.Zero(t, cost.TotalCost)
	assert.Zero(t, cost.CostPerMinute)
	assert.Zero(t, cost.AverageHourlyRate)
	assert.Zero(t, analytics.AttendanceRate)
	assert.Zero(t, analytics.CostPerParticipant)
}

func TestReconcile_BreakdownSumsToTotal(t *testing.T) {
	a := Participant{ID: uuid.New(), PersonalHourlyRate: fptr(9000)}
	b := Participant{ID: uuid.New()}
	facts := factsFor([]Participant{a, b}, 1500, 45)
	facts.Extras = Extras{Equipment: 200}

	end := baseTime.Add(50 * time.Minute)
	leave := baseTime.Add(30 * time.Minute)
	sessions := []Session{
		{ParticipantID: a.ID, JoinedAt: baseTime, LeftAt: &end},
		{ParticipantID: b.ID, JoinedAt: baseTime.Add(10 * time.Minute), LeftAt: &leave},
	}

	cost, _, err := newTestReconciler().Reconcile(baseTime, end, sessions, facts)
	require.NoError(t, err)

	var bd entities.CostBreakdown
	require.NoError(t, json.Unmarshal(cost.CostBreakdown, &bd))

	sum := bd.Room + bd.Equipment + bd.Other
	for _, entry := range bd.Participants {
		sum += entry.Cost
	}
	assert.InDelta(t, cost.TotalCost, sum, 1e-9)
	assert.Len(t, bd.Participants, 2)
	assert.InDelta(t, 4000.0, bd.Participants[b.ID.String()].HourlyRate, 1e-9)
}

func TestReconcile_PunctualityCounters(t *testing.T) {
	onTime := Participant{ID: uuid.New()}
	late := Participant{ID: uuid.New()}
	leaver := Participant{ID: uuid.New()}
	facts := factsFor([]Participant{onTime, late, leaver}, 0, 60)

	end := baseTime.Add(60 * time.Minute)
	earlyLeave := baseTime.Add(30 * time.Minute)
	sessions := []Session{
		{ParticipantID: onTime.ID, JoinedAt: baseTime.Add(2 * time.Minute), LeftAt: &end},
		{ParticipantID: late.ID, JoinedAt: baseTime.Add(12 * time.Minute), LeftAt: &end},
		{ParticipantID: leaver.ID, JoinedAt: baseTime, LeftAt: &earlyLeave},
	}

	_, analytics, err := newTestReconciler().Reconcile(baseTime, end, sessions, facts)

	require.NoError(t, err)
	assert.Equal(t, 1, analytics.LateArrivals)
	assert.Equal(t, 1, analytics.EarlyDepartures)
}

func TestReconcile_StartDelayAndBuckets(t *testing.T) {
	facts := factsFor(nil, 0, 60)

	started := baseTime.Add(7 * time.Minute)
	_, analytics, err := newTestReconciler().Reconcile(started, started.Add(50*time.Minute), nil, facts)

	require.NoError(t, err)
	assert.Equal(t, 7, analytics.StartDelayMinutes)
	assert.Equal(t, started.Hour(), analytics.MeetingHour)
	assert.Equal(t, int(started.Weekday()), analytics.DayOfWeek)
	assert.Equal(t, 1, analytics.Quarter)
	assert.Equal(t, 2026, analytics.Year)
}

func TestReconcile_MeetingDateKeepsLocalDay(t *testing.T) {
	facts := factsFor(nil, 0, 60)

	// 23:30 local is already the next day in UTC; the daily bucket must
	// stay on the local calendar day
	tokyo := time.FixedZone("JST", 9*3600)
	started := time.Date(2026, 3, 2, 23, 30, 0, 0, tokyo)
	facts.ScheduledStartAt = started
	facts.ScheduledEndAt = started.Add(time.Hour)

	_, analytics, err := newTestReconciler().Reconcile(started, started.Add(time.Hour), nil, facts)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, tokyo), analytics.MeetingDate)
	assert.Equal(t, 2, analytics.MeetingDate.Day())
	assert.Equal(t, 23, analytics.MeetingHour)
}

func TestDefaultScoring_Bounds(t *testing.T) {
	s := DefaultScoring{}

	perfect := s.Score(ScoringInput{ScheduledMinutes: 60, ActualMinutes: 60, AttendanceRate: 1})
	assert.Equal(t, 1.0, perfect.Efficiency)

	overrun := s.Score(ScoringInput{ScheduledMinutes: 60, ActualMinutes: 120, AttendanceRate: 1})
	assert.InDelta(t, 0.5, overrun.Efficiency, 1e-9)

	short := s.Score(ScoringInput{ScheduledMinutes: 60, ActualMinutes: 30, AttendanceRate: 1})
	assert.Equal(t, 1.0, short.Efficiency, "finishing early is not penalized")

	for _, sc := range []Scores{perfect, overrun, short} {
		assert.GreaterOrEqual(t, sc.Efficiency, 0.0)
		assert.LessOrEqual(t, sc.Efficiency, 1.0)
		assert.GreaterOrEqual(t, sc.Productivity, 0.0)
		assert.LessOrEqual(t, sc.Productivity, 1.0)
	}
}
