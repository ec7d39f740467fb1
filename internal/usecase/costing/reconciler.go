package costing

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
)

// MeetingFacts is everything reconciliation needs to know about a meeting
// beyond its presence sessions. Rates are the snapshot taken when the
// meeting started, so mid-meeting profile edits never change the bill.
type MeetingFacts struct {
	MeetingID      uuid.UUID
	OrganizationID uuid.UUID
	DepartmentID   *uuid.UUID // organizer's department
	Category       string

	ScheduledStartAt time.Time
	ScheduledEndAt   time.Time

	ExpectedRevenue *float64
	RoomHourlyCost  float64
	Extras          Extras

	Participants []Participant // invited roster plus admitted walk-ins
}

// Reconciler turns a finished meeting's presence sessions into the final
// MeetingCost record and its MeetingAnalytics companion.
type Reconciler struct {
	Rates   RateTable
	Scoring ScoringStrategy

	// RoomCostScheduled bills the room over the scheduled window instead
	// of the actual one, for organizations whose rooms are block-booked.
	RoomCostScheduled bool

	// LateGrace is how far past the actual start a first join may land
	// before the participant counts as a late arrival. The same grace is
	// applied symmetrically to early departures.
	LateGrace time.Duration
}

// NewReconciler builds a Reconciler with the default scoring strategy.
func NewReconciler(rates RateTable, lateGrace time.Duration) *Reconciler {
	return &Reconciler{
		Rates:     rates,
		Scoring:   DefaultScoring{},
		LateGrace: lateGrace,
	}
}

// Reconcile computes the final cost and analytics for the window
// [startedAt, endedAt]. It is pure: persistence and idempotence are the
// caller's concern. Returns ErrInvalidWindow when endedAt precedes
// startedAt.
func (r *Reconciler) Reconcile(startedAt, endedAt time.Time, sessions []Session, facts MeetingFacts) (*entities.MeetingCost, *entities.MeetingAnalytics, error) {
	window := Window{Start: startedAt, End: endedAt}

	rateOf := r.Rates.RateFunc(facts.Participants)

	totals, usage, err := ComputeCost(sessions, rateOf, facts.RoomHourlyCost, window, facts.Extras)
	if err != nil {
		return nil, nil, err
	}

	actualMinutes := ceilMinutes(endedAt.Sub(startedAt))
	scheduledMinutes := ceilMinutes(facts.ScheduledEndAt.Sub(facts.ScheduledStartAt))

	if r.RoomCostScheduled {
		totals.Room = facts.RoomHourlyCost * float64(scheduledMinutes) / 60
	}

	attendees := attendeeSet(sessions)
	attendedCount := len(attendees)
	invitedCount := len(facts.Participants)

	attendanceRate := 0.0
	if invitedCount > 0 {
		attendanceRate = clamp01(float64(attendedCount) / float64(invitedCount))
	}

	averageRate := 0.0
	if attendedCount > 0 {
		sum := 0.0
		for id := range attendees {
			sum += rateOf(id)
		}
		averageRate = sum / float64(attendedCount)
	}

	total := totals.Total()

	costPerMinute := 0.0
	if actualMinutes > 0 {
		costPerMinute = total / float64(actualMinutes)
	}

	var roi *float64
	if facts.ExpectedRevenue != nil && total > 0 {
		v := (*facts.ExpectedRevenue - total) / total * 100
		roi = &v
	}

	startDelay := 0
	if startedAt.After(facts.ScheduledStartAt) {
		startDelay = ceilMinutes(startedAt.Sub(facts.ScheduledStartAt))
	}

	late, early := r.punctuality(sessions, startedAt, endedAt)

	scores := r.Scoring.Score(ScoringInput{
		ScheduledMinutes:  scheduledMinutes,
		ActualMinutes:     actualMinutes,
		AttendanceRate:    attendanceRate,
		StartDelayMinutes: startDelay,
	})

	breakdown, err := marshalBreakdown(totals, usage)
	if err != nil {
		return nil, nil, err
	}

	cost := &entities.MeetingCost{
		MeetingID:                facts.MeetingID,
		TotalCost:                total,
		DirectCost:               totals.Direct,
		IndirectCost:             totals.Indirect(),
		ParticipantCount:         attendedCount,
		ActualDurationMinutes:    actualMinutes,
		ScheduledDurationMinutes: scheduledMinutes,
		AverageHourlyRate:        averageRate,
		CostPerMinute:            costPerMinute,
		EfficiencyScore:          scores.Efficiency,
		ROIPercentage:            roi,
		CostBreakdown:            breakdown,
	}

	costPerParticipant := 0.0
	if attendedCount > 0 {
		costPerParticipant = total / float64(attendedCount)
	}

	// calendar day in the meeting's own zone, so daily and weekly
	// rollup buckets agree with the wall-clock date
	year, month, day := startedAt.Date()
	meetingDate := time.Date(year, month, day, 0, 0, 0, 0, startedAt.Location())

	analytics := &entities.MeetingAnalytics{
		MeetingID:      facts.MeetingID,
		OrganizationID: facts.OrganizationID,
		DepartmentID:   facts.DepartmentID,
		Category:       facts.Category,

		MeetingDate: meetingDate,
		MeetingHour: startedAt.Hour(),
		DayOfWeek:   int(startedAt.Weekday()),
		Month:       int(startedAt.Month()),
		Quarter:     (int(startedAt.Month())-1)/3 + 1,
		Year:        startedAt.Year(),

		TotalCost:          total,
		CostPerParticipant: costPerParticipant,
		CostPerMinute:      costPerMinute,

		ScheduledDuration: scheduledMinutes,
		ActualDuration:    actualMinutes,
		StartDelayMinutes: startDelay,

		InvitedCount:    invitedCount,
		AttendedCount:   attendedCount,
		AttendanceRate:  attendanceRate,
		LateArrivals:    late,
		EarlyDepartures: early,

		EfficiencyScore:   scores.Efficiency,
		ProductivityScore: scores.Productivity,
		SatisfactionScore: scores.Satisfaction,

		ROIPercentage: roi,
	}

	return cost, analytics, nil
}

// punctuality counts late arrivals (first join beyond the grace window
// after start) and early departures (all sessions closed before the grace
// window preceding end).
func (r *Reconciler) punctuality(sessions []Session, startedAt, endedAt time.Time) (late, early int) {
	firstJoin := make(map[uuid.UUID]time.Time)
	lastLeave := make(map[uuid.UUID]*time.Time)

	for _, s := range sessions {
		if prev, ok := firstJoin[s.ParticipantID]; !ok || s.JoinedAt.Before(prev) {
			firstJoin[s.ParticipantID] = s.JoinedAt
		}
		prev, seen := lastLeave[s.ParticipantID]
		if s.LeftAt == nil {
			// an open session runs to the end of the meeting
			lastLeave[s.ParticipantID] = nil
		} else if !seen || (prev != nil && s.LeftAt.After(*prev)) {
			lastLeave[s.ParticipantID] = s.LeftAt
		}
	}

	lateCutoff := startedAt.Add(r.LateGrace)
	earlyCutoff := endedAt.Add(-r.LateGrace)

	for id, join := range firstJoin {
		if join.After(lateCutoff) {
			late++
		}
		if leave := lastLeave[id]; leave != nil && leave.Before(earlyCutoff) {
			early++
		}
	}
	return late, early
}

func attendeeSet(sessions []Session) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(sessions))
	for _, s := range sessions {
		set[s.ParticipantID] = struct{}{}
	}
	return set
}

func marshalBreakdown(totals Totals, usage map[uuid.UUID]ParticipantUsage) (datatypes.JSON, error) {
	bd := entities.CostBreakdown{
		Participants: make(map[string]entities.ParticipantCostEntry, len(usage)),
		Room:         totals.Room,
		Equipment:    totals.Equipment,
		Other:        totals.Other,
	}
	for id, u := range usage {
		bd.Participants[id.String()] = entities.ParticipantCostEntry{
			HourlyRate: u.HourlyRate,
			Minutes:    u.Minutes,
			Cost:       u.Cost,
		}
	}

	raw, err := json.Marshal(bd)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func ceilMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Minutes()))
}
