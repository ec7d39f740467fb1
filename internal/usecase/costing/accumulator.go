package costing

import (
	"sort"
	"time"

	"github.com/google/uuid"

	usecaseErrors "github.com/meetcost-team/meetcost/internal/usecase/errors"
)

// Session is one presence interval of a participant. A nil LeftAt means
// the participant is still present; such sessions are treated as running
// until the end of the computation window.
type Session struct {
	ParticipantID uuid.UUID
	JoinedAt      time.Time
	LeftAt        *time.Time
}

// Window is a closed time interval over which cost is computed
type Window struct {
	Start time.Time
	End   time.Time
}

// Minutes returns the window length in minutes
func (w Window) Minutes() float64 {
	return w.End.Sub(w.Start).Minutes()
}

// Extras are additive indirect costs supplied by the caller
type Extras struct {
	Equipment float64
	Other     float64
}

// Totals is the decomposed cost of a window
type Totals struct {
	Direct    float64
	Room      float64
	Equipment float64
	Other     float64
}

// Indirect returns the resource cost not tied to a specific person
func (t Totals) Indirect() float64 {
	return t.Room + t.Equipment + t.Other
}

// Total returns direct plus indirect cost
func (t Totals) Total() float64 {
	return t.Direct + t.Indirect()
}

// ParticipantUsage is the attended time and resulting cost of one
// participant within a window, used for the auditable cost breakdown.
type ParticipantUsage struct {
	HourlyRate float64
	Minutes    float64
	Cost       float64
}

// ComputeCost computes the direct and indirect cost of a window.
//
// Direct cost sums, per participant, rate x attended-minutes / 60 over the
// union of that participant's sessions clipped to the window, so
// overlapping sessions of the same participant are never double counted.
// Room cost accrues over the full window regardless of attendance, since
// the reservation is committed whether or not anyone shows up. An empty
// window with no sessions and no room yields zero cost.
func ComputeCost(sessions []Session, rateOf func(uuid.UUID) float64, roomHourlyCost float64, window Window, extras Extras) (Totals, map[uuid.UUID]ParticipantUsage, error) {
	if window.End.Before(window.Start) {
		return Totals{}, nil, usecaseErrors.ErrInvalidWindow
	}

	type interval struct{ start, end time.Time }
	perParticipant := make(map[uuid.UUID][]interval)

	for _, s := range sessions {
		start := s.JoinedAt
		end := window.End
		if s.LeftAt != nil {
			end = *s.LeftAt
		}
		// clip to window
		if start.Before(window.Start) {
			start = window.Start
		}
		if end.After(window.End) {
			end = window.End
		}
		if !end.After(start) {
			continue
		}
		perParticipant[s.ParticipantID] = append(perParticipant[s.ParticipantID], interval{start, end})
	}

	totals := Totals{
		Equipment: extras.Equipment,
		Other:     extras.Other,
	}
	usage := make(map[uuid.UUID]ParticipantUsage, len(perParticipant))

	for id, intervals := range perParticipant {
		sort.Slice(intervals, func(i, j int) bool {
			return intervals[i].start.Before(intervals[j].start)
		})

		// merge into a union of disjoint intervals
		var attended time.Duration
		current := intervals[0]
		for _, iv := range intervals[1:] {
			if iv.start.After(current.end) {
				attended += current.end.Sub(current.start)
				current = iv
				continue
			}
			if iv.end.After(current.end) {
				current.end = iv.end
			}
		}
		attended += current.end.Sub(current.start)

		rate := rateOf(id)
		minutes := attended.Minutes()
		cost := rate * minutes / 60

		usage[id] = ParticipantUsage{
			HourlyRate: rate,
			Minutes:    minutes,
			Cost:       cost,
		}
		totals.Direct += cost
	}

	if roomHourlyCost > 0 {
		totals.Room = roomHourlyCost * window.Minutes() / 60
	}

	return totals, usage, nil
}
