package tracker

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
	"github.com/meetcost-team/meetcost/internal/usecase/costing"
	usecaseErrors "github.com/meetcost-team/meetcost/internal/usecase/errors"
)

// State is the lifecycle state of a cost tracker
type State string

const (
	StateNotStarted State = "not_started"
	StateRunning    State = "running"
	StateEnded      State = "ended"
	StateCancelled  State = "cancelled"
)

// RunningCost is the live cost snapshot of an in-progress meeting
type RunningCost struct {
	MeetingID        uuid.UUID `json:"meeting_id"`
	ElapsedSeconds   int       `json:"elapsed_seconds"`
	CurrentCost      float64   `json:"current_cost"`
	DirectCost       float64   `json:"direct_cost"`
	IndirectCost     float64   `json:"indirect_cost"`
	ParticipantCount int       `json:"participant_count"` // currently present
	ComputedAt       time.Time `json:"computed_at"`
}

// Tracker is the single authority for one meeting's live cost. All
// mutations go through its mutex, so near-simultaneous reports from
// multiple devices are applied in arrival order.
//
// Tick never accumulates: every call recomputes from the full ledger, so
// repeated ticks with the same now are idempotent.
type Tracker struct {
	mu sync.Mutex

	state     State
	facts     costing.MeetingFacts
	startedAt time.Time
	endedAt   time.Time
	ledger    *Ledger

	reconciler *costing.Reconciler
}

// NewTracker creates a tracker in the not-started state. The facts carry
// the rate snapshot of the invited roster; rates resolved later for
// walk-ins are snapshotted at join time.
func NewTracker(facts costing.MeetingFacts, reconciler *costing.Reconciler) *Tracker {
	return &Tracker{
		state:      StateNotStarted,
		facts:      facts,
		ledger:     NewLedger(),
		reconciler: reconciler,
	}
}

// MeetingID returns the meeting this tracker is bound to.
func (t *Tracker) MeetingID() uuid.UUID {
	return t.facts.MeetingID
}

// State returns the current lifecycle state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Start transitions the tracker to running. Fails with ErrAlreadyStarted
// on any repeat call and ErrAlreadyEnded once terminal.
func (t *Tracker) Start(at time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.state {
	case StateRunning:
		return usecaseErrors.ErrAlreadyStarted
	case StateEnded, StateCancelled:
		return usecaseErrors.ErrAlreadyEnded
	}
	t.state = StateRunning
	t.startedAt = at
	return nil
}

// RecordJoin opens a presence session. A participant not on the roster is
// admitted as a walk-in: the caller supplies their rate snapshot and they
// are added with required=false semantics. Joining twice is a no-op.
func (t *Tracker) RecordJoin(p costing.Participant, at time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateRunning {
		return usecaseErrors.ErrNotRunning
	}
	if !t.onRoster(p.ID) {
		p.Required = false
		t.facts.Participants = append(t.facts.Participants, p)
	}
	t.ledger.Join(p.ID, at)
	return nil
}

// RecordLeave closes the participant's open session. Leaving without an
// open session is a no-op; leaving for someone who never joined and was
// never invited is an integration error.
func (t *Tracker) RecordLeave(participantID uuid.UUID, at time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateRunning {
		return usecaseErrors.ErrNotRunning
	}
	if !t.onRoster(participantID) {
		return usecaseErrors.ErrUnknownParticipant
	}
	t.ledger.Leave(participantID, at)
	return nil
}

// Tick recomputes the running cost over [startedAt, now]. Read-only with
// respect to the ledger.
func (t *Tracker) Tick(now time.Time) (RunningCost, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateRunning {
		return RunningCost{}, usecaseErrors.ErrNotRunning
	}
	if now.Before(t.startedAt) {
		now = t.startedAt
	}

	rateOf := t.reconciler.Rates.RateFunc(t.facts.Participants)
	window := costing.Window{Start: t.startedAt, End: now}
	totals, _, err := costing.ComputeCost(t.ledger.Sessions(), rateOf, t.facts.RoomHourlyCost, window, t.facts.Extras)
	if err != nil {
		return RunningCost{}, err
	}

	return RunningCost{
		MeetingID:        t.facts.MeetingID,
		ElapsedSeconds:   int(now.Sub(t.startedAt).Seconds()),
		CurrentCost:      totals.Total(),
		DirectCost:       totals.Direct,
		IndirectCost:     totals.Indirect(),
		ParticipantCount: t.ledger.PresentCount(),
		ComputedAt:       now,
	}, nil
}

// End force-closes all open sessions, transitions to ended and reconciles.
// Exactly one End can succeed; later calls fail with ErrAlreadyEnded.
func (t *Tracker) End(at time.Time) (*entities.MeetingCost, *entities.MeetingAnalytics, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.state {
	case StateNotStarted:
		return nil, nil, usecaseErrors.ErrNotRunning
	case StateEnded, StateCancelled:
		return nil, nil, usecaseErrors.ErrAlreadyEnded
	}
	if at.Before(t.startedAt) {
		at = t.startedAt
	}

	t.ledger.CloseAll(at)
	t.state = StateEnded
	t.endedAt = at

	return t.reconciler.Reconcile(t.startedAt, at, t.ledger.Sessions(), t.facts)
}

// Cancel discards the tracker without producing a cost record. Valid from
// not-started and running; a second terminal transition fails.
func (t *Tracker) Cancel() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateEnded || t.state == StateCancelled {
		return usecaseErrors.ErrAlreadyEnded
	}
	t.state = StateCancelled
	return nil
}

func (t *Tracker) onRoster(id uuid.UUID) bool {
	for _, p := range t.facts.Participants {
		if p.ID == id {
			return true
		}
	}
	return false
}
