package tracker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/meetcost-team/meetcost/internal/usecase/costing"
)

// Snapshot is the serializable state of a running tracker, persisted so
// in-flight meetings survive a process restart.
type Snapshot struct {
	MeetingID      uuid.UUID         `json:"meeting_id"`
	OrganizationID uuid.UUID         `json:"organization_id"`
	State          State             `json:"state"`
	StartedAt      time.Time         `json:"started_at"`
	TakenAt        time.Time         `json:"taken_at"`
	Facts          SnapshotFacts     `json:"facts"`
	Sessions       []SnapshotSession `json:"sessions"`
}

// SnapshotFacts mirrors costing.MeetingFacts in a JSON-stable shape.
type SnapshotFacts struct {
	DepartmentID     *uuid.UUID            `json:"department_id,omitempty"`
	Category         string                `json:"category"`
	ScheduledStartAt time.Time             `json:"scheduled_start_at"`
	ScheduledEndAt   time.Time             `json:"scheduled_end_at"`
	ExpectedRevenue  *float64              `json:"expected_revenue,omitempty"`
	RoomHourlyCost   float64               `json:"room_hourly_cost"`
	EquipmentCost    float64               `json:"equipment_cost"`
	OtherCost        float64               `json:"other_cost"`
	Participants     []SnapshotParticipant `json:"participants"`
}

// SnapshotParticipant is one rate snapshot on the roster.
type SnapshotParticipant struct {
	ID                 uuid.UUID  `json:"id"`
	DisplayName        string     `json:"display_name"`
	OverrideHourlyRate *float64   `json:"override_hourly_rate,omitempty"`
	PersonalHourlyRate *float64   `json:"personal_hourly_rate,omitempty"`
	RoleDefaultRate    *float64   `json:"role_default_rate,omitempty"`
	Required           bool       `json:"required"`
	DepartmentID       *uuid.UUID `json:"department_id,omitempty"`
}

// SnapshotSession is one persisted presence interval.
type SnapshotSession struct {
	ParticipantID uuid.UUID  `json:"participant_id"`
	JoinedAt      time.Time  `json:"joined_at"`
	LeftAt        *time.Time `json:"left_at,omitempty"`
}

// SnapshotStore persists running-tracker snapshots for crash recovery.
// Implementations live in the infrastructure layer.
type SnapshotStore interface {
	Save(ctx context.Context, snap Snapshot) error
	Delete(ctx context.Context, meetingID uuid.UUID) error
	Load(ctx context.Context, meetingID uuid.UUID) (*Snapshot, error)
	LoadAll(ctx context.Context) ([]Snapshot, error)
}

// Snapshot captures the tracker's current state for persistence.
func (t *Tracker) Snapshot(now time.Time) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := Snapshot{
		MeetingID:      t.facts.MeetingID,
		OrganizationID: t.facts.OrganizationID,
		State:          t.state,
		StartedAt:      t.startedAt,
		TakenAt:        now,
		Facts: SnapshotFacts{
			DepartmentID:     t.facts.DepartmentID,
			Category:         t.facts.Category,
			ScheduledStartAt: t.facts.ScheduledStartAt,
			ScheduledEndAt:   t.facts.ScheduledEndAt,
			ExpectedRevenue:  t.facts.ExpectedRevenue,
			RoomHourlyCost:   t.facts.RoomHourlyCost,
			EquipmentCost:    t.facts.Extras.Equipment,
			OtherCost:        t.facts.Extras.Other,
		},
	}
	for _, p := range t.facts.Participants {
		snap.Facts.Participants = append(snap.Facts.Participants, SnapshotParticipant(p))
	}
	for _, s := range t.ledger.Sessions() {
		snap.Sessions = append(snap.Sessions, SnapshotSession(s))
	}
	return snap
}

// RestoreTracker rebuilds a running tracker from a persisted snapshot.
func RestoreTracker(snap Snapshot, reconciler *costing.Reconciler) *Tracker {
	facts := costing.MeetingFacts{
		MeetingID:        snap.MeetingID,
		OrganizationID:   snap.OrganizationID,
		DepartmentID:     snap.Facts.DepartmentID,
		Category:         snap.Facts.Category,
		ScheduledStartAt: snap.Facts.ScheduledStartAt,
		ScheduledEndAt:   snap.Facts.ScheduledEndAt,
		ExpectedRevenue:  snap.Facts.ExpectedRevenue,
		RoomHourlyCost:   snap.Facts.RoomHourlyCost,
		Extras: costing.Extras{
			Equipment: snap.Facts.EquipmentCost,
			Other:     snap.Facts.OtherCost,
		},
	}
	for _, p := range snap.Facts.Participants {
		facts.Participants = append(facts.Participants, costing.Participant(p))
	}

	t := NewTracker(facts, reconciler)
	t.state = snap.State
	t.startedAt = snap.StartedAt

	sessions := make([]costing.Session, 0, len(snap.Sessions))
	for _, s := range snap.Sessions {
		sessions = append(sessions, costing.Session(s))
	}
	t.ledger.restoreSessions(sessions)
	return t
}
