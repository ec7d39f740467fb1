package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
)

// ParticipantRepository defines the interface for participant data access
type ParticipantRepository interface {
	// Create creates a new participant record
	Create(ctx context.Context, participant *entities.MeetingParticipant) error

	// CreateBatch creates several participant records at once
	CreateBatch(ctx context.Context, participants []*entities.MeetingParticipant) error

	// FindByID retrieves a participant by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingParticipant, error)

	// FindByMeetingAndUser retrieves a participant by meeting and user ID
	FindByMeetingAndUser(ctx context.Context, meetingID, userID uuid.UUID) (*entities.MeetingParticipant, error)

	// FindByMeetingID retrieves all participants of a meeting with their
	// user, role and department preloaded (needed for rate snapshots)
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingParticipant, error)

	// Update updates an existing participant
	Update(ctx context.Context, participant *entities.MeetingParticipant) error

	// Delete deletes a participant record
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByMeetingID counts participants of a meeting
	CountByMeetingID(ctx context.Context, meetingID uuid.UUID) (int64, error)
}

// PresenceRepository persists the durable copy of presence sessions.
// The in-memory ledger remains the source of truth while a meeting is
// running; rows written here survive a crash.
type PresenceRepository interface {
	// Create appends a new (open) presence session
	Create(ctx context.Context, session *entities.PresenceSession) error

	// Update closes or amends an existing session
	Update(ctx context.Context, session *entities.PresenceSession) error

	// FindByMeetingID retrieves all sessions of a meeting ordered by join time
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.PresenceSession, error)

	// FindOpenByMeetingAndUser retrieves the open session for a user, if any
	FindOpenByMeetingAndUser(ctx context.Context, meetingID, userID uuid.UUID) (*entities.PresenceSession, error)
}
