package meeting

import (
	"context"

	"github.com/google/uuid"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
	"github.com/meetcost-team/meetcost/internal/domain/repositories"
	"github.com/meetcost-team/meetcost/internal/usecase/tracker"
)

// Service defines the interface for the meeting use case
type Service interface {
	// CreateMeeting schedules a new meeting with its invited participants
	CreateMeeting(ctx context.Context, input CreateMeetingInput) (*entities.Meeting, error)

	// GetMeeting retrieves a meeting by ID within an organization
	GetMeeting(ctx context.Context, organizationID, meetingID uuid.UUID) (*entities.Meeting, error)

	// ListMeetings retrieves meetings with filters and pagination
	ListMeetings(ctx context.Context, organizationID uuid.UUID, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error)

	// UpdateMeeting updates a scheduled meeting (organizer only)
	UpdateMeeting(ctx context.Context, input UpdateMeetingInput) (*entities.Meeting, error)

	// DeleteMeeting soft deletes a scheduled meeting (organizer only)
	DeleteMeeting(ctx context.Context, organizationID, meetingID, userID uuid.UUID) error

	// AddParticipant invites a user to a meeting (organizer only)
	AddParticipant(ctx context.Context, input AddParticipantInput) (*entities.MeetingParticipant, error)

	// UpdateParticipant changes a participant's role, required flag or rate override
	UpdateParticipant(ctx context.Context, input UpdateParticipantInput) (*entities.MeetingParticipant, error)

	// RemoveParticipant uninvites a user (organizer only; the organizer
	// themselves cannot be removed)
	RemoveParticipant(ctx context.Context, organizationID, meetingID, requesterID, userID uuid.UUID) error

	// GetParticipants retrieves all participants of a meeting
	GetParticipants(ctx context.Context, organizationID, meetingID uuid.UUID) ([]*entities.MeetingParticipant, error)

	// StartMeeting transitions the meeting to in progress and starts its
	// cost tracker with rate snapshots of the invited roster
	StartMeeting(ctx context.Context, organizationID, meetingID, userID uuid.UUID) (*entities.Meeting, error)

	// JoinMeeting records a participant joining a running meeting;
	// unknown users are admitted as walk-ins
	JoinMeeting(ctx context.Context, organizationID, meetingID, userID uuid.UUID) error

	// LeaveMeeting records a participant leaving a running meeting
	LeaveMeeting(ctx context.Context, organizationID, meetingID, userID uuid.UUID) error

	// EndMeeting ends the meeting and reconciles its final cost
	EndMeeting(ctx context.Context, organizationID, meetingID, userID uuid.UUID) (*entities.MeetingCost, *entities.MeetingAnalytics, error)

	// CancelMeeting cancels a meeting; a running tracker is discarded
	// without producing a cost record
	CancelMeeting(ctx context.Context, organizationID, meetingID, userID uuid.UUID) error

	// GetRunningCost returns the live cost snapshot of a running meeting
	GetRunningCost(ctx context.Context, organizationID, meetingID uuid.UUID) (tracker.RunningCost, error)

	// GetMeetingCost returns the finalized cost record of a completed meeting
	GetMeetingCost(ctx context.Context, organizationID, meetingID uuid.UUID) (*entities.MeetingCost, error)

	// RecomputeCost rebuilds the cost record from the persisted presence
	// sessions. Administrative overwrite of an immutable record; the
	// result is flagged as recomputed.
	RecomputeCost(ctx context.Context, organizationID, meetingID uuid.UUID) (*entities.MeetingCost, error)

	// RestoreTrackers rebuilds live trackers from persisted snapshots
	// after a restart
	RestoreTrackers(ctx context.Context) error
}

// Ensure MeetingService implements Service interface
var _ Service = (*MeetingService)(nil)
