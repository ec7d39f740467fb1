package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create creates a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting by its ID within an organization
	FindByID(ctx context.Context, organizationID, id uuid.UUID) (*entities.Meeting, error)

	// Update updates an existing meeting
	Update(ctx context.Context, meeting *entities.Meeting) error

	// Delete soft deletes a meeting
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves meetings with filters and pagination
	List(ctx context.Context, organizationID uuid.UUID, filters MeetingFilters) ([]*entities.Meeting, int64, error)

	// HasRoomConflict reports whether another non-cancelled meeting overlaps
	// the given slot in the same room
	HasRoomConflict(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeMeetingID *uuid.UUID) (bool, error)

	// UpdateStatus updates the meeting status
	UpdateStatus(ctx context.Context, meetingID uuid.UUID, status entities.MeetingStatus) error

	// FindInProgress retrieves all meetings currently in progress,
	// used to recover crashed meeting state after a restart
	FindInProgress(ctx context.Context) ([]*entities.Meeting, error)
}

// MeetingFilters represents filter options for listing meetings
type MeetingFilters struct {
	Status      *entities.MeetingStatus
	OrganizerID *uuid.UUID
	Category    string
	Search      string // search in title, description
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
	SortBy      string // "scheduled_start_at", "created_at", "title"
	SortOrder   string // "asc", "desc"
}
