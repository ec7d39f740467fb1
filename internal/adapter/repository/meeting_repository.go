package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
	"github.com/meetcost-team/meetcost/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// Create creates a new meeting
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

// FindByID retrieves a meeting by its ID within an organization
func (r *meetingRepository) FindByID(ctx context.Context, organizationID, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Organizer").
		Preload("Room").
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&meeting).Error

	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// Update updates an existing meeting
func (r *meetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Save(meeting).Error
}

// Delete soft deletes a meeting
func (r *meetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Meeting{}, id).Error
}

// List retrieves meetings with filters and pagination
func (r *meetingRepository) List(ctx context.Context, organizationID uuid.UUID, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	var meetings []*entities.Meeting
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Meeting{}).
		Preload("Organizer").
		Preload("Room").
		Where("organization_id = ?", organizationID)

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.OrganizerID != nil {
		query = query.Where("organizer_id = ?", *filters.OrganizerID)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Search != "" {
		searchPattern := fmt.Sprintf("%%%s%%", filters.Search)
		query = query.Where("title ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}
	if filters.From != nil {
		query = query.Where("scheduled_start_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("scheduled_start_at < ?", *filters.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filters.SortBy
	switch sortBy {
	case "scheduled_start_at", "created_at", "title":
	default:
		sortBy = "scheduled_start_at"
	}
	sortOrder := "asc"
	if filters.SortOrder == "desc" {
		sortOrder = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&meetings).Error; err != nil {
		return nil, 0, err
	}
	return meetings, total, nil
}

// HasRoomConflict reports whether another non-cancelled meeting overlaps
// the given slot in the same room
func (r *meetingRepository) HasRoomConflict(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeMeetingID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entities.Meeting{}).
		Where("room_id = ?", roomID).
		Where("status NOT IN ?", []entities.MeetingStatus{entities.MeetingStatusCancelled, entities.MeetingStatusCompleted}).
		Where("scheduled_start_at < ? AND scheduled_end_at > ?", end, start)

	if excludeMeetingID != nil {
		query = query.Where("id <> ?", *excludeMeetingID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateStatus updates the meeting status
func (r *meetingRepository) UpdateStatus(ctx context.Context, meetingID uuid.UUID, status entities.MeetingStatus) error {
	return r.db.WithContext(ctx).Model(&entities.Meeting{}).
		Where("id = ?", meetingID).
		Update("status", status).Error
}

// FindInProgress retrieves all meetings currently in progress
func (r *meetingRepository) FindInProgress(ctx context.Context) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Where("status = ?", entities.MeetingStatusInProgress).
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}
