package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
	"github.com/meetcost-team/meetcost/internal/domain/repositories"
)

// presenceRepository implements the PresenceRepository interface
type presenceRepository struct {
	db *gorm.DB
}

// NewPresenceRepository creates a new presence session repository
func NewPresenceRepository(db *gorm.DB) repositories.PresenceRepository {
	return &presenceRepository{db: db}
}

// Create appends a new (open) presence session
func (r *presenceRepository) Create(ctx context.Context, session *entities.PresenceSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// Update closes or amends an existing session
func (r *presenceRepository) Update(ctx context.Context, session *entities.PresenceSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// FindByMeetingID retrieves all sessions of a meeting ordered by join time
func (r *presenceRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.PresenceSession, error) {
	var sessions []*entities.PresenceSession
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("joined_at ASC").
		Find(&sessions).Error

	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// FindOpenByMeetingAndUser retrieves the open session for a user, if any
func (r *presenceRepository) FindOpenByMeetingAndUser(ctx context.Context, meetingID, userID uuid.UUID) (*entities.PresenceSession, error) {
	var session entities.PresenceSession
	err := r.db.WithContext(ctx).
		Where("meeting_id = ? AND user_id = ? AND left_at IS NULL", meetingID, userID).
		First(&session).Error

	if err != nil {
		return nil, err
	}
	return &session, nil
}
