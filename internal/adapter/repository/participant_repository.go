package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
	"github.com/meetcost-team/meetcost/internal/domain/repositories"
)

// participantRepository implements the ParticipantRepository interface
type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *gorm.DB) repositories.ParticipantRepository {
	return &participantRepository{db: db}
}

// Create creates a new participant record
func (r *participantRepository) Create(ctx context.Context, participant *entities.MeetingParticipant) error {
	return r.db.WithContext(ctx).Create(participant).Error
}

// CreateBatch creates several participant records at once
func (r *participantRepository) CreateBatch(ctx context.Context, participants []*entities.MeetingParticipant) error {
	if len(participants) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&participants).Error
}

// FindByID retrieves a participant by ID
func (r *participantRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingParticipant, error) {
	var participant entities.MeetingParticipant
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Role").
		Preload("User.Department").
		Where("id = ?", id).
		First(&participant).Error

	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// FindByMeetingAndUser retrieves a participant by meeting and user ID
func (r *participantRepository) FindByMeetingAndUser(ctx context.Context, meetingID, userID uuid.UUID) (*entities.MeetingParticipant, error) {
	var participant entities.MeetingParticipant
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Role").
		Preload("User.Department").
		Where("meeting_id = ? AND user_id = ?", meetingID, userID).
		First(&participant).Error

	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// FindByMeetingID retrieves all participants of a meeting with their user,
// role and department preloaded, needed for rate snapshots
func (r *participantRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingParticipant, error) {
	var participants []*entities.MeetingParticipant
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Role").
		Preload("User.Department").
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&participants).Error

	if err != nil {
		return nil, err
	}
	return participants, nil
}

// Update updates an existing participant
func (r *participantRepository) Update(ctx context.Context, participant *entities.MeetingParticipant) error {
	return r.db.WithContext(ctx).Save(participant).Error
}

// Delete deletes a participant record
func (r *participantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.MeetingParticipant{}, id).Error
}

// CountByMeetingID counts participants of a meeting
func (r *participantRepository) CountByMeetingID(ctx context.Context, meetingID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.MeetingParticipant{}).
		Where("meeting_id = ?", meetingID).
		Count(&count).Error
	return count, err
}
