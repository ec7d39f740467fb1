package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
	"github.com/meetcost-team/meetcost/internal/domain/repositories"
	usecaseErrors "github.com/meetcost-team/meetcost/internal/usecase/errors"
)

// costRepository implements the CostRepository interface
type costRepository struct {
	db *gorm.DB
}

// NewCostRepository creates a new cost repository
func NewCostRepository(db *gorm.DB) repositories.CostRepository {
	return &costRepository{db: db}
}

// Create inserts the cost record for a meeting. The unique index on
// meeting_id enforces write-once; a second insert is reported as
// ErrAlreadyReconciled instead of silently replacing history.
func (r *costRepository) Create(ctx context.Context, cost *entities.MeetingCost) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meeting_id"}},
			DoNothing: true,
		}).
		Create(cost)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecaseErrors.ErrAlreadyReconciled
	}
	return nil
}

// Overwrite replaces an existing cost record. Administrative recompute only.
func (r *costRepository) Overwrite(ctx context.Context, cost *entities.MeetingCost) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meeting_id"}},
			UpdateAll: true,
		}).
		Create(cost).Error
}

// FindByMeetingID retrieves the cost record of a meeting
func (r *costRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingCost, error) {
	var cost entities.MeetingCost
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		First(&cost).Error

	if err != nil {
		return nil, err
	}
	return &cost, nil
}

// ExistsForMeeting reports whether a cost record exists for the meeting
func (r *costRepository) ExistsForMeeting(ctx context.Context, meetingID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.MeetingCost{}).
		Where("meeting_id = ?", meetingID).
		Count(&count).Error
	return count > 0, err
}

// FindByOrganization retrieves cost records of an organization's meetings
// completed within [from, to)
func (r *costRepository) FindByOrganization(ctx context.Context, organizationID uuid.UUID, from, to time.Time) ([]*entities.MeetingCost, error) {
	var costs []*entities.MeetingCost
	err := r.db.WithContext(ctx).
		Joins("JOIN meetings ON meetings.id = meeting_costs.meeting_id").
		Where("meetings.organization_id = ?", organizationID).
		Where("meetings.actual_end_at >= ? AND meetings.actual_end_at < ?", from, to).
		Find(&costs).Error

	if err != nil {
		return nil, err
	}
	return costs, nil
}
