package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
	"github.com/meetcost-team/meetcost/internal/domain/repositories"
)

// analyticsRepository implements the AnalyticsRepository interface
type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) repositories.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// Create inserts the analytics record for a meeting
func (r *analyticsRepository) Create(ctx context.Context, analytics *entities.MeetingAnalytics) error {
	return r.db.WithContext(ctx).Create(analytics).Error
}

// Overwrite replaces an existing analytics record (recompute path)
func (r *analyticsRepository) Overwrite(ctx context.Context, analytics *entities.MeetingAnalytics) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meeting_id"}},
			UpdateAll: true,
		}).
		Create(analytics).Error
}

// FindByMeetingID retrieves the analytics record of a meeting
func (r *analyticsRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingAnalytics, error) {
	var analytics entities.MeetingAnalytics
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		First(&analytics).Error

	if err != nil {
		return nil, err
	}
	return &analytics, nil
}

// FindByOrganization retrieves analytics of an organization's meetings with
// meeting dates within [from, to)
func (r *analyticsRepository) FindByOrganization(ctx context.Context, organizationID uuid.UUID, from, to time.Time) ([]*entities.MeetingAnalytics, error) {
	var analytics []*entities.MeetingAnalytics
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Where("meeting_date >= ? AND meeting_date < ?", from, to).
		Order("meeting_date ASC").
		Find(&analytics).Error

	if err != nil {
		return nil, err
	}
	return analytics, nil
}

// UpsertOrganizationMetrics writes a periodic rollup, replacing any
// previous rollup for the same organization, period and period start
func (r *analyticsRepository) UpsertOrganizationMetrics(ctx context.Context, metrics *entities.OrganizationMetrics) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "organization_id"}, {Name: "period"}, {Name: "period_start"}},
			UpdateAll: true,
		}).
		Create(metrics).Error
}

// FindOrganizationMetrics retrieves rollups for an organization and period
func (r *analyticsRepository) FindOrganizationMetrics(ctx context.Context, organizationID uuid.UUID, period entities.MetricsPeriod, from, to time.Time) ([]*entities.OrganizationMetrics, error) {
	var metrics []*entities.OrganizationMetrics
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND period = ?", organizationID, period).
		Where("period_start >= ? AND period_start < ?", from, to).
		Order("period_start ASC").
		Find(&metrics).Error

	if err != nil {
		return nil, err
	}
	return metrics, nil
}
