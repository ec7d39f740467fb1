package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
	domainrepo "github.com/meetcost-team/meetcost/internal/domain/repositories"
)

// Service exposes reporting rollups over the finalized cost history
type Service interface {
	GetRollup(ctx context.Context, organizationID uuid.UUID, from, to time.Time, period entities.MetricsPeriod) (*Rollup, error)
	GetMeetingAnalytics(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingAnalytics, error)
	RecomputeOrganizationMetrics(ctx context.Context, organizationID uuid.UUID, period entities.MetricsPeriod, from, to time.Time) (int, error)
	GetOrganizationMetrics(ctx context.Context, organizationID uuid.UUID, period entities.MetricsPeriod, from, to time.Time) ([]*entities.OrganizationMetrics, error)
}

type analyticsService struct {
	costRepo      domainrepo.CostRepository
	analyticsRepo domainrepo.AnalyticsRepository
	logger        *zap.Logger
}

// NewService constructs the analytics service
func NewService(costRepo domainrepo.CostRepository, analyticsRepo domainrepo.AnalyticsRepository, logger *zap.Logger) Service {
	return &analyticsService{
		costRepo:      costRepo,
		analyticsRepo: analyticsRepo,
		logger:        logger,
	}
}

// GetRollup aggregates the organization's history within [from, to).
func (s *analyticsService) GetRollup(ctx context.Context, organizationID uuid.UUID, from, to time.Time, period entities.MetricsPeriod) (*Rollup, error) {
	costs, err := s.costRepo.FindByOrganization(ctx, organizationID, from, to)
	if err != nil {
		return nil, err
	}
	analytics, err := s.analyticsRepo.FindByOrganization(ctx, organizationID, from, to)
	if err != nil {
		return nil, err
	}

	rollup := Aggregate(costs, analytics, period)
	return &rollup, nil
}

// GetMeetingAnalytics returns the finalized analytics of one meeting.
func (s *analyticsService) GetMeetingAnalytics(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingAnalytics, error) {
	return s.analyticsRepo.FindByMeetingID(ctx, meetingID)
}

// RecomputeOrganizationMetrics rebuilds the persisted periodic rollups
// from the cost history, one row per trend bucket. Safe to re-run: the
// rollups are derived data and each bucket is upserted in place.
func (s *analyticsService) RecomputeOrganizationMetrics(ctx context.Context, organizationID uuid.UUID, period entities.MetricsPeriod, from, to time.Time) (int, error) {
	rollup, err := s.GetRollup(ctx, organizationID, from, to, period)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, tp := range rollup.Trend {
		metrics := &entities.OrganizationMetrics{
			OrganizationID:    organizationID,
			Period:            period,
			PeriodStart:       tp.PeriodStart,
			MeetingCount:      tp.MeetingCount,
			TotalCost:         tp.TotalCost,
			AverageCost:       tp.AverageCost,
			TotalHours:        tp.TotalHours,
			ParticipantCount:  tp.ParticipantCount,
			AverageEfficiency: tp.AverageEfficiency,
		}
		if err := s.analyticsRepo.UpsertOrganizationMetrics(ctx, metrics); err != nil {
			return written, err
		}
		written++
	}

	if s.logger != nil {
		s.logger.Info("✅ Organization metrics recomputed",
			zap.String("organization_id", organizationID.String()),
			zap.String("period", string(period)),
			zap.Int("buckets", written),
		)
	}
	return written, nil
}

// GetOrganizationMetrics returns the persisted periodic rollups.
func (s *analyticsService) GetOrganizationMetrics(ctx context.Context, organizationID uuid.UUID, period entities.MetricsPeriod, from, to time.Time) ([]*entities.OrganizationMetrics, error) {
	return s.analyticsRepo.FindOrganizationMetrics(ctx, organizationID, period, from, to)
}
