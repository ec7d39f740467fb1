package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
)

// CostRepository persists finalized meeting cost records. Records are
// write-once: Create fails when a record already exists for the meeting,
// and only the explicit administrative recompute path may overwrite.
type CostRepository interface {
	// Create inserts the cost record for a meeting. Returns
	// ErrAlreadyReconciled when a record already exists.
	Create(ctx context.Context, cost *entities.MeetingCost) error

	// Overwrite replaces an existing cost record. Administrative
	// recompute only; marks the record as recomputed.
	Overwrite(ctx context.Context, cost *entities.MeetingCost) error

	// FindByMeetingID retrieves the cost record of a meeting
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingCost, error)

	// ExistsForMeeting reports whether a cost record exists for the meeting
	ExistsForMeeting(ctx context.Context, meetingID uuid.UUID) (bool, error)

	// FindByOrganization retrieves cost records of an organization's
	// meetings completed within [from, to)
	FindByOrganization(ctx context.Context, organizationID uuid.UUID, from, to time.Time) ([]*entities.MeetingCost, error)
}

// AnalyticsRepository persists per-meeting analytics and organization rollups
type AnalyticsRepository interface {
	// Create inserts the analytics record for a meeting
	Create(ctx context.Context, analytics *entities.MeetingAnalytics) error

	// Overwrite replaces an existing analytics record (recompute path)
	Overwrite(ctx context.Context, analytics *entities.MeetingAnalytics) error

	// FindByMeetingID retrieves the analytics record of a meeting
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingAnalytics, error)

	// FindByOrganization retrieves analytics of an organization's meetings
	// with meeting dates within [from, to)
	FindByOrganization(ctx context.Context, organizationID uuid.UUID, from, to time.Time) ([]*entities.MeetingAnalytics, error)

	// UpsertOrganizationMetrics writes a periodic rollup, replacing any
	// previous rollup for the same organization, period and period start
	UpsertOrganizationMetrics(ctx context.Context, metrics *entities.OrganizationMetrics) error

	// FindOrganizationMetrics retrieves rollups for an organization and period
	FindOrganizationMetrics(ctx context.Context, organizationID uuid.UUID, period entities.MetricsPeriod, from, to time.Time) ([]*entities.OrganizationMetrics, error)
}
