package entities

import (
	"time"

	"github.com/google/uuid"
)

// MetricsPeriod is the granularity of an organization metrics rollup
type MetricsPeriod string

const (
	MetricsPeriodDaily   MetricsPeriod = "daily"
	MetricsPeriodWeekly  MetricsPeriod = "weekly"
	MetricsPeriodMonthly MetricsPeriod = "monthly"
)

// OrganizationMetrics is a periodic rollup across many meetings for one
// organization. It is derived data, fully recomputable from the cost and
// analytics history, and never authoritative on its own.
type OrganizationMetrics struct {
	ID                uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID    uuid.UUID     `gorm:"type:uuid;not null;index;uniqueIndex:idx_org_period" json:"organization_id"`
	Period            MetricsPeriod `gorm:"type:varchar(10);not null;uniqueIndex:idx_org_period" json:"period"`
	PeriodStart       time.Time     `gorm:"type:date;not null;uniqueIndex:idx_org_period" json:"period_start"`
	MeetingCount      int           `gorm:"not null" json:"meeting_count"`
	TotalCost         float64       `gorm:"type:numeric(16,2);not null" json:"total_cost"`
	AverageCost       float64       `gorm:"type:numeric(16,2);not null" json:"average_cost"`
	TotalHours        float64       `gorm:"type:numeric(12,2);not null" json:"total_hours"`
	ParticipantCount  int           `gorm:"not null" json:"participant_count"`
	AverageEfficiency float64       `gorm:"type:numeric(4,3);not null" json:"average_efficiency"`
	CreatedAt         time.Time     `gorm:"default:now()" json:"created_at"`
	UpdatedAt         time.Time     `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for OrganizationMetrics
func (OrganizationMetrics) TableName() string {
	return "organization_metrics"
}
