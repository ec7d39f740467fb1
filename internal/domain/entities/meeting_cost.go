package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingCost is the finalized, immutable cost record of one completed
// meeting. It is created exactly once, by reconciliation at meeting end,
// and never mutated afterwards.
type MeetingCost struct {
	ID                       uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID                uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"meeting_id"`
	TotalCost                float64        `gorm:"type:numeric(16,2);not null" json:"total_cost"`
	DirectCost               float64        `gorm:"type:numeric(16,2);not null" json:"direct_cost"`
	IndirectCost             float64        `gorm:"type:numeric(16,2);not null" json:"indirect_cost"`
	OpportunityCost          float64        `gorm:"type:numeric(16,2);not null;default:0" json:"opportunity_cost"`
	ParticipantCount         int            `gorm:"not null" json:"participant_count"` // participants who actually attended
	ActualDurationMinutes    int            `gorm:"not null" json:"actual_duration_minutes"`
	ScheduledDurationMinutes int            `gorm:"not null" json:"scheduled_duration_minutes"`
	AverageHourlyRate        float64        `gorm:"type:numeric(12,2);not null" json:"average_hourly_rate"`
	CostPerMinute            float64        `gorm:"type:numeric(12,2);not null" json:"cost_per_minute"`
	EfficiencyScore          float64        `gorm:"type:numeric(4,3);not null" json:"efficiency_score"` // bounded [0,1]
	ROIPercentage            *float64       `gorm:"type:numeric(16,2)" json:"roi_percentage,omitempty"` // nil when no expected revenue
	CostBreakdown            datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"cost_breakdown"`
	Recomputed               bool           `gorm:"default:false" json:"recomputed"` // set only by the administrative recompute path
	CreatedAt                time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt                time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for MeetingCost
func (MeetingCost) TableName() string {
	return "meeting_costs"
}

// ParticipantCostEntry is the per-participant line of a cost breakdown
type ParticipantCostEntry struct {
	HourlyRate float64 `json:"hourly_rate"`
	Minutes    float64 `json:"minutes"`
	Cost       float64 `json:"cost"`
}

// CostBreakdown is the auditable decomposition of a meeting's total cost.
// The participant entries plus room, equipment and other sum to total.
type CostBreakdown struct {
	Participants map[string]ParticipantCostEntry `json:"participants"`
	Room         float64                         `json:"room"`
	Equipment    float64                         `json:"equipment"`
	Other        float64                         `json:"other"`
}
