package cost

import "time"

// RunningCostResponse is the live cost snapshot of a meeting in progress
type RunningCostResponse struct {
	MeetingID        string    `json:"meeting_id"`
	ElapsedSeconds   int64     `json:"elapsed_seconds"`
	CurrentCost      float64   `json:"current_cost"`
	DirectCost       float64   `json:"direct_cost"`
	IndirectCost     float64   `json:"indirect_cost"`
	ParticipantCount int       `json:"participant_count"`
	ComputedAt       time.Time `json:"computed_at"`
}

// ParticipantCostLine is one participant's share of a cost breakdown
type ParticipantCostLine struct {
	UserID     string  `json:"user_id"`
	HourlyRate float64 `json:"hourly_rate"`
	Minutes    float64 `json:"minutes"`
	Cost       float64 `json:"cost"`
}

// BreakdownResponse is the auditable decomposition of the total cost
type BreakdownResponse struct {
	Participants []ParticipantCostLine `json:"participants"`
	Room         float64               `json:"room"`
	Equipment    float64               `json:"equipment"`
	Other        float64               `json:"other"`
}

// CostResponse is the finalized cost record of a completed meeting
type CostResponse struct {
	ID                       string             `json:"id"`
	MeetingID                string             `json:"meeting_id"`
	TotalCost                float64            `json:"total_cost"`
	DirectCost               float64            `json:"direct_cost"`
	IndirectCost             float64            `json:"indirect_cost"`
	ParticipantCount         int                `json:"participant_count"`
	ActualDurationMinutes    int                `json:"actual_duration_minutes"`
	ScheduledDurationMinutes int                `json:"scheduled_duration_minutes"`
	AverageHourlyRate        float64            `json:"average_hourly_rate"`
	CostPerMinute            float64            `json:"cost_per_minute"`
	EfficiencyScore          float64            `json:"efficiency_score"`
	ROIPercentage            *float64           `json:"roi_percentage,omitempty"`
	Breakdown                *BreakdownResponse `json:"breakdown,omitempty"`
	Recomputed               bool               `json:"recomputed"`
	CreatedAt                time.Time          `json:"created_at"`
}
