package entities

import (
	"time"

	"github.com/google/uuid"
)

// MeetingAnalytics holds derived facts about one completed meeting,
// bucketed for aggregation. Created alongside MeetingCost.
type MeetingAnalytics struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID          uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"meeting_id"`
	OrganizationID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	DepartmentID       *uuid.UUID `gorm:"type:uuid;index" json:"department_id,omitempty"` // organizer's department
	Category           string     `gorm:"type:varchar(100);index" json:"category"`

	// Bucket keys
	MeetingDate time.Time `gorm:"type:date;not null;index" json:"meeting_date"`
	MeetingHour int       `gorm:"not null" json:"meeting_hour"`
	DayOfWeek   int       `gorm:"not null" json:"day_of_week"`
	Month       int       `gorm:"not null" json:"month"`
	Quarter     int       `gorm:"not null" json:"quarter"`
	Year        int       `gorm:"not null;index" json:"year"`

	// Cost facts
	TotalCost          float64 `gorm:"type:numeric(16,2);not null" json:"total_cost"`
	CostPerParticipant float64 `gorm:"type:numeric(16,2);not null" json:"cost_per_participant"`
	CostPerMinute      float64 `gorm:"type:numeric(12,2);not null" json:"cost_per_minute"`

	// Duration facts (minutes)
	ScheduledDuration int `gorm:"not null" json:"scheduled_duration"`
	ActualDuration    int `gorm:"not null" json:"actual_duration"`
	StartDelayMinutes int `gorm:"not null;default:0" json:"start_delay_minutes"`

	// Attendance facts
	InvitedCount    int     `gorm:"not null" json:"invited_count"`
	AttendedCount   int     `gorm:"not null" json:"attended_count"`
	AttendanceRate  float64 `gorm:"type:numeric(4,3);not null" json:"attendance_rate"` // attended / invited, 0 when nobody invited
	LateArrivals    int     `gorm:"not null;default:0" json:"late_arrivals"`
	EarlyDepartures int     `gorm:"not null;default:0" json:"early_departures"`

	// Scores
	EfficiencyScore   float64 `gorm:"type:numeric(4,3);not null" json:"efficiency_score"`
	ProductivityScore float64 `gorm:"type:numeric(4,3);not null" json:"productivity_score"`
	SatisfactionScore float64 `gorm:"type:numeric(4,3);not null" json:"satisfaction_score"`

	ROIPercentage *float64  `gorm:"type:numeric(16,2)" json:"roi_percentage,omitempty"`
	CreatedAt     time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt     time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for MeetingAnalytics
func (MeetingAnalytics) TableName() string {
	return "meeting_analytics"
}
