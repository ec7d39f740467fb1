package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MeetingStatus represents the lifecycle status of a meeting
type MeetingStatus string

const (
	MeetingStatusScheduled  MeetingStatus = "scheduled"
	MeetingStatusInProgress MeetingStatus = "in_progress"
	MeetingStatusCompleted  MeetingStatus = "completed"
	MeetingStatusCancelled  MeetingStatus = "cancelled"
)

// MeetingPriority represents the priority of a meeting
type MeetingPriority string

const (
	MeetingPriorityLow      MeetingPriority = "low"
	MeetingPriorityMedium   MeetingPriority = "medium"
	MeetingPriorityHigh     MeetingPriority = "high"
	MeetingPriorityCritical MeetingPriority = "critical"
)

// Meeting represents a scheduled or held meeting
type Meeting struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"organization_id"`
	OrganizerID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"organizer_id"`
	Organizer        *User           `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	Title            string          `gorm:"type:varchar(255);not null" json:"title"`
	Description      *string         `gorm:"type:text" json:"description,omitempty"`
	Category         string          `gorm:"type:varchar(100);index" json:"category"`
	MeetingType      string          `gorm:"type:varchar(50);default:'regular'" json:"meeting_type"`
	Location         *string         `gorm:"type:varchar(255)" json:"location,omitempty"`
	RoomID           *uuid.UUID      `gorm:"type:uuid;index" json:"room_id,omitempty"`
	Room             *Room           `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	IsOnline         bool            `gorm:"default:false" json:"is_online"`
	MeetingURL       *string         `gorm:"type:text" json:"meeting_url,omitempty"`
	ScheduledStartAt time.Time       `gorm:"not null;index" json:"scheduled_start_at"`
	ScheduledEndAt   time.Time       `gorm:"not null" json:"scheduled_end_at"`
	ActualStartAt    *time.Time      `json:"actual_start_at,omitempty"`
	ActualEndAt      *time.Time      `json:"actual_end_at,omitempty"`
	Status           MeetingStatus   `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Agenda           *string         `gorm:"type:text" json:"agenda,omitempty"`
	ExpectedRevenue  *float64        `gorm:"type:numeric(16,2)" json:"expected_revenue,omitempty"`
	Priority         MeetingPriority `gorm:"type:varchar(20);default:'medium'" json:"priority"`
	Tags             datatypes.JSON  `gorm:"type:jsonb;default:'[]'" json:"tags,omitempty"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
	CreatedAt        time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// IsInProgress checks if the meeting is currently running
func (m *Meeting) IsInProgress() bool {
	return m.Status == MeetingStatusInProgress
}

// IsCompleted checks if the meeting has ended
func (m *Meeting) IsCompleted() bool {
	return m.Status == MeetingStatusCompleted
}

// ScheduledDuration returns the planned duration of the meeting
func (m *Meeting) ScheduledDuration() time.Duration {
	return m.ScheduledEndAt.Sub(m.ScheduledStartAt)
}

// Start marks the meeting as in progress
func (m *Meeting) Start(at time.Time) {
	m.Status = MeetingStatusInProgress
	m.ActualStartAt = &at
}

// End marks the meeting as completed
func (m *Meeting) End(at time.Time) {
	m.Status = MeetingStatusCompleted
	m.ActualEndAt = &at
}

// Cancel marks the meeting as cancelled without producing a cost record
func (m *Meeting) Cancel() {
	m.Status = MeetingStatusCancelled
}
