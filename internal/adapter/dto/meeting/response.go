package meeting

import (
	"time"

	"github.com/meetcost-team/meetcost/internal/adapter/dto/user"
)

// MeetingResponse represents a meeting in responses
type MeetingResponse struct {
	ID               string                 `json:"id"`
	OrganizationID   string                 `json:"organization_id"`
	OrganizerID      string                 `json:"organizer_id"`
	Organizer        *user.UserResponse     `json:"organizer,omitempty"`
	Title            string                 `json:"title"`
	Description      *string                `json:"description,omitempty"`
	Category         string                 `json:"category"`
	Location         *string                `json:"location,omitempty"`
	RoomID           *string                `json:"room_id,omitempty"`
	RoomName         string                 `json:"room_name,omitempty"`
	IsOnline         bool                   `json:"is_online"`
	ScheduledStartAt time.Time              `json:"scheduled_start_at"`
	ScheduledEndAt   time.Time              `json:"scheduled_end_at"`
	ActualStartAt    *time.Time             `json:"actual_start_at,omitempty"`
	ActualEndAt      *time.Time             `json:"actual_end_at,omitempty"`
	Status           string                 `json:"status"`
	ExpectedRevenue  *float64               `json:"expected_revenue,omitempty"`
	Priority         string                 `json:"priority"`
	Participants     []*ParticipantResponse `json:"participants,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// ParticipantResponse represents a meeting participant in responses
type ParticipantResponse struct {
	ID                 string             `json:"id"`
	MeetingID          string             `json:"meeting_id"`
	UserID             string             `json:"user_id"`
	User               *user.UserResponse `json:"user,omitempty"`
	Role               string             `json:"role"`
	InvitationStatus   string             `json:"invitation_status"`
	AttendanceStatus   string             `json:"attendance_status"`
	IsRequired         bool               `json:"is_required"`
	HourlyRateOverride *float64           `json:"hourly_rate_override,omitempty"`
	JoinedAt           *time.Time         `json:"joined_at,omitempty"`
	LeftAt             *time.Time         `json:"left_at,omitempty"`
}

// MeetingListResponse represents a paginated list of meetings
type MeetingListResponse struct {
	Meetings   []*MeetingResponse `json:"meetings"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}
