package meeting

import (
	"time"
)

// CreateMeetingRequest represents the request to schedule a meeting
type CreateMeetingRequest struct {
	Title            string            `json:"title" validate:"required,min=1,max=255"`
	Description      *string           `json:"description,omitempty"`
	Category         string            `json:"category" validate:"omitempty,max=100"`
	Location         *string           `json:"location,omitempty"`
	RoomID           *string           `json:"room_id,omitempty" validate:"omitempty,uuid"`
	IsOnline         bool              `json:"is_online"`
	ScheduledStartAt time.Time         `json:"scheduled_start_at" validate:"required"`
	ScheduledEndAt   time.Time         `json:"scheduled_end_at" validate:"required"`
	ExpectedRevenue  *float64          `json:"expected_revenue,omitempty" validate:"omitempty,gte=0"`
	Priority         string            `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Participants     []ParticipantItem `json:"participants" validate:"dive"`
}

// ParticipantItem is one invited participant in a create request
type ParticipantItem struct {
	UserID             string   `json:"user_id" validate:"required,uuid"`
	Role               string   `json:"role" validate:"omitempty,oneof=organizer presenter participant observer"`
	IsRequired         bool     `json:"is_required"`
	HourlyRateOverride *float64 `json:"hourly_rate_override,omitempty" validate:"omitempty,gt=0"`
}

// UpdateMeetingRequest represents the request to update a scheduled meeting
type UpdateMeetingRequest struct {
	Title            *string    `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description      *string    `json:"description,omitempty"`
	Category         *string    `json:"category,omitempty" validate:"omitempty,max=100"`
	RoomID           *string    `json:"room_id,omitempty" validate:"omitempty,uuid"`
	ScheduledStartAt *time.Time `json:"scheduled_start_at,omitempty"`
	ScheduledEndAt   *time.Time `json:"scheduled_end_at,omitempty"`
	ExpectedRevenue  *float64   `json:"expected_revenue,omitempty" validate:"omitempty,gte=0"`
	Priority         *string    `json:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
}

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	Status    *string    `query:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
	Organizer *string    `query:"organizer" validate:"omitempty,uuid"`
	Category  string     `query:"category"`
	Search    string     `query:"search"`
	From      *time.Time `query:"from"`
	To        *time.Time `query:"to"`
	Page      int        `query:"page" validate:"omitempty,min=1"`
	PageSize  int        `query:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy    string     `query:"sort_by" validate:"omitempty,oneof=scheduled_start_at created_at title"`
	SortOrder string     `query:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// AddParticipantRequest represents the request to invite a participant
type AddParticipantRequest struct {
	UserID             string   `json:"user_id" validate:"required,uuid"`
	Role               string   `json:"role" validate:"omitempty,oneof=presenter participant observer"`
	IsRequired         bool     `json:"is_required"`
	HourlyRateOverride *float64 `json:"hourly_rate_override,omitempty" validate:"omitempty,gt=0"`
}

// UpdateParticipantRequest represents the request to update a participant
type UpdateParticipantRequest struct {
	Role               *string  `json:"role,omitempty" validate:"omitempty,oneof=presenter participant observer"`
	InvitationStatus   *string  `json:"invitation_status,omitempty" validate:"omitempty,oneof=pending accepted declined tentative"`
	IsRequired         *bool    `json:"is_required,omitempty"`
	HourlyRateOverride *float64 `json:"hourly_rate_override,omitempty" validate:"omitempty,gt=0"`
}
