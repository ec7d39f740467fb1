package entities

import (
	"time"

	"github.com/google/uuid"
)

// PresenceSession represents one contiguous join-to-leave interval of a
// participant within a single meeting. A participant may have several
// sessions (rejoin after leaving) but at most one open session at a time.
type PresenceSession struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"meeting_id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	JoinedAt        time.Time  `gorm:"not null" json:"joined_at"`
	LeftAt          *time.Time `json:"left_at,omitempty"`
	DurationSeconds *int       `json:"duration_seconds,omitempty"`
	ForceClosed     bool       `gorm:"default:false" json:"force_closed"` // closed by meeting end, not an explicit leave
	CreatedAt       time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for PresenceSession
func (PresenceSession) TableName() string {
	return "presence_sessions"
}

// IsOpen reports whether the session has not been closed yet
func (s *PresenceSession) IsOpen() bool {
	return s.LeftAt == nil
}

// Close sets the leave timestamp and computed duration
func (s *PresenceSession) Close(at time.Time, forced bool) {
	if s.LeftAt != nil {
		return
	}
	if at.Before(s.JoinedAt) {
		at = s.JoinedAt
	}
	s.LeftAt = &at
	d := int(at.Sub(s.JoinedAt).Seconds())
	s.DurationSeconds = &d
	s.ForceClosed = forced
}
