package entities

import (
	"time"

	"github.com/google/uuid"
)

// ParticipantRole represents the role of a participant in a meeting
type ParticipantRole string

const (
	ParticipantRoleOrganizer   ParticipantRole = "organizer"
	ParticipantRolePresenter   ParticipantRole = "presenter"
	ParticipantRoleParticipant ParticipantRole = "participant"
	ParticipantRoleObserver    ParticipantRole = "observer"
)

// InvitationStatus represents a participant's response to the invitation
type InvitationStatus string

const (
	InvitationStatusPending   InvitationStatus = "pending"
	InvitationStatusAccepted  InvitationStatus = "accepted"
	InvitationStatusDeclined  InvitationStatus = "declined"
	InvitationStatusTentative InvitationStatus = "tentative"
)

// AttendanceStatus represents observed attendance for a participant
type AttendanceStatus string

const (
	AttendanceStatusUnknown   AttendanceStatus = "unknown"
	AttendanceStatusPresent   AttendanceStatus = "present"
	AttendanceStatusAbsent    AttendanceStatus = "absent"
	AttendanceStatusLate      AttendanceStatus = "late"
	AttendanceStatusLeftEarly AttendanceStatus = "left_early"
)

// MeetingParticipant represents a user's participation in one meeting
type MeetingParticipant struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID          uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_meeting_user" json:"meeting_id"`
	Meeting            *Meeting         `gorm:"foreignKey:MeetingID" json:"meeting,omitempty"`
	UserID             uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_meeting_user" json:"user_id"`
	User               *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role               ParticipantRole  `gorm:"type:varchar(20);default:'participant'" json:"role"`
	InvitationStatus   InvitationStatus `gorm:"type:varchar(20);default:'pending'" json:"invitation_status"`
	AttendanceStatus   AttendanceStatus `gorm:"type:varchar(20);default:'unknown';index" json:"attendance_status"`
	IsRequired         bool             `gorm:"default:true" json:"is_required"`
	HourlyRateOverride *float64         `gorm:"type:numeric(12,2)" json:"hourly_rate_override,omitempty"`
	JoinedAt           *time.Time       `json:"joined_at,omitempty"`
	LeftAt             *time.Time       `json:"left_at,omitempty"`
	Notes              *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt          time.Time        `gorm:"default:now()" json:"created_at"`
	UpdatedAt          time.Time        `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for MeetingParticipant
func (MeetingParticipant) TableName() string {
	return "meeting_participants"
}

// IsOrganizer checks if the participant organizes the meeting
func (p *MeetingParticipant) IsOrganizer() bool {
	return p.Role == ParticipantRoleOrganizer
}

// MarkJoined records the first join of the participant
func (p *MeetingParticipant) MarkJoined(at time.Time) {
	if p.JoinedAt == nil {
		p.JoinedAt = &at
	}
	p.AttendanceStatus = AttendanceStatusPresent
}

// MarkLeft records the participant leaving before meeting end
func (p *MeetingParticipant) MarkLeft(at time.Time) {
	p.LeftAt = &at
	p.AttendanceStatus = AttendanceStatusLeftEarly
}
