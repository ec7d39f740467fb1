package entities

import (
	"time"

	"github.com/google/uuid"
)

// Room represents a physical meeting room with an hourly reservation cost
type Room struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Location       *string   `gorm:"type:varchar(255)" json:"location,omitempty"`
	Capacity       int       `gorm:"default:0" json:"capacity"`
	HourlyCost     float64   `gorm:"type:numeric(12,2);not null;default:0" json:"hourly_cost"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt      time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Room
func (Room) TableName() string {
	return "rooms"
}
