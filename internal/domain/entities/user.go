package entities

import (
	"time"

	"github.com/google/uuid"
)

// Role represents an organizational role with a default compensation rate
type Role struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID    uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name              string    `gorm:"type:varchar(100);not null" json:"name"`
	Level             int       `gorm:"not null" json:"level"` // 1 = executive ... 6 = staff
	DefaultHourlyRate float64   `gorm:"type:numeric(12,2);not null" json:"default_hourly_rate"`
	CreatedAt         time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt         time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Role
func (Role) TableName() string {
	return "roles"
}

// Department represents an organizational unit for cost attribution
type Department struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name           string    `gorm:"type:varchar(100);not null" json:"name"`
	Code           string    `gorm:"type:varchar(20);not null" json:"code"`
	CreatedAt      time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt      time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Department
func (Department) TableName() string {
	return "departments"
}

// User represents a member of an organization
type User struct {
	ID             uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID   `gorm:"type:uuid;not null;index" json:"organization_id"`
	Email          string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	DisplayName    string      `gorm:"type:varchar(255);not null" json:"display_name"`
	AvatarURL      *string     `gorm:"type:text" json:"avatar_url,omitempty"`
	HourlyRate     *float64    `gorm:"type:numeric(12,2)" json:"hourly_rate,omitempty"` // personal override of role default
	RoleID         *uuid.UUID  `gorm:"type:uuid;index" json:"role_id,omitempty"`
	Role           *Role       `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	DepartmentID   *uuid.UUID  `gorm:"type:uuid;index" json:"department_id,omitempty"`
	Department     *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	IsActive       bool        `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time   `gorm:"default:now()" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
