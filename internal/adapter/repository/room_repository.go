package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
	"github.com/meetcost-team/meetcost/internal/domain/repositories"
)

// roomRepository implements the RoomRepository interface
type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *gorm.DB) repositories.RoomRepository {
	return &roomRepository{db: db}
}

// Create creates a new room
func (r *roomRepository) Create(ctx context.Context, room *entities.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// FindByID retrieves a room by its ID
func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Room, error) {
	var room entities.Room
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&room).Error

	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Update updates an existing room
func (r *roomRepository) Update(ctx context.Context, room *entities.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

// List retrieves all active rooms of an organization
func (r *roomRepository) List(ctx context.Context, organizationID uuid.UUID) ([]*entities.Room, error) {
	var rooms []*entities.Room
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND is_active = ?", organizationID, true).
		Order("name ASC").
		Find(&rooms).Error

	if err != nil {
		return nil, err
	}
	return rooms, nil
}
