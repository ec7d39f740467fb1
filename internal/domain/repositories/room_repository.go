package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/meetcost-team/meetcost/internal/domain/entities"
)

// RoomRepository defines the interface for room data access
type RoomRepository interface {
	// Create creates a new room
	Create(ctx context.Context, room *entities.Room) error

	// FindByID retrieves a room by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Room, error)

	// Update updates an existing room
	Update(ctx context.Context, room *entities.Room) error

	// List retrieves all active rooms of an organization
	List(ctx context.Context, organizationID uuid.UUID) ([]*entities.Room, error)
}

// UserRepository defines the interface for directory lookups. The user
// directory itself is managed elsewhere; the cost engine only reads it.
type UserRepository interface {
	// FindByID retrieves a user with role and department preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)

	// FindByIDs retrieves several users with role and department preloaded
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.User, error)

	// FindByEmail retrieves a user by email
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}
