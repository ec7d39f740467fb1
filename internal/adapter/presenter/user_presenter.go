package presenter

import (
	userDTO "github.com/meetcost-team/meetcost/internal/adapter/dto/user"
	"github.com/meetcost-team/meetcost/internal/domain/entities"
)

// ToUserResponse converts a User entity to UserResponse DTO
func ToUserResponse(u *entities.User) *userDTO.UserResponse {
	if u == nil {
		return nil
	}

	response := &userDTO.UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}

	// Set optional fields
	if u.AvatarURL != nil {
		response.AvatarURL = *u.AvatarURL
	}
	if u.Role != nil {
		response.RoleName = u.Role.Name
	}
	if u.Department != nil {
		response.Department = u.Department.Name
	}

	return response
}
