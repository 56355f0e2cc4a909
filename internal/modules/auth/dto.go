package auth

import "mavina/internal/domain"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `json:"role" binding:"omitempty,oneof=user provider"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name    string `json:"name,omitempty" validate:"omitempty,min=2"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type UserPublic struct {
	ID      int64  `json:"id"`
	Role    string `json:"role"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

func toUserPublic(u *domain.User) UserPublic {
	return UserPublic{
		ID:      u.ID,
		Role:    string(u.Role),
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
	}
}
