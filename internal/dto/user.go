package dto

import "github.com/lifeos-app/lifeos-backend/internal/core/domain"

// UpdateProfileRequest carries profile mutations. Sent as multipart form data so
// an avatar file can ride along; pointers distinguish omitted from empty.
type UpdateProfileRequest struct {
	Name     *string `form:"name" json:"name"`
	Email    *string `form:"email" json:"email" binding:"omitempty,email"`
	Password *string `form:"password" json:"password" binding:"omitempty,min=6"`
}

// UserResponse is the public view of a user record.
type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// ToUserResponse converts a domain.User to its public view.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:     user.UserID,
		Name:   user.Name,
		Email:  user.EmailOrEmpty(),
		Phone:  user.PhoneOrEmpty(),
		Avatar: user.Avatar,
	}
}
