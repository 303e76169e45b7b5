package http

import (
	"time"

	"github.com/WooodHead/everpost-backend/internal/user/domain"
)

// UserResponse is the public shape of a user. It never carries credential
// data.
type UserResponse struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	ProfileImage *string   `json:"profileImage"`
	CreateDate   time.Time `json:"createDate"`
	ModifyDate   time.Time `json:"modifyDate"`
}

func ToUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		ProfileImage: u.ProfileImage,
		CreateDate:   u.CreatedAt,
		ModifyDate:   u.UpdatedAt,
	}
}
