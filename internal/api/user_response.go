// File: internal/api/user_response.go
package api

import (
	"time"

	"library-catalog/internal/model"
)

// swagger:model api.UserResponse
type UserResponse struct {
	ID        int       `json:"id" example:"1"`
	Username  string    `json:"username" example:"alice"`
	Email     string    `json:"email" example:"alice@example.com"`
	Role      string    `json:"role" example:"user"`
	IsAdmin   bool      `json:"is_admin" example:"false"`
	CreatedAt time.Time `json:"created_at" example:"2025-05-01T15:04:05Z"`
}

// NewUserResponse 轉換為公開資料，不含密碼雜湊
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}
