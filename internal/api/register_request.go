// File: internal/api/register_request.go
package api

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=50" example:"alice"`
	Email    string `json:"email" form:"email" validate:"required,email,max=255" example:"alice@example.com"`
	// bcrypt 僅使用前 72 bytes
	Password string `json:"password" form:"password" validate:"required,min=6,max=72" example:"Secret123!"`
	Role     string `json:"role" form:"role" validate:"omitempty,oneof=admin user" example:"user"`
}
