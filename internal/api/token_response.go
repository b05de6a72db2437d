// File: internal/api/token_response.go
package api

import "time"

// swagger:model api.TokenResponse
type TokenResponse struct {
	AccessToken string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string    `json:"token_type" example:"bearer"`
	ExpiresIn   int64     `json:"expires_in" example:"1800"`
	ExpiresAt   time.Time `json:"expires_at" example:"2025-05-01T15:34:05Z"`
}
