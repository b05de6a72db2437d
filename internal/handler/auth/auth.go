// File: internal/handler/auth/auth.go
package auth

import (
	"time"

	"library-catalog/internal/api"
	"library-catalog/internal/service"
	"library-catalog/internal/store"
)

// TokenIssuer 簽發存取令牌
type TokenIssuer interface {
	Issue(claims service.TokenClaims, ttl time.Duration) (string, time.Time, error)
	TTL() time.Duration
}

// 測試可覆寫
var (
	newUser         = service.NewUser
	createUser      = store.CreateUser
	authenticate    = service.Authenticate
	storeUserLookup = service.StoreUserLookup
)

func issueToken(tokens TokenIssuer, claims service.TokenClaims) (api.TokenResponse, error) {
	token, expiresAt, err := tokens.Issue(claims, 0)
	if err != nil {
		return api.TokenResponse{}, err
	}
	return api.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(tokens.TTL().Seconds()),
		ExpiresAt:   expiresAt,
	}, nil
}
