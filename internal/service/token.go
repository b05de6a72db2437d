// File: internal/service/token.go
package service

import (
	"errors"
	"fmt"
	"time"

	"library-catalog/internal/apperror"
	"library-catalog/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL 在 TokenConfig.TTL 為 0 時使用
const DefaultTokenTTL = 30 * time.Minute

var (
	ErrEmptySecret  = errors.New("token secret is empty")
	ErrEmptySubject = errors.New("token subject is empty")
)

// 測試可覆寫
var (
	timeNow         = time.Now
	newTokenID      = uuid.NewString
	parseWithClaims = jwt.ParseWithClaims
)

// TokenConfig 簽章金鑰與預設有效期限
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// TokenClaims 定義 JWT 負載內容；Subject 為使用者名稱
type TokenClaims struct {
	Role model.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier 驗證 bearer token 並取出 claims
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// TokenManager 以 HS256 簽發與驗證 JWT；建立後不可變，可同時使用
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(cfg TokenConfig) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, ErrEmptySecret
	}
	if cfg.TTL < 0 {
		return nil, fmt.Errorf("invalid token ttl: %s", cfg.TTL)
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(cfg.Secret), ttl: ttl}, nil
}

// TTL 回傳預設有效期限
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue 簽發 token，回傳 token 字串與到期時間
// ttl 為 0 使用預設值；負值產生已過期的 token
func (m *TokenManager) Issue(claims TokenClaims, ttl time.Duration) (string, time.Time, error) {
	if claims.Subject == "" {
		return "", time.Time{}, ErrEmptySubject
	}
	if ttl == 0 {
		ttl = m.ttl
	}

	now := timeNow()
	claims.ID = newTokenID()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Verify 驗證簽章、演算法與到期時間
func (m *TokenManager) Verify(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := parseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(timeNow),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, apperror.ErrInvalidToken
	}
	return claims, nil
}
