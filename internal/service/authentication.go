// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"library-catalog/internal/apperror"
	"library-catalog/internal/model"
)

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// 未知使用者也做一次 bcrypt 比對，讓兩種失敗耗時相近
func dummyPasswordHash() string {
	dummyHashOnce.Do(func() {
		h, err := HashPassword("library-catalog-dummy-password")
		if err == nil {
			dummyHash = h
		}
	})
	return dummyHash
}

// NewUser 雜湊密碼並建立尚未寫入的使用者
func NewUser(username, email, password string, role model.Role) (*model.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsAdmin:      role == model.RoleAdmin,
	}, nil
}

// Authenticate 驗證帳號密碼；帳號不存在與密碼錯誤都回傳 apperror.ErrInvalidCredentials
func Authenticate(ctx context.Context, lookup UserLookup, username, password string) (*model.User, error) {
	user, err := lookup(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			_, _ = VerifyPassword(password, dummyPasswordHash())
			return nil, fmt.Errorf("unknown user %q: %w", username, apperror.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("Authenticate: %w", err)
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("Authenticate %q: %w", username, err)
	}
	if !ok {
		return nil, fmt.Errorf("wrong password for %q: %w", username, apperror.ErrInvalidCredentials)
	}
	return user, nil
}
