// File: internal/service/identity.go
package service

import (
	"context"
	"errors"
	"fmt"

	"library-catalog/internal/apperror"
	"library-catalog/internal/database"
	"library-catalog/internal/model"
	"library-catalog/internal/store"
)

// UserLookup 依使用者名稱取得使用者；找不到時回傳 apperror.ErrNotFound
type UserLookup func(ctx context.Context, username string) (*model.User, error)

// StoreUserLookup 以資料庫實作 UserLookup
func StoreUserLookup(db database.Querier) UserLookup {
	return func(ctx context.Context, username string) (*model.User, error) {
		return store.GetUserByUsername(ctx, db, username)
	}
}

// ResolveCurrentUser 由 bearer token 解析出目前使用者
func ResolveCurrentUser(ctx context.Context, verifier TokenVerifier, lookup UserLookup, token string) (*model.User, error) {
	claims, err := verifier.Verify(token)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject: %w", apperror.ErrUnauthenticated)
	}

	user, err := lookup(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("%q: %w", claims.Subject, apperror.ErrUserNotFound)
		}
		return nil, fmt.Errorf("ResolveCurrentUser: %w", err)
	}
	return user, nil
}
