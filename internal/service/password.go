// File: internal/service/password.go
package service

import (
	"errors"
	"fmt"

	"library-catalog/internal/apperror"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt 只接受 72 bytes 以內的密碼
const maxPasswordBytes = 72

// 測試可覆寫
var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// HashPassword 接收明文密碼，回傳 bcrypt 哈希字串（每次 salt 不同）
func HashPassword(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", fmt.Errorf("password must be at most %d bytes: %w", maxPasswordBytes, apperror.ErrValidation)
	}
	hashBytes, err := bcryptGenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("password must be at most %d bytes: %w", maxPasswordBytes, apperror.ErrValidation)
	}
	if err != nil {
		return "", fmt.Errorf("HashPassword: %w", err)
	}
	return string(hashBytes), nil
}

// VerifyPassword 比對明文密碼與 bcrypt 哈希
// 不相符回傳 false, nil；哈希格式錯誤回傳 apperror.ErrCredentialFormat
func VerifyPassword(password, hash string) (bool, error) {
	err := bcryptCompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", apperror.ErrCredentialFormat, err)
	}
}
