// File: internal/apperror/apperror.go
package apperror

import (
	"errors"
	"net/http"
)

// Code 是回傳給客戶端的穩定錯誤分類
type Code string

const (
	CodeInvalidCredentials    Code = "INVALID_CREDENTIALS"
	CodeDuplicateRegistration Code = "DUPLICATE_REGISTRATION"
	CodeInvalidToken          Code = "INVALID_TOKEN"
	CodeUnauthenticated       Code = "UNAUTHENTICATED"
	CodeForbidden             Code = "FORBIDDEN"
	CodeNotFound              Code = "NOT_FOUND"
	CodeConstraintViolation   Code = "CONSTRAINT_VIOLATION"
	CodeBadRequest            Code = "BAD_REQUEST"
	CodeInternal              Code = "INTERNAL_ERROR"
)

var (
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrDuplicateRegistration = errors.New("user already registered")
	ErrInvalidToken          = errors.New("invalid token")
	ErrUnauthenticated       = errors.New("not authenticated")
	ErrForbidden             = errors.New("access forbidden")
	ErrNotFound              = errors.New("resource not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrConstraintViolation   = errors.New("constraint violation")
	ErrValidation            = errors.New("validation failed")
	ErrCredentialFormat      = errors.New("malformed credential hash")
)

type classification struct {
	err    error
	code   Code
	status int
	// detailed 為 true 時完整錯誤訊息可回傳給客戶端
	detailed bool
}

// 順序有意義：ErrUserNotFound 與 ErrNotFound 同屬 404
var classifications = []classification{
	{ErrInvalidCredentials, CodeInvalidCredentials, http.StatusUnauthorized, false},
	{ErrDuplicateRegistration, CodeDuplicateRegistration, http.StatusConflict, true},
	{ErrInvalidToken, CodeInvalidToken, http.StatusUnauthorized, false},
	{ErrUnauthenticated, CodeUnauthenticated, http.StatusUnauthorized, false},
	{ErrForbidden, CodeForbidden, http.StatusForbidden, false},
	{ErrUserNotFound, CodeNotFound, http.StatusNotFound, false},
	{ErrNotFound, CodeNotFound, http.StatusNotFound, false},
	{ErrConstraintViolation, CodeConstraintViolation, http.StatusBadRequest, true},
	{ErrValidation, CodeBadRequest, http.StatusBadRequest, true},
}

var internal = classification{nil, CodeInternal, http.StatusInternalServerError, false}

func classify(err error) classification {
	for _, c := range classifications {
		if errors.Is(err, c.err) {
			return c
		}
	}
	return internal
}

// HTTPStatus 將領域錯誤對應到 HTTP 狀態碼，未知錯誤一律 500
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return classify(err).status
}

// CodeOf 回傳錯誤的穩定分類碼
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	return classify(err).code
}

// IsInternal 判斷錯誤是否不屬於任何已知分類
func IsInternal(err error) bool {
	return err != nil && CodeOf(err) == CodeInternal
}

// PublicMessage 回傳可安全給客戶端看的訊息
// 認證相關錯誤只回傳固定訊息，內部錯誤不外洩細節
func PublicMessage(err error) string {
	c := classify(err)
	switch {
	case c.err == nil:
		return "internal server error"
	case c.detailed:
		return err.Error()
	default:
		return c.err.Error()
	}
}
