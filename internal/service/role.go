// File: internal/service/role.go
package service

import (
	"fmt"

	"library-catalog/internal/apperror"
	"library-catalog/internal/model"
)

// RequireRole 僅在 user.Role 與 role 完全相同時放行
func RequireRole(user *model.User, role model.Role) error {
	if user == nil {
		return apperror.ErrUnauthenticated
	}
	if user.Role != role {
		return fmt.Errorf("role %q required: %w", role, apperror.ErrForbidden)
	}
	return nil
}
