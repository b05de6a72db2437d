package service

import (
	"testing"

	"library-catalog/internal/apperror"
	"library-catalog/internal/model"

	"github.com/stretchr/testify/require"
)

func TestRequireRole(t *testing.T) {
	require.ErrorIs(t, RequireRole(nil, model.RoleAdmin), apperror.ErrUnauthenticated)

	admin := &model.User{Role: model.RoleAdmin}
	require.NoError(t, RequireRole(admin, model.RoleAdmin))

	user := &model.User{Role: model.RoleUser}
	err := RequireRole(user, model.RoleAdmin)
	require.ErrorIs(t, err, apperror.ErrForbidden)
	require.Equal(t, 403, apperror.HTTPStatus(err))

	// 比對區分大小寫
	shouting := &model.User{Role: model.Role("Admin")}
	require.ErrorIs(t, RequireRole(shouting, model.RoleAdmin), apperror.ErrForbidden)
}
