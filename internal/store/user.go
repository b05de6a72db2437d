package store

import (
	"context"
	"errors"
	"fmt"

	"library-catalog/internal/apperror"
	"library-catalog/internal/database"
	"library-catalog/internal/model"

	"github.com/jackc/pgx/v5"
)

// 對應 migration 中的唯一限制名稱
const (
	constraintUsername = "users_username_key"
	constraintEmail    = "users_email_key"
)

const userColumns = `id, username, email, password_hash, role, is_admin, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsAdmin,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func GetUserByUsername(ctx context.Context, db database.Querier, username string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`,
		username,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("GetUserByUsername: %w", notFound(err))
	}
	return u, nil
}

// CreateUser 寫入新使用者；帳號或信箱重複時回傳 apperror.ErrDuplicateRegistration
func CreateUser(ctx context.Context, db database.Querier, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, role, is_admin)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.IsAdmin,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", translateUserError(err))
	}
	return u, nil
}

func translateUserError(err error) error {
	pgErr, ok := database.ConstraintError(err)
	if !ok {
		return err
	}
	if pgErr.Code == database.CodeUniqueViolation {
		switch pgErr.ConstraintName {
		case constraintUsername:
			return fmt.Errorf("username: %w", apperror.ErrDuplicateRegistration)
		case constraintEmail:
			return fmt.Errorf("email: %w", apperror.ErrDuplicateRegistration)
		default:
			return apperror.ErrDuplicateRegistration
		}
	}
	return fmt.Errorf("%s: %w", pgErr.ConstraintName, apperror.ErrConstraintViolation)
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.ErrNotFound
	}
	return err
}
