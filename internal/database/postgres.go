// File: internal/database/postgres.go
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxpoolNew 測試可覆寫
var pgxpoolNew = pgxpool.New

// NewPgxPool 建立連線池；實際連線延遲到第一次查詢
func NewPgxPool(ctx context.Context, url string) (DB, error) {
	pool, err := pgxpoolNew(ctx, url)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// WithTx 在交易中執行 fn；fn 回傳錯誤或 commit 失敗時回滾
func WithTx(ctx context.Context, db DB, fn func(q Querier) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// PostgreSQL SQLSTATE
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
	CodeNotNullViolation    = "23502"
)

// ConstraintError 若 err 為違反限制條件的 PgError，回傳該錯誤
func ConstraintError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil, false
	}
	switch pgErr.Code {
	case CodeUniqueViolation, CodeForeignKeyViolation, CodeCheckViolation, CodeNotNullViolation:
		return pgErr, true
	}
	return nil, false
}
