package store

import (
	"context"
	"fmt"
	"strings"

	"library-catalog/internal/apperror"
	"library-catalog/internal/database"
	"library-catalog/internal/model"

	"github.com/jackc/pgx/v5"
)

const itemColumns = `id, title, author, genre, published_year, description, available_copies, created_at, updated_at`

func scanItem(row pgx.Row) (*model.LibraryItem, error) {
	it := &model.LibraryItem{}
	if err := row.Scan(
		&it.ID,
		&it.Title,
		&it.Author,
		&it.Genre,
		&it.PublishedYear,
		&it.Description,
		&it.AvailableCopies,
		&it.CreatedAt,
		&it.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return it, nil
}

func CreateLibraryItem(ctx context.Context, db database.Querier, it *model.LibraryItem) (*model.LibraryItem, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO library_items (title, author, genre, published_year, description, available_copies)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		it.Title,
		it.Author,
		it.Genre,
		it.PublishedYear,
		it.Description,
		it.AvailableCopies,
	)
	if err := row.Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateLibraryItem: %w", translateItemError(err))
	}
	return it, nil
}

func GetLibraryItem(ctx context.Context, db database.Querier, id int) (*model.LibraryItem, error) {
	row := db.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM library_items WHERE id = $1`,
		id,
	)
	it, err := scanItem(row)
	if err != nil {
		return nil, fmt.Errorf("GetLibraryItem: %w", notFound(err))
	}
	return it, nil
}

// ListLibraryItems 依條件篩選並以 id 排序分頁；author/genre 為不分大小寫的子字串比對
func ListLibraryItems(ctx context.Context, db database.Querier, f model.LibraryItemFilter) ([]model.LibraryItem, error) {
	query, args := buildListQuery(f)
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListLibraryItems query: %w", err)
	}
	defer rows.Close()

	items := []model.LibraryItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("ListLibraryItems scan: %w", err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListLibraryItems rows: %w", err)
	}
	return items, nil
}

func buildListQuery(f model.LibraryItemFilter) (string, []any) {
	var (
		b          strings.Builder
		conditions []string
		args       []any
	)
	argID := 1

	b.WriteString(`SELECT ` + itemColumns + ` FROM library_items`)

	if f.Author != "" {
		conditions = append(conditions, fmt.Sprintf("author ILIKE $%d", argID))
		args = append(args, "%"+escapeLike(f.Author)+"%")
		argID++
	}
	if f.Genre != "" {
		conditions = append(conditions, fmt.Sprintf("genre ILIKE $%d", argID))
		args = append(args, "%"+escapeLike(f.Genre)+"%")
		argID++
	}
	if f.PublishedYear != 0 {
		conditions = append(conditions, fmt.Sprintf("published_year = $%d", argID))
		args = append(args, f.PublishedYear)
		argID++
	}
	if len(conditions) > 0 {
		b.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	b.WriteString(fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, f.Limit, f.Skip)
	return b.String(), args
}

// escapeLike 讓 % 與 _ 以字面比對
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// UpdateLibraryItem 在交易中鎖定並套用部分更新
func UpdateLibraryItem(ctx context.Context, db database.DB, id int, patch model.LibraryItemPatch) (*model.LibraryItem, error) {
	var updated *model.LibraryItem
	err := database.WithTx(ctx, db, func(q database.Querier) error {
		row := q.QueryRow(ctx,
			`SELECT `+itemColumns+` FROM library_items WHERE id = $1 FOR UPDATE`,
			id,
		)
		it, err := scanItem(row)
		if err != nil {
			return notFound(err)
		}
		patch.Apply(it)

		row = q.QueryRow(ctx,
			`UPDATE library_items
			 SET title = $1, author = $2, genre = $3, published_year = $4,
			     description = $5, available_copies = $6, updated_at = NOW()
			 WHERE id = $7
			 RETURNING updated_at`,
			it.Title,
			it.Author,
			it.Genre,
			it.PublishedYear,
			it.Description,
			it.AvailableCopies,
			it.ID,
		)
		if err := row.Scan(&it.UpdatedAt); err != nil {
			return translateItemError(err)
		}
		updated = it
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("UpdateLibraryItem: %w", err)
	}
	return updated, nil
}

func DeleteLibraryItem(ctx context.Context, db database.DB, id int) error {
	err := database.WithTx(ctx, db, func(q database.Querier) error {
		tag, err := q.Exec(ctx, `DELETE FROM library_items WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperror.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("DeleteLibraryItem: %w", err)
	}
	return nil
}

func translateItemError(err error) error {
	if pgErr, ok := database.ConstraintError(err); ok {
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, apperror.ErrConstraintViolation)
	}
	return err
}
