// File: internal/handler/items/items.go
package items

import (
	"context"
	"fmt"
	"strconv"

	"library-catalog/internal/apperror"
	"library-catalog/internal/model"

	"github.com/labstack/echo/v4"
)

// Catalog 館藏操作，由 service.Catalog 實作
type Catalog interface {
	Create(ctx context.Context, it *model.LibraryItem) (*model.LibraryItem, error)
	Get(ctx context.Context, id int) (*model.LibraryItem, error)
	List(ctx context.Context, f model.LibraryItemFilter) ([]model.LibraryItem, error)
	Update(ctx context.Context, id int, patch model.LibraryItemPatch) (*model.LibraryItem, error)
	Delete(ctx context.Context, id int) error
}

func itemID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item_id %q: %w", c.Param("item_id"), apperror.ErrValidation)
	}
	return id, nil
}
