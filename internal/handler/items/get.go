// File: internal/handler/items/get.go
package items

import (
	"net/http"

	"library-catalog/internal/api"

	"github.com/labstack/echo/v4"
)

// GetHandler 取得單筆館藏
// @Summary     取得館藏
// @Tags        library_items
// @Produce     json
// @Param       item_id path     int true "館藏 ID"
// @Success     200     {object} model.LibraryItem
// @Failure     400     {object} api.ErrorResponse
// @Failure     404     {object} api.ErrorResponse
// @Router      /library_items/{item_id} [get]
func GetHandler(catalog Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := itemID(c)
		if err != nil {
			return api.Error(c, err)
		}
		it, err := catalog.Get(c.Request().Context(), id)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, it)
	}
}
