// File: internal/handler/items/delete.go
package items

import (
	"net/http"

	"library-catalog/internal/api"
	"library-catalog/internal/logging"

	"github.com/labstack/echo/v4"
)

// DeleteHandler 刪除館藏（限管理員）
// @Summary     刪除館藏
// @Tags        library_items
// @Produce     json
// @Param       item_id path     int true "館藏 ID"
// @Success     200     {object} api.DetailResponse
// @Failure     403     {object} api.ErrorResponse
// @Failure     404     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /library_items/{item_id} [delete]
func DeleteHandler(catalog Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := itemID(c)
		if err != nil {
			return api.Error(c, err)
		}
		if err := catalog.Delete(c.Request().Context(), id); err != nil {
			return api.Error(c, err)
		}
		logging.FromContext(c).WithField("item_id", id).Info("library item deleted")
		return c.JSON(http.StatusOK, api.DetailResponse{Detail: "Item deleted successfully"})
	}
}
