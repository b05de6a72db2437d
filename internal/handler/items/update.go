// File: internal/handler/items/update.go
package items

import (
	"net/http"

	"library-catalog/internal/api"

	"github.com/labstack/echo/v4"
)

// UpdateHandler 部分更新館藏（限管理員）
// @Summary     更新館藏
// @Description 只更新有提供的欄位
// @Tags        library_items
// @Accept      json
// @Produce     json
// @Param       item_id path     int                          true "館藏 ID"
// @Param       body    body     api.UpdateLibraryItemRequest true "更新欄位"
// @Success     200     {object} model.LibraryItem
// @Failure     400     {object} api.ErrorResponse
// @Failure     403     {object} api.ErrorResponse
// @Failure     404     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /library_items/{item_id} [put]
func UpdateHandler(catalog Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := itemID(c)
		if err != nil {
			return api.Error(c, err)
		}
		var req api.UpdateLibraryItemRequest
		if err := api.BindAndValidate(c, &req); err != nil {
			return api.Error(c, err)
		}
		it, err := catalog.Update(c.Request().Context(), id, req.ToPatch())
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, it)
	}
}
