// File: internal/handler/items/create.go
package items

import (
	"net/http"

	"library-catalog/internal/api"
	"library-catalog/internal/logging"

	"github.com/labstack/echo/v4"
)

// CreateHandler 新增館藏（限管理員）
// @Summary     新增館藏
// @Tags        library_items
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateLibraryItemRequest true "館藏資料"
// @Success     201  {object} model.LibraryItem
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /library_items [post]
func CreateHandler(catalog Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateLibraryItemRequest
		if err := api.BindAndValidate(c, &req); err != nil {
			return api.Error(c, err)
		}
		it, err := catalog.Create(c.Request().Context(), req.ToModel())
		if err != nil {
			return api.Error(c, err)
		}
		logging.FromContext(c).WithField("item_id", it.ID).Info("library item created")
		return c.JSON(http.StatusCreated, it)
	}
}
