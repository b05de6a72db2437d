// File: internal/handler/items/list.go
package items

import (
	"net/http"

	"library-catalog/internal/api"

	"github.com/labstack/echo/v4"
)

// ListHandler 列出館藏
// @Summary     列出館藏
// @Description author/genre 為不分大小寫子字串比對，published_year 為完全比對，依建立順序分頁
// @Tags        library_items
// @Produce     json
// @Param       author         query string false "作者（子字串）"
// @Param       genre          query string false "類型（子字串）"
// @Param       published_year query int    false "出版年份"
// @Param       skip           query int    false "略過筆數" default(0)
// @Param       limit          query int    false "回傳筆數 (1-100)" default(10)
// @Success     200 {array}  model.LibraryItem
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Router      /library_items [get]
func ListHandler(catalog Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		var q api.ListLibraryItemsQuery
		if err := api.BindAndValidate(c, &q); err != nil {
			return api.Error(c, err)
		}
		items, err := catalog.List(c.Request().Context(), q.ToFilter())
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, items)
	}
}
