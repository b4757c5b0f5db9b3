// File: internal/handler/items/items.go
package items

import (
	"errors"
	"net/http"

	"review-hub/internal/apperr"
	"review-hub/internal/database"
	"review-hub/internal/handler"
	"review-hub/internal/service"
	"review-hub/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listItems      = store.ListItems
	getItemByID    = store.GetItemByID
	searchItems    = store.SearchItems
	listCategories = store.ListCategories
)

// ListItemsHandler 列出所有項目與平均評分
// @Summary     List items
// @Tags        items
// @Produce     json
// @Success     200 {array} model.Item
// @Router      /items [get]
func ListItemsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := listItems(c.Request().Context(), db)
		if err != nil {
			return apperr.Write(c, err)
		}
		return c.JSON(http.StatusOK, service.WithRatings(list))
	}
}

// GetItemHandler 取得單一項目
// @Summary     Get item
// @Tags        items
// @Produce     json
// @Param       id  path     int true "Item ID"
// @Success     200 {object} model.Item
// @Failure     404 {object} apperr.Response
// @Router      /items/{id} [get]
func GetItemHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return apperr.Write(c, err)
		}
		it, err := getItemByID(c.Request().Context(), db, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperr.Write(c, apperr.NotFound("item not found"))
			}
			return apperr.Write(c, err)
		}
		it.AverageRating = service.AverageRating(it.Ratings)
		it.ReviewCount = len(it.Ratings)
		return c.JSON(http.StatusOK, it)
	}
}

// SearchItemsHandler 以名稱、描述或分類搜尋
// @Summary     Search items
// @Description 兩個參數皆可省略，比對為不分大小寫的子字串
// @Tags        items
// @Produce     json
// @Param       query    query string false "名稱或描述"
// @Param       category query string false "分類名稱"
// @Success     200 {array} model.Item
// @Router      /search [get]
func SearchItemsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := searchItems(c.Request().Context(), db, c.QueryParam("query"), c.QueryParam("category"))
		if err != nil {
			return apperr.Write(c, err)
		}
		return c.JSON(http.StatusOK, service.WithRatings(list))
	}
}

// ListCategoriesHandler 列出分類
// @Summary     List categories
// @Tags        items
// @Produce     json
// @Success     200 {array} model.Category
// @Router      /categories [get]
func ListCategoriesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := listCategories(c.Request().Context(), db)
		if err != nil {
			return apperr.Write(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}
