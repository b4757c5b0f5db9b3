// File: internal/handler/reviews/reviews.go
package reviews

import (
	"errors"
	"net/http"

	"review-hub/internal/api"
	"review-hub/internal/apperr"
	"review-hub/internal/database"
	"review-hub/internal/handler"
	"review-hub/internal/model"
	"review-hub/internal/service"
	"review-hub/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	itemExists        = store.ItemExists
	hasReview         = store.HasReview
	listReviewsByItem = store.ListReviewsByItem
	getReviewByID     = store.GetReviewByID
	createReview      = store.CreateReview
	updateReview      = store.UpdateReview
	deleteReview      = store.DeleteReview
)

var errDuplicateReview = apperr.DuplicateConflict("you have already reviewed this item")

func requireItem(c echo.Context, db database.DB) (int, error) {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return 0, err
	}
	ok, err := itemExists(c.Request().Context(), db, id)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, apperr.NotFound("item not found")
	}
	return id, nil
}

// ownedReview 載入評論並確認呼叫者可以修改
func ownedReview(c echo.Context, db database.DB) (*model.Review, error) {
	caller, err := handler.Caller(c)
	if err != nil {
		return nil, err
	}
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return nil, err
	}
	r, err := getReviewByID(c.Request().Context(), db, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, err
	}
	if !service.CanModify(caller, r.UserID) {
		return nil, apperr.Forbidden("only the author or an admin may change this review")
	}
	return r, nil
}

// ListItemReviewsHandler 列出項目的評論
// @Summary     List reviews of an item
// @Tags        reviews
// @Produce     json
// @Param       id  path     int true "Item ID"
// @Success     200 {array}  model.Review
// @Failure     404 {object} apperr.Response
// @Router      /items/{id}/reviews [get]
func ListItemReviewsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		itemID, err := requireItem(c, db)
		if err != nil {
			return apperr.Write(c, err)
		}
		list, err := listReviewsByItem(c.Request().Context(), db, itemID)
		if err != nil {
			return apperr.Write(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// CreateReviewHandler 對項目新增評論，每位使用者每個項目限一則
// @Summary     Create review
// @Tags        reviews
// @Accept      json
// @Produce     json
// @Param       id   path     int                     true "Item ID"
// @Param       body body     api.CreateReviewRequest true "評論內容"
// @Success     201  {object} model.Review
// @Failure     400  {object} apperr.Response
// @Failure     404  {object} apperr.Response
// @Security    ApiKeyAuth
// @Router      /items/{id}/reviews [post]
func CreateReviewHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, err := handler.Caller(c)
		if err != nil {
			return apperr.Write(c, err)
		}
		itemID, err := requireItem(c, db)
		if err != nil {
			return apperr.Write(c, err)
		}
		var req api.CreateReviewRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return apperr.Write(c, err)
		}

		ctx := c.Request().Context()
		exists, err := hasReview(ctx, db, itemID, caller.ID)
		if err != nil {
			return apperr.Write(c, err)
		}
		if exists {
			return apperr.Write(c, errDuplicateReview)
		}

		r, err := createReview(ctx, db, &model.Review{
			Rating: req.Rating,
			Text:   req.Text,
			Image:  req.Image,
			ItemID: itemID,
			UserID: caller.ID,
		})
		if err != nil {
			// 預先檢查與寫入之間的競態由 UNIQUE 約束擋下
			if errors.Is(err, store.ErrDuplicate) {
				return apperr.Write(c, errDuplicateReview)
			}
			return apperr.Write(c, err)
		}
		return c.JSON(http.StatusCreated, r)
	}
}

// UpdateReviewHandler 部分更新評論（作者或管理員）
// @Summary     Update review
// @Tags        reviews
// @Accept      json
// @Produce     json
// @Param       id   path     int                     true "Review ID"
// @Param       body body     api.UpdateReviewRequest true "更新欄位"
// @Success     200  {object} model.Review
// @Failure     403  {object} apperr.Response
// @Failure     404  {object} apperr.Response
// @Security    ApiKeyAuth
// @Router      /reviews/{id} [put]
func UpdateReviewHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		r, err := ownedReview(c, db)
		if err != nil {
			return apperr.Write(c, err)
		}
		var req api.UpdateReviewRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return apperr.Write(c, err)
		}
		updated, err := updateReview(c.Request().Context(), db, r.ID, store.ReviewUpdate{
			Rating: req.Rating,
			Text:   req.Text,
			Image:  req.Image,
		})
		if err != nil {
			return apperr.Write(c, err)
		}
		return c.JSON(http.StatusOK, updated)
	}
}

// DeleteReviewHandler 刪除評論與其留言（作者或管理員）
// @Summary     Delete review
// @Tags        reviews
// @Produce     json
// @Param       id  path     int true "Review ID"
// @Success     200 {object} api.MessageResponse
// @Failure     403 {object} apperr.Response
// @Failure     404 {object} apperr.Response
// @Security    ApiKeyAuth
// @Router      /reviews/{id} [delete]
func DeleteReviewHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		r, err := ownedReview(c, db)
		if err != nil {
			return apperr.Write(c, err)
		}
		if err := deleteReview(c.Request().Context(), db, r.ID); err != nil {
			return apperr.Write(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "review deleted"})
	}
}
