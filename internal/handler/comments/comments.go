// File: internal/handler/comments/comments.go
package comments

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
	reviewExists         = store.ReviewExists
	listCommentsByReview = store.ListCommentsByReview
	getCommentByID       = store.GetCommentByID
	createComment        = store.CreateComment
	updateComment        = store.UpdateComment
	deleteComment        = store.DeleteComment
)

func requireReview(c echo.Context, db database.DB) (int, error) {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return 0, err
	}
	ok, err := reviewExists(c.Request().Context(), db, id)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, apperr.NotFound("review not found")
	}
	return id, nil
}

func ownedComment(c echo.Context, db database.DB) (*model.Comment, error) {
	caller, err := handler.Caller(c)
	if err != nil {
		return nil, err
	}
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return nil, err
	}
	cm, err := getCommentByID(c.Request().Context(), db, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("comment not found")
		}
		return nil, err
	}
	if !service.CanModify(caller, cm.UserID) {
		return nil, apperr.Forbidden("only the author or an admin may change this comment")
	}
	return cm, nil
}

// ListReviewCommentsHandler 列出評論底下的留言
// @Summary     List comments of a review
// @Tags        comments
// @Produce     json
// @Param       id  path     int true "Review ID"
// @Success     200 {array}  model.Comment
// @Failure     404 {object} apperr.Response
// @Router      /reviews/{id}/comments [get]
func ListReviewCommentsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		reviewID, err := requireReview(c, db)
		if err != nil {
			return apperr.Write(c, err)
		}
		list, err := listCommentsByReview(c.Request().Context(), db, reviewID)
		if err != nil {
			return apperr.Write(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// CreateCommentHandler 在評論底下留言
// @Summary     Create comment
// @Tags        comments
// @Accept      json
// @Produce     json
// @Param       id   path     int                true "Review ID"
// @Param       body body     api.CommentRequest true "留言內容"
// @Success     201  {object} model.Comment
// @Failure     400  {object} apperr.Response
// @Failure     404  {object} apperr.Response
// @Security    ApiKeyAuth
// @Router      /reviews/{id}/comments [post]
func CreateCommentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, err := handler.Caller(c)
		if err != nil {
			return apperr.Write(c, err)
		}
		reviewID, err := requireReview(c, db)
		if err != nil {
			return apperr.Write(c, err)
		}
		var req api.CommentRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return apperr.Write(c, err)
		}
		cm, err := createComment(c.Request().Context(), db, &model.Comment{
			Text:     req.Text,
			ReviewID: reviewID,
			UserID:   caller.ID,
		})
		if err != nil {
			return apperr.Write(c, err)
		}
		return c.JSON(http.StatusCreated, cm)
	}
}

// UpdateCommentHandler 修改留言（作者或管理員）
// @Summary     Update comment
// @Tags        comments
// @Accept      json
// @Produce     json
// @Param       id   path     int                true "Comment ID"
// @Param       body body     api.CommentRequest true "留言內容"
// @Success     200  {object} model.Comment
// @Failure     403  {object} apperr.Response
// @Failure     404  {object} apperr.Response
// @Security    ApiKeyAuth
// @Router      /comments/{id} [put]
func UpdateCommentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		cm, err := ownedComment(c, db)
		if err != nil {
			return apperr.Write(c, err)
		}
		var req api.CommentRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return apperr.Write(c, err)
		}
		updated, err := updateComment(c.Request().Context(), db, cm.ID, req.Text)
		if err != nil {
			return apperr.Write(c, err)
		}
		return c.JSON(http.StatusOK, updated)
	}
}

// DeleteCommentHandler 刪除留言（作者或管理員）
// @Summary     Delete comment
// @Tags        comments
// @Produce     json
// @Param       id  path     int true "Comment ID"
// @Success     200 {object} api.MessageResponse
// @Failure     403 {object} apperr.Response
// @Failure     404 {object} apperr.Response
// @Security    ApiKeyAuth
// @Router      /comments/{id} [delete]
func DeleteCommentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		cm, err := ownedComment(c, db)
		if err != nil {
			return apperr.Write(c, err)
		}
		if err := deleteComment(c.Request().Context(), db, cm.ID); err != nil {
			return apperr.Write(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "comment deleted"})
	}
}
