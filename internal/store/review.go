package store

import (
	"context"

	"review-hub/internal/database"
	"review-hub/internal/model"
)

const reviewColumns = `r.id, r.rating, r.text, r.image, r.item_id, r.user_id, r.created_at, r.updated_at`

// ReviewUpdate nil 欄位保持不變
type ReviewUpdate struct {
	Rating *int
	Text   *string
	Image  *string
}

func reviewDest(r *model.Review) []any {
	return []any{&r.ID, &r.Rating, &r.Text, &r.Image, &r.ItemID, &r.UserID, &r.CreatedAt, &r.UpdatedAt}
}

func GetReviewByID(ctx context.Context, db database.DB, reviewID int) (*model.Review, error) {
	r := &model.Review{}
	err := db.QueryRow(ctx,
		`SELECT `+reviewColumns+` FROM reviews r WHERE r.id = $1`,
		reviewID,
	).Scan(reviewDest(r)...)
	if err != nil {
		return nil, wrap("GetReviewByID", err)
	}
	return r, nil
}

func ListReviewsByItem(ctx context.Context, db database.DB, itemID int) ([]model.Review, error) {
	rows, err := db.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews r WHERE r.item_id = $1 ORDER BY r.created_at DESC, r.id DESC`,
		itemID,
	)
	if err != nil {
		return nil, wrap("ListReviewsByItem", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var r model.Review
		if err := rows.Scan(reviewDest(&r)...); err != nil {
			return nil, wrap("ListReviewsByItem", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListReviewsByItem", err)
	}
	return reviews, nil
}

// ListReviewsByUser 每筆附上項目摘要
func ListReviewsByUser(ctx context.Context, db database.DB, userID int) ([]model.Review, error) {
	rows, err := db.Query(ctx,
		`SELECT `+reviewColumns+`, i.id, i.name, i.image
		 FROM reviews r
		 JOIN items i ON i.id = r.item_id
		 WHERE r.user_id = $1
		 ORDER BY r.created_at DESC, r.id DESC`,
		userID,
	)
	if err != nil {
		return nil, wrap("ListReviewsByUser", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var r model.Review
		item := &model.ItemSummary{}
		dest := append(reviewDest(&r), &item.ID, &item.Name, &item.Image)
		if err := rows.Scan(dest...); err != nil {
			return nil, wrap("ListReviewsByUser", err)
		}
		r.Item = item
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListReviewsByUser", err)
	}
	return reviews, nil
}

// HasReview 建立前的預先檢查；真正的保證是 UNIQUE (item_id, user_id)
func HasReview(ctx context.Context, db database.DB, itemID, userID int) (bool, error) {
	var ok bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE item_id = $1 AND user_id = $2)`,
		itemID, userID,
	).Scan(&ok)
	if err != nil {
		return false, wrap("HasReview", err)
	}
	return ok, nil
}

// CreateReview 同一使用者對同一項目第二次評論回傳 ErrDuplicate
func CreateReview(ctx context.Context, db database.DB, r *model.Review) (*model.Review, error) {
	err := db.QueryRow(ctx,
		`INSERT INTO reviews (rating, text, image, item_id, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		r.Rating,
		r.Text,
		r.Image,
		r.ItemID,
		r.UserID,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, wrap("CreateReview", err)
	}
	return r, nil
}

func UpdateReview(ctx context.Context, db database.DB, reviewID int, upd ReviewUpdate) (*model.Review, error) {
	r := &model.Review{}
	err := db.QueryRow(ctx,
		`UPDATE reviews r SET
		   rating     = COALESCE($2, r.rating),
		   text       = COALESCE($3, r.text),
		   image      = COALESCE($4, r.image),
		   updated_at = NOW()
		 WHERE r.id = $1
		 RETURNING `+reviewColumns,
		reviewID,
		upd.Rating,
		upd.Text,
		upd.Image,
	).Scan(reviewDest(r)...)
	if err != nil {
		return nil, wrap("UpdateReview", err)
	}
	return r, nil
}

// DeleteReview 留言由外鍵 CASCADE 一併刪除
func DeleteReview(ctx context.Context, db database.DB, reviewID int) error {
	tag, err := db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID)
	if err != nil {
		return wrap("DeleteReview", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("DeleteReview", ErrNotFound)
	}
	return nil
}
