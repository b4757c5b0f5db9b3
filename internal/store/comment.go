package store

import (
	"context"

	"review-hub/internal/database"
	"review-hub/internal/model"
)

const commentColumns = `id, text, review_id, user_id, created_at, updated_at`

func commentDest(c *model.Comment) []any {
	return []any{&c.ID, &c.Text, &c.ReviewID, &c.UserID, &c.CreatedAt, &c.UpdatedAt}
}

func GetCommentByID(ctx context.Context, db database.DB, commentID int) (*model.Comment, error) {
	c := &model.Comment{}
	err := db.QueryRow(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1`,
		commentID,
	).Scan(commentDest(c)...)
	if err != nil {
		return nil, wrap("GetCommentByID", err)
	}
	return c, nil
}

func ListCommentsByReview(ctx context.Context, db database.DB, reviewID int) ([]model.Comment, error) {
	rows, err := db.Query(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE review_id = $1 ORDER BY created_at, id`,
		reviewID,
	)
	if err != nil {
		return nil, wrap("ListCommentsByReview", err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(commentDest(&c)...); err != nil {
			return nil, wrap("ListCommentsByReview", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListCommentsByReview", err)
	}
	return comments, nil
}

func ReviewExists(ctx context.Context, db database.DB, reviewID int) (bool, error) {
	var ok bool
	if err := db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reviews WHERE id = $1)`, reviewID).Scan(&ok); err != nil {
		return false, wrap("ReviewExists", err)
	}
	return ok, nil
}

func CreateComment(ctx context.Context, db database.DB, c *model.Comment) (*model.Comment, error) {
	err := db.QueryRow(ctx,
		`INSERT INTO comments (text, review_id, user_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		c.Text,
		c.ReviewID,
		c.UserID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, wrap("CreateComment", err)
	}
	return c, nil
}

func UpdateComment(ctx context.Context, db database.DB, commentID int, text string) (*model.Comment, error) {
	c := &model.Comment{}
	err := db.QueryRow(ctx,
		`UPDATE comments SET text = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+commentColumns,
		commentID,
		text,
	).Scan(commentDest(c)...)
	if err != nil {
		return nil, wrap("UpdateComment", err)
	}
	return c, nil
}

func DeleteComment(ctx context.Context, db database.DB, commentID int) error {
	tag, err := db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return wrap("DeleteComment", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("DeleteComment", ErrNotFound)
	}
	return nil
}
