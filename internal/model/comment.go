package model

import "time"

type Comment struct {
	ID        int       `db:"id" json:"id"`
	Text      string    `db:"text" json:"text"`
	ReviewID  int       `db:"review_id" json:"reviewId"`
	UserID    int       `db:"user_id" json:"userId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
