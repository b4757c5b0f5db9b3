// File: internal/model/review.go
package model

import "time"

type Review struct {
	ID        int          `db:"id" json:"id"`
	Rating    int          `db:"rating" json:"rating"`
	Text      string       `db:"text" json:"text"`
	Image     *string      `db:"image" json:"image,omitempty"`
	ItemID    int          `db:"item_id" json:"itemId"`
	UserID    int          `db:"user_id" json:"userId"`
	Item      *ItemSummary `json:"item,omitempty"`
	CreatedAt time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time    `db:"updated_at" json:"updatedAt"`
}
