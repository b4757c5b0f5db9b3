// File: internal/model/item.go
package model

import "time"

// Item 目錄中的單一項目，評分為讀取時計算
type Item struct {
	ID            int           `db:"id" json:"id"`
	Name          string        `db:"name" json:"name"`
	Description   string        `db:"description" json:"description"`
	Image         string        `db:"image" json:"image"`
	CategoryID    int           `db:"category_id" json:"categoryId"`
	Category      string        `db:"category_name" json:"category"`
	CreatedAt     time.Time     `db:"created_at" json:"createdAt"`
	Ratings       []int         `db:"ratings" json:"-"`
	AverageRating AverageRating `json:"averageRating"`
	ReviewCount   int           `json:"reviewCount"`
}

// ItemSummary is embedded in review listings.
type ItemSummary struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}
