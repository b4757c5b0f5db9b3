package model

import (
	"encoding/json"
	"math"
)

// NoRatingsYet is rendered in place of a number when an item has no reviews.
const NoRatingsYet = "No ratings yet"

// AverageRating is the read-time mean of an item's review ratings.
type AverageRating struct {
	Value float64
	Valid bool
}

func (a AverageRating) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return json.Marshal(NoRatingsYet)
	}
	// 保留兩位小數
	return json.Marshal(math.Round(a.Value*100) / 100)
}
