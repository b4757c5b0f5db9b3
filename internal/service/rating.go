package service

import "review-hub/internal/model"

// AverageRating 計算評分平均；沒有評分時 Valid 為 false
func AverageRating(ratings []int) model.AverageRating {
	if len(ratings) == 0 {
		return model.AverageRating{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return model.AverageRating{Value: float64(sum) / float64(len(ratings)), Valid: true}
}

// WithRatings 依 Ratings 填入 AverageRating 與 ReviewCount
func WithRatings(items []model.Item) []model.Item {
	for i := range items {
		items[i].AverageRating = AverageRating(items[i].Ratings)
		items[i].ReviewCount = len(items[i].Ratings)
	}
	return items
}
