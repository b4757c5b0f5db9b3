package api

// swagger:model api.CreateReviewRequest
type CreateReviewRequest struct {
	Rating int     `json:"rating" validate:"required,min=1,max=5" example:"4"`
	Text   string  `json:"text" validate:"max=5000" example:"Great crust, slow service."`
	Image  *string `json:"image" validate:"omitempty,url" example:"https://example.com/photo.jpg"`
}

// swagger:model api.UpdateReviewRequest
type UpdateReviewRequest struct {
	Rating *int    `json:"rating" validate:"omitempty,min=1,max=5" example:"5"`
	Text   *string `json:"text" validate:"omitempty,max=5000" example:"Came back, even better."`
	Image  *string `json:"image" validate:"omitempty,url" example:"https://example.com/photo2.jpg"`
}

// swagger:model api.CommentRequest
type CommentRequest struct {
	Text string `json:"text" validate:"required,max=2000" example:"Agreed, the crust is great."`
}
