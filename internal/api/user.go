package api

// UpdateUserRequest 省略的欄位不變更；password 會重新雜湊，isAdmin 只有管理員能改
// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=100" example:"Ada"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=100" example:"Byron"`
	Email     *string `json:"email" validate:"omitempty,email" example:"ada@example.com"`
	Password  *string `json:"password" validate:"omitempty,min=6,max=72" example:"NewSecret456!"`
	IsAdmin   *bool   `json:"isAdmin" example:"false"`
}
