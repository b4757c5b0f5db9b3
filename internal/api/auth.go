// File: internal/api/auth.go
package api

import "review-hub/internal/model"

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100" example:"Ada"`
	LastName  string `json:"lastName" validate:"required,max=100" example:"Lovelace"`
	Email     string `json:"email" validate:"required,email" example:"ada@example.com"`
	Password  string `json:"password" validate:"required,min=6,max=72" example:"Secret123!"`
}

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"ada@example.com"`
	Password string `json:"password" validate:"required" example:"Secret123!"`
}

// AuthResponse 註冊與登入共用
// swagger:model api.AuthResponse
type AuthResponse struct {
	Token     string     `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	ExpiresAt int64      `json:"expiresAt" example:"1735689600"`
	User      model.User `json:"user"`
}

// swagger:model api.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"deleted"`
}
