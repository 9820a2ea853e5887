package dto

import (
	"time"

	"github.com/uniformes-app/backoffice/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a local user.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines the credentials for a local login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
}

// GoogleCallbackRequest carries the authorization code from Google's redirect.
type GoogleCallbackRequest struct {
	Code string `json:"code" binding:"required"`
}

// UserResponse defines the data returned for a user. Password material is
// never part of a response.
type UserResponse struct {
	UserID       string    `json:"userID"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	AuthProvider string    `json:"authProvider"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		Name:         u.Name,
		Email:        u.Email,
		AuthProvider: string(u.AuthProvider),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}
