package dto

import (
	"time"

	"quiz-hub/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	TenantID  string `json:"tenant_id,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// LoginRequest represents the login request body.
// @Description Request body for email/password login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the access token and the logged in user.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// SignupRequest registers a new organisation and its first administrator.
// @Description Request body for tenant signup
type SignupRequest struct {
	AdminName     string `json:"admin_name"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
	TenantName    string `json:"tenant_name"`
	Description   string `json:"description"`
	Domain        string `json:"domain"`
}

// SignupResponse is returned after a signup; both records start pending.
type SignupResponse struct {
	Tenant TenantResponse `json:"tenant"`
	Admin  UserResponse   `json:"admin"`
}

// RegisterRequest is a self-service user registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	TenantID string `json:"tenant_id"`
}

// CreateUserRequest is an administrator creating an account.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	TenantID string `json:"tenant_id"`
}

// UpdateUserRequest changes profile fields; omitted fields are kept.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Status   *string `json:"status"`
}

// UserStatusRequest sets an account status.
type UserStatusRequest struct {
	Status string `json:"status"`
}

// UserResponse is the public view of a user. The password digest is never
// exposed.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	TenantID  string    `json:"tenant_id,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse converts a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		TenantID:  u.TenantID,
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
	}
}

// NewUserResponses converts a list of domain users.
func NewUserResponses(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// MessageResponse represents a generic message response.
// @Description Generic message response
type MessageResponse struct {
	Message string `json:"message"`
}
