package domain

import (
	"context"
	"strings"
	"time"
)

// Role is the authorization role of a user.
type Role string

const (
	RoleProductAdmin Role = "product-admin"
	RoleAdmin        Role = "admin"
	RoleUser         Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleProductAdmin, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// RequiresTenant reports whether users with this role must belong to a tenant.
func (r Role) RequiresTenant() bool {
	return r == RoleAdmin || r == RoleUser
}

// UserStatus is the account state of a user.
type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserPending   UserStatus = "pending"
	UserSuspended UserStatus = "suspended"
)

// Valid reports whether s is a known user status.
func (s UserStatus) Valid() bool {
	switch s {
	case UserActive, UserPending, UserSuspended:
		return true
	}
	return false
}

// User represents an account. Email is unique across all tenants.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password_hash"`
	Role         Role       `json:"role"`
	TenantID     string     `json:"tenant_id,omitempty"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewUser is the input for creating a user. Password is plaintext and is
// digested before storage.
type NewUser struct {
	Name     string
	Email    string
	Password string
	Role     Role
	TenantID string
	Status   UserStatus
}

// Validate checks required fields and the role/tenant invariant.
func (u *NewUser) Validate() error {
	if err := u.ValidateCredentials(); err != nil {
		return err
	}
	if u.Status != "" && !u.Status.Valid() {
		return NewInvalidInputError("unknown user status: " + string(u.Status))
	}
	return ValidateRoleTenant(u.Role, u.TenantID)
}

// ValidateCredentials checks name, email and password only, for callers
// that assign the tenant later.
func (u *NewUser) ValidateCredentials() error {
	if strings.TrimSpace(u.Name) == "" {
		return NewInvalidInputError("name is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return NewInvalidInputError("email is required")
	}
	if u.Password == "" {
		return NewInvalidInputError("password is required")
	}
	return nil
}

// ValidateRoleTenant enforces that product admins are tenantless and every
// other role belongs to exactly one tenant.
func ValidateRoleTenant(role Role, tenantID string) error {
	if !role.Valid() {
		return NewInvalidInputError("unknown role: " + string(role))
	}
	if role == RoleProductAdmin && tenantID != "" {
		return NewInvalidInputError("product admin cannot belong to a tenant")
	}
	if role.RequiresTenant() && tenantID == "" {
		return NewInvalidInputError(string(role) + " must belong to a tenant")
	}
	return nil
}

// UserUpdate is a partial update; nil fields are left untouched.
type UserUpdate struct {
	Name     *string
	Password *string
	Status   *UserStatus
}

// UserSession is the single live login of this store.
type UserSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// UserRepository defines user persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, in NewUser) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetAllUsers(ctx context.Context, tenantID string) ([]*User, error)
	GetUsersByTenant(ctx context.Context, tenantID string) ([]*User, error)
	UpdateUser(ctx context.Context, id string, upd UserUpdate) (*User, error)
	DeleteUser(ctx context.Context, id string) (bool, error)
}

// SessionRepository defines the single-session login model.
type SessionRepository interface {
	LoginUser(ctx context.Context, email, password string) (*User, error)
	LogoutUser(ctx context.Context) error
	GetCurrentUser(ctx context.Context) (*User, error)
}
