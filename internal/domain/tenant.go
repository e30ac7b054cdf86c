package domain

import (
	"context"
	"strings"
	"time"
)

// TenantStatus is the approval state of a tenant.
type TenantStatus string

const (
	TenantPending  TenantStatus = "pending"
	TenantApproved TenantStatus = "approved"
	TenantRejected TenantStatus = "rejected"
)

// Valid reports whether s is a known tenant status.
func (s TenantStatus) Valid() bool {
	switch s {
	case TenantPending, TenantApproved, TenantRejected:
		return true
	}
	return false
}

// SystemActor is the CreatedBy value for records made by the application itself.
const SystemActor = "system"

// TenantSettings holds per-tenant limits. A zero limit means unlimited.
type TenantSettings struct {
	MaxAdmins             int  `json:"max_admins"`
	MaxUsers              int  `json:"max_users"`
	MaxQuizzes            int  `json:"max_quizzes"`
	AllowUserRegistration bool `json:"allow_user_registration"`
}

// DefaultTenantSettings are applied to tenants created through signup.
func DefaultTenantSettings() TenantSettings {
	return TenantSettings{
		MaxAdmins:             5,
		MaxUsers:              100,
		MaxQuizzes:            50,
		AllowUserRegistration: true,
	}
}

// Tenant represents an organisation that owns users, quiz sets and attempts.
type Tenant struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	Domain          string         `json:"domain,omitempty"`
	Status          TenantStatus   `json:"status"`
	IsActive        bool           `json:"is_active"`
	CreatedBy       string         `json:"created_by"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	ApprovedBy      string         `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time     `json:"approved_at,omitempty"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	Settings        TenantSettings `json:"settings"`
}

// NewTenant is the input for creating a tenant.
type NewTenant struct {
	Name        string
	Description string
	Domain      string
	Status      TenantStatus
	CreatedBy   string
	Settings    *TenantSettings
}

// Validate validates the tenant input
func (t *NewTenant) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return NewInvalidInputError("tenant name is required")
	}
	if t.Status != "" && !t.Status.Valid() {
		return NewInvalidInputError("unknown tenant status: " + string(t.Status))
	}
	return nil
}

// TenantUpdate is a partial update; nil fields are left untouched.
type TenantUpdate struct {
	Name            *string
	Description     *string
	Domain          *string
	IsActive        *bool
	Settings        *TenantSettings
	Status          *TenantStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
}

// TenantRepository defines tenant persistence.
type TenantRepository interface {
	CreateTenant(ctx context.Context, in NewTenant) (*Tenant, error)
	GetTenantByID(ctx context.Context, id string) (*Tenant, error)
	GetAllTenants(ctx context.Context) ([]*Tenant, error)
	GetTenantsByStatus(ctx context.Context, status TenantStatus) ([]*Tenant, error)
	UpdateTenant(ctx context.Context, id string, upd TenantUpdate) (*Tenant, error)
	DeleteTenant(ctx context.Context, id string) (bool, error)
	ApproveTenant(ctx context.Context, id, approvedBy string) (*Tenant, error)
	RejectTenant(ctx context.Context, id, rejectedBy, reason string) (*Tenant, error)
}
