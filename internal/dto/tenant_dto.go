package dto

import (
	"time"

	"quiz-hub/internal/domain"
)

// TenantSettingsDTO mirrors domain.TenantSettings on the wire.
type TenantSettingsDTO struct {
	MaxAdmins             int  `json:"max_admins"`
	MaxUsers              int  `json:"max_users"`
	MaxQuizzes            int  `json:"max_quizzes"`
	AllowUserRegistration bool `json:"allow_user_registration"`
}

func (s *TenantSettingsDTO) ToDomain() *domain.TenantSettings {
	if s == nil {
		return nil
	}
	return &domain.TenantSettings{
		MaxAdmins:             s.MaxAdmins,
		MaxUsers:              s.MaxUsers,
		MaxQuizzes:            s.MaxQuizzes,
		AllowUserRegistration: s.AllowUserRegistration,
	}
}

// CreateTenantRequest is a product admin creating an approved tenant.
type CreateTenantRequest struct {
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Domain        string             `json:"domain"`
	Settings      *TenantSettingsDTO `json:"settings"`
	AdminName     string             `json:"admin_name"`
	AdminEmail    string             `json:"admin_email"`
	AdminPassword string             `json:"admin_password"`
}

// UpdateTenantRequest changes tenant details; omitted fields are kept.
type UpdateTenantRequest struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Domain      *string            `json:"domain"`
	IsActive    *bool              `json:"is_active"`
	Settings    *TenantSettingsDTO `json:"settings"`
}

// RejectTenantRequest carries the reason shown to the applicant.
type RejectTenantRequest struct {
	Reason string `json:"reason"`
}

// TenantResponse is the API view of a tenant.
type TenantResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Domain          string            `json:"domain,omitempty"`
	Status          string            `json:"status"`
	IsActive        bool              `json:"is_active"`
	CreatedBy       string            `json:"created_by"`
	CreatedAt       time.Time         `json:"created_at"`
	ApprovedBy      string            `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time        `json:"approved_at,omitempty"`
	RejectionReason string            `json:"rejection_reason,omitempty"`
	Settings        TenantSettingsDTO `json:"settings"`
}

// NewTenantResponse converts a domain tenant.
func NewTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		ID:              t.ID,
		Name:            t.Name,
		Description:     t.Description,
		Domain:          t.Domain,
		Status:          string(t.Status),
		IsActive:        t.IsActive,
		CreatedBy:       t.CreatedBy,
		CreatedAt:       t.CreatedAt,
		ApprovedBy:      t.ApprovedBy,
		ApprovedAt:      t.ApprovedAt,
		RejectionReason: t.RejectionReason,
		Settings: TenantSettingsDTO{
			MaxAdmins:             t.Settings.MaxAdmins,
			MaxUsers:              t.Settings.MaxUsers,
			MaxQuizzes:            t.Settings.MaxQuizzes,
			AllowUserRegistration: t.Settings.AllowUserRegistration,
		},
	}
}

// NewTenantResponses converts a list of domain tenants.
func NewTenantResponses(tenants []*domain.Tenant) []TenantResponse {
	out := make([]TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, NewTenantResponse(t))
	}
	return out
}
