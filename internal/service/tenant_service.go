package service

import (
	"context"
	"strings"

	"quiz-hub/internal/domain"

	"go.uber.org/zap"
)

// SignupInput is a self-service request for a new tenant and its first admin.
type SignupInput struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
	TenantName    string
	Description   string
	Domain        string
}

// CreateTenantInput is a product admin request for a pre-approved tenant.
// The admin account is optional.
type CreateTenantInput struct {
	Name          string
	Description   string
	Domain        string
	Settings      *domain.TenantSettings
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// TenantSettingsInput changes tenant details. Status is not editable here.
type TenantSettingsInput struct {
	Name        *string
	Description *string
	Domain      *string
	IsActive    *bool
	Settings    *domain.TenantSettings
}

// TenantService implements the signup and approval workflow and tenant
// administration.
type TenantService interface {
	CreateTenantAndAdmin(ctx context.Context, in SignupInput) (*domain.Tenant, *domain.User, error)
	CreateApprovedTenant(ctx context.Context, actor Actor, in CreateTenantInput) (*domain.Tenant, *domain.User, error)
	ApproveTenant(ctx context.Context, actor Actor, tenantID string) (*domain.Tenant, error)
	RejectTenant(ctx context.Context, actor Actor, tenantID, reason string) (*domain.Tenant, error)
	DeleteTenant(ctx context.Context, actor Actor, tenantID string) error
	ListTenants(ctx context.Context, actor Actor, status domain.TenantStatus) ([]*domain.Tenant, error)
	GetTenant(ctx context.Context, actor Actor, tenantID string) (*domain.Tenant, error)
	UpdateTenantSettings(ctx context.Context, actor Actor, tenantID string, in TenantSettingsInput) (*domain.Tenant, error)
}

type tenantServiceImpl struct {
	store  domain.Store
	logger *zap.Logger
}

// NewTenantService creates a new TenantService.
func NewTenantService(store domain.Store, logger *zap.Logger) TenantService {
	return &tenantServiceImpl{store: store, logger: logger}
}

// CreateTenantAndAdmin registers a pending tenant with a pending admin. The
// email check runs first so no tenant is left behind for a taken address.
func (s *tenantServiceImpl) CreateTenantAndAdmin(ctx context.Context, in SignupInput) (*domain.Tenant, *domain.User, error) {
	if strings.TrimSpace(in.TenantName) == "" {
		return nil, nil, domain.NewInvalidInputError("tenant name is required")
	}
	admin := domain.NewUser{
		Name:     in.AdminName,
		Email:    in.AdminEmail,
		Password: in.AdminPassword,
		Role:     domain.RoleAdmin,
		Status:   domain.UserPending,
	}
	if err := admin.ValidateCredentials(); err != nil {
		return nil, nil, err
	}
	if err := s.ensureEmailFree(ctx, in.AdminEmail); err != nil {
		return nil, nil, err
	}

	tenant, err := s.store.CreateTenant(ctx, domain.NewTenant{
		Name:        in.TenantName,
		Description: in.Description,
		Domain:      in.Domain,
		Status:      domain.TenantPending,
		CreatedBy:   in.AdminEmail,
	})
	if err != nil {
		return nil, nil, err
	}

	admin.TenantID = tenant.ID
	user, err := s.store.CreateUser(ctx, admin)
	if err != nil {
		// Best effort cleanup; the two inserts are not transactional.
		if _, delErr := s.store.DeleteTenant(ctx, tenant.ID); delErr != nil {
			s.logger.Error("Failed to remove tenant after admin creation failed",
				zap.String("tenant_id", tenant.ID), zap.Error(delErr))
		}
		return nil, nil, err
	}

	s.logger.Info("Tenant signup received",
		zap.String("tenant_id", tenant.ID),
		zap.String("admin_id", user.ID))
	return tenant, user, nil
}

func (s *tenantServiceImpl) ensureEmailFree(ctx context.Context, email string) error {
	existing, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.NewDuplicateEmailError(email)
	}
	return nil
}

func (s *tenantServiceImpl) CreateApprovedTenant(ctx context.Context, actor Actor, in CreateTenantInput) (*domain.Tenant, *domain.User, error) {
	if err := requireProductAdmin(actor); err != nil {
		return nil, nil, err
	}
	withAdmin := in.AdminEmail != ""
	var admin domain.NewUser
	if withAdmin {
		admin = domain.NewUser{
			Name:     in.AdminName,
			Email:    in.AdminEmail,
			Password: in.AdminPassword,
			Role:     domain.RoleAdmin,
			Status:   domain.UserActive,
		}
		if err := admin.ValidateCredentials(); err != nil {
			return nil, nil, err
		}
		if err := s.ensureEmailFree(ctx, in.AdminEmail); err != nil {
			return nil, nil, err
		}
	}

	tenant, err := s.store.CreateTenant(ctx, domain.NewTenant{
		Name:        in.Name,
		Description: in.Description,
		Domain:      in.Domain,
		Status:      domain.TenantApproved,
		CreatedBy:   actor.Email,
		Settings:    in.Settings,
	})
	if err != nil {
		return nil, nil, err
	}
	if !withAdmin {
		return tenant, nil, nil
	}

	admin.TenantID = tenant.ID
	user, err := s.store.CreateUser(ctx, admin)
	if err != nil {
		if _, delErr := s.store.DeleteTenant(ctx, tenant.ID); delErr != nil {
			s.logger.Error("Failed to remove tenant after admin creation failed",
				zap.String("tenant_id", tenant.ID), zap.Error(delErr))
		}
		return nil, nil, err
	}
	return tenant, user, nil
}

func (s *tenantServiceImpl) ApproveTenant(ctx context.Context, actor Actor, tenantID string) (*domain.Tenant, error) {
	if err := requireProductAdmin(actor); err != nil {
		return nil, err
	}
	tenant, err := s.store.ApproveTenant(ctx, tenantID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.NewTenantNotFoundError(tenantID)
	}
	return tenant, nil
}

func (s *tenantServiceImpl) RejectTenant(ctx context.Context, actor Actor, tenantID, reason string) (*domain.Tenant, error) {
	if err := requireProductAdmin(actor); err != nil {
		return nil, err
	}
	tenant, err := s.store.RejectTenant(ctx, tenantID, actor.UserID, reason)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.NewTenantNotFoundError(tenantID)
	}
	return tenant, nil
}

// DeleteTenant refuses while users reference the tenant. Otherwise it deletes
// the tenant's quiz sets (with their questions), then its results, then the
// tenant row.
func (s *tenantServiceImpl) DeleteTenant(ctx context.Context, actor Actor, tenantID string) error {
	if err := requireProductAdmin(actor); err != nil {
		return err
	}
	tenant, err := s.store.GetTenantByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if tenant == nil {
		return domain.NewTenantNotFoundError(tenantID)
	}

	users, err := s.store.GetUsersByTenant(ctx, tenantID)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return domain.NewTenantHasUsersError(tenantID, len(users))
	}

	quizSets, err := s.store.GetAllQuizSets(ctx, tenantID)
	if err != nil {
		return err
	}
	for _, qs := range quizSets {
		if _, err := s.store.DeleteQuizSet(ctx, qs.ID); err != nil {
			return err
		}
	}

	results, err := s.store.GetTestResults(ctx, tenantID)
	if err != nil {
		return err
	}
	for _, r := range results {
		if _, err := s.store.DeleteTestResult(ctx, r.ID); err != nil {
			return err
		}
	}

	if _, err := s.store.DeleteTenant(ctx, tenantID); err != nil {
		return err
	}
	s.logger.Info("Tenant deleted",
		zap.String("tenant_id", tenantID),
		zap.Int("quiz_sets", len(quizSets)),
		zap.Int("results", len(results)))
	return nil
}

// ListTenants returns every tenant for product admins, optionally filtered by
// status, and only the caller's own tenant for everyone else.
func (s *tenantServiceImpl) ListTenants(ctx context.Context, actor Actor, status domain.TenantStatus) ([]*domain.Tenant, error) {
	if status != "" && !status.Valid() {
		return nil, domain.NewInvalidInputError("unknown tenant status: " + string(status))
	}
	if !actor.IsProductAdmin() {
		tenant, err := s.store.GetTenantByID(ctx, actor.TenantID)
		if err != nil {
			return nil, err
		}
		if tenant == nil || (status != "" && tenant.Status != status) {
			return []*domain.Tenant{}, nil
		}
		return []*domain.Tenant{tenant}, nil
	}
	if status != "" {
		return s.store.GetTenantsByStatus(ctx, status)
	}
	return s.store.GetAllTenants(ctx)
}

func (s *tenantServiceImpl) GetTenant(ctx context.Context, actor Actor, tenantID string) (*domain.Tenant, error) {
	if !actor.IsProductAdmin() && actor.TenantID != tenantID {
		return nil, domain.NewTenantNotFoundError(tenantID)
	}
	tenant, err := s.store.GetTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.NewTenantNotFoundError(tenantID)
	}
	return tenant, nil
}

func (s *tenantServiceImpl) UpdateTenantSettings(ctx context.Context, actor Actor, tenantID string, in TenantSettingsInput) (*domain.Tenant, error) {
	if !canManageTenant(actor, tenantID) {
		return nil, domain.NewForbiddenError("You cannot manage this tenant")
	}
	if in.IsActive != nil && !actor.IsProductAdmin() {
		return nil, domain.NewForbiddenError("Only product administrators can activate or deactivate tenants")
	}
	tenant, err := s.store.UpdateTenant(ctx, tenantID, domain.TenantUpdate{
		Name:        in.Name,
		Description: in.Description,
		Domain:      in.Domain,
		IsActive:    in.IsActive,
		Settings:    in.Settings,
	})
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.NewTenantNotFoundError(tenantID)
	}
	return tenant, nil
}
