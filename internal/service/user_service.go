package service

import (
	"context"

	"quiz-hub/internal/domain"

	"go.uber.org/zap"
)

// CreateUserInput is an administrator request for a new account. TenantID is
// only honoured for product admins; tenant admins always create into their
// own tenant.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	TenantID string
}

// RegisterInput is a self-service registration into an existing tenant.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	TenantID string
}

// UserService manages accounts within the role and tenant rules.
type UserService interface {
	CreateUser(ctx context.Context, actor Actor, in CreateUserInput) (*domain.User, error)
	RegisterUser(ctx context.Context, in RegisterInput) (*domain.User, error)
	ListUsers(ctx context.Context, actor Actor) ([]*domain.User, error)
	GetUser(ctx context.Context, actor Actor, userID string) (*domain.User, error)
	UpdateUser(ctx context.Context, actor Actor, userID string, upd domain.UserUpdate) (*domain.User, error)
	SetUserStatus(ctx context.Context, actor Actor, userID string, status domain.UserStatus) (*domain.User, error)
	DeleteUser(ctx context.Context, actor Actor, userID string) error
}

type userServiceImpl struct {
	store  domain.Store
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(store domain.Store, logger *zap.Logger) UserService {
	return &userServiceImpl{store: store, logger: logger}
}

func (s *userServiceImpl) CreateUser(ctx context.Context, actor Actor, in CreateUserInput) (*domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	tenantID := in.TenantID
	if !actor.IsProductAdmin() {
		if in.Role == domain.RoleProductAdmin {
			return nil, domain.NewForbiddenError("Tenant administrators cannot create product administrators")
		}
		tenantID = actor.TenantID
	}
	if in.Role == "" {
		in.Role = domain.RoleUser
	}

	status := domain.UserActive
	if tenantID != "" {
		tenant, err := s.store.GetTenantByID(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		if tenant == nil {
			return nil, domain.NewTenantNotFoundError(tenantID)
		}
		switch tenant.Status {
		case domain.TenantRejected:
			return nil, domain.NewForbiddenError("Cannot add users to a rejected tenant")
		case domain.TenantPending:
			status = domain.UserPending
		}
		if err := s.checkSeatLimit(ctx, tenant, in.Role); err != nil {
			return nil, err
		}
	}

	return s.store.CreateUser(ctx, domain.NewUser{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
		TenantID: tenantID,
		Status:   status,
	})
}

// checkSeatLimit enforces MaxAdmins and MaxUsers of the tenant.
func (s *userServiceImpl) checkSeatLimit(ctx context.Context, tenant *domain.Tenant, role domain.Role) error {
	members, err := s.store.GetUsersByTenant(ctx, tenant.ID)
	if err != nil {
		return err
	}
	count := 0
	for _, m := range members {
		if m.Role == role {
			count++
		}
	}
	switch role {
	case domain.RoleAdmin:
		if !withinLimit(count, tenant.Settings.MaxAdmins) {
			return domain.NewLimitExceededError("admins", tenant.Settings.MaxAdmins)
		}
	case domain.RoleUser:
		if !withinLimit(count, tenant.Settings.MaxUsers) {
			return domain.NewLimitExceededError("users", tenant.Settings.MaxUsers)
		}
	}
	return nil
}

// RegisterUser creates an active user in an approved, active tenant that
// allows self registration.
func (s *userServiceImpl) RegisterUser(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.TenantID == "" {
		return nil, domain.NewInvalidInputError("tenant_id is required")
	}
	tenant, err := s.store.GetTenantByID(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.NewTenantNotFoundError(in.TenantID)
	}
	if tenant.Status != domain.TenantApproved || !tenant.IsActive {
		return nil, domain.NewForbiddenError("This organisation is not accepting registrations")
	}
	if !tenant.Settings.AllowUserRegistration {
		return nil, domain.NewForbiddenError("Self registration is disabled for this organisation")
	}
	if err := s.checkSeatLimit(ctx, tenant, domain.RoleUser); err != nil {
		return nil, err
	}
	user, err := s.store.CreateUser(ctx, domain.NewUser{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Role:     domain.RoleUser,
		TenantID: tenant.ID,
		Status:   domain.UserActive,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("User registered", zap.String("user_id", user.ID), zap.String("tenant_id", tenant.ID))
	return user, nil
}

// ListUsers is limited to administrators; tenant admins see their tenant.
func (s *userServiceImpl) ListUsers(ctx context.Context, actor Actor) ([]*domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.store.GetAllUsers(ctx, ScopeFor(actor))
}

// GetUser returns the user when the actor may see it. Users outside the
// actor's reach are reported as not found.
func (s *userServiceImpl) GetUser(ctx context.Context, actor Actor, userID string) (*domain.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !canSeeUser(actor, user) {
		return nil, domain.NewUserNotFoundError(userID)
	}
	return user, nil
}

func canSeeUser(actor Actor, user *domain.User) bool {
	if actor.UserID == user.ID || actor.IsProductAdmin() {
		return true
	}
	return actor.IsTenantAdmin() && user.TenantID == actor.TenantID
}

// canManageUser covers changes to another account's status and deletion.
func canManageUser(actor Actor, user *domain.User) bool {
	if actor.UserID == user.ID {
		return false
	}
	if actor.IsProductAdmin() {
		return true
	}
	return user.Role != domain.RoleProductAdmin && canManageTenant(actor, user.TenantID)
}

// UpdateUser lets users change their own name and password, and lets
// administrators change accounts they manage.
func (s *userServiceImpl) UpdateUser(ctx context.Context, actor Actor, userID string, upd domain.UserUpdate) (*domain.User, error) {
	user, err := s.GetUser(ctx, actor, userID)
	if err != nil {
		return nil, err
	}
	self := actor.UserID == user.ID
	if self && upd.Status != nil {
		return nil, domain.NewForbiddenError("You cannot change your own status")
	}
	if !self && !canManageUser(actor, user) {
		return nil, domain.NewForbiddenError("You cannot manage this user")
	}
	if upd.Status != nil && *upd.Status == domain.UserActive && user.Status != domain.UserActive {
		if err := s.requireApprovedTenant(ctx, user); err != nil {
			return nil, err
		}
	}
	updated, err := s.store.UpdateUser(ctx, userID, upd)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.NewUserNotFoundError(userID)
	}
	return updated, nil
}

// requireApprovedTenant keeps members of unapproved tenants out of the active
// state; approving the tenant activates them.
func (s *userServiceImpl) requireApprovedTenant(ctx context.Context, user *domain.User) error {
	if user.TenantID == "" {
		return nil
	}
	tenant, err := s.store.GetTenantByID(ctx, user.TenantID)
	if err != nil {
		return err
	}
	if tenant == nil {
		return domain.NewTenantNotFoundError(user.TenantID)
	}
	if tenant.Status != domain.TenantApproved {
		return domain.NewError(domain.CodeInvalidTransition,
			"Members of an unapproved organisation cannot be activated", nil).
			WithContext("tenant_id", tenant.ID).
			WithContext("status", string(tenant.Status))
	}
	return nil
}

func (s *userServiceImpl) SetUserStatus(ctx context.Context, actor Actor, userID string, status domain.UserStatus) (*domain.User, error) {
	if !status.Valid() {
		return nil, domain.NewInvalidInputError("unknown user status: " + string(status))
	}
	return s.UpdateUser(ctx, actor, userID, domain.UserUpdate{Status: &status})
}

// DeleteUser removes another account the actor manages, including that
// user's results.
func (s *userServiceImpl) DeleteUser(ctx context.Context, actor Actor, userID string) error {
	user, err := s.GetUser(ctx, actor, userID)
	if err != nil {
		return err
	}
	if !canManageUser(actor, user) {
		return domain.NewForbiddenError("You cannot delete this user")
	}
	deleted, err := s.store.DeleteUser(ctx, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NewUserNotFoundError(userID)
	}
	s.logger.Info("User deleted", zap.String("user_id", userID), zap.String("by", actor.UserID))
	return nil
}
