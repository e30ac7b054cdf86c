package repository

import (
	"context"
	"errors"

	"quiz-hub/internal/domain"
	"quiz-hub/internal/util"

	"go.uber.org/zap"
)

// CreateTenant inserts a tenant. Status defaults to pending and settings to
// the signup defaults.
func (s *LocalStore) CreateTenant(ctx context.Context, in domain.NewTenant) (*domain.Tenant, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.opts.Now()
	t := &domain.Tenant{
		ID:          util.NewULID(),
		Name:        in.Name,
		Description: in.Description,
		Domain:      in.Domain,
		Status:      in.Status,
		IsActive:    true,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
		Settings:    domain.DefaultTenantSettings(),
	}
	if t.Status == "" {
		t.Status = domain.TenantPending
	}
	if t.CreatedBy == "" {
		t.CreatedBy = domain.SystemActor
	}
	if in.Settings != nil {
		t.Settings = *in.Settings
	}
	if t.Status == domain.TenantApproved {
		t.ApprovedBy = t.CreatedBy
		t.ApprovedAt = &now
	}

	err := s.mutate(ctx, "create_tenant", func(db *domain.Snapshot) error {
		db.Tenants[t.ID] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Tenant created", zap.String("tenant_id", t.ID), zap.String("status", string(t.Status)))
	return cloneTenant(t), nil
}

// GetTenantByID returns nil when the tenant does not exist.
func (s *LocalStore) GetTenantByID(ctx context.Context, id string) (*domain.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.data.Tenants[id]
	if !ok {
		return nil, nil
	}
	return cloneTenant(t), nil
}

func (s *LocalStore) GetAllTenants(ctx context.Context) ([]*domain.Tenant, error) {
	return s.listTenants(func(*domain.Tenant) bool { return true }), nil
}

func (s *LocalStore) GetTenantsByStatus(ctx context.Context, status domain.TenantStatus) ([]*domain.Tenant, error) {
	return s.listTenants(func(t *domain.Tenant) bool { return t.Status == status }), nil
}

func (s *LocalStore) listTenants(keep func(*domain.Tenant) bool) []*domain.Tenant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Tenant, 0, len(s.data.Tenants))
	for _, t := range s.data.Tenants {
		if keep(t) {
			out = append(out, cloneTenant(t))
		}
	}
	sortTenants(out)
	return out
}

// UpdateTenant merges the non-nil fields of upd. It returns nil when the
// tenant does not exist.
func (s *LocalStore) UpdateTenant(ctx context.Context, id string, upd domain.TenantUpdate) (*domain.Tenant, error) {
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, domain.NewInvalidInputError("unknown tenant status: " + string(*upd.Status))
	}
	if upd.Name != nil && *upd.Name == "" {
		return nil, domain.NewInvalidInputError("tenant name is required")
	}

	var updated *domain.Tenant
	err := s.mutate(ctx, "update_tenant", func(db *domain.Snapshot) error {
		t, ok := db.Tenants[id]
		if !ok {
			return errNoRow
		}
		applyTenantUpdate(t, upd)
		t.UpdatedAt = s.opts.Now()
		updated = cloneTenant(t)
		return nil
	})
	if errors.Is(err, errNoRow) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func applyTenantUpdate(t *domain.Tenant, upd domain.TenantUpdate) {
	if upd.Name != nil {
		t.Name = *upd.Name
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Domain != nil {
		t.Domain = *upd.Domain
	}
	if upd.IsActive != nil {
		t.IsActive = *upd.IsActive
	}
	if upd.Settings != nil {
		t.Settings = *upd.Settings
	}
	if upd.Status != nil {
		t.Status = *upd.Status
	}
	if upd.ApprovedBy != nil {
		t.ApprovedBy = *upd.ApprovedBy
	}
	if upd.ApprovedAt != nil {
		at := *upd.ApprovedAt
		t.ApprovedAt = &at
	}
	if upd.RejectionReason != nil {
		t.RejectionReason = *upd.RejectionReason
	}
}

// DeleteTenant removes the tenant row only. Callers that need the user check
// and the quiz/result cascade go through the tenant service.
func (s *LocalStore) DeleteTenant(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := s.mutate(ctx, "delete_tenant", func(db *domain.Snapshot) error {
		if _, ok := db.Tenants[id]; !ok {
			return errNoRow
		}
		delete(db.Tenants, id)
		deleted = true
		return nil
	})
	if err != nil && !errors.Is(err, errNoRow) {
		return false, err
	}
	return deleted, nil
}

// ApproveTenant moves a pending tenant to approved and activates every
// pending user of that tenant. It returns nil when the tenant does not exist.
func (s *LocalStore) ApproveTenant(ctx context.Context, id, approvedBy string) (*domain.Tenant, error) {
	var (
		updated   *domain.Tenant
		activated int
	)
	err := s.mutate(ctx, "approve_tenant", func(db *domain.Snapshot) error {
		t, ok := db.Tenants[id]
		if !ok {
			return errNoRow
		}
		if t.Status != domain.TenantPending {
			return domain.NewInvalidTransitionError(id, t.Status)
		}
		now := s.opts.Now()
		t.Status = domain.TenantApproved
		t.ApprovedBy = approvedBy
		t.ApprovedAt = &now
		t.RejectionReason = ""
		t.UpdatedAt = now
		for _, u := range db.Users {
			if u.TenantID == id && u.Status == domain.UserPending {
				u.Status = domain.UserActive
				u.UpdatedAt = now
				activated++
			}
		}
		updated = cloneTenant(t)
		return nil
	})
	if errors.Is(err, errNoRow) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info("Tenant approved",
		zap.String("tenant_id", id),
		zap.String("approved_by", approvedBy),
		zap.Int("activated_users", activated))
	return updated, nil
}

// RejectTenant moves a pending tenant to rejected. It returns nil when the
// tenant does not exist.
func (s *LocalStore) RejectTenant(ctx context.Context, id, rejectedBy, reason string) (*domain.Tenant, error) {
	var updated *domain.Tenant
	err := s.mutate(ctx, "reject_tenant", func(db *domain.Snapshot) error {
		t, ok := db.Tenants[id]
		if !ok {
			return errNoRow
		}
		if t.Status != domain.TenantPending {
			return domain.NewInvalidTransitionError(id, t.Status)
		}
		now := s.opts.Now()
		t.Status = domain.TenantRejected
		t.ApprovedBy = rejectedBy
		t.ApprovedAt = &now
		t.RejectionReason = reason
		t.UpdatedAt = now
		updated = cloneTenant(t)
		return nil
	})
	if errors.Is(err, errNoRow) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info("Tenant rejected", zap.String("tenant_id", id), zap.String("rejected_by", rejectedBy))
	return updated, nil
}
