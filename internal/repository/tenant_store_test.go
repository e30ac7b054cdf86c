package repository

import (
	"context"
	"testing"

	"quiz-hub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTenantDefaults(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	pending, err := s.CreateTenant(ctx, domain.NewTenant{Name: "Signup", CreatedBy: "owner@signup.test"})
	require.NoError(t, err)
	assert.Equal(t, domain.TenantPending, pending.Status)
	assert.True(t, pending.IsActive)
	assert.Equal(t, domain.DefaultTenantSettings(), pending.Settings)
	assert.Nil(t, pending.ApprovedAt)

	approved, err := s.CreateTenant(ctx, domain.NewTenant{Name: "Direct", Status: domain.TenantApproved})
	require.NoError(t, err)
	assert.Equal(t, domain.SystemActor, approved.CreatedBy)
	assert.NotNil(t, approved.ApprovedAt)

	_, err = s.CreateTenant(ctx, domain.NewTenant{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateTenantMerges(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	tenant, err := s.CreateTenant(ctx, domain.NewTenant{Name: "Acme", Description: "keep", Domain: "acme.test"})
	require.NoError(t, err)

	name := "Acme Corp"
	settings := domain.TenantSettings{MaxUsers: 3}
	updated, err := s.UpdateTenant(ctx, tenant.ID, domain.TenantUpdate{Name: &name, Settings: &settings})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", updated.Name)
	assert.Equal(t, "keep", updated.Description)
	assert.Equal(t, "acme.test", updated.Domain)
	assert.Equal(t, 3, updated.Settings.MaxUsers)
	assert.True(t, updated.UpdatedAt.After(tenant.UpdatedAt))

	missing, err := s.UpdateTenant(ctx, "missing", domain.TenantUpdate{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetTenantsByStatus(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	mustTenant(t, s, "P1", domain.TenantPending)
	mustTenant(t, s, "A1", domain.TenantApproved)
	mustTenant(t, s, "P2", domain.TenantPending)

	pending, err := s.GetTenantsByStatus(ctx, domain.TenantPending)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "P1", pending[0].Name)
	assert.Equal(t, "P2", pending[1].Name)

	all, err := s.GetAllTenants(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestApproveTenantActivatesPendingUsersOnly(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	target := mustTenant(t, s, "Target", domain.TenantPending)
	other := mustTenant(t, s, "Other", domain.TenantPending)

	admin := mustUser(t, s, "admin@target.test", domain.RoleAdmin, target.ID, domain.UserPending)
	suspended := mustUser(t, s, "sus@target.test", domain.RoleUser, target.ID, domain.UserSuspended)
	bystander := mustUser(t, s, "admin@other.test", domain.RoleAdmin, other.ID, domain.UserPending)

	approved, err := s.ApproveTenant(ctx, target.ID, "root")
	require.NoError(t, err)
	require.NotNil(t, approved)
	assert.Equal(t, domain.TenantApproved, approved.Status)
	assert.Equal(t, "root", approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)

	got, _ := s.GetUserByID(ctx, admin.ID)
	assert.Equal(t, domain.UserActive, got.Status)
	got, _ = s.GetUserByID(ctx, suspended.ID)
	assert.Equal(t, domain.UserSuspended, got.Status)
	got, _ = s.GetUserByID(ctx, bystander.ID)
	assert.Equal(t, domain.UserPending, got.Status)
}

func TestTenantTransitionsOnlyFromPending(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	tenant := mustTenant(t, s, "Acme", domain.TenantPending)

	rejected, err := s.RejectTenant(ctx, tenant.ID, "root", "incomplete signup")
	require.NoError(t, err)
	assert.Equal(t, domain.TenantRejected, rejected.Status)
	assert.Equal(t, "incomplete signup", rejected.RejectionReason)

	_, err = s.ApproveTenant(ctx, tenant.ID, "root")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = s.RejectTenant(ctx, tenant.ID, "root", "again")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, _ := s.GetTenantByID(ctx, tenant.ID)
	assert.Equal(t, domain.TenantRejected, got.Status)
	assert.Equal(t, "incomplete signup", got.RejectionReason)

	missing, err := s.ApproveTenant(ctx, "missing", "root")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeleteTenantIsUnconditionalInStore(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	tenant := mustTenant(t, s, "Acme", domain.TenantApproved)

	ok, err := s.DeleteTenant(ctx, tenant.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.DeleteTenant(ctx, tenant.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
