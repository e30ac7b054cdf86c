package repository

import (
	"context"
	"testing"

	"quiz-hub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreAsRecordStore(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	var records domain.RecordStore = s

	tenant, err := records.CreateTenant(ctx, domain.NewTenant{Name: "Acme", Status: domain.TenantApproved})
	require.NoError(t, err)
	other := mustTenant(t, s, "Other", domain.TenantApproved)
	user, err := records.CreateUser(ctx, domain.NewUser{
		Name: "Amy", Email: "amy@acme.test", Password: "pw", Role: domain.RoleUser, TenantID: tenant.ID,
	})
	require.NoError(t, err)
	mustUser(t, s, "oz@other.test", domain.RoleUser, other.ID, "")
	qs, err := records.CreateQuizSet(ctx, domain.NewQuizSet{Name: "Q", TenantID: tenant.ID, CreatedBy: user.ID})
	require.NoError(t, err)
	_, err = records.SaveTestResult(ctx, domain.TestResult{
		UserID: user.ID, TenantID: tenant.ID, QuizSetID: qs.ID, Score: 1, TotalQuestions: 1,
	})
	require.NoError(t, err)

	tenants, err := records.ListTenants(ctx)
	require.NoError(t, err)
	assert.Len(t, tenants, 2)

	users, err := records.ListUsers(ctx, tenant.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, user.ID, users[0].ID)
	all, err := records.ListUsers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	sets, err := records.ListQuizSets(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, sets)

	results, err := records.ListTestResults(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	deleted, err := records.DeleteQuizSet(ctx, qs.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = records.DeleteUser(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, deleted)
}
