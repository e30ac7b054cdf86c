package remotedb

import (
	"context"
	"testing"
	"time"

	"quiz-hub/internal/config"
	"quiz-hub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordsUnwrapResults(t *testing.T) {
	ctx := context.Background()
	var records domain.RecordStore = NewRecords(newTestClient(configured()))

	tenants, err := records.ListTenants(ctx)
	require.NoError(t, err)
	require.Len(t, tenants, 1)

	tenant, err := records.CreateTenant(ctx, domain.NewTenant{Name: "Mirror"})
	require.NoError(t, err)
	assert.Equal(t, "Mirror", tenant.Name)

	_, err = records.CreateTenant(ctx, domain.NewTenant{})
	assert.ErrorIs(t, err, &domain.DomainError{Code: domain.CodeStorage})
	assert.Contains(t, err.Error(), "tenant name is required")

	_, err = records.SaveTestResult(ctx, domain.TestResult{UserID: "u", Score: 5, TotalQuestions: 2})
	assert.ErrorIs(t, err, &domain.DomainError{Code: domain.CodeStorage})

	deleted, err := records.DeleteQuizSet(ctx, "remote-quiz-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	results, err := records.ListTestResults(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRecordsPassCancellationThrough(t *testing.T) {
	c := newTestClient(config.RemoteConfig{MinLatency: time.Second, MaxLatency: time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRecords(c).ListUsers(ctx, "t1")
	assert.ErrorIs(t, err, context.Canceled)
}
