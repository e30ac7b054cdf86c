package remotedb

import (
	"context"

	"quiz-hub/internal/domain"
)

// Records exposes the client's table endpoints as a domain.RecordStore. A
// failed Result becomes a storage error carrying the remote message.
type Records struct {
	client *Client
}

var _ domain.RecordStore = (*Records)(nil)

func NewRecords(client *Client) *Records {
	return &Records{client: client}
}

func unwrap[T any](op string, res Result[T], err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	if !res.Success {
		var zero T
		return zero, domain.NewStorageError("remote "+op+" failed: "+res.Error, nil)
	}
	return res.Data, nil
}

func (r *Records) ListTenants(ctx context.Context) ([]*domain.Tenant, error) {
	res, err := r.client.ListTenants(ctx)
	return unwrap("list tenants", res, err)
}

func (r *Records) CreateTenant(ctx context.Context, in domain.NewTenant) (*domain.Tenant, error) {
	res, err := r.client.CreateTenant(ctx, in)
	return unwrap("create tenant", res, err)
}

func (r *Records) DeleteTenant(ctx context.Context, id string) (bool, error) {
	res, err := r.client.DeleteTenant(ctx, id)
	return unwrap("delete tenant", res, err)
}

func (r *Records) ListUsers(ctx context.Context, tenantID string) ([]*domain.User, error) {
	res, err := r.client.ListUsers(ctx, tenantID)
	return unwrap("list users", res, err)
}

func (r *Records) CreateUser(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	res, err := r.client.CreateUser(ctx, in)
	return unwrap("create user", res, err)
}

func (r *Records) DeleteUser(ctx context.Context, id string) (bool, error) {
	res, err := r.client.DeleteUser(ctx, id)
	return unwrap("delete user", res, err)
}

func (r *Records) ListQuizSets(ctx context.Context, tenantID string) ([]*domain.QuizSet, error) {
	res, err := r.client.ListQuizSets(ctx, tenantID)
	return unwrap("list quiz sets", res, err)
}

func (r *Records) CreateQuizSet(ctx context.Context, in domain.NewQuizSet) (*domain.QuizSet, error) {
	res, err := r.client.CreateQuizSet(ctx, in)
	return unwrap("create quiz set", res, err)
}

func (r *Records) DeleteQuizSet(ctx context.Context, id string) (bool, error) {
	res, err := r.client.DeleteQuizSet(ctx, id)
	return unwrap("delete quiz set", res, err)
}

func (r *Records) ListTestResults(ctx context.Context, tenantID string) ([]*domain.UserAttempt, error) {
	res, err := r.client.ListTestResults(ctx, tenantID)
	return unwrap("list test results", res, err)
}

func (r *Records) SaveTestResult(ctx context.Context, in domain.TestResult) (*domain.UserAttempt, error) {
	res, err := r.client.SaveTestResult(ctx, in)
	return unwrap("save test result", res, err)
}
