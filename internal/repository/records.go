package repository

import (
	"context"

	"quiz-hub/internal/domain"
)

var _ domain.RecordStore = (*LocalStore)(nil)

func (s *LocalStore) ListTenants(ctx context.Context) ([]*domain.Tenant, error) {
	return s.GetAllTenants(ctx)
}

func (s *LocalStore) ListUsers(ctx context.Context, tenantID string) ([]*domain.User, error) {
	return s.GetAllUsers(ctx, tenantID)
}

func (s *LocalStore) ListQuizSets(ctx context.Context, tenantID string) ([]*domain.QuizSet, error) {
	return s.GetAllQuizSets(ctx, tenantID)
}

func (s *LocalStore) ListTestResults(ctx context.Context, tenantID string) ([]*domain.UserAttempt, error) {
	return s.GetTestResults(ctx, tenantID)
}
