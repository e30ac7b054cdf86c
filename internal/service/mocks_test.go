package service

import (
	"context"

	"quiz-hub/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizSetRepository ---
type MockQuizSetRepository struct {
	mock.Mock
}

func (m *MockQuizSetRepository) CreateQuizSet(ctx context.Context, in domain.NewQuizSet) (*domain.QuizSet, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizSet), args.Error(1)
}

func (m *MockQuizSetRepository) GetQuizSetByID(ctx context.Context, id string) (*domain.QuizSet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizSet), args.Error(1)
}

func (m *MockQuizSetRepository) GetAllQuizSets(ctx context.Context, tenantID string) ([]*domain.QuizSet, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuizSet), args.Error(1)
}

func (m *MockQuizSetRepository) GetPublishedQuizzes(ctx context.Context, tenantID string) ([]*domain.QuizSet, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuizSet), args.Error(1)
}

func (m *MockQuizSetRepository) GetQuestionsByQuizSet(ctx context.Context, quizSetID string) ([]*domain.QuizQuestion, error) {
	args := m.Called(ctx, quizSetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuizQuestion), args.Error(1)
}

func (m *MockQuizSetRepository) UpdateQuizSet(ctx context.Context, id string, upd domain.QuizSetUpdate) (*domain.QuizSet, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizSet), args.Error(1)
}

func (m *MockQuizSetRepository) PublishQuiz(ctx context.Context, id string) (*domain.QuizSet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizSet), args.Error(1)
}

func (m *MockQuizSetRepository) UnpublishQuiz(ctx context.Context, id string) (*domain.QuizSet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizSet), args.Error(1)
}

func (m *MockQuizSetRepository) DeleteQuizSet(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// --- MockAttemptRepository ---
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) SaveTestResult(ctx context.Context, in domain.TestResult) (*domain.UserAttempt, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetAttemptByID(ctx context.Context, id string) (*domain.UserAttempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetTestResults(ctx context.Context, tenantID string) ([]*domain.UserAttempt, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UserAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetUserTestResults(ctx context.Context, userID string) ([]*domain.UserAttempt, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UserAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetAttemptAnswers(ctx context.Context, attemptID string) ([]*domain.AttemptAnswer, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AttemptAnswer), args.Error(1)
}

func (m *MockAttemptRepository) DeleteTestResult(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttemptRepository) GetUserBestScoreForQuiz(ctx context.Context, userID, quizSetID string) (*int, error) {
	args := m.Called(ctx, userID, quizSetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int), args.Error(1)
}

func (m *MockAttemptRepository) GetTestStatistics(ctx context.Context, tenantID string) (*domain.TestStatistics, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TestStatistics), args.Error(1)
}
