package repository

import (
	"context"
	"testing"

	"quiz-hub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveResult(t *testing.T, s *LocalStore, userID, tenantID, quizSetID string, score, total int) *domain.UserAttempt {
	t.Helper()
	a, err := s.SaveTestResult(context.Background(), domain.TestResult{
		UserID: userID, TenantID: tenantID, QuizSetID: quizSetID,
		Score: score, TotalQuestions: total, QuizType: domain.QuizTypeCustom,
	})
	require.NoError(t, err)
	return a
}

func TestSaveTestResult(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	tenant := mustTenant(t, s, "Acme", domain.TenantApproved)
	u := mustUser(t, s, "amy@acme.test", domain.RoleUser, tenant.ID, "")
	qs := mustQuizSet(t, s, "Q", tenant.ID, "author", 2)

	a, err := s.SaveTestResult(ctx, domain.TestResult{
		UserID: u.ID, TenantID: tenant.ID, QuizSetID: qs.ID,
		Score: 2, TotalQuestions: 3, TimeRemaining: 40, TimeTaken: 20, QuizType: domain.QuizTypeCustom,
		Answers: []domain.AnswerRecord{
			{QuestionID: qs.Questions[1].ID, SelectedAnswers: []string{"a"}, IsCorrect: true},
			{QuestionID: qs.Questions[0].ID, SelectedAnswers: []string{"b"}, IsCorrect: false},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 67, a.Percentage)
	assert.False(t, a.CompletedAt.IsZero())

	answers, err := s.GetAttemptAnswers(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, qs.Questions[0].ID, answers[0].QuestionID)
	assert.Equal(t, qs.Questions[1].ID, answers[1].QuestionID)

	_, err = s.SaveTestResult(ctx, domain.TestResult{UserID: "ghost", Score: 1, TotalQuestions: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.SaveTestResult(ctx, domain.TestResult{UserID: u.ID, Score: 3, TotalQuestions: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaveTestResultAttribution(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	tenant := mustTenant(t, s, "Acme", domain.TenantApproved)
	u := mustUser(t, s, "amy@acme.test", domain.RoleUser, tenant.ID, "")

	a, err := s.SaveTestResult(ctx, domain.TestResult{UserID: u.ID, QuizType: domain.QuizTypeDefault})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultQuizSetID, a.QuizSetID)

	older := mustQuizSet(t, s, "older", tenant.ID, "author", 1)
	newer := mustQuizSet(t, s, "newer", tenant.ID, "author", 1)
	_, err = s.PublishQuiz(ctx, newer.ID)
	require.NoError(t, err)
	_, err = s.PublishQuiz(ctx, older.ID)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		a, err = s.SaveTestResult(ctx, domain.TestResult{UserID: u.ID, QuizType: domain.QuizTypeDefault})
		require.NoError(t, err)
		assert.Equal(t, older.ID, a.QuizSetID)
	}

	a, err = s.SaveTestResult(ctx, domain.TestResult{UserID: u.ID, QuizType: domain.QuizTypeCustom})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultQuizSetID, a.QuizSetID)

	a, err = s.SaveTestResult(ctx, domain.TestResult{UserID: u.ID, QuizSetID: newer.ID})
	require.NoError(t, err)
	assert.Equal(t, newer.ID, a.QuizSetID)
}

func TestGetUserBestScoreForQuiz(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	tenant := mustTenant(t, s, "Acme", domain.TenantApproved)
	u := mustUser(t, s, "amy@acme.test", domain.RoleUser, tenant.ID, "")
	other := mustUser(t, s, "bob@acme.test", domain.RoleUser, tenant.ID, "")

	best, err := s.GetUserBestScoreForQuiz(ctx, u.ID, "quiz")
	require.NoError(t, err)
	assert.Nil(t, best)

	saveResult(t, s, u.ID, tenant.ID, "quiz", 1, 4)
	saveResult(t, s, u.ID, tenant.ID, "quiz", 3, 4)
	saveResult(t, s, u.ID, tenant.ID, "quiz", 2, 4)
	saveResult(t, s, u.ID, tenant.ID, "elsewhere", 4, 4)
	saveResult(t, s, other.ID, tenant.ID, "quiz", 4, 4)

	best, err = s.GetUserBestScoreForQuiz(ctx, u.ID, "quiz")
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, 75, *best)
}

func TestGetTestStatistics(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	a := mustTenant(t, s, "A", domain.TenantApproved)
	b := mustTenant(t, s, "B", domain.TenantApproved)
	ua := mustUser(t, s, "u@a.test", domain.RoleUser, a.ID, "")
	ua2 := mustUser(t, s, "v@a.test", domain.RoleUser, a.ID, "")
	ub := mustUser(t, s, "u@b.test", domain.RoleUser, b.ID, "")

	empty, err := s.GetTestStatistics(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, empty.TotalAttempts)
	assert.Zero(t, empty.AverageScore)

	saveResult(t, s, ua.ID, a.ID, "q", 10, 10) // 100
	saveResult(t, s, ua.ID, a.ID, "q", 7, 10)  // 70
	saveResult(t, s, ua2.ID, a.ID, "q", 5, 10) // 50
	saveResult(t, s, ub.ID, b.ID, "q", 1, 10)  // 10

	all, err := s.GetTestStatistics(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 4, all.TotalAttempts)
	assert.Equal(t, 3, all.UniqueUsers)
	assert.InDelta(t, 57.5, all.AverageScore, 0.001)
	assert.Equal(t, domain.ScoreDistribution{Excellent: 1, Good: 1, Average: 1, Poor: 1}, all.ScoreDistribution)

	scoped, err := s.GetTestStatistics(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, scoped.TotalAttempts)
	assert.Equal(t, 2, scoped.UniqueUsers)
	assert.Equal(t, 0, scoped.ScoreDistribution.Poor)
}

func TestResultListings(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	a := mustTenant(t, s, "A", domain.TenantApproved)
	b := mustTenant(t, s, "B", domain.TenantApproved)
	ua := mustUser(t, s, "u@a.test", domain.RoleUser, a.ID, "")
	ub := mustUser(t, s, "u@b.test", domain.RoleUser, b.ID, "")

	first := saveResult(t, s, ua.ID, a.ID, "q", 1, 2)
	second := saveResult(t, s, ua.ID, a.ID, "q", 2, 2)
	saveResult(t, s, ub.ID, b.ID, "q", 2, 2)

	mine, err := s.GetUserTestResults(ctx, ua.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID, "newest first")
	assert.Equal(t, first.ID, mine[1].ID)

	tenantA, err := s.GetTestResults(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, tenantA, 2)

	ok, err := s.DeleteTestResult(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	got, err := s.GetAttemptByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
