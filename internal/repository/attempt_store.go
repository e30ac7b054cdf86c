package repository

import (
	"context"
	"errors"
	"math"

	"quiz-hub/internal/domain"
	"quiz-hub/internal/util"

	"go.uber.org/zap"
)

// SaveTestResult records an attempt with its answers. An empty QuizSetID is
// attributed to the earliest published quiz set for default-type attempts
// and to domain.DefaultQuizSetID otherwise.
func (s *LocalStore) SaveTestResult(ctx context.Context, in domain.TestResult) (*domain.UserAttempt, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	quizType := in.QuizType
	if quizType == "" {
		quizType = domain.QuizTypeDefault
	}
	completedAt := in.CompletedAt
	if completedAt.IsZero() {
		completedAt = s.opts.Now()
	}

	a := &domain.UserAttempt{
		ID:             util.NewULID(),
		UserID:         in.UserID,
		TenantID:       in.TenantID,
		QuizSetID:      in.QuizSetID,
		Score:          in.Score,
		TotalQuestions: in.TotalQuestions,
		Percentage:     domain.Percentage(in.Score, in.TotalQuestions),
		TimeRemaining:  in.TimeRemaining,
		TimeTaken:      in.TimeTaken,
		CompletedAt:    completedAt,
		QuizType:       quizType,
	}
	answers := make([]*domain.AttemptAnswer, 0, len(in.Answers))
	for _, rec := range in.Answers {
		answers = append(answers, &domain.AttemptAnswer{
			ID:              util.NewULID(),
			AttemptID:       a.ID,
			QuestionID:      rec.QuestionID,
			SelectedAnswers: cloneStrings(rec.SelectedAnswers),
			IsCorrect:       rec.IsCorrect,
		})
	}

	err := s.mutate(ctx, "save_test_result", func(db *domain.Snapshot) error {
		if _, ok := db.Users[a.UserID]; !ok {
			return domain.NewUserNotFoundError(a.UserID)
		}
		if a.QuizSetID == "" {
			a.QuizSetID = attributeQuizSet(db, quizType)
		}
		db.UserAttempts[a.ID] = a
		for _, ans := range answers {
			db.AttemptAnswers[ans.ID] = ans
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Test result saved",
		zap.String("attempt_id", a.ID),
		zap.String("user_id", a.UserID),
		zap.String("quiz_set_id", a.QuizSetID),
		zap.Int("percentage", a.Percentage))
	return cloneAttempt(a), nil
}

// attributeQuizSet picks the earliest published quiz set for default
// attempts.
func attributeQuizSet(db *domain.Snapshot, quizType domain.QuizType) string {
	if quizType != domain.QuizTypeDefault {
		return domain.DefaultQuizSetID
	}
	var first *domain.QuizSet
	for _, qs := range db.QuizSets {
		if !qs.IsPublished {
			continue
		}
		if first == nil || qs.CreatedAt.Before(first.CreatedAt) ||
			(qs.CreatedAt.Equal(first.CreatedAt) && qs.ID < first.ID) {
			first = qs
		}
	}
	if first == nil {
		return domain.DefaultQuizSetID
	}
	return first.ID
}

// GetAttemptByID returns nil when the attempt does not exist.
func (s *LocalStore) GetAttemptByID(ctx context.Context, id string) (*domain.UserAttempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.data.UserAttempts[id]
	if !ok {
		return nil, nil
	}
	return cloneAttempt(a), nil
}

// GetTestResults returns all attempts, newest first, optionally for one
// tenant.
func (s *LocalStore) GetTestResults(ctx context.Context, tenantID string) ([]*domain.UserAttempt, error) {
	return s.listAttempts(func(a *domain.UserAttempt) bool {
		return tenantID == "" || a.TenantID == tenantID
	}), nil
}

// GetUserTestResults returns the attempts of one user, newest first.
func (s *LocalStore) GetUserTestResults(ctx context.Context, userID string) ([]*domain.UserAttempt, error) {
	return s.listAttempts(func(a *domain.UserAttempt) bool { return a.UserID == userID }), nil
}

func (s *LocalStore) listAttempts(keep func(*domain.UserAttempt) bool) []*domain.UserAttempt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.UserAttempt, 0)
	for _, a := range s.data.UserAttempts {
		if keep(a) {
			out = append(out, cloneAttempt(a))
		}
	}
	sortAttempts(out)
	return out
}

// GetAttemptAnswers returns the answers of an attempt in question display
// order when the questions still exist.
func (s *LocalStore) GetAttemptAnswers(ctx context.Context, attemptID string) ([]*domain.AttemptAnswer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.AttemptAnswer, 0)
	for _, ans := range s.data.AttemptAnswers {
		if ans.AttemptID == attemptID {
			out = append(out, cloneAnswer(ans))
		}
	}
	order := func(a *domain.AttemptAnswer) int {
		if q, ok := s.data.QuizQuestions[a.QuestionID]; ok {
			return q.OrderIndex
		}
		return math.MaxInt
	}
	sortAnswers(out, order)
	return out, nil
}

// DeleteTestResult removes an attempt and its answers.
func (s *LocalStore) DeleteTestResult(ctx context.Context, id string) (bool, error) {
	err := s.mutate(ctx, "delete_test_result", func(db *domain.Snapshot) error {
		if _, ok := db.UserAttempts[id]; !ok {
			return errNoRow
		}
		deleteAttemptLocked(db, id)
		return nil
	})
	if errors.Is(err, errNoRow) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func deleteAttemptLocked(db *domain.Snapshot, attemptID string) {
	for aid, ans := range db.AttemptAnswers {
		if ans.AttemptID == attemptID {
			delete(db.AttemptAnswers, aid)
		}
	}
	delete(db.UserAttempts, attemptID)
}

// GetUserBestScoreForQuiz returns the highest percentage the user reached on
// the quiz set, or nil when there are no attempts.
func (s *LocalStore) GetUserBestScoreForQuiz(ctx context.Context, userID, quizSetID string) (*int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var best *int
	for _, a := range s.data.UserAttempts {
		if a.UserID != userID || a.QuizSetID != quizSetID {
			continue
		}
		if best == nil || a.Percentage > *best {
			p := a.Percentage
			best = &p
		}
	}
	return best, nil
}

// GetTestStatistics aggregates attempts, optionally for one tenant.
func (s *LocalStore) GetTestStatistics(ctx context.Context, tenantID string) (*domain.TestStatistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := &domain.TestStatistics{}
	users := make(map[string]struct{})
	total := 0
	for _, a := range s.data.UserAttempts {
		if tenantID != "" && a.TenantID != tenantID {
			continue
		}
		stats.TotalAttempts++
		users[a.UserID] = struct{}{}
		total += a.Percentage
		stats.ScoreDistribution.Add(a.Percentage)
	}
	stats.UniqueUsers = len(users)
	if stats.TotalAttempts > 0 {
		stats.AverageScore = float64(total) / float64(stats.TotalAttempts)
	}
	return stats, nil
}
