package service

import (
	"context"
	"time"

	"quiz-hub/internal/domain"

	"go.uber.org/zap"
)

// SubmissionInput is a finished (or timed out) run through a quiz set.
// Answers maps question IDs to the selected options; questions without an
// entry were skipped.
type SubmissionInput struct {
	QuizSetID     string
	Answers       map[string][]string
	TimeRemaining int
	TimeTaken     int
	QuizType      domain.QuizType
}

// ReviewItem pairs a question with what the user chose.
type ReviewItem struct {
	Question  *domain.QuizQuestion
	Selected  []string
	Answered  bool
	IsCorrect bool
}

// AttemptReview is an attempt with its questions in display order.
type AttemptReview struct {
	Attempt *domain.UserAttempt
	QuizSet *domain.QuizSet
	Items   []ReviewItem
}

// AttemptService grades submissions and reports results.
type AttemptService interface {
	SubmitAttempt(ctx context.Context, actor Actor, in SubmissionInput) (*AttemptReview, error)
	GetAttemptReview(ctx context.Context, actor Actor, attemptID string) (*AttemptReview, error)
	ListResults(ctx context.Context, actor Actor) ([]*domain.UserAttempt, error)
	BestScore(ctx context.Context, actor Actor, quizSetID string) (*int, error)
	Statistics(ctx context.Context, actor Actor) (*domain.TestStatistics, error)
	DeleteResult(ctx context.Context, actor Actor, attemptID string) error
}

type attemptServiceImpl struct {
	attempts domain.AttemptRepository
	quizzes  domain.QuizSetRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(attempts domain.AttemptRepository, quizzes domain.QuizSetRepository, logger *zap.Logger) AttemptService {
	return &attemptServiceImpl{attempts: attempts, quizzes: quizzes, logger: logger, now: time.Now}
}

// SubmitAttempt grades the answered questions only: skipped questions count
// neither as correct nor toward the total.
func (s *attemptServiceImpl) SubmitAttempt(ctx context.Context, actor Actor, in SubmissionInput) (*AttemptReview, error) {
	if in.QuizSetID == "" {
		return nil, domain.NewInvalidInputError("quiz_set_id is required")
	}
	qs, err := s.quizzes.GetQuizSetByID(ctx, in.QuizSetID)
	if err != nil {
		return nil, err
	}
	if qs == nil || !visibleTo(actor, qs) {
		return nil, domain.NewQuizSetNotFoundError(in.QuizSetID)
	}

	known := make(map[string]struct{}, len(qs.Questions))
	for _, q := range qs.Questions {
		known[q.ID] = struct{}{}
	}
	for qid := range in.Answers {
		if _, ok := known[qid]; !ok {
			return nil, domain.NewInvalidInputError("answer for unknown question: " + qid)
		}
	}

	items, records, score := grade(qs.Questions, in.Answers)

	quizType := in.QuizType
	if quizType == "" {
		quizType = domain.QuizTypeCustom
		if qs.TenantID == "" {
			quizType = domain.QuizTypeDefault
		}
	}

	attempt, err := s.attempts.SaveTestResult(ctx, domain.TestResult{
		UserID:         actor.UserID,
		TenantID:       actor.TenantID,
		QuizSetID:      qs.ID,
		Score:          score,
		TotalQuestions: len(records),
		TimeRemaining:  in.TimeRemaining,
		TimeTaken:      in.TimeTaken,
		QuizType:       quizType,
		CompletedAt:    s.now(),
		Answers:        records,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Attempt submitted",
		zap.String("attempt_id", attempt.ID),
		zap.String("quiz_set_id", qs.ID),
		zap.Int("score", attempt.Score),
		zap.Int("answered", attempt.TotalQuestions),
		zap.Int("questions", len(qs.Questions)))
	return &AttemptReview{Attempt: attempt, QuizSet: qs, Items: items}, nil
}

func grade(questions []*domain.QuizQuestion, answers map[string][]string) ([]ReviewItem, []domain.AnswerRecord, int) {
	items := make([]ReviewItem, 0, len(questions))
	records := make([]domain.AnswerRecord, 0, len(answers))
	score := 0
	for _, q := range questions {
		selected := answers[q.ID]
		item := ReviewItem{Question: q, Selected: selected}
		if len(selected) > 0 {
			item.Answered = true
			item.IsCorrect = q.IsCorrect(selected)
			if item.IsCorrect {
				score++
			}
			records = append(records, domain.AnswerRecord{
				QuestionID:      q.ID,
				SelectedAnswers: selected,
				IsCorrect:       item.IsCorrect,
			})
		}
		items = append(items, item)
	}
	return items, records, score
}

// canSeeAttempt lets users see their own attempts and admins those of their
// tenant.
func canSeeAttempt(actor Actor, a *domain.UserAttempt) bool {
	if actor.IsProductAdmin() || a.UserID == actor.UserID {
		return true
	}
	return actor.IsTenantAdmin() && a.TenantID != "" && a.TenantID == actor.TenantID
}

func (s *attemptServiceImpl) GetAttemptReview(ctx context.Context, actor Actor, attemptID string) (*AttemptReview, error) {
	attempt, err := s.attempts.GetAttemptByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt == nil || !canSeeAttempt(actor, attempt) {
		return nil, domain.NewNotFoundError("Attempt not found with ID: " + attemptID)
	}
	answers, err := s.attempts.GetAttemptAnswers(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	byQuestion := make(map[string]*domain.AttemptAnswer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	review := &AttemptReview{Attempt: attempt}
	qs, err := s.quizzes.GetQuizSetByID(ctx, attempt.QuizSetID)
	if err != nil {
		return nil, err
	}
	if qs == nil {
		// The quiz set is gone; only the raw answers remain.
		for _, a := range answers {
			review.Items = append(review.Items, ReviewItem{
				Question:  &domain.QuizQuestion{ID: a.QuestionID},
				Selected:  a.SelectedAnswers,
				Answered:  true,
				IsCorrect: a.IsCorrect,
			})
		}
		return review, nil
	}
	review.QuizSet = qs
	for _, q := range qs.Questions {
		item := ReviewItem{Question: q}
		if a, ok := byQuestion[q.ID]; ok {
			item.Selected = a.SelectedAnswers
			item.Answered = true
			item.IsCorrect = a.IsCorrect
		}
		review.Items = append(review.Items, item)
	}
	return review, nil
}

// ListResults returns a user's own attempts, a tenant's attempts for tenant
// admins and all attempts for product admins.
func (s *attemptServiceImpl) ListResults(ctx context.Context, actor Actor) ([]*domain.UserAttempt, error) {
	if !actor.IsProductAdmin() && !actor.IsTenantAdmin() {
		return s.attempts.GetUserTestResults(ctx, actor.UserID)
	}
	return s.attempts.GetTestResults(ctx, ScopeFor(actor))
}

func (s *attemptServiceImpl) BestScore(ctx context.Context, actor Actor, quizSetID string) (*int, error) {
	return s.attempts.GetUserBestScoreForQuiz(ctx, actor.UserID, quizSetID)
}

func (s *attemptServiceImpl) Statistics(ctx context.Context, actor Actor) (*domain.TestStatistics, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.attempts.GetTestStatistics(ctx, ScopeFor(actor))
}

func (s *attemptServiceImpl) DeleteResult(ctx context.Context, actor Actor, attemptID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	attempt, err := s.attempts.GetAttemptByID(ctx, attemptID)
	if err != nil {
		return err
	}
	if attempt == nil || !canSeeAttempt(actor, attempt) {
		return domain.NewNotFoundError("Attempt not found with ID: " + attemptID)
	}
	_, err = s.attempts.DeleteTestResult(ctx, attemptID)
	return err
}
