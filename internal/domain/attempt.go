package domain

import (
	"context"
	"math"
	"time"
)

// QuizType distinguishes the built-in quiz from tenant-authored ones.
type QuizType string

const (
	QuizTypeDefault QuizType = "default"
	QuizTypeCustom  QuizType = "custom"
)

// DefaultQuizSetID is recorded when a default-type attempt cannot be
// attributed to any published quiz set. It never matches a real quiz set.
const DefaultQuizSetID = "default"

// UserAttempt is a completed or time-expired run through a quiz set.
type UserAttempt struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	TenantID       string    `json:"tenant_id,omitempty"`
	QuizSetID      string    `json:"quiz_set_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     int       `json:"percentage"`
	TimeRemaining  int       `json:"time_remaining"`
	TimeTaken      int       `json:"time_taken"`
	CompletedAt    time.Time `json:"completed_at"`
	QuizType       QuizType  `json:"quiz_type"`
}

// AttemptAnswer is the user's selection for one question of an attempt.
type AttemptAnswer struct {
	ID              string   `json:"id"`
	AttemptID       string   `json:"attempt_id"`
	QuestionID      string   `json:"question_id"`
	SelectedAnswers []string `json:"selected_answers"`
	IsCorrect       bool     `json:"is_correct"`
}

// AnswerRecord is an answer row supplied with a test result.
type AnswerRecord struct {
	QuestionID      string
	SelectedAnswers []string
	IsCorrect       bool
}

// TestResult is the input for saving an attempt.
type TestResult struct {
	UserID         string
	TenantID       string
	QuizSetID      string
	Score          int
	TotalQuestions int
	TimeRemaining  int
	TimeTaken      int
	QuizType       QuizType
	CompletedAt    time.Time
	Answers        []AnswerRecord
}

// Validate validates the result input
func (r *TestResult) Validate() error {
	if r.UserID == "" {
		return NewInvalidInputError("user_id is required")
	}
	if r.Score < 0 || r.TotalQuestions < 0 {
		return NewInvalidInputError("score and total questions cannot be negative")
	}
	if r.Score > r.TotalQuestions {
		return NewInvalidInputError("score cannot exceed total questions")
	}
	if r.TimeRemaining < 0 || r.TimeTaken < 0 {
		return NewInvalidInputError("times cannot be negative")
	}
	if r.QuizType != "" && r.QuizType != QuizTypeDefault && r.QuizType != QuizTypeCustom {
		return NewInvalidInputError("unknown quiz type: " + string(r.QuizType))
	}
	return nil
}

// Percentage returns round(score/total*100), or 0 when nothing was answered.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// ScoreDistribution buckets attempts by percentage.
type ScoreDistribution struct {
	Excellent int `json:"excellent"` // >= 90
	Good      int `json:"good"`      // 70-89
	Average   int `json:"average"`   // 50-69
	Poor      int `json:"poor"`      // < 50
}

// Add counts a percentage into its bucket.
func (d *ScoreDistribution) Add(percentage int) {
	switch {
	case percentage >= 90:
		d.Excellent++
	case percentage >= 70:
		d.Good++
	case percentage >= 50:
		d.Average++
	default:
		d.Poor++
	}
}

// TestStatistics aggregates attempts.
type TestStatistics struct {
	TotalAttempts     int               `json:"total_attempts"`
	UniqueUsers       int               `json:"unique_users"`
	AverageScore      float64           `json:"average_score"`
	ScoreDistribution ScoreDistribution `json:"score_distribution"`
}

// AttemptRepository defines attempt persistence and aggregates.
type AttemptRepository interface {
	SaveTestResult(ctx context.Context, in TestResult) (*UserAttempt, error)
	GetAttemptByID(ctx context.Context, id string) (*UserAttempt, error)
	GetTestResults(ctx context.Context, tenantID string) ([]*UserAttempt, error)
	GetUserTestResults(ctx context.Context, userID string) ([]*UserAttempt, error)
	GetAttemptAnswers(ctx context.Context, attemptID string) ([]*AttemptAnswer, error)
	DeleteTestResult(ctx context.Context, id string) (bool, error)
	GetUserBestScoreForQuiz(ctx context.Context, userID, quizSetID string) (*int, error)
	GetTestStatistics(ctx context.Context, tenantID string) (*TestStatistics, error)
}
