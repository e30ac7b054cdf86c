package dto

import (
	"time"

	"quiz-hub/internal/domain"
)

// SubmitAttemptRequest is a finished quiz run. Each answer may be a string
// or a list of strings; skipped questions are simply left out.
type SubmitAttemptRequest struct {
	QuizSetID     string                        `json:"quiz_set_id"`
	Answers       map[string]domain.AnswerValue `json:"answers"`
	TimeRemaining int                           `json:"time_remaining"`
	TimeTaken     int                           `json:"time_taken"`
	QuizType      string                        `json:"quiz_type"`
}

// AttemptResponse is the API view of an attempt.
type AttemptResponse struct {
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
	QuizType       string    `json:"quiz_type"`
}

func NewAttemptResponse(a *domain.UserAttempt) AttemptResponse {
	return AttemptResponse{
		ID:             a.ID,
		UserID:         a.UserID,
		TenantID:       a.TenantID,
		QuizSetID:      a.QuizSetID,
		Score:          a.Score,
		TotalQuestions: a.TotalQuestions,
		Percentage:     a.Percentage,
		TimeRemaining:  a.TimeRemaining,
		TimeTaken:      a.TimeTaken,
		CompletedAt:    a.CompletedAt,
		QuizType:       string(a.QuizType),
	}
}

func NewAttemptResponses(attempts []*domain.UserAttempt) []AttemptResponse {
	out := make([]AttemptResponse, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, NewAttemptResponse(a))
	}
	return out
}

// ReviewItemResponse is one question of an attempt review.
type ReviewItemResponse struct {
	Question  *domain.QuizQuestion `json:"question"`
	Selected  []string             `json:"selected"`
	Answered  bool                 `json:"answered"`
	IsCorrect bool                 `json:"is_correct"`
}

// AttemptReviewResponse is an attempt with its questions in display order.
type AttemptReviewResponse struct {
	Attempt     AttemptResponse      `json:"attempt"`
	QuizSetName string               `json:"quiz_set_name,omitempty"`
	Items       []ReviewItemResponse `json:"items"`
}

// BestScoreResponse holds the best percentage, null when never attempted.
type BestScoreResponse struct {
	QuizSetID  string `json:"quiz_set_id"`
	Percentage *int   `json:"percentage"`
}
