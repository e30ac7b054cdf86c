package dto

import (
	"time"

	"quiz-hub/internal/domain"
)

// CreateQuizSetRequest represents a new quiz set with its questions.
// @Description Request body for creating a quiz set
type CreateQuizSetRequest struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Questions   []domain.QuestionInput `json:"questions"`
	IsPublished bool                   `json:"is_published"`
	TenantID    string                 `json:"tenant_id"`
}

// UpdateQuizSetRequest is a partial update. A present questions list
// replaces all questions.
type UpdateQuizSetRequest struct {
	Name        *string                 `json:"name"`
	Description *string                 `json:"description"`
	IsPublished *bool                   `json:"is_published"`
	Questions   *[]domain.QuestionInput `json:"questions"`
}

// QuizSetResponse represents a quiz set in the API response. Questions keep
// their correct answers for administrators only.
type QuizSetResponse struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	IsPublished   bool                   `json:"is_published"`
	TenantID      string                 `json:"tenant_id,omitempty"`
	CreatedBy     string                 `json:"created_by"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	QuestionCount int                    `json:"question_count"`
	Questions     []*domain.QuizQuestion `json:"questions,omitempty"`
}

// NewQuizSetResponse converts a quiz set. When withAnswers is false the
// correct answers are stripped so takers cannot read them.
func NewQuizSetResponse(qs *domain.QuizSet, withQuestions, withAnswers bool) QuizSetResponse {
	resp := QuizSetResponse{
		ID:            qs.ID,
		Name:          qs.Name,
		Description:   qs.Description,
		IsPublished:   qs.IsPublished,
		TenantID:      qs.TenantID,
		CreatedBy:     qs.CreatedBy,
		CreatedAt:     qs.CreatedAt,
		UpdatedAt:     qs.UpdatedAt,
		QuestionCount: len(qs.Questions),
	}
	if !withQuestions {
		return resp
	}
	resp.Questions = make([]*domain.QuizQuestion, 0, len(qs.Questions))
	for _, q := range qs.Questions {
		c := *q
		if !withAnswers {
			c.CorrectAnswer = nil
		}
		resp.Questions = append(resp.Questions, &c)
	}
	return resp
}

// NewQuizSetResponses converts a list without questions.
func NewQuizSetResponses(sets []*domain.QuizSet) []QuizSetResponse {
	out := make([]QuizSetResponse, 0, len(sets))
	for _, qs := range sets {
		out = append(out, NewQuizSetResponse(qs, false, false))
	}
	return out
}
