package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ChoiceType selects how a question is answered.
type ChoiceType string

const (
	// ChoiceRadio questions have exactly one correct option.
	ChoiceRadio ChoiceType = "radio"
	// ChoiceMultiple questions are answered with a set of options.
	ChoiceMultiple ChoiceType = "multiplechoice"
)

// QuizSet is an ordered collection of questions owned by a tenant.
type QuizSet struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Questions   []*QuizQuestion `json:"questions,omitempty"`
	IsPublished bool            `json:"is_published"`
	TenantID    string          `json:"tenant_id,omitempty"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// QuizQuestion is a single question row of a quiz set.
type QuizQuestion struct {
	ID               string     `json:"id"`
	QuizSetID        string     `json:"quiz_set_id"`
	ImageURL         string     `json:"image_url"`
	ImageDescription string     `json:"image_description"`
	Question         string     `json:"question"`
	ChoiceType       ChoiceType `json:"choice_type"`
	Options          []string   `json:"options"`
	CorrectAnswer    []string   `json:"correct_answer"`
	OrderIndex       int        `json:"order_index"`
}

type quizQuestionJSON struct {
	ID               string          `json:"id"`
	QuizSetID        string          `json:"quiz_set_id"`
	ImageURL         string          `json:"image_url"`
	ImageDescription string          `json:"image_description"`
	Question         string          `json:"question"`
	ChoiceType       ChoiceType      `json:"choice_type"`
	Options          []string        `json:"options"`
	CorrectAnswer    json.RawMessage `json:"correct_answer"`
	OrderIndex       int             `json:"order_index"`
}

// MarshalJSON writes correct_answer as a string for radio questions and as
// an array otherwise.
func (q QuizQuestion) MarshalJSON() ([]byte, error) {
	var (
		answer []byte
		err    error
	)
	if q.ChoiceType == ChoiceRadio && len(q.CorrectAnswer) == 1 {
		answer, err = json.Marshal(q.CorrectAnswer[0])
	} else {
		answers := q.CorrectAnswer
		if answers == nil {
			answers = []string{}
		}
		answer, err = json.Marshal(answers)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(quizQuestionJSON{
		ID:               q.ID,
		QuizSetID:        q.QuizSetID,
		ImageURL:         q.ImageURL,
		ImageDescription: q.ImageDescription,
		Question:         q.Question,
		ChoiceType:       q.ChoiceType,
		Options:          q.Options,
		CorrectAnswer:    answer,
		OrderIndex:       q.OrderIndex,
	})
}

// UnmarshalJSON accepts correct_answer as either a string or an array.
func (q *QuizQuestion) UnmarshalJSON(data []byte) error {
	var raw quizQuestionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	answers, err := decodeAnswerValue(raw.CorrectAnswer)
	if err != nil {
		return fmt.Errorf("correct_answer: %w", err)
	}
	*q = QuizQuestion{
		ID:               raw.ID,
		QuizSetID:        raw.QuizSetID,
		ImageURL:         raw.ImageURL,
		ImageDescription: raw.ImageDescription,
		Question:         raw.Question,
		ChoiceType:       raw.ChoiceType,
		Options:          raw.Options,
		CorrectAnswer:    answers,
		OrderIndex:       raw.OrderIndex,
	}
	return nil
}

// decodeAnswerValue reads a string-or-array JSON value.
func decodeAnswerValue(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}, nil
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err != nil {
		return nil, err
	}
	return many, nil
}

// AnswerValue is a selection that may be sent as a single string or a list.
type AnswerValue []string

// UnmarshalJSON implements json.Unmarshaler.
func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	v, err := decodeAnswerValue(data)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// QuestionInput describes a question supplied when creating or replacing a
// quiz set's questions. Its position in the list becomes the order index.
type QuestionInput struct {
	ImageURL         string      `json:"image_url"`
	ImageDescription string      `json:"image_description"`
	Question         string      `json:"question"`
	ChoiceType       ChoiceType  `json:"choice_type"`
	Options          []string    `json:"options"`
	CorrectAnswer    AnswerValue `json:"correct_answer"`
}

// Validate checks the question shape and that the answer is a subset of the options.
func (q *QuestionInput) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return NewInvalidInputError("question text is required")
	}
	if len(q.Options) < 2 {
		return NewInvalidInputError("a question needs at least two options")
	}
	seen := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		if _, dup := seen[opt]; dup {
			return NewInvalidInputError("duplicate option: " + opt)
		}
		seen[opt] = struct{}{}
	}
	switch q.ChoiceType {
	case ChoiceRadio:
		if len(q.CorrectAnswer) != 1 {
			return NewInvalidInputError("radio questions need exactly one correct answer")
		}
	case ChoiceMultiple:
		if len(q.CorrectAnswer) == 0 {
			return NewInvalidInputError("multiple choice questions need at least one correct answer")
		}
	default:
		return NewInvalidInputError("unknown choice type: " + string(q.ChoiceType))
	}
	for _, ans := range q.CorrectAnswer {
		if _, ok := seen[ans]; !ok {
			return NewInvalidInputError("correct answer is not one of the options: " + ans)
		}
	}
	return nil
}

// IsCorrect grades a selection. Radio questions compare the single choice;
// multiple choice questions require the exact set, order ignored.
func (q *QuizQuestion) IsCorrect(selected []string) bool {
	if len(selected) == 0 {
		return false
	}
	if q.ChoiceType == ChoiceRadio {
		return len(selected) == 1 && len(q.CorrectAnswer) == 1 && selected[0] == q.CorrectAnswer[0]
	}
	want := make(map[string]struct{}, len(q.CorrectAnswer))
	for _, a := range q.CorrectAnswer {
		want[a] = struct{}{}
	}
	got := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		got[s] = struct{}{}
	}
	if len(got) != len(want) {
		return false
	}
	for s := range got {
		if _, ok := want[s]; !ok {
			return false
		}
	}
	return true
}

// NewQuizSet is the input for creating a quiz set.
type NewQuizSet struct {
	Name        string
	Description string
	Questions   []QuestionInput
	CreatedBy   string
	TenantID    string
	IsPublished bool
}

// Validate validates the quiz set and every question in it
func (q *NewQuizSet) Validate() error {
	if strings.TrimSpace(q.Name) == "" {
		return NewInvalidInputError("quiz set name is required")
	}
	if q.CreatedBy == "" {
		return NewInvalidInputError("created_by is required")
	}
	return ValidateQuestions(q.Questions)
}

// ValidateQuestions validates each question, reporting the failing position.
func ValidateQuestions(questions []QuestionInput) error {
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			var de *DomainError
			if errors.As(err, &de) {
				return NewInvalidInputError(fmt.Sprintf("question %d: %s", i+1, de.Message))
			}
			return err
		}
	}
	return nil
}

// QuizSetUpdate is a partial update. A non-nil Questions slice replaces every
// question of the set.
type QuizSetUpdate struct {
	Name        *string
	Description *string
	IsPublished *bool
	Questions   *[]QuestionInput
}

// QuizSetRepository defines quiz set persistence.
type QuizSetRepository interface {
	CreateQuizSet(ctx context.Context, in NewQuizSet) (*QuizSet, error)
	GetQuizSetByID(ctx context.Context, id string) (*QuizSet, error)
	GetAllQuizSets(ctx context.Context, tenantID string) ([]*QuizSet, error)
	GetPublishedQuizzes(ctx context.Context, tenantID string) ([]*QuizSet, error)
	GetQuestionsByQuizSet(ctx context.Context, quizSetID string) ([]*QuizQuestion, error)
	UpdateQuizSet(ctx context.Context, id string, upd QuizSetUpdate) (*QuizSet, error)
	PublishQuiz(ctx context.Context, id string) (*QuizSet, error)
	UnpublishQuiz(ctx context.Context, id string) (*QuizSet, error)
	DeleteQuizSet(ctx context.Context, id string) (bool, error)
}
