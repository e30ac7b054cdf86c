package seedmodels

import "quiz-hub/internal/domain"

// SeedQuizSet defines a quiz set in the JSON seed file.
type SeedQuizSet struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Published   bool                   `json:"published"`
	Questions   []domain.QuestionInput `json:"questions"`
}

// SeedAdmin defines a tenant's first administrator.
type SeedAdmin struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SeedTenant defines an approved tenant with its admin and quiz sets.
type SeedTenant struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Domain      string        `json:"domain"`
	Admin       SeedAdmin     `json:"admin"`
	QuizSets    []SeedQuizSet `json:"quiz_sets"`
}

// SeedFile is the top level of the seed file. Shared quiz sets belong to no
// tenant and are visible to every tenant once published.
type SeedFile struct {
	SharedQuizSets []SeedQuizSet `json:"shared_quiz_sets"`
	Tenants        []SeedTenant  `json:"tenants"`
}
