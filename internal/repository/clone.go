package repository

import (
	"sort"

	"quiz-hub/internal/domain"
)

// Rows handed to callers are copies so they cannot change stored state.

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneTenant(t *domain.Tenant) *domain.Tenant {
	c := *t
	if t.ApprovedAt != nil {
		at := *t.ApprovedAt
		c.ApprovedAt = &at
	}
	return &c
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func cloneQuestion(q *domain.QuizQuestion) *domain.QuizQuestion {
	c := *q
	c.Options = cloneStrings(q.Options)
	c.CorrectAnswer = cloneStrings(q.CorrectAnswer)
	return &c
}

func cloneAttempt(a *domain.UserAttempt) *domain.UserAttempt {
	c := *a
	return &c
}

func cloneAnswer(a *domain.AttemptAnswer) *domain.AttemptAnswer {
	c := *a
	c.SelectedAnswers = cloneStrings(a.SelectedAnswers)
	return &c
}

// questionsOf returns copies of the questions of a quiz set ordered by
// OrderIndex.
func questionsOf(db *domain.Snapshot, quizSetID string) []*domain.QuizQuestion {
	var out []*domain.QuizQuestion
	for _, q := range db.QuizQuestions {
		if q.QuizSetID == quizSetID {
			out = append(out, cloneQuestion(q))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderIndex != out[j].OrderIndex {
			return out[i].OrderIndex < out[j].OrderIndex
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// quizSetView returns a copy of the set with its questions attached.
func quizSetView(db *domain.Snapshot, qs *domain.QuizSet) *domain.QuizSet {
	c := *qs
	c.Questions = questionsOf(db, qs.ID)
	return &c
}

// sortTenants orders rows oldest first with the ID as tie breaker.
func sortTenants(rows []*domain.Tenant) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.Before(rows[j].CreatedAt)
		}
		return rows[i].ID < rows[j].ID
	})
}

func sortUsers(rows []*domain.User) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.Before(rows[j].CreatedAt)
		}
		return rows[i].ID < rows[j].ID
	})
}

func sortQuizSets(rows []*domain.QuizSet) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.Before(rows[j].CreatedAt)
		}
		return rows[i].ID < rows[j].ID
	})
}

// sortAttempts orders attempts newest first.
func sortAttempts(rows []*domain.UserAttempt) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CompletedAt.Equal(rows[j].CompletedAt) {
			return rows[i].CompletedAt.After(rows[j].CompletedAt)
		}
		return rows[i].ID > rows[j].ID
	})
}

func sortAnswers(rows []*domain.AttemptAnswer, order func(*domain.AttemptAnswer) int) {
	sort.Slice(rows, func(i, j int) bool {
		oi, oj := order(rows[i]), order(rows[j])
		if oi != oj {
			return oi < oj
		}
		return rows[i].ID < rows[j].ID
	})
}
