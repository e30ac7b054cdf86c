package repository

import (
	"context"
	"errors"

	"quiz-hub/internal/domain"
	"quiz-hub/internal/util"

	"go.uber.org/zap"
)

// CreateQuizSet inserts the set and one question row per input, keeping the
// input order as OrderIndex.
func (s *LocalStore) CreateQuizSet(ctx context.Context, in domain.NewQuizSet) (*domain.QuizSet, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.opts.Now()
	qs := &domain.QuizSet{
		ID:          util.NewULID(),
		Name:        in.Name,
		Description: in.Description,
		IsPublished: in.IsPublished,
		TenantID:    in.TenantID,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	questions := buildQuestions(qs.ID, in.Questions)

	var view *domain.QuizSet
	err := s.mutate(ctx, "create_quiz_set", func(db *domain.Snapshot) error {
		if qs.TenantID != "" {
			if _, ok := db.Tenants[qs.TenantID]; !ok {
				return domain.NewTenantNotFoundError(qs.TenantID)
			}
		}
		db.QuizSets[qs.ID] = qs
		for _, q := range questions {
			db.QuizQuestions[q.ID] = q
		}
		view = quizSetView(db, qs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Quiz set created",
		zap.String("quiz_set_id", qs.ID),
		zap.String("tenant_id", qs.TenantID),
		zap.Int("questions", len(questions)))
	return view, nil
}

func buildQuestions(quizSetID string, inputs []domain.QuestionInput) []*domain.QuizQuestion {
	out := make([]*domain.QuizQuestion, 0, len(inputs))
	for i, in := range inputs {
		out = append(out, &domain.QuizQuestion{
			ID:               util.NewULID(),
			QuizSetID:        quizSetID,
			ImageURL:         in.ImageURL,
			ImageDescription: in.ImageDescription,
			Question:         in.Question,
			ChoiceType:       in.ChoiceType,
			Options:          cloneStrings(in.Options),
			CorrectAnswer:    cloneStrings(in.CorrectAnswer),
			OrderIndex:       i,
		})
	}
	return out
}

// GetQuizSetByID returns the set with its ordered questions, or nil.
func (s *LocalStore) GetQuizSetByID(ctx context.Context, id string) (*domain.QuizSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	qs, ok := s.data.QuizSets[id]
	if !ok {
		return nil, nil
	}
	return quizSetView(s.data, qs), nil
}

// GetAllQuizSets returns every set, or only those of tenantID when it is not
// empty.
func (s *LocalStore) GetAllQuizSets(ctx context.Context, tenantID string) ([]*domain.QuizSet, error) {
	return s.listQuizSets(func(qs *domain.QuizSet) bool {
		return tenantID == "" || qs.TenantID == tenantID
	}), nil
}

// GetPublishedQuizzes is GetAllQuizSets restricted to published sets.
func (s *LocalStore) GetPublishedQuizzes(ctx context.Context, tenantID string) ([]*domain.QuizSet, error) {
	return s.listQuizSets(func(qs *domain.QuizSet) bool {
		return qs.IsPublished && (tenantID == "" || qs.TenantID == tenantID)
	}), nil
}

func (s *LocalStore) listQuizSets(keep func(*domain.QuizSet) bool) []*domain.QuizSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.QuizSet, 0)
	for _, qs := range s.data.QuizSets {
		if keep(qs) {
			out = append(out, quizSetView(s.data, qs))
		}
	}
	sortQuizSets(out)
	return out
}

// GetQuestionsByQuizSet returns the questions of a set ordered by OrderIndex.
func (s *LocalStore) GetQuestionsByQuizSet(ctx context.Context, quizSetID string) ([]*domain.QuizQuestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return questionsOf(s.data, quizSetID), nil
}

// UpdateQuizSet applies a partial update. A supplied question list replaces
// all existing questions. It returns nil when the set does not exist.
func (s *LocalStore) UpdateQuizSet(ctx context.Context, id string, upd domain.QuizSetUpdate) (*domain.QuizSet, error) {
	if upd.Name != nil && *upd.Name == "" {
		return nil, domain.NewInvalidInputError("quiz set name is required")
	}
	if upd.Questions != nil {
		if err := domain.ValidateQuestions(*upd.Questions); err != nil {
			return nil, err
		}
	}

	var view *domain.QuizSet
	err := s.mutate(ctx, "update_quiz_set", func(db *domain.Snapshot) error {
		qs, ok := db.QuizSets[id]
		if !ok {
			return errNoRow
		}
		if upd.Name != nil {
			qs.Name = *upd.Name
		}
		if upd.Description != nil {
			qs.Description = *upd.Description
		}
		if upd.IsPublished != nil {
			qs.IsPublished = *upd.IsPublished
		}
		if upd.Questions != nil {
			deleteQuestionsLocked(db, qs.ID)
			// Rows reference the stored key, never the caller's string.
			for _, q := range buildQuestions(qs.ID, *upd.Questions) {
				db.QuizQuestions[q.ID] = q
			}
		}
		qs.UpdatedAt = s.opts.Now()
		view = quizSetView(db, qs)
		return nil
	})
	if errors.Is(err, errNoRow) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return view, nil
}

// PublishQuiz marks the set published.
func (s *LocalStore) PublishQuiz(ctx context.Context, id string) (*domain.QuizSet, error) {
	published := true
	return s.UpdateQuizSet(ctx, id, domain.QuizSetUpdate{IsPublished: &published})
}

// UnpublishQuiz hides the set from takers.
func (s *LocalStore) UnpublishQuiz(ctx context.Context, id string) (*domain.QuizSet, error) {
	published := false
	return s.UpdateQuizSet(ctx, id, domain.QuizSetUpdate{IsPublished: &published})
}

// DeleteQuizSet removes the set's questions and then the set.
func (s *LocalStore) DeleteQuizSet(ctx context.Context, id string) (bool, error) {
	removed := 0
	err := s.mutate(ctx, "delete_quiz_set", func(db *domain.Snapshot) error {
		if _, ok := db.QuizSets[id]; !ok {
			return errNoRow
		}
		removed = deleteQuestionsLocked(db, id)
		delete(db.QuizSets, id)
		return nil
	})
	if errors.Is(err, errNoRow) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.logger.Info("Quiz set deleted", zap.String("quiz_set_id", id), zap.Int("questions", removed))
	return true, nil
}

func deleteQuestionsLocked(db *domain.Snapshot, quizSetID string) int {
	n := 0
	for qid, q := range db.QuizQuestions {
		if q.QuizSetID == quizSetID {
			delete(db.QuizQuestions, qid)
			n++
		}
	}
	return n
}
