package service

import (
	"context"

	"quiz-hub/internal/domain"

	"go.uber.org/zap"
)

// QuizSetInput is the request for a new quiz set. TenantID is only honoured
// for product admins; an empty tenant makes the set available to everyone.
type QuizSetInput struct {
	Name        string
	Description string
	Questions   []domain.QuestionInput
	IsPublished bool
	TenantID    string
}

// QuizService authors and lists quiz sets.
type QuizService interface {
	CreateQuizSet(ctx context.Context, actor Actor, in QuizSetInput) (*domain.QuizSet, error)
	UpdateQuizSet(ctx context.Context, actor Actor, id string, upd domain.QuizSetUpdate) (*domain.QuizSet, error)
	PublishQuiz(ctx context.Context, actor Actor, id string) (*domain.QuizSet, error)
	UnpublishQuiz(ctx context.Context, actor Actor, id string) (*domain.QuizSet, error)
	DeleteQuizSet(ctx context.Context, actor Actor, id string) error
	GetQuizSet(ctx context.Context, actor Actor, id string) (*domain.QuizSet, error)
	ListQuizSets(ctx context.Context, actor Actor) ([]*domain.QuizSet, error)
	GetPublishedQuizzes(ctx context.Context, actor Actor) ([]*domain.QuizSet, error)
}

type quizServiceImpl struct {
	quizzes domain.QuizSetRepository
	tenants domain.TenantRepository
	logger  *zap.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(quizzes domain.QuizSetRepository, tenants domain.TenantRepository, logger *zap.Logger) QuizService {
	return &quizServiceImpl{quizzes: quizzes, tenants: tenants, logger: logger}
}

func (s *quizServiceImpl) CreateQuizSet(ctx context.Context, actor Actor, in QuizSetInput) (*domain.QuizSet, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	tenantID := in.TenantID
	if !actor.IsProductAdmin() {
		tenantID = actor.TenantID
	}
	if tenantID != "" {
		tenant, err := s.tenants.GetTenantByID(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		if tenant == nil {
			return nil, domain.NewTenantNotFoundError(tenantID)
		}
		existing, err := s.quizzes.GetAllQuizSets(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		if !withinLimit(len(existing), tenant.Settings.MaxQuizzes) {
			return nil, domain.NewLimitExceededError("quiz sets", tenant.Settings.MaxQuizzes)
		}
	}
	return s.quizzes.CreateQuizSet(ctx, domain.NewQuizSet{
		Name:        in.Name,
		Description: in.Description,
		Questions:   in.Questions,
		CreatedBy:   actor.UserID,
		TenantID:    tenantID,
		IsPublished: in.IsPublished,
	})
}

// editable loads a quiz set the actor may change.
func (s *quizServiceImpl) editable(ctx context.Context, actor Actor, id string) (*domain.QuizSet, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	qs, err := s.quizzes.GetQuizSetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if qs == nil || !visibleTo(actor, qs) {
		return nil, domain.NewQuizSetNotFoundError(id)
	}
	if !actor.IsProductAdmin() && qs.TenantID != actor.TenantID {
		return nil, domain.NewForbiddenError("Shared quiz sets can only be changed by product administrators")
	}
	return qs, nil
}

func (s *quizServiceImpl) UpdateQuizSet(ctx context.Context, actor Actor, id string, upd domain.QuizSetUpdate) (*domain.QuizSet, error) {
	if _, err := s.editable(ctx, actor, id); err != nil {
		return nil, err
	}
	qs, err := s.quizzes.UpdateQuizSet(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if qs == nil {
		return nil, domain.NewQuizSetNotFoundError(id)
	}
	return qs, nil
}

func (s *quizServiceImpl) PublishQuiz(ctx context.Context, actor Actor, id string) (*domain.QuizSet, error) {
	if _, err := s.editable(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.quizzes.PublishQuiz(ctx, id)
}

func (s *quizServiceImpl) UnpublishQuiz(ctx context.Context, actor Actor, id string) (*domain.QuizSet, error) {
	if _, err := s.editable(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.quizzes.UnpublishQuiz(ctx, id)
}

func (s *quizServiceImpl) DeleteQuizSet(ctx context.Context, actor Actor, id string) error {
	if _, err := s.editable(ctx, actor, id); err != nil {
		return err
	}
	if _, err := s.quizzes.DeleteQuizSet(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Quiz set deleted", zap.String("quiz_set_id", id), zap.String("by", actor.UserID))
	return nil
}

func (s *quizServiceImpl) GetQuizSet(ctx context.Context, actor Actor, id string) (*domain.QuizSet, error) {
	qs, err := s.quizzes.GetQuizSetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if qs == nil || !visibleTo(actor, qs) {
		return nil, domain.NewQuizSetNotFoundError(id)
	}
	return qs, nil
}

// ListQuizSets returns what the actor may see: everything for product
// admins, the tenant's sets plus shared published ones for tenant admins, and
// only published sets for users.
func (s *quizServiceImpl) ListQuizSets(ctx context.Context, actor Actor) ([]*domain.QuizSet, error) {
	if actor.IsProductAdmin() {
		return s.quizzes.GetAllQuizSets(ctx, "")
	}
	if !actor.IsTenantAdmin() {
		return s.GetPublishedQuizzes(ctx, actor)
	}
	own, err := s.quizzes.GetAllQuizSets(ctx, ScopeFor(actor))
	if err != nil {
		return nil, err
	}
	shared, err := s.sharedPublished(ctx)
	if err != nil {
		return nil, err
	}
	return append(own, shared...), nil
}

// GetPublishedQuizzes returns the published sets in the actor's scope plus
// shared published sets.
func (s *quizServiceImpl) GetPublishedQuizzes(ctx context.Context, actor Actor) ([]*domain.QuizSet, error) {
	scope := ScopeFor(actor)
	if scope == "" {
		if actor.IsProductAdmin() {
			return s.quizzes.GetPublishedQuizzes(ctx, "")
		}
		return s.sharedPublished(ctx)
	}
	own, err := s.quizzes.GetPublishedQuizzes(ctx, scope)
	if err != nil {
		return nil, err
	}
	shared, err := s.sharedPublished(ctx)
	if err != nil {
		return nil, err
	}
	return append(own, shared...), nil
}

func (s *quizServiceImpl) sharedPublished(ctx context.Context) ([]*domain.QuizSet, error) {
	all, err := s.quizzes.GetPublishedQuizzes(ctx, "")
	if err != nil {
		return nil, err
	}
	shared := make([]*domain.QuizSet, 0, len(all))
	for _, qs := range all {
		if qs.TenantID == "" {
			shared = append(shared, qs)
		}
	}
	return shared, nil
}

// visibleTo applies tenant isolation to a single quiz set. Sets without a
// tenant are shared; users only ever see published sets.
func visibleTo(actor Actor, qs *domain.QuizSet) bool {
	if actor.IsProductAdmin() {
		return true
	}
	if qs.TenantID != "" && qs.TenantID != actor.TenantID {
		return false
	}
	if actor.IsTenantAdmin() {
		return qs.TenantID != "" || qs.IsPublished
	}
	return qs.IsPublished
}
