package remotedb

import (
	"context"

	"quiz-hub/internal/domain"
	"quiz-hub/internal/util"
)

// The CRUD endpoints mirror the local store's entity shapes. Reads return a
// fixed sample; writes echo the request back with server-assigned fields.

func (c *Client) sampleTenant() *domain.Tenant {
	now := c.now()
	return &domain.Tenant{
		ID:          "remote-tenant-1",
		Name:        "Remote Sample Org",
		Description: "Served by the remote database",
		Status:      domain.TenantApproved,
		IsActive:    true,
		CreatedBy:   "system",
		CreatedAt:   now,
		UpdatedAt:   now,
		Settings:    domain.DefaultTenantSettings(),
	}
}

func (c *Client) ListTenants(ctx context.Context) (Result[[]*domain.Tenant], error) {
	return call(ctx, c, "list_tenants", PathTenants, func() Result[[]*domain.Tenant] {
		return OK([]*domain.Tenant{c.sampleTenant()})
	})
}

func (c *Client) CreateTenant(ctx context.Context, in domain.NewTenant) (Result[*domain.Tenant], error) {
	return call(ctx, c, "create_tenant", PathTenants, func() Result[*domain.Tenant] {
		if err := in.Validate(); err != nil {
			return Fail[*domain.Tenant](err.Error())
		}
		t := c.sampleTenant()
		t.ID = util.NewULID()
		t.Name = in.Name
		t.Description = in.Description
		t.Domain = in.Domain
		t.Status = domain.TenantPending
		if in.Status != "" {
			t.Status = in.Status
		}
		if in.CreatedBy != "" {
			t.CreatedBy = in.CreatedBy
		}
		if in.Settings != nil {
			t.Settings = *in.Settings
		}
		return OK(t)
	})
}

func (c *Client) DeleteTenant(ctx context.Context, id string) (Result[bool], error) {
	return call(ctx, c, "delete_tenant", PathTenants+"/"+id, func() Result[bool] {
		return OK(true)
	})
}

func (c *Client) ListUsers(ctx context.Context, tenantID string) (Result[[]*domain.User], error) {
	return call(ctx, c, "list_users", PathUsers, func() Result[[]*domain.User] {
		return OK([]*domain.User{{
			ID:        "remote-user-1",
			Name:      "Remote Admin",
			Email:     "admin@remote.example",
			Role:      domain.RoleAdmin,
			TenantID:  tenantID,
			Status:    domain.UserActive,
			CreatedAt: c.now(),
		}})
	})
}

// CreateUser never receives the password digest back.
func (c *Client) CreateUser(ctx context.Context, in domain.NewUser) (Result[*domain.User], error) {
	return call(ctx, c, "create_user", PathUsers, func() Result[*domain.User] {
		if err := in.Validate(); err != nil {
			return Fail[*domain.User](err.Error())
		}
		status := in.Status
		if status == "" {
			status = domain.UserActive
		}
		return OK(&domain.User{
			ID:        util.NewULID(),
			Name:      in.Name,
			Email:     in.Email,
			Role:      in.Role,
			TenantID:  in.TenantID,
			Status:    status,
			CreatedAt: c.now(),
		})
	})
}

func (c *Client) DeleteUser(ctx context.Context, id string) (Result[bool], error) {
	return call(ctx, c, "delete_user", PathUsers+"/"+id, func() Result[bool] {
		return OK(true)
	})
}

func (c *Client) ListQuizSets(ctx context.Context, tenantID string) (Result[[]*domain.QuizSet], error) {
	return call(ctx, c, "list_quiz_sets", PathQuizSets, func() Result[[]*domain.QuizSet] {
		now := c.now()
		return OK([]*domain.QuizSet{{
			ID:          "remote-quiz-1",
			Name:        "Remote Sample Quiz",
			TenantID:    tenantID,
			IsPublished: true,
			CreatedBy:   "remote-user-1",
			CreatedAt:   now,
			UpdatedAt:   now,
			Questions:   []*domain.QuizQuestion{},
		}})
	})
}

func (c *Client) CreateQuizSet(ctx context.Context, in domain.NewQuizSet) (Result[*domain.QuizSet], error) {
	return call(ctx, c, "create_quiz_set", PathQuizSets, func() Result[*domain.QuizSet] {
		if err := in.Validate(); err != nil {
			return Fail[*domain.QuizSet](err.Error())
		}
		now := c.now()
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
		for i, q := range in.Questions {
			qs.Questions = append(qs.Questions, &domain.QuizQuestion{
				ID:               util.NewULID(),
				QuizSetID:        qs.ID,
				ImageURL:         q.ImageURL,
				ImageDescription: q.ImageDescription,
				Question:         q.Question,
				ChoiceType:       q.ChoiceType,
				Options:          append([]string(nil), q.Options...),
				CorrectAnswer:    append([]string(nil), q.CorrectAnswer...),
				OrderIndex:       i,
			})
		}
		return OK(qs)
	})
}

func (c *Client) DeleteQuizSet(ctx context.Context, id string) (Result[bool], error) {
	return call(ctx, c, "delete_quiz_set", PathQuizSets+"/"+id, func() Result[bool] {
		return OK(true)
	})
}

func (c *Client) ListTestResults(ctx context.Context, tenantID string) (Result[[]*domain.UserAttempt], error) {
	return call(ctx, c, "list_test_results", PathTestResults, func() Result[[]*domain.UserAttempt] {
		return OK([]*domain.UserAttempt{})
	})
}

func (c *Client) SaveTestResult(ctx context.Context, in domain.TestResult) (Result[*domain.UserAttempt], error) {
	return call(ctx, c, "save_test_result", PathTestResults, func() Result[*domain.UserAttempt] {
		if err := in.Validate(); err != nil {
			return Fail[*domain.UserAttempt](err.Error())
		}
		quizSetID := in.QuizSetID
		if quizSetID == "" {
			quizSetID = domain.DefaultQuizSetID
		}
		quizType := in.QuizType
		if quizType == "" {
			quizType = domain.QuizTypeDefault
		}
		completed := in.CompletedAt
		if completed.IsZero() {
			completed = c.now()
		}
		return OK(&domain.UserAttempt{
			ID:             util.NewULID(),
			UserID:         in.UserID,
			TenantID:       in.TenantID,
			QuizSetID:      quizSetID,
			Score:          in.Score,
			TotalQuestions: in.TotalQuestions,
			Percentage:     domain.Percentage(in.Score, in.TotalQuestions),
			TimeRemaining:  in.TimeRemaining,
			TimeTaken:      in.TimeTaken,
			CompletedAt:    completed,
			QuizType:       quizType,
		})
	})
}
