package handler

import (
	"quiz-hub/internal/domain"
	"quiz-hub/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// RecordsHandler serves raw table access over any domain.RecordStore. It is
// mounted for product administrators only and does no tenant scoping.
type RecordsHandler struct {
	records domain.RecordStore
}

func NewRecordsHandler(records domain.RecordStore) *RecordsHandler {
	return &RecordsHandler{records: records}
}

// ListTenants
// @Summary List tenant rows
// @Tags records
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.TenantResponse
// @Router /admin/remote/records/tenants [get]
func (h *RecordsHandler) ListTenants(c *fiber.Ctx) error {
	tenants, err := h.records.ListTenants(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTenantResponses(tenants))
}

func (h *RecordsHandler) CreateTenant(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	var req dto.RecordTenantRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	tenant, err := h.records.CreateTenant(c.UserContext(), domain.NewTenant{
		Name:        req.Name,
		Description: req.Description,
		Domain:      req.Domain,
		Status:      domain.TenantStatus(req.Status),
		CreatedBy:   actor.UserID,
		Settings:    req.Settings.ToDomain(),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTenantResponse(tenant))
}

func (h *RecordsHandler) DeleteTenant(c *fiber.Ctx) error {
	deleted, err := h.records.DeleteTenant(c.UserContext(), idParam(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.DeletedResponse{Deleted: deleted})
}

func (h *RecordsHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.records.ListUsers(c.UserContext(), c.Query("tenant_id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponses(users))
}

func (h *RecordsHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	role := domain.Role(req.Role)
	if role == "" {
		role = domain.RoleUser
	}
	user, err := h.records.CreateUser(c.UserContext(), domain.NewUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
		TenantID: req.TenantID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

func (h *RecordsHandler) DeleteUser(c *fiber.Ctx) error {
	deleted, err := h.records.DeleteUser(c.UserContext(), idParam(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.DeletedResponse{Deleted: deleted})
}

func (h *RecordsHandler) ListQuizSets(c *fiber.Ctx) error {
	sets, err := h.records.ListQuizSets(c.UserContext(), c.Query("tenant_id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizSetResponses(sets))
}

func (h *RecordsHandler) CreateQuizSet(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	var req dto.CreateQuizSetRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	qs, err := h.records.CreateQuizSet(c.UserContext(), domain.NewQuizSet{
		Name:        req.Name,
		Description: req.Description,
		Questions:   req.Questions,
		CreatedBy:   actor.UserID,
		TenantID:    req.TenantID,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewQuizSetResponse(qs, true, true))
}

func (h *RecordsHandler) DeleteQuizSet(c *fiber.Ctx) error {
	deleted, err := h.records.DeleteQuizSet(c.UserContext(), idParam(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.DeletedResponse{Deleted: deleted})
}

func (h *RecordsHandler) ListTestResults(c *fiber.Ctx) error {
	attempts, err := h.records.ListTestResults(c.UserContext(), c.Query("tenant_id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAttemptResponses(attempts))
}

func (h *RecordsHandler) SaveTestResult(c *fiber.Ctx) error {
	var req dto.RecordTestResultRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	attempt, err := h.records.SaveTestResult(c.UserContext(), domain.TestResult{
		UserID:         req.UserID,
		TenantID:       req.TenantID,
		QuizSetID:      req.QuizSetID,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		TimeRemaining:  req.TimeRemaining,
		TimeTaken:      req.TimeTaken,
		QuizType:       domain.QuizType(req.QuizType),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewAttemptResponse(attempt))
}
