package handler

import (
	"quiz-hub/internal/domain"
	"quiz-hub/internal/dto"
	"quiz-hub/internal/logger"
	"quiz-hub/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type QuizHandler struct {
	quizService service.QuizService
}

func NewQuizHandler(quizService service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

func canSeeAnswers(actor service.Actor) bool {
	return actor.IsProductAdmin() || actor.IsTenantAdmin()
}

// ListQuizSets returns the quiz sets visible to the caller. End users only
// see published sets.
// @Summary List quiz sets
// @Tags quizzes
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.QuizSetResponse
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizSets(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	sets, err := h.quizService.ListQuizSets(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizSetResponses(sets))
}

func (h *QuizHandler) GetPublishedQuizzes(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	sets, err := h.quizService.GetPublishedQuizzes(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizSetResponses(sets))
}

// GetQuizSet returns a quiz set with its questions. Correct answers are
// only included for administrators.
func (h *QuizHandler) GetQuizSet(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	qs, err := h.quizService.GetQuizSet(c.Context(), actor, idParam(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizSetResponse(qs, true, canSeeAnswers(actor)))
}

func (h *QuizHandler) CreateQuizSet(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	var req dto.CreateQuizSetRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	qs, err := h.quizService.CreateQuizSet(c.Context(), actor, service.QuizSetInput{
		Name:        req.Name,
		Description: req.Description,
		Questions:   req.Questions,
		IsPublished: req.IsPublished,
		TenantID:    req.TenantID,
	})
	if err != nil {
		return err
	}
	logger.Get().Info("Quiz set created",
		zap.String("quizSetID", qs.ID),
		zap.String("tenantID", qs.TenantID),
		zap.Int("questions", len(qs.Questions)))
	return c.Status(fiber.StatusCreated).JSON(dto.NewQuizSetResponse(qs, true, true))
}

func (h *QuizHandler) UpdateQuizSet(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	var req dto.UpdateQuizSetRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	qs, err := h.quizService.UpdateQuizSet(c.Context(), actor, idParam(c), domain.QuizSetUpdate{
		Name:        req.Name,
		Description: req.Description,
		IsPublished: req.IsPublished,
		Questions:   req.Questions,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizSetResponse(qs, true, true))
}

func (h *QuizHandler) PublishQuiz(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	qs, err := h.quizService.PublishQuiz(c.Context(), actor, idParam(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizSetResponse(qs, false, false))
}

func (h *QuizHandler) UnpublishQuiz(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	qs, err := h.quizService.UnpublishQuiz(c.Context(), actor, idParam(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizSetResponse(qs, false, false))
}

func (h *QuizHandler) DeleteQuizSet(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	if err := h.quizService.DeleteQuizSet(c.Context(), actor, idParam(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
