package handler

import (
	"quiz-hub/internal/domain"
	"quiz-hub/internal/dto"
	"quiz-hub/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AttemptHandler struct {
	attemptService service.AttemptService
}

func NewAttemptHandler(attemptService service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

func newReviewResponse(review *service.AttemptReview) dto.AttemptReviewResponse {
	resp := dto.AttemptReviewResponse{
		Attempt: dto.NewAttemptResponse(review.Attempt),
		Items:   make([]dto.ReviewItemResponse, 0, len(review.Items)),
	}
	if review.QuizSet != nil {
		resp.QuizSetName = review.QuizSet.Name
	}
	for _, item := range review.Items {
		resp.Items = append(resp.Items, dto.ReviewItemResponse{
			Question:  item.Question,
			Selected:  item.Selected,
			Answered:  item.Answered,
			IsCorrect: item.IsCorrect,
		})
	}
	return resp
}

// SubmitAttempt grades a finished quiz run and returns the review.
// @Summary Submit attempt
// @Tags attempts
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.SubmitAttemptRequest true "Answers keyed by question ID"
// @Success 201 {object} dto.AttemptReviewResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid answers"
// @Failure 404 {object} middleware.ErrorResponse "Quiz set not found"
// @Router /attempts [post]
func (h *AttemptHandler) SubmitAttempt(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	var req dto.SubmitAttemptRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	answers := make(map[string][]string, len(req.Answers))
	for qid, v := range req.Answers {
		answers[qid] = v
	}
	review, err := h.attemptService.SubmitAttempt(c.Context(), actor, service.SubmissionInput{
		QuizSetID:     req.QuizSetID,
		Answers:       answers,
		TimeRemaining: req.TimeRemaining,
		TimeTaken:     req.TimeTaken,
		QuizType:      domain.QuizType(req.QuizType),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(newReviewResponse(review))
}

// ListResults returns the caller's own results, or the tenant's for
// administrators.
func (h *AttemptHandler) ListResults(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	attempts, err := h.attemptService.ListResults(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAttemptResponses(attempts))
}

func (h *AttemptHandler) GetAttemptReview(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	review, err := h.attemptService.GetAttemptReview(c.Context(), actor, idParam(c))
	if err != nil {
		return err
	}
	return c.JSON(newReviewResponse(review))
}

func (h *AttemptHandler) BestScore(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	quizSetID := idParam(c)
	best, err := h.attemptService.BestScore(c.Context(), actor, quizSetID)
	if err != nil {
		return err
	}
	return c.JSON(dto.BestScoreResponse{QuizSetID: quizSetID, Percentage: best})
}

func (h *AttemptHandler) Statistics(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	stats, err := h.attemptService.Statistics(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func (h *AttemptHandler) DeleteResult(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	if err := h.attemptService.DeleteResult(c.Context(), actor, idParam(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
