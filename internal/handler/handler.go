package handler

import (
	"quiz-hub/internal/domain"
	"quiz-hub/internal/middleware"
	"quiz-hub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// idParam returns the :id route parameter. Fiber reuses the request buffers
// once the handler returns, so the value is copied before it can reach the
// store.
func idParam(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("id"))
}

// actorOf returns the authenticated actor. Routes behind Protected always
// have one; the error only fires on a routing mistake.
func actorOf(c *fiber.Ctx) (service.Actor, error) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return service.Actor{}, domain.NewUnauthorizedError("Authentication required")
	}
	return actor, nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewInvalidInputError("Invalid request body").WithContext("reason", err.Error())
	}
	return nil
}
