package middleware

import (
	"quiz-hub/internal/domain"
	"quiz-hub/internal/util"

	"github.com/gofiber/fiber/v2"
)

// ValidateIDParams rejects requests whose named path parameters are not
// ULIDs before they reach a handler.
func ValidateIDParams(names ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, name := range names {
			value := c.Params(name)
			if !util.IsULID(value) {
				return domain.NewInvalidInputError("invalid " + name + ": " + value).
					WithContext("param", name)
			}
		}
		return c.Next()
	}
}
