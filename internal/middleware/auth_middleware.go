package middleware

import (
	"errors"
	"strings"

	"quiz-hub/internal/domain"
	"quiz-hub/internal/logger"
	"quiz-hub/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	ActorKey            = "actor" // Key for storing the service.Actor in fiber.Ctx locals
)

func unauthorized(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Code:    code,
		Message: message,
		Status:  fiber.StatusUnauthorized,
	})
}

// Protected requires a valid access token. The token's user is reloaded so
// suspended accounts are rejected immediately, and the resulting actor is
// stored under ActorKey.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return unauthorized(c, "MISSING_AUTH_HEADER", "Authorization header is missing")
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return unauthorized(c, "INVALID_AUTH_SCHEME", "Authorization scheme is not Bearer")
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return unauthorized(c, "EMPTY_TOKEN", "Token is empty")
		}

		claims, err := authService.ValidateJWT(c.Context(), tokenString)
		if err != nil {
			logger.Get().Debug("JWT validation error", zap.Error(err), zap.String("path", c.Path()))
			return unauthorized(c, "INVALID_TOKEN", "Token is invalid or expired")
		}

		actor, err := authService.CurrentActor(c.Context(), claims)
		if err != nil {
			var de *domain.DomainError
			if errors.As(err, &de) && de.Code == domain.CodeUnauthorized {
				return unauthorized(c, "INACTIVE_ACCOUNT", de.Message)
			}
			return err
		}

		c.Locals(ActorKey, actor)
		return c.Next()
	}
}

// ActorFrom returns the actor set by Protected.
func ActorFrom(c *fiber.Ctx) (service.Actor, bool) {
	actor, ok := c.Locals(ActorKey).(service.Actor)
	return actor, ok
}

// RequireRole lets only the given roles through. It must run after Protected.
func RequireRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFrom(c)
		if !ok {
			return unauthorized(c, "MISSING_ACTOR", "Authentication required")
		}
		for _, r := range roles {
			if actor.Role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
			Code:    string(domain.CodeForbidden),
			Message: "Insufficient permissions",
			Status:  fiber.StatusForbidden,
		})
	}
}
