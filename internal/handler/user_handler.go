package handler

import (
	"quiz-hub/internal/domain"
	"quiz-hub/internal/dto"
	"quiz-hub/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	users, err := h.userService.ListUsers(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponses(users))
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	user, err := h.userService.GetUser(c.Context(), actor, idParam(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// CreateUser creates an account. Tenant administrators always create into
// their own tenant.
// @Summary Create user
// @Tags users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateUserRequest true "Account"
// @Success 201 {object} dto.UserResponse
// @Failure 403 {object} middleware.ErrorResponse "Forbidden"
// @Failure 409 {object} middleware.ErrorResponse "Email already registered"
// @Failure 422 {object} middleware.ErrorResponse "Seat limit reached"
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	var req dto.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.userService.CreateUser(c.Context(), actor, service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		TenantID: req.TenantID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	upd := domain.UserUpdate{Name: req.Name, Password: req.Password}
	if req.Status != nil {
		status := domain.UserStatus(*req.Status)
		upd.Status = &status
	}
	user, err := h.userService.UpdateUser(c.Context(), actor, idParam(c), upd)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) SetUserStatus(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	var req dto.UserStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.userService.SetUserStatus(c.Context(), actor, idParam(c), domain.UserStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// DeleteUser removes an account together with its attempts.
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	if err := h.userService.DeleteUser(c.Context(), actor, idParam(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
