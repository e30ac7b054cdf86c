package handler

import (
	"quiz-hub/internal/domain"
	"quiz-hub/internal/dto"
	"quiz-hub/internal/logger"
	"quiz-hub/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService   service.AuthService
	tenantService service.TenantService
	userService   service.UserService
}

func NewAuthHandler(authService service.AuthService, tenantService service.TenantService, userService service.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, tenantService: tenantService, userService: userService}
}

// Login authenticates with email and password.
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} middleware.ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Email == "" || req.Password == "" {
		return domain.NewInvalidInputError("email and password are required")
	}
	token, user, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{AccessToken: token, User: dto.NewUserResponse(user)})
}

// Logout clears the server-side session.
// @Summary Logout
// @Tags auth
// @Security ApiKeyAuth
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.Context()); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Logged out"})
}

// Signup registers an organisation and its first administrator. Both wait
// for product admin approval.
// @Summary Tenant signup
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "Organisation and administrator"
// @Success 201 {object} dto.SignupResponse
// @Failure 409 {object} middleware.ErrorResponse "Email already registered"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	tenant, admin, err := h.tenantService.CreateTenantAndAdmin(c.Context(), service.SignupInput{
		AdminName:     req.AdminName,
		AdminEmail:    req.AdminEmail,
		AdminPassword: req.AdminPassword,
		TenantName:    req.TenantName,
		Description:   req.Description,
		Domain:        req.Domain,
	})
	if err != nil {
		return err
	}
	logger.Get().Info("Tenant signup received", zap.String("tenantID", tenant.ID), zap.String("adminID", admin.ID))
	return c.Status(fiber.StatusCreated).JSON(dto.SignupResponse{
		Tenant: dto.NewTenantResponse(tenant),
		Admin:  dto.NewUserResponse(admin),
	})
}

// Register creates an end-user account in a tenant that allows it.
// @Summary Self-service registration
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Account"
// @Success 201 {object} dto.UserResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.userService.RegisterUser(c.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		TenantID: req.TenantID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

// Me returns the authenticated user.
// @Summary Current user
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	user, err := h.userService.GetUser(c.Context(), actor, actor.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}
