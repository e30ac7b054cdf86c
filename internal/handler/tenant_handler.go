package handler

import (
	"quiz-hub/internal/domain"
	"quiz-hub/internal/dto"
	"quiz-hub/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TenantHandler struct {
	tenantService service.TenantService
}

func NewTenantHandler(tenantService service.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// ListTenants returns the tenants visible to the caller, optionally filtered
// by ?status=pending|approved|rejected.
func (h *TenantHandler) ListTenants(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	status := domain.TenantStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		return domain.NewInvalidInputError("unknown tenant status: " + string(status))
	}
	tenants, err := h.tenantService.ListTenants(c.Context(), actor, status)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTenantResponses(tenants))
}

func (h *TenantHandler) GetTenant(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	tenant, err := h.tenantService.GetTenant(c.Context(), actor, idParam(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTenantResponse(tenant))
}

// CreateTenant creates an approved tenant, with an administrator when one
// is supplied.
func (h *TenantHandler) CreateTenant(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	var req dto.CreateTenantRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	tenant, admin, err := h.tenantService.CreateApprovedTenant(c.Context(), actor, service.CreateTenantInput{
		Name:          req.Name,
		Description:   req.Description,
		Domain:        req.Domain,
		Settings:      req.Settings.ToDomain(),
		AdminName:     req.AdminName,
		AdminEmail:    req.AdminEmail,
		AdminPassword: req.AdminPassword,
	})
	if err != nil {
		return err
	}
	resp := fiber.Map{"tenant": dto.NewTenantResponse(tenant)}
	if admin != nil {
		resp["admin"] = dto.NewUserResponse(admin)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *TenantHandler) UpdateTenant(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTenantRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	tenant, err := h.tenantService.UpdateTenantSettings(c.Context(), actor, idParam(c), service.TenantSettingsInput{
		Name:        req.Name,
		Description: req.Description,
		Domain:      req.Domain,
		IsActive:    req.IsActive,
		Settings:    req.Settings.ToDomain(),
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTenantResponse(tenant))
}

func (h *TenantHandler) ApproveTenant(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	tenant, err := h.tenantService.ApproveTenant(c.Context(), actor, idParam(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTenantResponse(tenant))
}

func (h *TenantHandler) RejectTenant(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	var req dto.RejectTenantRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	tenant, err := h.tenantService.RejectTenant(c.Context(), actor, idParam(c), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTenantResponse(tenant))
}

// DeleteTenant removes a tenant without users, along with its quiz sets and
// results.
func (h *TenantHandler) DeleteTenant(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	if err := h.tenantService.DeleteTenant(c.Context(), actor, idParam(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
