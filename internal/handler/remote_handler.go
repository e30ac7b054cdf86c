package handler

import (
	"encoding/json"

	"quiz-hub/internal/adapter/remotedb"
	"quiz-hub/internal/domain"
	"quiz-hub/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// RemoteHandler is the admin panel for the remote database integration.
type RemoteHandler struct {
	client *remotedb.Client
	backup domain.BackupRepository
}

func NewRemoteHandler(client *remotedb.Client, backup domain.BackupRepository) *RemoteHandler {
	return &RemoteHandler{client: client, backup: backup}
}

func (h *RemoteHandler) GetConfig(c *fiber.Ctx) error {
	if _, err := productAdmin(c); err != nil {
		return err
	}
	return c.JSON(dto.NewRemoteConfigResponse(h.client.Config()))
}

func (h *RemoteHandler) UpdateConfig(c *fiber.Ctx) error {
	if _, err := productAdmin(c); err != nil {
		return err
	}
	var req dto.RemoteConfigRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	port := req.Port
	if port == 0 {
		port = h.client.Config().Port
	}
	h.client.Configure(req.Host, port, req.Database, req.User, req.Password)
	return c.JSON(dto.NewRemoteConfigResponse(h.client.Config()))
}

// TestConnection checks the configured remote database.
// @Summary Test remote connection
// @Tags remote
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} remotedb.Result[remotedb.ConnectionInfo]
// @Failure 400 {object} middleware.ErrorResponse "Connection settings incomplete"
// @Router /admin/remote/test-connection [post]
func (h *RemoteHandler) TestConnection(c *fiber.Ctx) error {
	if _, err := productAdmin(c); err != nil {
		return err
	}
	res, err := h.client.TestConnection(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *RemoteHandler) InitializeSchema(c *fiber.Ctx) error {
	if _, err := productAdmin(c); err != nil {
		return err
	}
	res, err := h.client.InitializeSchema(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// MigrateData sends the current local database to the remote.
func (h *RemoteHandler) MigrateData(c *fiber.Ctx) error {
	if _, err := productAdmin(c); err != nil {
		return err
	}
	blob, err := h.backup.ExportDatabase(c.Context())
	if err != nil {
		return err
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return domain.NewInternalError("failed to decode local snapshot", err)
	}
	res, err := h.client.MigrateData(c.UserContext(), &snap)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *RemoteHandler) Health(c *fiber.Ctx) error {
	if _, err := productAdmin(c); err != nil {
		return err
	}
	res, err := h.client.Health(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(res)
}
