package handler

import (
	"fmt"
	"time"

	"quiz-hub/internal/domain"
	"quiz-hub/internal/dto"
	"quiz-hub/internal/logger"
	"quiz-hub/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// BackupHandler exposes whole-database export, import and reset to product
// admins.
type BackupHandler struct {
	backup domain.BackupRepository
}

func NewBackupHandler(backup domain.BackupRepository) *BackupHandler {
	return &BackupHandler{backup: backup}
}

func productAdmin(c *fiber.Ctx) (service.Actor, error) {
	actor, err := actorOf(c)
	if err != nil {
		return actor, err
	}
	if !actor.IsProductAdmin() {
		return actor, domain.NewForbiddenError("Only product admins can do this")
	}
	return actor, nil
}

// Export downloads the database as a JSON file.
// @Summary Export database
// @Tags backup
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {file} file "Backup blob"
// @Router /backup/export [get]
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	actor, err := productAdmin(c)
	if err != nil {
		return err
	}
	blob, err := h.backup.ExportDatabase(c.Context())
	if err != nil {
		return err
	}
	logger.Get().Info("Database exported", zap.String("by", actor.UserID), zap.Int("bytes", len(blob)))
	c.Attachment(fmt.Sprintf("quizhub-backup-%s.json", time.Now().UTC().Format("20060102-150405")))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(blob)
}

// Import replaces the database with the uploaded backup blob.
func (h *BackupHandler) Import(c *fiber.Ctx) error {
	actor, err := productAdmin(c)
	if err != nil {
		return err
	}
	body := c.Body()
	if len(body) == 0 {
		return domain.NewInvalidInputError("backup body is empty")
	}
	if err := h.backup.ImportDatabase(c.Context(), body); err != nil {
		return err
	}
	logger.Get().Warn("Database imported", zap.String("by", actor.UserID), zap.Int("bytes", len(body)))
	return c.JSON(dto.MessageResponse{Message: "Database imported"})
}

// Reset wipes every table and reseeds the product admin.
func (h *BackupHandler) Reset(c *fiber.Ctx) error {
	actor, err := productAdmin(c)
	if err != nil {
		return err
	}
	if err := h.backup.ResetDatabase(c.Context()); err != nil {
		return err
	}
	logger.Get().Warn("Database reset", zap.String("by", actor.UserID))
	return c.JSON(dto.MessageResponse{Message: "Database reset"})
}
