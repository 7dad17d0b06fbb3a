package audit

import (
	"go-payroll/internal/config"
	"go-payroll/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuditApi struct {
	controller *AuditController
	config     *config.Config
}

func NewAuditApi(controller *AuditController, config *config.Config) *AuditApi {
	return &AuditApi{
		controller: controller,
		config:     config,
	}
}

func (h *AuditApi) Setup(app *fiber.App) {
	// Audit history is admin-only
	audit := app.Group("/api/audit", middleware.AuthMiddleware(h.config.SkipAuth), middleware.AdminMiddleware())

	audit.Get("/", h.controller.ListLogs)
}
