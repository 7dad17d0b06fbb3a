package report

import (
	"go-payroll/internal/config"
	"go-payroll/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReportApi struct {
	ReportController *ReportController
	Config           *config.Config
}

func NewReportApi(reportController *ReportController, config *config.Config) *ReportApi {
	return &ReportApi{
		ReportController: reportController,
		Config:           config,
	}
}

func (api *ReportApi) Setup(app *fiber.App) {
	group := app.Group("/api/reports", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Get("/:templateId/run", api.ReportController.Run)
	group.Get("/:templateId/render", api.ReportController.Render)
	group.Get("/:templateId/export", api.ReportController.Export)
}
