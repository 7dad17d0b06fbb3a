package template

import (
	"go-payroll/internal/config"
	"go-payroll/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type TemplateApi struct {
	TemplateController *TemplateController
	Config             *config.Config
}

func NewTemplateApi(templateController *TemplateController, config *config.Config) *TemplateApi {
	return &TemplateApi{
		TemplateController: templateController,
		Config:             config,
	}
}

func (api *TemplateApi) Setup(app *fiber.App) {
	group := app.Group("/api/templates", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Get("/", api.TemplateController.ListTemplates)
	group.Post("/", api.TemplateController.CreateTemplate)
	group.Get("/:id", api.TemplateController.GetTemplate)
	group.Put("/:id", api.TemplateController.UpdateTemplate)
	group.Delete("/:id", api.TemplateController.DeleteTemplate)
	group.Put("/:id/columns/move", api.TemplateController.MoveColumn)
}
