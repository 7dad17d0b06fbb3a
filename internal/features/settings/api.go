package settings

import (
	"go-payroll/internal/common/api"
	"go-payroll/internal/config"
	"go-payroll/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SettingsApi struct {
	Controller *SettingsController
	Config     *config.Config
}

func NewSettingsApi(controller *SettingsController, config *config.Config) api.Route {
	return &SettingsApi{
		Controller: controller,
		Config:     config,
	}
}

func (a *SettingsApi) Setup(app *fiber.App) {
	group := app.Group("/api/settings", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Get("/company", a.Controller.GetCompanyProfile)
	group.Put("/company", a.Controller.UpdateCompanyProfile)
}
