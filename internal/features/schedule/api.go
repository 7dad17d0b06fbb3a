package schedule

import (
	"go-payroll/internal/config"
	"go-payroll/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ScheduleApi struct {
	scheduleController *ScheduleController
	config             *config.Config
}

func NewScheduleApi(scheduleController *ScheduleController, config *config.Config) *ScheduleApi {
	return &ScheduleApi{
		scheduleController: scheduleController,
		config:             config,
	}
}

func (h *ScheduleApi) Setup(app *fiber.App) {
	schedules := app.Group("/api/schedules", middleware.AuthMiddleware(h.config.SkipAuth))

	schedules.Post("/", h.scheduleController.CreateSchedule)
	schedules.Get("/", h.scheduleController.ListSchedules)
	schedules.Get("/:id", h.scheduleController.GetSchedule)
	schedules.Put("/:id", h.scheduleController.UpdateSchedule)
	schedules.Delete("/:id", h.scheduleController.DeleteSchedule)

	schedules.Post("/:id/run", h.scheduleController.RunSchedule)
	schedules.Get("/:id/logs", h.scheduleController.GetRunLogs)
}
