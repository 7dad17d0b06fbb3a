package schedule

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ScheduleController struct {
	Service ScheduleService
}

func NewScheduleController(service ScheduleService) *ScheduleController {
	return &ScheduleController{
		Service: service,
	}
}

// CreateSchedule godoc
// @Summary Create scheduled report
// @Description Create a new scheduled report snapshot
// @Tags schedules
// @Accept json
// @Produce json
// @Param schedule body ScheduledReport true "Scheduled Report"
// @Success 201 {object} ScheduledReport
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/schedules [post]
func (c *ScheduleController) CreateSchedule(ctx *fiber.Ctx) error {
	var schedule ScheduledReport
	if err := ctx.BodyParser(&schedule); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	ctxt, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := c.Service.CreateSchedule(ctxt, &schedule); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(schedule)
}

// ListSchedules godoc
// @Summary List scheduled reports
// @Description List all scheduled reports with optional active filter
// @Tags schedules
// @Produce json
// @Param active query boolean false "Filter by active status"
// @Success 200 {array} ScheduledReport
// @Failure 500 {object} map[string]interface{}
// @Router /api/schedules [get]
func (c *ScheduleController) ListSchedules(ctx *fiber.Ctx) error {
	filter := make(map[string]interface{})

	if active := ctx.Query("active"); active != "" {
		filter["active"] = active == "true"
	}

	ctxt, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	schedules, err := c.Service.ListSchedules(ctxt, filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(schedules)
}

// GetSchedule godoc
// @Summary Get scheduled report
// @Description Get a scheduled report by ID
// @Tags schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} ScheduledReport
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/schedules/{id} [get]
func (c *ScheduleController) GetSchedule(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	ctxt, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	schedule, err := c.Service.GetSchedule(ctxt, id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if schedule == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Scheduled report not found"})
	}

	return ctx.JSON(schedule)
}

// UpdateSchedule godoc
// @Summary Update scheduled report
// @Description Update an existing scheduled report
// @Tags schedules
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param schedule body ScheduledReport true "Scheduled Report"
// @Success 200 {object} ScheduledReport
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/schedules/{id} [put]
func (c *ScheduleController) UpdateSchedule(ctx *fiber.Ctx) error {
	var schedule ScheduledReport
	if err := ctx.BodyParser(&schedule); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	// The path owns the identity, not the body.
	id, err := primitive.ObjectIDFromHex(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid schedule id"})
	}
	schedule.ID = id

	ctxt, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := c.Service.UpdateSchedule(ctxt, &schedule); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(schedule)
}

// DeleteSchedule godoc
// @Summary Delete scheduled report
// @Description Delete a scheduled report by ID
// @Tags schedules
// @Param id path string true "Schedule ID"
// @Success 204 {object} nil
// @Failure 500 {object} map[string]interface{}
// @Router /api/schedules/{id} [delete]
func (c *ScheduleController) DeleteSchedule(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	ctxt, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Service.DeleteSchedule(ctxt, id); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// RunSchedule godoc
// @Summary Run scheduled report now
// @Description Manually trigger a scheduled report snapshot
// @Tags schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/schedules/{id}/run [post]
func (c *ScheduleController) RunSchedule(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	ctxt, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := c.Service.RunSchedule(ctxt, id); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"message": "Scheduled report executed successfully"})
}

// GetRunLogs godoc
// @Summary Get schedule run logs
// @Description Get execution logs for a scheduled report
// @Tags schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Param limit query int false "Max logs to return"
// @Success 200 {array} ScheduleRunLog
// @Failure 500 {object} map[string]interface{}
// @Router /api/schedules/{id}/logs [get]
func (c *ScheduleController) GetRunLogs(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	limit := ctx.QueryInt("limit", 50)

	ctxt, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logs, err := c.Service.GetRunLogs(ctxt, id, limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(logs)
}
