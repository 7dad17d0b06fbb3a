package template

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type TemplateController struct {
	Service TemplateService
}

func NewTemplateController(service TemplateService) *TemplateController {
	return &TemplateController{
		Service: service,
	}
}

// moveColumnRequest is the body of the column reorder operation.
type moveColumnRequest struct {
	FromIndex int `json:"from_index"`
	ToIndex   int `json:"to_index"`
}

// ListTemplates godoc
// @Summary List report templates
// @Description List all templates sorted by report type and name. Missing per-type defaults are created on first call.
// @Tags templates
// @Produce json
// @Success 200 {array} ReportTemplate
// @Failure 500 {object} map[string]interface{}
// @Router /api/templates [get]
func (c *TemplateController) ListTemplates(ctx *fiber.Ctx) error {
	templates, err := c.Service.ListTemplates(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(templates)
}

// GetTemplate godoc
// @Summary Get a report template
// @Description Get one template by id
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} ReportTemplate
// @Failure 404 {object} map[string]interface{}
// @Router /api/templates/{id} [get]
func (c *TemplateController) GetTemplate(ctx *fiber.Ctx) error {
	tpl, err := c.Service.GetTemplate(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(tpl)
}

// CreateTemplate godoc
// @Summary Create a report template
// @Description Validate and persist a new template. The server assigns the id.
// @Tags templates
// @Accept json
// @Produce json
// @Param template body ReportTemplate true "Template"
// @Success 201 {object} ReportTemplate
// @Failure 400 {object} map[string]interface{}
// @Router /api/templates [post]
func (c *TemplateController) CreateTemplate(ctx *fiber.Ctx) error {
	var tpl ReportTemplate
	if err := ctx.BodyParser(&tpl); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := c.Service.CreateTemplate(ctx.UserContext(), tpl)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(created)
}

// UpdateTemplate godoc
// @Summary Update a report template
// @Description Replace the stored template. The report type is immutable.
// @Tags templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param template body ReportTemplate true "Template"
// @Success 200 {object} ReportTemplate
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/templates/{id} [put]
func (c *TemplateController) UpdateTemplate(ctx *fiber.Ctx) error {
	var tpl ReportTemplate
	if err := ctx.BodyParser(&tpl); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := c.Service.UpdateTemplate(ctx.UserContext(), ctx.Params("id"), tpl)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(updated)
}

// DeleteTemplate godoc
// @Summary Delete a report template
// @Description Delete one template. Built-in defaults are protected.
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/templates/{id} [delete]
func (c *TemplateController) DeleteTemplate(ctx *fiber.Ctx) error {
	if err := c.Service.DeleteTemplate(ctx.UserContext(), ctx.Params("id")); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": "Template deleted successfully"})
}

// MoveColumn godoc
// @Summary Reorder template columns
// @Description Move the column at from_index to to_index and persist the new order
// @Tags templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param move body moveColumnRequest true "Column move"
// @Success 200 {object} ReportTemplate
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/templates/{id}/columns/move [put]
func (c *TemplateController) MoveColumn(ctx *fiber.Ctx) error {
	var req moveColumnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := c.Service.MoveColumn(ctx.UserContext(), ctx.Params("id"), req.FromIndex, req.ToIndex)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(updated)
}

// respondError maps service errors onto HTTP statuses: validation
// failures are 400 with the field map, missing templates 404,
// protected defaults 403, anything else 500.
func respondError(ctx *fiber.Ctx, err error) error {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrProtected):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
