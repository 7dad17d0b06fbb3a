package report

import (
	"errors"
	"fmt"

	common_models "go-payroll/internal/common/models"
	"go-payroll/internal/features/template"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	ReportService ReportService
}

func NewReportController(reportService ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// Run godoc
// @Summary Run a report
// @Description Resolve rows, aggregate and format them, and return the grid with totals and averages as JSON
// @Tags reports
// @Produce json
// @Param templateId path string true "Template ID"
// @Success 200 {object} RunResult
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/reports/{templateId}/run [get]
func (c *ReportController) Run(ctx *fiber.Ctx) error {
	result, err := c.ReportService.Run(ctx.UserContext(), ctx.Params("templateId"), filterArgs(ctx))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(result)
}

// Render godoc
// @Summary Render a report
// @Description Render the report as a standalone HTML document, or as the raw grid when format=tabular
// @Tags reports
// @Produce html
// @Param templateId path string true "Template ID"
// @Param format query string false "Output format: html or tabular" default(html)
// @Success 200 {string} string "Rendered report"
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/reports/{templateId}/render [get]
func (c *ReportController) Render(ctx *fiber.Ctx) error {
	templateID := ctx.Params("templateId")
	outputFormat := ctx.Query("format", "html")
	filters := filterArgs(ctx)

	switch outputFormat {
	case "html":
		html, _, err := c.ReportService.RenderHTML(ctx.UserContext(), templateID, filters)
		if err != nil {
			return respondError(ctx, err)
		}
		ctx.Set("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(html)

	case "tabular":
		grid, err := c.ReportService.RenderTabular(ctx.UserContext(), templateID, filters)
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(grid)

	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("unsupported output format: %s", outputFormat),
		})
	}
}

// Export godoc
// @Summary Export a report
// @Description Encode the report grid as a downloadable xlsx or csv file
// @Tags reports
// @Produce octet-stream
// @Param templateId path string true "Template ID"
// @Param format query string false "Export format: xlsx or csv" default(xlsx)
// @Success 200 {file} file
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/reports/{templateId}/export [get]
func (c *ReportController) Export(ctx *fiber.Ctx) error {
	exportFormat := ctx.Query("format", "xlsx")

	file, err := c.ReportService.Export(ctx.UserContext(), ctx.Params("templateId"), exportFormat, filterArgs(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if exportFormat == "csv" {
		contentType = "text/csv"
	}
	ctx.Set("Content-Type", contentType)
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", file.Filename))
	return ctx.Send(file.Data)
}

// filterArgs collects every query parameter except the output format
// selector as a filter argument for the row resolver.
func filterArgs(ctx *fiber.Ctx) map[string]string {
	filters := make(map[string]string)
	for key, value := range ctx.Queries() {
		if key == "format" {
			continue
		}
		filters[key] = value
	}
	return filters
}

func respondError(ctx *fiber.Ctx, err error) error {
	var verr *template.ValidationError
	switch {
	case errors.As(err, &verr):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, template.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrBadFormat), errors.Is(err, common_models.ErrBadFilter):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
