package settings

import (
	"github.com/gofiber/fiber/v2"
)

type SettingsController struct {
	Service SettingsService
}

func NewSettingsController(service SettingsService) *SettingsController {
	return &SettingsController{
		Service: service,
	}
}

// GetCompanyProfile godoc
// @Summary Get company profile
// @Description Get the company letterhead used in report headers
// @Tags settings
// @Produce json
// @Success 200 {object} CompanyProfile
// @Failure 500 {object} map[string]interface{}
// @Router /api/settings/company [get]
func (c *SettingsController) GetCompanyProfile(ctx *fiber.Ctx) error {
	profile, err := c.Service.GetCompanyProfile(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(profile)
}

// UpdateCompanyProfile godoc
// @Summary Update company profile
// @Description Update the company letterhead used in report headers
// @Tags settings
// @Accept json
// @Produce json
// @Param profile body CompanyProfile true "Company Profile"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/settings/company [put]
func (ctrl *SettingsController) UpdateCompanyProfile(c *fiber.Ctx) error {
	var profile CompanyProfile
	if err := c.BodyParser(&profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := ctrl.Service.UpdateCompanyProfile(c.UserContext(), profile); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error updating company profile",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Company profile updated successfully",
	})
}
