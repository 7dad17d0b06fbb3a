package middleware

import (
	"strings"

	"go-payroll/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminMiddleware restricts a route to users carrying the admin role.
// It must run after AuthMiddleware, which stores the validated claims.
func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		for _, role := range claims.Roles {
			if strings.EqualFold(role, "admin") {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied: Admin role required",
		})
	}
}
