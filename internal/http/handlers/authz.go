package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shopdesk/internal/domain"
	applog "shopdesk/internal/log"
	"shopdesk/internal/services"
)

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := c.Locals("user").(*domain.User)
		if !ok || u == nil {
			var err error
			if u, err = currentUser(c, auth); err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
			}
		}
		if u.Role != domain.RoleAdmin {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": c.Cookies("sid")})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireUser enforces a logged-in staff session.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := currentUser(c, auth)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx, auth *services.AuthService) (*domain.User, error) {
	u, err := auth.CurrentUser(c.Cookies("sid"))
	if err != nil {
		if !errors.Is(err, services.ErrNoSession) {
			applog.Error(c, "auth.session.lookup.fail", err, nil)
		}
		return nil, err
	}
	return u, nil
}

func userOf(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
