package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "shopdesk/internal/log"
)

// Register mounts the /api/v1 routes on app.
func (d *Deps) Register(app fiber.Router) {
	api := app.Group("/api/v1")

	// Auth routes (login throttled)
	api.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	api.Post("/logout", d.AuthHandler.Logout)

	// everything registered below needs a staff session
	staff := api.Group("", RequireUser(d.Auth))
	staff.Get("/me", d.AuthHandler.Me)

	staff.Get("/categories", d.CategoryHandler.List)
	staff.Get("/products", d.ProductHandler.List)
	staff.Get("/products/:id", d.ProductHandler.Detail)
	staff.Get("/products/:id/availability", d.InventoryHandler.Check)
	staff.Get("/customers", d.CustomerHandler.Search)

	staff.Get("/cart", d.CartHandler.View)
	staff.Post("/cart/items", d.CartHandler.Add)
	staff.Patch("/cart/items/:id", d.CartHandler.Update)
	staff.Delete("/cart/items/:id", d.CartHandler.Remove)
	staff.Delete("/cart", d.CartHandler.Clear)
	staff.Put("/cart/details", d.CartHandler.Details)
	staff.Put("/cart/customer", d.CartHandler.Customer)
	staff.Post("/cart/submit", d.SaleHandler.Submit)

	staff.Get("/sales/:id", d.SaleHandler.View)

	requireAdmin := RequireAdmin(d.Auth)
	staff.Get("/reports/summary", requireAdmin, d.AdminHandler.Summary)

	admin := staff.Group("/admin", requireAdmin)
	admin.Get("/stock", d.AdminHandler.Stock)
	admin.Post("/stock", d.AdminHandler.UpdateStock)
	admin.Get("/sales", d.AdminHandler.LatestSales)
}
