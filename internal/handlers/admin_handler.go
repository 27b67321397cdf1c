package handlers

import (
	"toyblox/internal/middleware"
	"toyblox/internal/models"
	"toyblox/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	analytics *services.AnalyticsService
	log       zerolog.Logger
}

func NewAdminHandler(analytics *services.AnalyticsService, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{analytics: analytics, log: log}
}

// RegisterRoutes registers the admin routes.
func (h *AdminHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	admin := router.Group("/admin")
	guard := middleware.RequireRoles(models.RoleAdmin)

	admin.Get("/stats", auth, guard, h.HandleStats)
	admin.Get("/top-products", auth, guard, h.HandleTopProducts)
	admin.Get("/analytics/orders", auth, guard, h.HandleOrdersAnalytics)
	admin.Get("/analytics/users", auth, guard, h.HandleUsersAnalytics)
	admin.Get("/analytics/products", auth, guard, h.HandleProductsAnalytics)
}

func (h *AdminHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.analytics.AdminStats(c.UserContext())
	if err != nil {
		return fail(c, h.log, err, "Could not retrieve dashboard statistics")
	}
	return c.JSON(stats)
}

func (h *AdminHandler) HandleTopProducts(c *fiber.Ctx) error {
	items, err := h.analytics.TopProducts(c.UserContext())
	if err != nil {
		return fail(c, h.log, err, "Could not retrieve top products")
	}
	return c.JSON(items)
}

func (h *AdminHandler) HandleOrdersAnalytics(c *fiber.Ctx) error {
	days, ok := daysParam(c)
	if !ok {
		return badDays(c)
	}
	counts, err := h.analytics.OrdersByStatus(c.UserContext(), days)
	if err != nil {
		return fail(c, h.log, err, "Could not retrieve order analytics")
	}
	return c.JSON(fiber.Map{
		"days":     days,
		"byStatus": counts,
	})
}

func (h *AdminHandler) HandleUsersAnalytics(c *fiber.Ctx) error {
	counts, err := h.analytics.UsersByRole(c.UserContext())
	if err != nil {
		return fail(c, h.log, err, "Could not retrieve user analytics")
	}
	return c.JSON(counts)
}

func (h *AdminHandler) HandleProductsAnalytics(c *fiber.Ctx) error {
	days, ok := daysParam(c)
	if !ok {
		return badDays(c)
	}
	top, err := h.analytics.TopSelling(c.UserContext(), days)
	if err != nil {
		return fail(c, h.log, err, "Could not retrieve product analytics")
	}
	return c.JSON(fiber.Map{
		"days":        days,
		"topProducts": top,
	})
}

func daysParam(c *fiber.Ctx) (int, bool) {
	days := c.QueryInt("days", 30)
	return days, days > 0 && days <= 3650
}

func badDays(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request",
		"error":   "days must be between 1 and 3650",
	})
}
