package handlers

import (
	"toyblox/internal/middleware"
	"toyblox/internal/models"
	"toyblox/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service   *services.OrderService
	analytics *services.AnalyticsService
	validate  *validator.Validate
	log       zerolog.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, analytics *services.AnalyticsService, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service:   service,
		analytics: analytics,
		validate:  validator.New(),
		log:       log,
	}
}

// RegisterRoutes registers the order routes. Every route requires a token.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	admin := middleware.RequireRoles(models.RoleAdmin)
	member := middleware.RequireRoles(models.RoleAdmin, models.RoleUser)

	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", auth, member, h.HandleCreateOrder)
	orderRoutes.Get("/", auth, member, h.HandleGetOrders)
	orderRoutes.Get("/stats", auth, admin, h.HandleGetOrderStats)
	orderRoutes.Get("/:id", auth, member, h.HandleGetOrderByID)
	orderRoutes.Put("/:id/status", auth, admin, h.HandleUpdateOrderStatus)
}

// PlaceOrderRequest is the submitted cart. UserID is honoured for admins only.
type PlaceOrderRequest struct {
	UserID string            `json:"user_id"`
	Items  []models.CartLine `json:"items" validate:"required,min=1,dive"`
}

// HandleCreateOrder places an order for the caller, or for user_id when an admin places it.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req PlaceOrderRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}

	actor := middleware.CurrentActor(c)
	userID := actor.UserID
	if actor.IsAdmin() && req.UserID != "" {
		userID = req.UserID
	}

	order, err := h.service.PlaceOrder(c.UserContext(), userID, req.Items)
	if err != nil {
		return fail(c, h.log, err, "Could not place order")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Order placed successfully",
		"order_id": order.ID,
	})
}

// HandleGetOrders lists every order for admins and the caller's own orders otherwise.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(c.UserContext(), middleware.CurrentActor(c))
	if err != nil {
		return fail(c, h.log, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order with its lines.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.UserContext(), middleware.CurrentActor(c), c.Params("id"))
	if err != nil {
		return fail(c, h.log, err, "Could not retrieve order")
	}
	return c.JSON(order)
}

// StatusRequest is the body of a status change.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus moves an order along its lifecycle.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req StatusRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}

	status, err := h.service.UpdateOrderStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return fail(c, h.log, err, "Could not update order status")
	}
	return c.JSON(fiber.Map{
		"message": "Order status updated successfully",
		"status":  status,
	})
}

// HandleGetOrderStats returns the order dashboard.
func (h *OrderHandler) HandleGetOrderStats(c *fiber.Ctx) error {
	stats, err := h.analytics.OrderStats(c.UserContext())
	if err != nil {
		return fail(c, h.log, err, "Could not retrieve order statistics")
	}
	return c.JSON(stats)
}
