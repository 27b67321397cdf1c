package handlers

import (
	"toyblox/internal/middleware"
	"toyblox/internal/models"
	"toyblox/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ItemHandler handles HTTP requests for catalog items and their stock.
type ItemHandler struct {
	service  *services.ItemService
	validate *validator.Validate
	log      zerolog.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *services.ItemService, log zerolog.Logger) *ItemHandler {
	return &ItemHandler{
		service:  service,
		validate: validator.New(),
		log:      log,
	}
}

// RegisterRoutes registers the item and stock routes. Reads are public.
func (h *ItemHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	admin := middleware.RequireRoles(models.RoleAdmin)

	items := router.Group("/items")
	items.Get("/", h.HandleGetItems)
	items.Get("/:id", h.HandleGetItemByID)
	items.Post("/", auth, admin, h.HandleCreateItem)
	items.Put("/:id", auth, admin, h.HandleUpdateItem)
	items.Delete("/:id", auth, admin, h.HandleDeleteItem)

	stocks := router.Group("/stocks")
	stocks.Get("/", h.HandleGetStocks)
	stocks.Get("/:itemId", h.HandleGetStock)
	stocks.Put("/:itemId", auth, admin, h.HandleSetStock)
}

// HandleGetItems retrieves all active items.
func (h *ItemHandler) HandleGetItems(c *fiber.Ctx) error {
	items, err := h.service.GetAllItems(c.UserContext())
	if err != nil {
		return fail(c, h.log, err, "Could not retrieve items")
	}
	return c.JSON(items)
}

// HandleGetItemByID retrieves a single item by its ID.
func (h *ItemHandler) HandleGetItemByID(c *fiber.Ctx) error {
	item, err := h.service.GetItemByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, h.log, err, "Could not retrieve item")
	}
	return c.JSON(item)
}

func (h *ItemHandler) HandleCreateItem(c *fiber.Ctx) error {
	var req services.ItemInput
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}
	item, err := h.service.CreateItem(c.UserContext(), req)
	if err != nil {
		return fail(c, h.log, err, "Could not create item")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Item created successfully",
		"item":    item,
	})
}

func (h *ItemHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req services.ItemInput
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}
	item, err := h.service.UpdateItem(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return fail(c, h.log, err, "Could not update item")
	}
	return c.JSON(fiber.Map{
		"message": "Item updated successfully",
		"item":    item,
	})
}

func (h *ItemHandler) HandleDeleteItem(c *fiber.Ctx) error {
	if err := h.service.DeleteItem(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, h.log, err, "Could not delete item")
	}
	return c.JSON(fiber.Map{
		"message": "Item deleted successfully",
	})
}

func (h *ItemHandler) HandleGetStocks(c *fiber.Ctx) error {
	stocks, err := h.service.ListStock(c.UserContext())
	if err != nil {
		return fail(c, h.log, err, "Could not retrieve stock")
	}
	return c.JSON(stocks)
}

func (h *ItemHandler) HandleGetStock(c *fiber.Ctx) error {
	stock, err := h.service.GetStock(c.UserContext(), c.Params("itemId"))
	if err != nil {
		return fail(c, h.log, err, "Could not retrieve stock")
	}
	return c.JSON(stock)
}

// StockRequest is the body of a stock update.
type StockRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

func (h *ItemHandler) HandleSetStock(c *fiber.Ctx) error {
	var req StockRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}
	stock, err := h.service.SetStock(c.UserContext(), c.Params("itemId"), *req.Quantity)
	if err != nil {
		return fail(c, h.log, err, "Could not update stock")
	}
	return c.JSON(fiber.Map{
		"message": "Stock updated successfully",
		"stock":   stock,
	})
}
