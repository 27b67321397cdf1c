package repositories

import (
	"context"
	"time"

	"toyblox/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create stores the header, its lines, the stock decrements and the
	// placement event in one transaction.
	Create(ctx context.Context, order *models.Order, lines []models.OrderLine, event *models.OutboxEvent) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetDetails(ctx context.Context, id string) (*models.OrderDetails, error)
	// List returns order summaries, newest first. An empty customerID lists every order.
	List(ctx context.Context, customerID string) ([]models.OrderSummary, error)
	// UpdateStatus moves the order from one status to another if it is still in
	// from. It returns ErrConflict when it is not. event may be nil.
	UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus, at time.Time, event *models.OutboxEvent) error
}
