package repositories

import (
	"context"

	"toyblox/internal/models"
)

// ItemRepository defines the interface for catalog data access.
type ItemRepository interface {
	List(ctx context.Context) ([]models.Item, error)
	GetByID(ctx context.Context, id string) (*models.Item, error)
	Create(ctx context.Context, item *models.Item, quantity int, images []string) error
	// Update saves item fields. A nil quantity leaves stock untouched and nil
	// images leave the image set untouched.
	Update(ctx context.Context, item *models.Item, quantity *int, images []string) error
	Delete(ctx context.Context, id string) error

	ListStock(ctx context.Context) ([]models.StockView, error)
	GetStock(ctx context.Context, itemID string) (*models.Stock, error)
	SetStock(ctx context.Context, itemID string, quantity int) error
}
