package services

import (
	"context"
	"fmt"

	"toyblox/internal/models"
	"toyblox/internal/repositories"
)

// ItemInput is the create and update form of a catalog item.
type ItemInput struct {
	Description string   `json:"description" validate:"required"`
	CostPrice   float64  `json:"cost_price" validate:"gte=0"`
	SellPrice   float64  `json:"sell_price" validate:"gte=0"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gte=0"`
	Images      []string `json:"images"`
}

// ItemService handles business logic related to the catalog and its stock.
type ItemService struct {
	repo repositories.ItemRepository
}

// NewItemService creates a new ItemService.
func NewItemService(repo repositories.ItemRepository) *ItemService {
	return &ItemService{
		repo: repo,
	}
}

// GetAllItems retrieves all active items.
func (s *ItemService) GetAllItems(ctx context.Context) ([]models.Item, error) {
	return s.repo.List(ctx)
}

// GetItemByID retrieves a single active item.
func (s *ItemService) GetItemByID(ctx context.Context, id string) (*models.Item, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateItem creates an item with its stock row. A missing quantity starts at zero.
func (s *ItemService) CreateItem(ctx context.Context, in ItemInput) (*models.Item, error) {
	quantity := 0
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	item := &models.Item{
		Description: in.Description,
		CostPrice:   in.CostPrice,
		SellPrice:   in.SellPrice,
	}
	if err := s.repo.Create(ctx, item, quantity, in.Images); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem updates an existing item. Images are replaced only when given.
func (s *ItemService) UpdateItem(ctx context.Context, id string, in ItemInput) (*models.Item, error) {
	item := &models.Item{
		ID:          id,
		Description: in.Description,
		CostPrice:   in.CostPrice,
		SellPrice:   in.SellPrice,
	}
	if err := s.repo.Update(ctx, item, in.Quantity, in.Images); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// DeleteItem soft-deletes an item.
func (s *ItemService) DeleteItem(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ItemService) ListStock(ctx context.Context) ([]models.StockView, error) {
	return s.repo.ListStock(ctx)
}

func (s *ItemService) GetStock(ctx context.Context, itemID string) (*models.Stock, error) {
	return s.repo.GetStock(ctx, itemID)
}

// SetStock overwrites the on-hand quantity of an item.
func (s *ItemService) SetStock(ctx context.Context, itemID string, quantity int) (*models.Stock, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative: %w", ErrInvalidInput)
	}
	if err := s.repo.SetStock(ctx, itemID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetStock(ctx, itemID)
}
