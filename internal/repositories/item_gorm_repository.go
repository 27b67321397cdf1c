package repositories

import (
	"context"
	"fmt"

	"toyblox/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	db *gorm.DB
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository(db *gorm.DB) *GORMItemRepository {
	return &GORMItemRepository{
		db: db,
	}
}

// List retrieves all active items with their stock and images.
func (r *GORMItemRepository) List(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := r.db.WithContext(ctx).
		Preload("Stock").
		Preload("Images").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all items: %w", err)
	}
	return items, nil
}

// GetByID retrieves a single active item by its ID.
func (r *GORMItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).
		Preload("Stock").
		Preload("Images").
		First(&item, "id = ?", id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("item with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get item by ID %s: %w", id, err)
	}
	return &item, nil
}

// Create inserts the item, its stock row and its images in one transaction.
func (r *GORMItemRepository) Create(ctx context.Context, item *models.Item, quantity int, images []string) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Stock", "Images").Create(item).Error; err != nil {
			return fmt.Errorf("failed to create item: %w", err)
		}
		stock := models.Stock{ID: uuid.New().String(), ItemID: item.ID, Quantity: quantity}
		if err := tx.Create(&stock).Error; err != nil {
			return fmt.Errorf("failed to create stock: %w", err)
		}
		item.Stock = &stock

		imgs, err := insertImages(tx, item.ID, images)
		if err != nil {
			return err
		}
		item.Images = imgs
		return nil
	})
}

// Update saves the item and optionally its stock and images in one transaction.
func (r *GORMItemRepository) Update(ctx context.Context, item *models.Item, quantity *int, images []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Item{}).
			Where("id = ?", item.ID).
			Updates(map[string]interface{}{
				"description": item.Description,
				"cost_price":  item.CostPrice,
				"sell_price":  item.SellPrice,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update item: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("item with ID %s: %w", item.ID, ErrNotFound)
		}

		if quantity != nil {
			if err := tx.Model(&models.Stock{}).
				Where("item_id = ?", item.ID).
				Update("quantity", *quantity).Error; err != nil {
				return fmt.Errorf("failed to update stock: %w", err)
			}
		}

		if images != nil {
			if err := tx.Where("item_id = ?", item.ID).Delete(&models.ItemImage{}).Error; err != nil {
				return fmt.Errorf("failed to delete old images: %w", err)
			}
			if _, err := insertImages(tx, item.ID, images); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete soft-deletes an item. The row stays and disappears from every read.
func (r *GORMItemRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Item{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListStock returns stock rows of active items.
func (r *GORMItemRepository) ListStock(ctx context.Context) ([]models.StockView, error) {
	var rows []models.StockView
	err := r.db.WithContext(ctx).
		Table("stocks s").
		Select("s.id AS stock_id, s.item_id, i.description, s.quantity").
		Joins("JOIN items i ON i.id = s.item_id").
		Where("i.deleted_at IS NULL").
		Order("i.description").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stock data: %w", err)
	}
	return rows, nil
}

// GetStock returns the stock row of an active item.
func (r *GORMItemRepository) GetStock(ctx context.Context, itemID string) (*models.Stock, error) {
	var stock models.Stock
	err := r.db.WithContext(ctx).
		Joins("JOIN items ON items.id = stocks.item_id AND items.deleted_at IS NULL").
		First(&stock, "stocks.item_id = ?", itemID).Error
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("stock for item %s: %w", itemID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch stock: %w", err)
	}
	return &stock, nil
}

// SetStock overwrites the on-hand quantity of an active item.
func (r *GORMItemRepository) SetStock(ctx context.Context, itemID string, quantity int) error {
	if _, err := r.GetStock(ctx, itemID); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Stock{}).
		Where("item_id = ?", itemID).
		Update("quantity", quantity).Error; err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	return nil
}

func insertImages(tx *gorm.DB, itemID string, paths []string) ([]models.ItemImage, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	imgs := make([]models.ItemImage, 0, len(paths))
	for _, p := range paths {
		imgs = append(imgs, models.ItemImage{ID: uuid.New().String(), ItemID: itemID, ImagePath: p})
	}
	if err := tx.Create(&imgs).Error; err != nil {
		return nil, fmt.Errorf("failed to insert images: %w", err)
	}
	return imgs, nil
}
