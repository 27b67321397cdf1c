package repositories

import (
	"context"
	"fmt"
	"time"

	"toyblox/internal/models"

	"gorm.io/gorm"
)

// GORMAnalyticsRepository is a GORM implementation of AnalyticsRepository.
type GORMAnalyticsRepository struct {
	db *gorm.DB
}

func NewGORMAnalyticsRepository(db *gorm.DB) *GORMAnalyticsRepository {
	return &GORMAnalyticsRepository{db: db}
}

func (r *GORMAnalyticsRepository) CountOrders(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return n, nil
}

// OrdersByStatus counts orders per status, optionally only those placed since a time.
func (r *GORMAnalyticsRepository) OrdersByStatus(ctx context.Context, since *time.Time) ([]models.StatusCount, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status")
	if since != nil {
		q = q.Where("date_placed >= ?", *since)
	}
	var rows []models.StatusCount
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}
	return rows, nil
}

func (r *GORMAnalyticsRepository) RecentOrders(ctx context.Context, limit int) ([]models.OrderSummary, error) {
	var rows []models.OrderSummary
	err := summaryQuery(r.db.WithContext(ctx)).
		Order("o.date_placed DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent orders: %w", err)
	}
	return rows, nil
}

func (r *GORMAnalyticsRepository) OrdersPlacedSince(ctx context.Context, since time.Time) ([]models.OrderSummary, error) {
	var rows []models.OrderSummary
	err := summaryQuery(r.db.WithContext(ctx)).
		Where("o.date_placed >= ?", since).
		Order("o.date_placed").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders since %s: %w", since.Format(time.RFC3339), err)
	}
	return rows, nil
}

// CountItems counts active catalog items.
func (r *GORMAnalyticsRepository) CountItems(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Item{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return n, nil
}

// UsersByRole counts active users per role.
func (r *GORMAnalyticsRepository) UsersByRole(ctx context.Context) (models.UserRoleCounts, error) {
	var rows []struct {
		Role  models.Role
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return models.UserRoleCounts{}, fmt.Errorf("failed to count users by role: %w", err)
	}

	var out models.UserRoleCounts
	for _, row := range rows {
		if row.Role == models.RoleAdmin {
			out.Admins += row.Count
		} else {
			out.Users += row.Count
		}
	}
	return out, nil
}

// NewestItems returns the most recently added active items with their first image.
func (r *GORMAnalyticsRepository) NewestItems(ctx context.Context, limit int) ([]models.TopProduct, error) {
	var rows []models.TopProduct
	err := r.db.WithContext(ctx).
		Table("items i").
		Select(`i.id AS item_id, i.description AS name, i.sell_price,
			COALESCE((SELECT MIN(ii.image_path) FROM item_images ii
				WHERE ii.item_id = i.id AND ii.deleted_at IS NULL), '') AS image_url`).
		Where("i.deleted_at IS NULL").
		Order("i.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch newest items: %w", err)
	}
	return rows, nil
}

// TopSellingItems ranks items by quantity ordered since a time.
func (r *GORMAnalyticsRepository) TopSellingItems(ctx context.Context, since time.Time, limit int) ([]models.ProductSales, error) {
	var rows []models.ProductSales
	err := r.db.WithContext(ctx).
		Table("order_lines ol").
		Select("i.id AS item_id, i.description, SUM(ol.quantity) AS quantity").
		Joins("JOIN items i ON i.id = ol.item_id").
		Joins("JOIN orders o ON o.id = ol.order_id").
		Where("o.date_placed >= ?", since).
		Group("i.id, i.description").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top selling items: %w", err)
	}
	return rows, nil
}
