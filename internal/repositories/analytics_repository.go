package repositories

import (
	"context"
	"time"

	"toyblox/internal/models"
)

// AnalyticsRepository provides the read-only aggregates behind the dashboards.
type AnalyticsRepository interface {
	CountOrders(ctx context.Context) (int64, error)
	OrdersByStatus(ctx context.Context, since *time.Time) ([]models.StatusCount, error)
	RecentOrders(ctx context.Context, limit int) ([]models.OrderSummary, error)
	OrdersPlacedSince(ctx context.Context, since time.Time) ([]models.OrderSummary, error)
	CountItems(ctx context.Context) (int64, error)
	UsersByRole(ctx context.Context) (models.UserRoleCounts, error)
	NewestItems(ctx context.Context, limit int) ([]models.TopProduct, error)
	TopSellingItems(ctx context.Context, since time.Time, limit int) ([]models.ProductSales, error)
}
