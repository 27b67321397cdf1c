package services

import (
	"context"
	"errors"
	"time"

	"toyblox/internal/models"
	"toyblox/internal/repositories"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	orderStatsKey     = "toyblox:orders:stats"
	recentOrdersLimit = 5
	statsMonths       = 6
	topProductsLimit  = 3
	topSellingLimit   = 10
	defaultWindowDays = 30
	cacheTimeout      = 500 * time.Millisecond
)

// StatsCache stores computed dashboards. pkg/cache.Redis implements it.
type StatsCache interface {
	GetJSON(ctx context.Context, key string, v any) error
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// AnalyticsService computes the dashboard aggregates.
type AnalyticsService struct {
	repo  repositories.AnalyticsRepository
	cache StatsCache
	ttl   time.Duration
	log   zerolog.Logger
	now   func() time.Time
}

// NewAnalyticsService creates an AnalyticsService. cache may be nil.
func NewAnalyticsService(repo repositories.AnalyticsRepository, cache StatsCache, ttl time.Duration, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{repo: repo, cache: cache, ttl: ttl, log: log, now: time.Now}
}

// OrderStats returns totals, counts by status, the latest orders and the
// order count and revenue of the last six months.
func (s *AnalyticsService) OrderStats(ctx context.Context) (*models.OrderStats, error) {
	if stats, ok := s.cachedOrderStats(ctx); ok {
		return stats, nil
	}

	total, err := s.repo.CountOrders(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.OrdersByStatus(ctx, nil)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.RecentOrders(ctx, recentOrdersLimit)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(statsMonths - 1), 0)
	placed, err := s.repo.OrdersPlacedSince(ctx, start)
	if err != nil {
		return nil, err
	}

	stats := &models.OrderStats{
		TotalOrders:    total,
		OrdersByStatus: completeStatusCounts(byStatus),
		RecentOrders:   recent,
		MonthlyOrders:  groupByMonth(placed, start, statsMonths),
	}
	if stats.RecentOrders == nil {
		stats.RecentOrders = []models.OrderSummary{}
	}

	s.storeOrderStats(ctx, stats)
	return stats, nil
}

func (s *AnalyticsService) cachedOrderStats(ctx context.Context) (*models.OrderStats, bool) {
	if s.cache == nil {
		return nil, false
	}
	cctx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()

	var stats models.OrderStats
	if err := s.cache.GetJSON(cctx, orderStatsKey, &stats); err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("order stats cache read failed")
		}
		return nil, false
	}
	return &stats, true
}

func (s *AnalyticsService) storeOrderStats(ctx context.Context, stats *models.OrderStats) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	cctx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()
	if err := s.cache.SetJSON(cctx, orderStatsKey, stats, s.ttl); err != nil {
		s.log.Warn().Err(err).Msg("order stats cache write failed")
	}
}

// InvalidateOrderStats drops the cached order dashboard so the next read
// sees a placement or status change.
func (s *AnalyticsService) InvalidateOrderStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	cctx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()
	if err := s.cache.Delete(cctx, orderStatsKey); err != nil {
		s.log.Warn().Err(err).Msg("order stats cache invalidation failed")
	}
}

// completeStatusCounts returns one entry per status in lifecycle order.
func completeStatusCounts(rows []models.StatusCount) []models.StatusCount {
	counts := make(map[models.OrderStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] += r.Count
	}
	out := make([]models.StatusCount, 0, 3)
	for _, st := range []models.OrderStatus{models.StatusPending, models.StatusShipped, models.StatusDelivered} {
		out = append(out, models.StatusCount{Status: st, Count: counts[st]})
	}
	return out
}

func groupByMonth(orders []models.OrderSummary, start time.Time, months int) []models.MonthlyOrders {
	out := make([]models.MonthlyOrders, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		m := start.AddDate(0, i, 0).Format("2006-01")
		out[i].Month = m
		index[m] = i
	}
	for _, o := range orders {
		i, ok := index[o.DatePlaced.UTC().Format("2006-01")]
		if !ok {
			continue
		}
		out[i].OrderCount++
		out[i].Revenue += o.TotalAmount
	}
	return out
}

// AdminStats returns the headline counters of the admin dashboard.
func (s *AnalyticsService) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	orders, err := s.repo.CountOrders(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.CountItems(ctx)
	if err != nil {
		return nil, err
	}
	roles, err := s.repo.UsersByRole(ctx)
	if err != nil {
		return nil, err
	}
	return &models.AdminStats{
		TotalOrders:    orders,
		TotalProducts:  items,
		TotalAdmins:    roles.Admins,
		TotalCustomers: roles.Users,
	}, nil
}

// TopProducts returns the newest catalog items.
func (s *AnalyticsService) TopProducts(ctx context.Context) ([]models.TopProduct, error) {
	return s.repo.NewestItems(ctx, topProductsLimit)
}

// OrdersByStatus counts orders placed in the last days days. Every status is present.
func (s *AnalyticsService) OrdersByStatus(ctx context.Context, days int) (map[models.OrderStatus]int64, error) {
	since := s.windowStart(days)
	rows, err := s.repo.OrdersByStatus(ctx, &since)
	if err != nil {
		return nil, err
	}
	out := make(map[models.OrderStatus]int64, 3)
	for _, c := range completeStatusCounts(rows) {
		out[c.Status] = c.Count
	}
	return out, nil
}

func (s *AnalyticsService) UsersByRole(ctx context.Context) (models.UserRoleCounts, error) {
	return s.repo.UsersByRole(ctx)
}

// TopSelling returns the items ordered most over the last days days.
func (s *AnalyticsService) TopSelling(ctx context.Context, days int) ([]models.ProductSales, error) {
	return s.repo.TopSellingItems(ctx, s.windowStart(days), topSellingLimit)
}

func (s *AnalyticsService) windowStart(days int) time.Time {
	if days <= 0 {
		days = defaultWindowDays
	}
	return s.now().UTC().AddDate(0, 0, -days)
}
