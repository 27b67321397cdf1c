package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"toyblox/internal/models"
	"toyblox/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID string
	Role   models.Role
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// OrderStatsInvalidator is told whenever orders change. AnalyticsService implements it.
type OrderStatsInvalidator interface {
	InvalidateOrderStats(ctx context.Context)
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	stats     OrderStatsInvalidator
	log       zerolog.Logger
	now       func() time.Time
}

// NewOrderService creates a new OrderService. stats may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, stats OrderStatsInvalidator, log zerolog.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		stats:     stats,
		log:       log,
		now:       time.Now,
	}
}

func (s *OrderService) ordersChanged(ctx context.Context) {
	if s.stats != nil {
		s.stats.InvalidateOrderStats(ctx)
	}
}

// PlaceOrder creates a pending order for the customer profile of userID.
// Each line keeps the submitted price. Stock is decremented in the same
// transaction and the confirmation email is queued.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, cart []models.CartLine) (*models.Order, error) {
	if len(cart) == 0 {
		return nil, fmt.Errorf("order must contain at least one item: %w", ErrInvalidInput)
	}

	customer, err := s.userRepo.GetCustomerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("customer not found for user %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}

	order := &models.Order{
		ID:         uuid.New().String(),
		CustomerID: customer.ID,
		Status:     models.StatusPending,
		DatePlaced: s.now().UTC(),
	}
	lines := make([]models.OrderLine, 0, len(cart))
	for _, c := range cart {
		lines = append(lines, models.OrderLine{
			ItemID:       c.ItemID,
			Quantity:     c.Quantity,
			PriceAtOrder: c.Price,
		})
	}

	event, err := repositories.NewEvent(models.EventOrderPlaced, order.ID, models.EventPayload{
		OrderID: order.ID,
		UserID:  userID,
		Status:  string(models.StatusPending),
	})
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Create(ctx, order, lines, event); err != nil {
		return nil, err
	}
	s.ordersChanged(ctx)

	s.log.Info().Str("order_id", order.ID).Str("customer_id", customer.ID).Int("lines", len(lines)).Msg("order placed")
	return order, nil
}

// UpdateOrderStatus moves an order one step forward. Setting the current
// status again is a no-op. Backward moves and skipped steps fail with a
// *models.TransitionError.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id, status string) (models.OrderStatus, error) {
	target, ok := models.ParseOrderStatus(status)
	if !ok {
		return "", fmt.Errorf("invalid status %q: %w", status, ErrInvalidInput)
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	changed, err := order.Status.TransitionTo(target)
	if err != nil {
		return "", err
	}
	if !changed {
		return target, nil
	}

	event, err := repositories.NewEvent(target.EventType(), id, models.EventPayload{OrderID: id, Status: string(target)})
	if err != nil {
		return "", err
	}
	if err := s.orderRepo.UpdateStatus(ctx, id, order.Status, target, s.now().UTC(), event); err != nil {
		return "", err
	}
	s.ordersChanged(ctx)

	s.log.Info().Str("order_id", id).Str("from", string(order.Status)).Str("to", string(target)).Msg("order status updated")
	return target, nil
}

// GetOrder returns an order with its lines. Users may only read their own orders.
func (s *OrderService) GetOrder(ctx context.Context, actor Actor, id string) (*models.OrderDetails, error) {
	details, err := s.orderRepo.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && details.User.ID != actor.UserID {
		return nil, fmt.Errorf("order %s belongs to another user: %w", id, ErrForbidden)
	}
	return details, nil
}

// ListOrders returns every order for admins and the caller's own orders otherwise.
func (s *OrderService) ListOrders(ctx context.Context, actor Actor) ([]models.OrderSummary, error) {
	if actor.IsAdmin() {
		return s.orderRepo.List(ctx, "")
	}
	customer, err := s.userRepo.GetCustomerByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []models.OrderSummary{}, nil
		}
		return nil, err
	}
	return s.orderRepo.List(ctx, customer.ID)
}
