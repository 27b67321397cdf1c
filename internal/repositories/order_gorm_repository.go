package repositories

import (
	"context"
	"fmt"
	"time"

	"toyblox/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db     *gorm.DB
	outbox *GORMOutboxRepository
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db:     db,
		outbox: NewGORMOutboxRepository(db),
	}
}

// Create places an order. Any failing line rolls back the whole order.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order, lines []models.OrderLine, event *models.OutboxEvent) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range lines {
			line := &lines[i]
			if line.ID == "" {
				line.ID = uuid.New().String()
			}
			line.OrderID = order.ID

			if err := decrementStock(tx, line.ItemID, line.Quantity); err != nil {
				return err
			}
			if err := tx.Create(line).Error; err != nil {
				return fmt.Errorf("failed to create order line for item %s: %w", line.ItemID, err)
			}
		}
		order.Lines = lines

		if event != nil {
			event.AggregateID = order.ID
			return r.outbox.Enqueue(tx, event)
		}
		return nil
	})
}

func decrementStock(tx *gorm.DB, itemID string, quantity int) error {
	var item models.Item
	if err := tx.Select("id").First(&item, "id = ?", itemID).Error; err != nil {
		if isNotFound(err) {
			return fmt.Errorf("item with ID %s: %w", itemID, ErrNotFound)
		}
		return fmt.Errorf("failed to look up item %s: %w", itemID, err)
	}

	res := tx.Model(&models.Stock{}).
		Where("item_id = ? AND quantity >= ?", itemID, quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to decrement stock of item %s: %w", itemID, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := tx.Model(&models.Stock{}).Where("item_id = ?", itemID).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to look up stock of item %s: %w", itemID, err)
	}
	if n == 0 {
		return fmt.Errorf("stock for item %s: %w", itemID, ErrNotFound)
	}
	return fmt.Errorf("item %s (requested: %d): %w", itemID, quantity, ErrInsufficientStock)
}

// GetByID retrieves an order header with its lines.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Lines").First(&order, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetDetails loads an order with its customer, owning user and line items.
// Deleted customers and users still resolve so history stays readable.
func (r *GORMOrderRepository) GetDetails(ctx context.Context, id string) (*models.OrderDetails, error) {
	order, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	var customer models.Customer
	if err := db.Unscoped().First(&customer, "id = ?", order.CustomerID).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("customer %s of order %s: %w", order.CustomerID, id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer of order %s: %w", id, err)
	}
	var user models.User
	if err := db.Unscoped().First(&user, "id = ?", customer.UserID).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("user %s of order %s: %w", customer.UserID, id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user of order %s: %w", id, err)
	}

	var lines []models.LineDetail
	err = db.Table("order_lines ol").
		Select(`ol.id AS order_line_id, ol.item_id, COALESCE(i.description, '') AS description, ol.quantity,
			ol.price_at_order, COALESCE((SELECT MIN(ii.image_path) FROM item_images ii
				WHERE ii.item_id = ol.item_id AND ii.deleted_at IS NULL), '') AS image_url`).
		Joins("LEFT JOIN items i ON i.id = ol.item_id").
		Where("ol.order_id = ?", id).
		Order("ol.created_at").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get lines of order %s: %w", id, err)
	}

	var total float64
	for _, l := range lines {
		total += float64(l.Quantity) * l.PriceAtOrder
	}

	return &models.OrderDetails{
		Order:       *order,
		Customer:    customer,
		User:        user,
		Lines:       lines,
		TotalAmount: total,
	}, nil
}

// List returns order summaries with their line totals.
func (r *GORMOrderRepository) List(ctx context.Context, customerID string) ([]models.OrderSummary, error) {
	q := summaryQuery(r.db.WithContext(ctx))
	if customerID != "" {
		q = q.Where("o.customer_id = ?", customerID)
	}
	var rows []models.OrderSummary
	if err := q.Order("o.date_placed DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return rows, nil
}

func summaryQuery(db *gorm.DB) *gorm.DB {
	return db.Table("orders o").
		Select(`o.id, o.status, o.date_placed, o.customer_id, c.user_id, u.f_name AS first_name,
			u.l_name AS last_name, u.email, COUNT(ol.id) AS item_count,
			COALESCE(SUM(ol.quantity * ol.price_at_order), 0) AS total_amount`).
		Joins("JOIN customers c ON c.id = o.customer_id").
		Joins("JOIN users u ON u.id = c.user_id").
		Joins("LEFT JOIN order_lines ol ON ol.order_id = o.id").
		Group("o.id, o.status, o.date_placed, o.customer_id, c.user_id, u.f_name, u.l_name, u.email")
}

// UpdateStatus applies a status change with compare-and-set on the current status.
func (r *GORMOrderRepository) UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus, at time.Time, event *models.OutboxEvent) error {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": at,
	}
	switch to {
	case models.StatusShipped:
		updates["date_shipped"] = at
	case models.StatusDelivered:
		updates["date_delivered"] = at
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", id, from).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to update status of order %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("order %s is no longer %s: %w", id, from, ErrConflict)
		}
		if event != nil {
			event.AggregateID = id
			return r.outbox.Enqueue(tx, event)
		}
		return nil
	})
}
