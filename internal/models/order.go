package models

import (
	"errors"
	"fmt"
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
)

// ErrInvalidTransition is wrapped by every TransitionError.
var ErrInvalidTransition = errors.New("invalid order status transition")

// TransitionError reports a status change the lifecycle does not allow.
type TransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// next maps each status to the only status it may advance to.
var next = map[OrderStatus]OrderStatus{
	StatusPending: StatusShipped,
	StatusShipped: StatusDelivered,
}

// ParseOrderStatus returns the status named by s, or false if s is not a known status.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(s); st {
	case StatusPending, StatusShipped, StatusDelivered:
		return st, true
	}
	return "", false
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	_, ok := next[s]
	return !ok
}

// TransitionTo checks a move from s to target. It returns changed=false when
// target equals s, and a *TransitionError for backward moves or skipped steps.
func (s OrderStatus) TransitionTo(target OrderStatus) (changed bool, err error) {
	if s == target {
		return false, nil
	}
	if !s.IsTerminal() && next[s] == target {
		return true, nil
	}
	return false, &TransitionError{From: s, To: target}
}

// EventType is the outbox event fired on entering the status, or "" if none.
func (s OrderStatus) EventType() string {
	switch s {
	case StatusShipped:
		return EventOrderShipped
	case StatusDelivered:
		return EventOrderDelivered
	}
	return ""
}

// Order represents a customer order header.
type Order struct {
	ID            string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerID    string      `json:"customer_id" gorm:"index;type:varchar(36)"`
	Status        OrderStatus `json:"status" gorm:"type:varchar(20);index;default:pending"`
	DatePlaced    time.Time   `json:"date_placed" gorm:"index"`
	DateShipped   *time.Time  `json:"date_shipped"`
	DateDelivered *time.Time  `json:"date_delivered"`
	Lines         []OrderLine `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OrderLine represents a single item within an order.
type OrderLine struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID      string    `json:"order_id" gorm:"index;type:varchar(36)"`
	ItemID       string    `json:"item_id" gorm:"index;type:varchar(36)"`
	Quantity     int       `json:"quantity"`
	PriceAtOrder float64   `json:"price_at_order"` // copied from the cart, never re-read from the catalog
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Subtotal is quantity times the captured price.
func (l OrderLine) Subtotal() float64 {
	return float64(l.Quantity) * l.PriceAtOrder
}

// CartLine is one submitted cart entry.
type CartLine struct {
	ItemID   string  `json:"item_id" validate:"required"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Price    float64 `json:"price" validate:"gte=0"`
}

// LineDetail is an order line joined with its item for display.
type LineDetail struct {
	OrderLineID  string  `json:"orderline_id"`
	ItemID       string  `json:"item_id"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"image_url,omitempty"`
	Quantity     int     `json:"quantity"`
	PriceAtOrder float64 `json:"price_at_order"`
}

// OrderDetails is an order with its customer, owning user and lines.
type OrderDetails struct {
	Order       Order        `json:"order"`
	Customer    Customer     `json:"customer"`
	User        User         `json:"user"`
	Lines       []LineDetail `json:"items"`
	TotalAmount float64      `json:"total_amount"`
}

// OrderSummary is one row of an order listing.
type OrderSummary struct {
	ID          string      `json:"id"`
	Status      OrderStatus `json:"status"`
	DatePlaced  time.Time   `json:"date_placed"`
	CustomerID  string      `json:"customer_id"`
	UserID      string      `json:"user_id"`
	FirstName   string      `json:"f_name"`
	LastName    string      `json:"l_name"`
	Email       string      `json:"email"`
	ItemCount   int         `json:"item_count"`
	TotalAmount float64     `json:"total_amount"`
}
