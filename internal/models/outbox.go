package models

import "time"

const (
	EventUserRegistered = "user.registered"
	EventOrderPlaced    = "order.placed"
	EventOrderShipped   = "order.shipped"
	EventOrderDelivered = "order.delivered"
)

// OutboxEvent is a notification recorded in the same transaction as the change
// that caused it and relayed after commit.
type OutboxEvent struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	EventType     string     `json:"event_type" gorm:"type:varchar(50);index"`
	AggregateID   string     `json:"aggregate_id" gorm:"type:varchar(36);index"`
	Payload       string     `json:"payload" gorm:"type:text"`
	Attempts      int        `json:"attempts"`
	NextAttemptAt time.Time  `json:"next_attempt_at" gorm:"index"`
	SentAt        *time.Time `json:"sent_at" gorm:"index"`
	LastError     string     `json:"last_error,omitempty" gorm:"type:text"`
	CreatedAt     time.Time  `json:"created_at"`
}

// EventPayload is the JSON body of every outbox event.
type EventPayload struct {
	OrderID string `json:"order_id,omitempty"`
	UserID  string `json:"user_id,omitempty"`
	Status  string `json:"status,omitempty"`
}
