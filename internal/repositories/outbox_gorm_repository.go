package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"toyblox/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOutboxRepository stores notification events next to the rows that caused them.
type GORMOutboxRepository struct {
	db *gorm.DB
}

func NewGORMOutboxRepository(db *gorm.DB) *GORMOutboxRepository {
	return &GORMOutboxRepository{db: db}
}

// NewEvent builds an outbox event for the payload. It is due immediately.
func NewEvent(eventType, aggregateID string, payload models.EventPayload) (*models.OutboxEvent, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &models.OutboxEvent{
		ID:            uuid.New().String(),
		EventType:     eventType,
		AggregateID:   aggregateID,
		Payload:       string(b),
		NextAttemptAt: now,
		CreatedAt:     now,
	}, nil
}

// Enqueue writes the event inside the caller's transaction.
func (r *GORMOutboxRepository) Enqueue(tx *gorm.DB, event *models.OutboxEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.NextAttemptAt.IsZero() {
		event.NextAttemptAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	if err := tx.Create(event).Error; err != nil {
		return fmt.Errorf("failed to enqueue %s event: %w", event.EventType, err)
	}
	return nil
}

// FetchDue returns unsent events whose next attempt is at or before now, oldest first.
func (r *GORMOutboxRepository) FetchDue(ctx context.Context, now time.Time, limit int) ([]models.OutboxEvent, error) {
	var events []models.OutboxEvent
	err := r.db.WithContext(ctx).
		Where("sent_at IS NULL AND next_attempt_at <= ?", now).
		Order("created_at").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due outbox events: %w", err)
	}
	return events, nil
}

// Claim pushes the event's next attempt to leaseUntil if nobody else moved it
// first. It reports false when another relay already claimed the event.
func (r *GORMOutboxRepository) Claim(ctx context.Context, e *models.OutboxEvent, leaseUntil time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.OutboxEvent{}).
		Where("id = ? AND sent_at IS NULL AND next_attempt_at = ?", e.ID, e.NextAttemptAt).
		Update("next_attempt_at", leaseUntil)
	if res.Error != nil {
		return false, fmt.Errorf("failed to claim outbox event %s: %w", e.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	e.NextAttemptAt = leaseUntil
	return true, nil
}

func (r *GORMOutboxRepository) MarkSent(ctx context.Context, id string, at time.Time, lastError string) error {
	err := r.db.WithContext(ctx).
		Model(&models.OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"sent_at": at, "last_error": lastError}).Error
	if err != nil {
		return fmt.Errorf("failed to mark outbox event %s sent: %w", id, err)
	}
	return nil
}

func (r *GORMOutboxRepository) MarkFailed(ctx context.Context, id string, attempts int, next time.Time, lastError string) error {
	err := r.db.WithContext(ctx).
		Model(&models.OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts":        attempts,
			"next_attempt_at": next,
			"last_error":      lastError,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to reschedule outbox event %s: %w", id, err)
	}
	return nil
}

func (r *GORMOutboxRepository) CountPending(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.OutboxEvent{}).Where("sent_at IS NULL").Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count pending outbox events: %w", err)
	}
	return n, nil
}
