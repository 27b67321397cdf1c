package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"toyblox/internal/models"
	"toyblox/internal/repositories"

	"github.com/rs/zerolog"
)

// OrderLookup loads everything a notification about an order needs.
type OrderLookup interface {
	GetDetails(ctx context.Context, id string) (*models.OrderDetails, error)
}

// UserLookup loads the recipient of an account notification.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Result reports the outcome of a delivered notification.
type Result struct {
	Delivered bool
	Err       error
}

// Dispatcher turns outbox events into emails.
type Dispatcher struct {
	orders  OrderLookup
	users   UserLookup
	mailer  Mailer
	log     zerolog.Logger
	baseURL string
	tempDir string
	now     func() time.Time
}

func NewDispatcher(orders OrderLookup, users UserLookup, mailer Mailer, log zerolog.Logger, baseURL string) *Dispatcher {
	return &Dispatcher{
		orders:  orders,
		users:   users,
		mailer:  mailer,
		log:     log.With().Str("component", "notifications").Logger(),
		baseURL: strings.TrimRight(baseURL, "/"),
		tempDir: os.TempDir(),
		now:     time.Now,
	}
}

// Handle sends the email for one event. A returned error means the event
// should be retried. Events whose subject no longer exists are dropped.
func (d *Dispatcher) Handle(ctx context.Context, event models.OutboxEvent) error {
	var payload models.EventPayload
	if event.Payload != "" {
		if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
			d.log.Error().Err(err).Str("event_id", event.ID).Msg("dropping event with malformed payload")
			return nil
		}
	}

	var err error
	switch event.EventType {
	case models.EventUserRegistered:
		err = d.SendWelcome(ctx, firstNonEmpty(payload.UserID, event.AggregateID))
	case models.EventOrderPlaced:
		err = d.SendConfirmation(ctx, firstNonEmpty(payload.OrderID, event.AggregateID))
	case models.EventOrderShipped:
		err = d.SendShipped(ctx, firstNonEmpty(payload.OrderID, event.AggregateID))
	case models.EventOrderDelivered:
		err = d.SendDelivered(ctx, firstNonEmpty(payload.OrderID, event.AggregateID)).Err
	default:
		d.log.Warn().Str("event_type", event.EventType).Str("event_id", event.ID).Msg("no handler for event type")
		return nil
	}
	return err
}

// SendWelcome sends the welcome email with the verification link.
func (d *Dispatcher) SendWelcome(ctx context.Context, userID string) error {
	user, err := d.users.GetByID(ctx, userID)
	if err != nil {
		return d.skipMissing(err, models.EventUserRegistered, userID)
	}
	if user.Verified || user.VerificationToken == "" {
		d.log.Debug().Str("user_id", userID).Msg("user already verified, skipping welcome email")
		return nil
	}

	body, err := render(welcomeTmpl, map[string]interface{}{
		"FirstName": user.FirstName,
		"VerifyURL": d.baseURL + "/api/v1/verify?token=" + url.QueryEscape(user.VerificationToken),
	})
	if err != nil {
		return err
	}
	return d.send(ctx, models.EventUserRegistered, Message{
		To:      user.Email,
		Subject: "Welcome to ToyBlox! Please verify your email",
		HTML:    body,
	})
}

// SendConfirmation sends the order placed email.
func (d *Dispatcher) SendConfirmation(ctx context.Context, orderID string) error {
	details, err := d.orders.GetDetails(ctx, orderID)
	if err != nil {
		return d.skipMissing(err, models.EventOrderPlaced, orderID)
	}

	body, err := render(placedTmpl, map[string]interface{}{
		"FirstName": details.User.FirstName,
		"OrderID":   details.Order.ID,
		"Lines":     details.Lines,
		"Total":     details.TotalAmount,
	})
	if err != nil {
		return err
	}
	return d.send(ctx, models.EventOrderPlaced, Message{
		To:      details.User.Email,
		Subject: fmt.Sprintf("Order Confirmation #%s", details.Order.ID),
		HTML:    body,
	})
}

// SendShipped sends the shipped email. It returns nil without sending when
// the order, its customer or its user cannot be found.
func (d *Dispatcher) SendShipped(ctx context.Context, orderID string) error {
	details, err := d.orders.GetDetails(ctx, orderID)
	if err != nil {
		return d.skipMissing(err, models.EventOrderShipped, orderID)
	}

	body, err := render(shippedTmpl, map[string]interface{}{
		"FirstName": details.User.FirstName,
		"OrderID":   details.Order.ID,
		"Address":   formatAddress(details.Customer),
	})
	if err != nil {
		return err
	}
	return d.send(ctx, models.EventOrderShipped, Message{
		To:      details.User.Email,
		Subject: fmt.Sprintf("Your order #%s has shipped", details.Order.ID),
		HTML:    body,
	})
}

// SendDelivered sends the delivered email with a PDF receipt attached. The
// receipt file only lives for the duration of the send.
func (d *Dispatcher) SendDelivered(ctx context.Context, orderID string) Result {
	res := d.sendDelivered(ctx, orderID)
	if res.Err != nil {
		d.log.Error().Err(res.Err).Str("order_id", orderID).Msg("failed to send delivered email")
	}
	return res
}

func (d *Dispatcher) sendDelivered(ctx context.Context, orderID string) Result {
	details, err := d.orders.GetDetails(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			d.log.Warn().Err(err).Str("order_id", orderID).Msg("order not found, skipping delivered email")
			return Result{}
		}
		return Result{Err: err}
	}

	receipt := BuildReceipt(details, d.now())
	body, err := render(deliveredTmpl, map[string]interface{}{
		"FirstName": details.User.FirstName,
		"Receipt":   receipt,
	})
	if err != nil {
		return Result{Err: err}
	}

	f, err := os.CreateTemp(d.tempDir, "receipt-*.pdf")
	if err != nil {
		return Result{Err: fmt.Errorf("failed to create receipt file: %w", err)}
	}
	path := f.Name()
	defer os.Remove(path)

	if err := receipt.WritePDF(f); err != nil {
		f.Close()
		return Result{Err: fmt.Errorf("failed to render receipt PDF: %w", err)}
	}
	if err := f.Close(); err != nil {
		return Result{Err: fmt.Errorf("failed to write receipt file: %w", err)}
	}

	err = d.send(ctx, models.EventOrderDelivered, Message{
		To:          details.User.Email,
		Subject:     fmt.Sprintf("Your order #%s has been delivered", details.Order.ID),
		HTML:        body,
		Attachments: []string{path},
	})
	if err != nil {
		return Result{Err: err}
	}
	return Result{Delivered: true}
}

func (d *Dispatcher) send(ctx context.Context, eventType string, msg Message) error {
	err := d.mailer.Send(ctx, msg)
	observeMail(eventType, err)
	if err != nil {
		return err
	}
	d.log.Info().Str("event_type", eventType).Str("to", msg.To).Msg("notification sent")
	return nil
}

func (d *Dispatcher) skipMissing(err error, eventType, id string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		d.log.Warn().Err(err).Str("event_type", eventType).Str("id", id).Msg("subject not found, skipping notification")
		return nil
	}
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
