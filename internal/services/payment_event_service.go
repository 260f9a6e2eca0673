package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MGservicing/MGservice-2/internal/model"
	"github.com/MGservicing/MGservice-2/internal/pricing"
)

// ErrInvalidSignature means the notification failed the authenticity
// check. The only webhook failure surfaced to the provider.
var ErrInvalidSignature = errors.New("invalid notification signature")

// PaymentEventService consumes the payment provider's asynchronous
// notifications and drives the pending -> processed transition.
type PaymentEventService struct {
	Store   OrderStore
	Gateway PaymentGateway
	Mailer  EmailSender
	Logger  *slog.Logger
}

func NewPaymentEventService(store OrderStore, gw PaymentGateway, mailer EmailSender, logger *slog.Logger) *PaymentEventService {
	return &PaymentEventService{
		Store:   store,
		Gateway: gw,
		Mailer:  mailer,
		Logger:  logger,
	}
}

// HandleNotification verifies and applies one provider notification.
//
// Signature verification is a hard boundary: on mismatch it returns
// ErrInvalidSignature and touches no state. Past that point every
// internal failure is logged and swallowed so the provider's retry
// policy cannot hammer an already-settled transaction; the delivery is
// acknowledged by returning nil.
func (s *PaymentEventService) HandleNotification(ctx context.Context, payload map[string]interface{}) error {
	orderRef, _ := payload["order_id"].(string)
	statusCode, _ := payload["status_code"].(string)
	grossAmount, _ := payload["gross_amount"].(string)
	signature, _ := payload["signature_key"].(string)

	if !s.Gateway.VerifySignature(orderRef, statusCode, grossAmount, signature) {
		return ErrInvalidSignature
	}

	transactionStatus, _ := payload["transaction_status"].(string)
	fraudStatus, _ := payload["fraud_status"].(string)

	switch transactionStatus {
	case "settlement":
		s.completeOrder(ctx, orderRef)
	case "capture":
		if fraudStatus == "accept" {
			s.completeOrder(ctx, orderRef)
		}
	}

	// Pending, expire, cancel and deny notifications are acknowledged
	// without touching the order; an abandoned order simply stays pending.
	return nil
}

// completeOrder applies a payment-completed event. Duplicate deliveries
// are no-ops: the conditional pending -> processed transition gates the
// successful-order insert, and the unique order_number constraint backs
// it up.
func (s *PaymentEventService) completeOrder(ctx context.Context, orderRef string) {
	orderNumber, err := parseOrderRef(orderRef)
	if err != nil {
		s.Logger.Warn("notification with unparseable order reference", "order_id", orderRef)
		return
	}

	pending, err := s.Store.GetPendingByOrderNumber(ctx, orderNumber)
	if err != nil {
		s.Logger.Warn("pending order not found for notification",
			"order_number", orderNumber, "err", err)
		return
	}

	applied, err := s.Store.TransitionPendingStatus(ctx, orderNumber, model.StatusPending, model.StatusProcessed)
	if err != nil {
		s.Logger.Error("status transition failed", "order_number", orderNumber, "err", err)
		return
	}
	if !applied {
		// Already processed: a replayed delivery. Nothing left to do.
		s.Logger.Info("duplicate completion notification ignored", "order_number", orderNumber)
		return
	}

	if err := s.Store.CreateSuccessful(ctx, model.SuccessfulFromPending(pending)); err != nil {
		s.Logger.Error("failed to record successful order", "order_number", orderNumber, "err", err)
	}

	s.notify(ctx, pending)
}

// notify sends the customer confirmation and the operator alert.
// Failures are logged and swallowed; the financial transition has already
// happened and must not be retried because of a mail outage.
func (s *PaymentEventService) notify(ctx context.Context, order *model.PendingOrder) {
	amounts := pricing.Totals{Subtotal: order.Subtotal, Tax: order.Tax, Total: order.Total}

	if order.Email != "" {
		if err := s.Mailer.SendCustomerConfirmation(ctx, order.Email, order.OrderNumber, amounts); err != nil {
			s.Logger.Warn("customer confirmation email failed",
				"order_number", order.OrderNumber, "err", err)
		}
	}

	if err := s.Mailer.SendAdminAlert(ctx, order.OrderNumber, order.Email, order.Total, order.CartItems); err != nil {
		s.Logger.Warn("admin alert email failed",
			"order_number", order.OrderNumber, "err", err)
	}
}

// parseOrderRef extracts the local order number from an ORDER-<n>-<uuid>
// provider reference.
func parseOrderRef(ref string) (int64, error) {
	var n int64
	if _, err := fmt.Sscanf(ref, "ORDER-%d-", &n); err != nil {
		return 0, fmt.Errorf("invalid order reference %q", ref)
	}
	return n, nil
}
