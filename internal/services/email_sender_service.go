package services

import (
	"context"

	"github.com/MGservicing/MGservice-2/internal/model"
	"github.com/MGservicing/MGservice-2/internal/pricing"
)

// EmailSender delivers the order-confirmation emails. Delivery is
// fire-and-forget: callers log failures and move on.
type EmailSender interface {
	SendCustomerConfirmation(ctx context.Context, toEmail string, orderNumber int64, amounts pricing.Totals) error
	SendAdminAlert(ctx context.Context, orderNumber int64, customerEmail string, total float64, items []model.CartItem) error
}
