package services

import (
	"context"
	"errors"

	"github.com/MGservicing/MGservice-2/internal/model"
	"github.com/MGservicing/MGservice-2/internal/repository"
)

// StatusUnknown is reported for order numbers with no pending order.
const StatusUnknown = "unknown"

// OrderStatusService backs the client-facing order polling and the final
// processed -> paid confirmation. Reads never mutate; the confirmation is
// an explicit POST-only transition.
type OrderStatusService struct {
	Store OrderStore
}

func NewOrderStatusService(store OrderStore) *OrderStatusService {
	return &OrderStatusService{Store: store}
}

// Status returns the current pending-order status, or StatusUnknown when
// the order does not exist.
func (s *OrderStatusService) Status(ctx context.Context, orderNumber int64) (string, error) {
	order, err := s.Store.GetPendingByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return StatusUnknown, nil
		}
		return "", err
	}
	return order.Status, nil
}

// Confirm marks a processed order as paid, exactly once. The transition
// is gated on processed, so a client cannot declare payment success
// before the provider's completion event has landed server-side.
func (s *OrderStatusService) Confirm(ctx context.Context, orderNumber int64) (bool, error) {
	return s.Store.TransitionPendingStatus(ctx, orderNumber, model.StatusProcessed, model.StatusPaid)
}
