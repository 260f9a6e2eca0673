package services

import (
	"context"

	"github.com/MGservicing/MGservice-2/internal/model"
)

// OrderStore is the persistence surface the order lifecycle needs.
// Implemented by repository.OrderRepository; faked in tests.
type OrderStore interface {
	CreatePending(ctx context.Context, o *model.PendingOrder) (int64, error)
	AttachSession(ctx context.Context, orderNumber int64, sessionID string) error
	GetPendingByOrderNumber(ctx context.Context, orderNumber int64) (*model.PendingOrder, error)

	// TransitionPendingStatus succeeds only when the stored status still
	// equals from; a mismatch returns false without error.
	TransitionPendingStatus(ctx context.Context, orderNumber int64, from, to string) (bool, error)

	CreateSuccessful(ctx context.Context, o *model.SuccessfulOrder) error
	GetSuccessfulByOrderNumber(ctx context.Context, orderNumber int64) (*model.SuccessfulOrder, error)
	ListSuccessful(ctx context.Context) ([]model.SuccessfulOrder, error)
	UpdateSuccessfulStatus(ctx context.Context, orderNumber int64, status string) error
}
