package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MGservicing/MGservice-2/internal/model"
)

func TestStatusUnknownOrder(t *testing.T) {
	svc := NewOrderStatusService(newFakeStore())

	status, err := svc.Status(context.Background(), 9999)
	require.NoError(t, err)
	assert.Equal(t, StatusUnknown, status)
}

func TestStatusReportsCurrentState(t *testing.T) {
	store := newFakeStore()
	svc := NewOrderStatusService(store)
	order := seedPendingOrder(store)

	status, err := svc.Status(context.Background(), order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, status)

	// Status is a pure read: polling never advances the order.
	for i := 0; i < 3; i++ {
		_, err := svc.Status(context.Background(), order.OrderNumber)
		require.NoError(t, err)
	}
	got, _ := store.GetPendingByOrderNumber(context.Background(), order.OrderNumber)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestConfirmRequiresProcessedState(t *testing.T) {
	store := newFakeStore()
	svc := NewOrderStatusService(store)
	order := seedPendingOrder(store)

	// Still pending: the client cannot self-declare payment success.
	applied, err := svc.Confirm(context.Background(), order.OrderNumber)
	require.NoError(t, err)
	assert.False(t, applied)

	got, _ := store.GetPendingByOrderNumber(context.Background(), order.OrderNumber)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestConfirmAppliesExactlyOnce(t *testing.T) {
	store := newFakeStore()
	svc := NewOrderStatusService(store)
	order := seedPendingOrder(store)

	ok, err := store.TransitionPendingStatus(context.Background(), order.OrderNumber, model.StatusPending, model.StatusProcessed)
	require.NoError(t, err)
	require.True(t, ok)

	applied, err := svc.Confirm(context.Background(), order.OrderNumber)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = svc.Confirm(context.Background(), order.OrderNumber)
	require.NoError(t, err)
	assert.False(t, applied, "second confirmation is a no-op")

	status, _ := svc.Status(context.Background(), order.OrderNumber)
	assert.Equal(t, model.StatusPaid, status)
}

func TestConcurrentTransitionsApplyOnce(t *testing.T) {
	store := newFakeStore()
	order := seedPendingOrder(store)

	results := make(chan bool, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.TransitionPendingStatus(context.Background(), order.OrderNumber, model.StatusPending, model.StatusProcessed)
			assert.NoError(t, err)
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	applied := 0
	for ok := range results {
		if ok {
			applied++
		}
	}
	assert.Equal(t, 1, applied, "exactly one of two concurrent transitions wins")
}
