package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MGservicing/MGservice-2/internal/model"
	"github.com/MGservicing/MGservice-2/internal/repository"
	"github.com/MGservicing/MGservice-2/internal/vault"
)

func testAdmin(t *testing.T) (*AdminService, *fakeStore, *vault.Vault) {
	t.Helper()
	v, err := vault.New(testVaultKey)
	require.NoError(t, err)

	store := newFakeStore()
	svc := NewAdminService(store, v, "sesame", []byte("test-secret"))
	return svc, store, v
}

func TestAdminLogin(t *testing.T) {
	svc, _, _ := testAdmin(t)

	token, err := svc.Login("sesame")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Login("wrong")
	assert.ErrorIs(t, err, ErrBadAdminPassword)
}

func TestGetOrderDetailDecryptsCredential(t *testing.T) {
	svc, store, v := testAdmin(t)

	token, err := v.Encrypt("hunter2")
	require.NoError(t, err)

	err = store.CreateSuccessful(context.Background(), &model.SuccessfulOrder{
		OrderNumber:         7,
		Email:               "amy@gmail.com",
		CartItems:           stickerCart(),
		Status:              model.StatusPaid,
		EncryptedCredential: &token,
	})
	require.NoError(t, err)

	detail, err := svc.GetOrderDetail(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", detail.Credential)
	assert.Equal(t, int64(7), detail.Order.OrderNumber)
}

func TestGetOrderDetailMalformedCredential(t *testing.T) {
	svc, store, _ := testAdmin(t)

	bad := "not-a-token"
	require.NoError(t, store.CreateSuccessful(context.Background(), &model.SuccessfulOrder{
		OrderNumber:         8,
		CartItems:           stickerCart(),
		Status:              model.StatusPaid,
		EncryptedCredential: &bad,
	}))

	_, err := svc.GetOrderDetail(context.Background(), 8)
	assert.ErrorIs(t, err, vault.ErrMalformedToken)
}

func TestGetOrderDetailWithoutCredential(t *testing.T) {
	svc, store, _ := testAdmin(t)

	require.NoError(t, store.CreateSuccessful(context.Background(), &model.SuccessfulOrder{
		OrderNumber: 9,
		CartItems:   stickerCart(),
		Status:      model.StatusPaid,
	}))

	detail, err := svc.GetOrderDetail(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, detail.Credential)
}

func TestGetOrderDetailNotFound(t *testing.T) {
	svc, _, _ := testAdmin(t)

	_, err := svc.GetOrderDetail(context.Background(), 404)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateFulfilmentStatus(t *testing.T) {
	svc, store, _ := testAdmin(t)

	require.NoError(t, store.CreateSuccessful(context.Background(), &model.SuccessfulOrder{
		OrderNumber: 10,
		CartItems:   stickerCart(),
		Status:      model.StatusPaid,
	}))

	require.NoError(t, svc.UpdateFulfilmentStatus(context.Background(), 10, model.StatusCompleted))
	got, _ := store.GetSuccessfulByOrderNumber(context.Background(), 10)
	assert.Equal(t, model.StatusCompleted, got.Status)

	assert.ErrorIs(t, svc.UpdateFulfilmentStatus(context.Background(), 10, "bogus"), ErrBadStatus)
	assert.ErrorIs(t, svc.UpdateFulfilmentStatus(context.Background(), 404, model.StatusCompleted), repository.ErrNotFound)
}
