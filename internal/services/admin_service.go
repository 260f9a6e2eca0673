package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/MGservicing/MGservice-2/internal/middleware"
	"github.com/MGservicing/MGservice-2/internal/model"
	"github.com/MGservicing/MGservice-2/internal/vault"
)

var (
	ErrBadAdminPassword = errors.New("invalid admin password")
	ErrBadStatus        = errors.New("unsupported fulfilment status")
)

// Fulfilment statuses the admin may set on a successful order.
var allowedFulfilmentStatuses = map[string]bool{
	model.StatusPaid:      true,
	model.StatusCompleted: true,
}

// AdminService backs the operator panel: login, order inspection with
// credential decryption, and fulfilment status updates.
type AdminService struct {
	Store     OrderStore
	Vault     *vault.Vault
	Password  string
	JWTSecret []byte
}

func NewAdminService(store OrderStore, v *vault.Vault, password string, jwtSecret []byte) *AdminService {
	return &AdminService{
		Store:     store,
		Vault:     v,
		Password:  password,
		JWTSecret: jwtSecret,
	}
}

// Login checks the operator password and issues a short-lived token.
func (s *AdminService) Login(password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.Password)) != 1 {
		return "", ErrBadAdminPassword
	}
	return middleware.GenerateToken(s.JWTSecret, "admin", 12)
}

func (s *AdminService) ListOrders(ctx context.Context) ([]model.SuccessfulOrder, error) {
	return s.Store.ListSuccessful(ctx)
}

// OrderDetail is a successful order with its credential decrypted for
// fulfilment.
type OrderDetail struct {
	Order      model.SuccessfulOrder `json:"order"`
	Credential string                `json:"credential,omitempty"`
}

// GetOrderDetail fetches one successful order and decrypts the stored
// credential, when present.
func (s *AdminService) GetOrderDetail(ctx context.Context, orderNumber int64) (*OrderDetail, error) {
	order, err := s.Store.GetSuccessfulByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	detail := &OrderDetail{Order: *order}
	if order.EncryptedCredential != nil {
		plain, err := s.Vault.Decrypt(*order.EncryptedCredential)
		if err != nil {
			return nil, fmt.Errorf("decrypt credential for order %d: %w", orderNumber, err)
		}
		detail.Credential = plain
	}
	return detail, nil
}

// UpdateFulfilmentStatus sets the fulfilment status on a successful
// order.
func (s *AdminService) UpdateFulfilmentStatus(ctx context.Context, orderNumber int64, status string) error {
	if !allowedFulfilmentStatuses[status] {
		return ErrBadStatus
	}
	return s.Store.UpdateSuccessfulStatus(ctx, orderNumber, status)
}
