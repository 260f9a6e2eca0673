package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MGservicing/MGservice-2/internal/model"
	"github.com/MGservicing/MGservice-2/internal/pricing"
	"github.com/MGservicing/MGservice-2/internal/vault"
)

// ErrCartEmpty rejects a checkout whose cart has no items.
var ErrCartEmpty = errors.New("cart is empty")

// CheckoutService turns a submitted cart into a pending order and a
// hosted payment session.
type CheckoutService struct {
	Store   OrderStore
	Gateway PaymentGateway
	Vault   *vault.Vault
	SiteURL string
	Logger  *slog.Logger
}

func NewCheckoutService(store OrderStore, gw PaymentGateway, v *vault.Vault, siteURL string, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		Store:   store,
		Gateway: gw,
		Vault:   v,
		SiteURL: siteURL,
		Logger:  logger,
	}
}

// CheckoutInput is the storefront's checkout submission.
type CheckoutInput struct {
	Cart       []model.CartItem
	Email      string
	Username   string
	InviteLink string
	Notes      string
	Credential string
}

// StartCheckout validates the cart, persists a pending order with frozen
// totals, creates the hosted payment session correlated by order number,
// and returns the session's redirect URL.
//
// Totals are computed once, here; later price-table changes never alter a
// placed order. Attaching the session id back onto the order is
// best-effort: the session already exists, so payment can proceed even if
// that write fails.
func (s *CheckoutService) StartCheckout(ctx context.Context, in CheckoutInput) (string, error) {
	if len(in.Cart) == 0 {
		return "", ErrCartEmpty
	}

	var encrypted *string
	if in.Credential != "" {
		token, err := s.Vault.Encrypt(in.Credential)
		if err != nil {
			return "", fmt.Errorf("encrypt credential: %w", err)
		}
		encrypted = &token
	}

	totals := pricing.CartTotals(in.Cart)

	order := &model.PendingOrder{
		Email:               in.Email,
		Username:            in.Username,
		InviteLink:          optional(in.InviteLink),
		Notes:               optional(in.Notes),
		CartItems:           in.Cart,
		Status:              model.StatusPending,
		EncryptedCredential: encrypted,
		Subtotal:            totals.Subtotal,
		Tax:                 totals.Tax,
		Total:               totals.Total,
	}

	orderNumber, err := s.Store.CreatePending(ctx, order)
	if err != nil {
		return "", fmt.Errorf("create pending order: %w", err)
	}

	// The provider validates that the item lines sum exactly to the gross
	// amount, so the gross is accumulated from the same cent values the
	// lines carry and the tax rides along as its own line.
	items := make([]SessionItem, 0, len(in.Cart)+1)
	var gross int64
	for _, it := range in.Cart {
		unit := toCents(it.Price)
		items = append(items, SessionItem{
			ID:         it.ID,
			Name:       it.Name,
			ImageURL:   it.ImageURL,
			UnitAmount: unit,
			Quantity:   it.Quantity,
		})
		gross += unit * int64(it.Quantity)
	}
	if taxCents := toCents(totals.Tax); taxCents > 0 {
		items = append(items, SessionItem{
			ID:         "tax",
			Name:       "Tax (5%)",
			UnitAmount: taxCents,
			Quantity:   1,
		})
		gross += taxCents
	}

	session, err := s.Gateway.CreateSession(ctx, SessionRequest{
		OrderRef:    fmt.Sprintf("ORDER-%d-%s", orderNumber, uuid.NewString()),
		Email:       in.Email,
		GrossAmount: gross,
		Items:       items,
		SuccessURL:  fmt.Sprintf("%s/success?order_number=%d", s.SiteURL, orderNumber),
	})
	if err != nil {
		return "", fmt.Errorf("create payment session: %w", err)
	}

	if err := s.Store.AttachSession(ctx, orderNumber, session.ID); err != nil {
		s.Logger.Warn("failed to attach session id",
			"order_number", orderNumber,
			"session_id", session.ID,
			"err", err,
		)
	}

	return session.RedirectURL, nil
}

func toCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
