package model

import "time"

// Pending order lifecycle statuses. An order is created as pending,
// becomes processed when the payment provider confirms settlement, and
// paid once the client-facing verifier acknowledges the processed state.
const (
	StatusPending   = "pending"
	StatusProcessed = "processed"
	StatusPaid      = "paid"
)

// Admin-assigned fulfilment status for successful orders.
const StatusCompleted = "completed"

// Cart item kinds. Items without a type are treated like stickers.
const (
	ItemTypeBoost   = "boost"
	ItemTypeSticker = "sticker"
)

// CartItem is the client-owned cart line. It is persisted only as an
// immutable snapshot inside an order; the json tags match the shape the
// storefront stores in the cart_items column.
type CartItem struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	Type          string  `json:"type,omitempty"`
	ImageURL      string  `json:"image_url,omitempty"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`

	// Boost selections, kept so the cart can be restored client-side.
	SelectedBoostID   string `json:"selectedBoostId,omitempty"`
	SelectedServiceID string `json:"selectedServiceId,omitempty"`
	CurrentDice       string `json:"currentDice,omitempty"`
}

// PendingOrder is an order awaiting (or recently confirming) payment.
// order_number is assigned by the store before any payment session exists
// and is the sole correlation key to the provider session.
type PendingOrder struct {
	OrderNumber         int64      `json:"order_number"`
	Email               string     `json:"email"`
	Username            string     `json:"username,omitempty"`
	InviteLink          *string    `json:"invite_link,omitempty"`
	Notes               *string    `json:"notes,omitempty"`
	CartItems           []CartItem `json:"cart_items"`
	Status              string     `json:"status"`
	EncryptedCredential *string    `json:"facebook_password,omitempty"`
	SessionID           *string    `json:"session_id,omitempty"`
	Subtotal            float64    `json:"subtotal"`
	Tax                 float64    `json:"tax"`
	Total               float64    `json:"total"`
	CreatedAt           time.Time  `json:"created_at,omitempty"`
}

// SuccessfulOrder is the permanent record written once, when the matching
// pending order moves pending -> processed. At most one row exists per
// order number.
type SuccessfulOrder struct {
	ID                  int64      `json:"id"`
	OrderNumber         int64      `json:"order_number"`
	Email               string     `json:"email"`
	Username            string     `json:"username,omitempty"`
	InviteLink          *string    `json:"invite_link,omitempty"`
	Notes               *string    `json:"notes,omitempty"`
	CartItems           []CartItem `json:"cart_items"`
	Subtotal            float64    `json:"subtotal"`
	Tax                 float64    `json:"tax"`
	Total               float64    `json:"total"`
	Status              string     `json:"status"`
	EncryptedCredential *string    `json:"facebook_password,omitempty"`
	CreatedAt           time.Time  `json:"created_at,omitempty"`
}

// SuccessfulFromPending copies the snapshot fields into a new successful
// order record with status paid.
func SuccessfulFromPending(p *PendingOrder) *SuccessfulOrder {
	return &SuccessfulOrder{
		OrderNumber:         p.OrderNumber,
		Email:               p.Email,
		Username:            p.Username,
		InviteLink:          p.InviteLink,
		Notes:               p.Notes,
		CartItems:           p.CartItems,
		Subtotal:            p.Subtotal,
		Tax:                 p.Tax,
		Total:               p.Total,
		Status:              StatusPaid,
		EncryptedCredential: p.EncryptedCredential,
	}
}
