package services

import "context"

// SessionItem is one line sent to the payment provider. UnitAmount is in
// minor currency units (cents). ImageURL is offered to the gateway but
// Midtrans Snap item details carry no image field, so the Snap gateway
// drops it.
type SessionItem struct {
	ID         string
	Name       string
	ImageURL   string
	UnitAmount int64
	Quantity   int
}

// SessionRequest describes the hosted checkout session to create.
// OrderRef embeds the local order number; it is the only correlation the
// provider carries back on its completion notification.
type SessionRequest struct {
	OrderRef    string
	Email       string
	GrossAmount int64
	Items       []SessionItem
	SuccessURL  string
}

// Session is the provider's handle on a created checkout session.
type Session struct {
	ID          string
	RedirectURL string
}

// PaymentGateway is the payment-provider surface: hosted session creation
// plus verification of the signature accompanying asynchronous
// notifications.
type PaymentGateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
	VerifySignature(orderRef, statusCode, grossAmount, signature string) bool
}
