package midtrans

import (
	"context"
	"crypto/sha512"
	"encoding/hex"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"github.com/MGservicing/MGservice-2/internal/services"
)

// SnapGateway implements services.PaymentGateway on Midtrans Snap hosted
// checkout.
type SnapGateway struct {
	client    *snap.Client
	serverKey string
}

func NewSnapGateway(serverKey string) *SnapGateway {
	var client snap.Client
	client.New(serverKey, midtrans.Sandbox)

	return &SnapGateway{
		client:    &client,
		serverKey: serverKey,
	}
}

// CreateSession creates a hosted checkout session. The OrderRef travels
// as the Snap transaction's order id and comes back on every
// notification.
func (g *SnapGateway) CreateSession(ctx context.Context, req services.SessionRequest) (*services.Session, error) {
	items := make([]midtrans.ItemDetails, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, midtrans.ItemDetails{
			ID:    it.ID,
			Name:  it.Name,
			Price: it.UnitAmount,
			Qty:   int32(it.Quantity),
		})
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderRef,
			GrossAmt: req.GrossAmount,
		},
		Items: &items,
		CustomerDetail: &midtrans.CustomerDetails{
			Email: req.Email,
		},
		Callbacks: &snap.Callbacks{
			Finish: req.SuccessURL,
		},
	}

	resp, snapErr := g.client.CreateTransaction(snapReq)
	if snapErr != nil {
		return nil, snapErr
	}

	return &services.Session{
		ID:          resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}

// VerifySignature checks the signature_key accompanying a Midtrans
// notification.
func (g *SnapGateway) VerifySignature(orderRef, statusCode, grossAmount, signature string) bool {
	return VerifySignature(orderRef, statusCode, grossAmount, signature, g.serverKey)
}

// VerifySignature recomputes the Midtrans notification signature:
// sha512(order_id + status_code + gross_amount + server_key).
func VerifySignature(
	orderID string,
	statusCode string,
	grossAmount string,
	signature string,
	serverKey string,
) bool {

	raw := orderID + statusCode + grossAmount + serverKey
	hash := sha512.Sum512([]byte(raw))
	expected := hex.EncodeToString(hash[:])

	return expected == signature
}
