package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MGservicing/MGservice-2/internal/model"
	"github.com/MGservicing/MGservice-2/internal/pricing"
)

// ResendMailer sends the order notification emails through the Resend
// HTTP API. Implements services.EmailSender.
type ResendMailer struct {
	apiKey     string
	from       string
	adminEmail string
	siteURL    string
	client     *http.Client
	baseURL    string
}

func NewResendMailer(apiKey, from, adminEmail, siteURL string) (*ResendMailer, error) {
	if apiKey == "" {
		return nil, errors.New("resend api key not set")
	}

	return &ResendMailer{
		apiKey:     apiKey,
		from:       from,
		adminEmail: adminEmail,
		siteURL:    siteURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: "https://api.resend.com",
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendCustomerConfirmation emails the buyer their order number and amount
// breakdown, with a link to the order-status page.
func (m *ResendMailer) SendCustomerConfirmation(
	ctx context.Context,
	toEmail string,
	orderNumber int64,
	amounts pricing.Totals,
) error {
	html := fmt.Sprintf(`
		<p>Thank you! Your order has been placed 🎉</p>
		<p>Order #<b>%d</b></p>
		<table>
			<tr><td>Subtotal</td><td align="right">$%.2f</td></tr>
			<tr><td>Tax (5%%)</td><td align="right">$%.2f</td></tr>
			<tr><td><b>Total</b></td><td align="right"><b>$%.2f</b></td></tr>
		</table>
		<p><a href="%s/order-status?order_number=%d">Track My Order</a></p>
	`, orderNumber, amounts.Subtotal, amounts.Tax, amounts.Total, m.siteURL, orderNumber)

	return m.send(ctx, sendRequest{
		From:    m.from,
		To:      []string{toEmail},
		Subject: "🎲 Your Order Confirmation",
		HTML:    html,
	})
}

// SendAdminAlert notifies the operator mailbox about a newly paid order,
// including the cart lines to fulfil.
func (m *ResendMailer) SendAdminAlert(
	ctx context.Context,
	orderNumber int64,
	customerEmail string,
	total float64,
	items []model.CartItem,
) error {
	if customerEmail == "" {
		customerEmail = "N/A"
	}

	var lines bytes.Buffer
	for _, it := range items {
		fmt.Fprintf(&lines, "<li>%s × %d — $%.2f</li>", it.Name, it.Quantity, it.Price)
	}

	html := fmt.Sprintf(`
		<p>New order paid.</p>
		<p>Order #<b>%d</b> — %s — $%.2f</p>
		<ul>%s</ul>
	`, orderNumber, customerEmail, total, lines.String())

	return m.send(ctx, sendRequest{
		From:    m.from,
		To:      []string{m.adminEmail},
		Subject: fmt.Sprintf("🛒 New Order Paid — %d", orderNumber),
		HTML:    html,
	})
}

func (m *ResendMailer) send(ctx context.Context, body sendRequest) error {
	b, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.baseURL+"/emails",
		bytes.NewBuffer(b),
	)

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		return errors.New("failed to send email: " + buf.String())
	}

	return nil
}
