package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MGservicing/MGservice-2/internal/model"
)

// ErrNotFound is returned when no order exists for the given order number.
var ErrNotFound = errors.New("order not found")

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

// CreatePending inserts a new pending order and returns the store-assigned
// order number. The number exists before any payment session does.
func (r *OrderRepository) CreatePending(ctx context.Context, o *model.PendingOrder) (int64, error) {
	items, err := json.Marshal(o.CartItems)
	if err != nil {
		return 0, fmt.Errorf("marshal cart items: %w", err)
	}

	var orderNumber int64
	q := `
		INSERT INTO pending_orders
			(email, username, invite_link, notes, cart_items, status,
			 facebook_password, subtotal, tax, total)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING order_number
	`
	err = r.DB.QueryRow(
		ctx, q,
		o.Email, o.Username, o.InviteLink, o.Notes, items, o.Status,
		o.EncryptedCredential, o.Subtotal, o.Tax, o.Total,
	).Scan(&orderNumber)
	if err != nil {
		return 0, err
	}
	return orderNumber, nil
}

// AttachSession stores the payment-provider session id on a pending order.
func (r *OrderRepository) AttachSession(ctx context.Context, orderNumber int64, sessionID string) error {
	q := `UPDATE pending_orders SET session_id=$2 WHERE order_number=$1`
	tag, err := r.DB.Exec(ctx, q, orderNumber, sessionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *OrderRepository) GetPendingByOrderNumber(ctx context.Context, orderNumber int64) (*model.PendingOrder, error) {
	q := `
		SELECT order_number, email, username, invite_link, notes, cart_items,
		       status, facebook_password, session_id, subtotal, tax, total, created_at
		FROM pending_orders
		WHERE order_number=$1
	`
	var (
		o        model.PendingOrder
		items    []byte
		username *string
	)
	err := r.DB.QueryRow(ctx, q, orderNumber).Scan(
		&o.OrderNumber,
		&o.Email,
		&username,
		&o.InviteLink,
		&o.Notes,
		&items,
		&o.Status,
		&o.EncryptedCredential,
		&o.SessionID,
		&o.Subtotal,
		&o.Tax,
		&o.Total,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if username != nil {
		o.Username = *username
	}
	if err := json.Unmarshal(items, &o.CartItems); err != nil {
		return nil, fmt.Errorf("unmarshal cart items: %w", err)
	}
	return &o, nil
}

// TransitionPendingStatus applies a conditional status update: it succeeds
// only when the stored status still equals from. Returns false with no
// error on a mismatch. This is the coordination primitive that makes
// duplicate webhook deliveries and concurrent polls safe.
func (r *OrderRepository) TransitionPendingStatus(ctx context.Context, orderNumber int64, from, to string) (bool, error) {
	q := `
		UPDATE pending_orders
		SET status=$3
		WHERE order_number=$1 AND status=$2
	`
	tag, err := r.DB.Exec(ctx, q, orderNumber, from, to)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// CreateSuccessful appends the permanent record for a confirmed order.
// The unique constraint on order_number makes replays a no-op.
func (r *OrderRepository) CreateSuccessful(ctx context.Context, o *model.SuccessfulOrder) error {
	items, err := json.Marshal(o.CartItems)
	if err != nil {
		return fmt.Errorf("marshal cart items: %w", err)
	}

	q := `
		INSERT INTO successful_orders
			(order_number, email, username, invite_link, notes, cart_items,
			 subtotal, tax, total, status, facebook_password)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (order_number) DO NOTHING
	`
	_, err = r.DB.Exec(
		ctx, q,
		o.OrderNumber, o.Email, o.Username, o.InviteLink, o.Notes, items,
		o.Subtotal, o.Tax, o.Total, o.Status, o.EncryptedCredential,
	)
	return err
}

func (r *OrderRepository) GetSuccessfulByOrderNumber(ctx context.Context, orderNumber int64) (*model.SuccessfulOrder, error) {
	q := `
		SELECT id, order_number, email, username, invite_link, notes, cart_items,
		       subtotal, tax, total, status, facebook_password, created_at
		FROM successful_orders
		WHERE order_number=$1
	`
	o, err := scanSuccessful(r.DB.QueryRow(ctx, q, orderNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

// ListSuccessful returns confirmed orders, newest first. Used by the
// admin panel.
func (r *OrderRepository) ListSuccessful(ctx context.Context) ([]model.SuccessfulOrder, error) {
	q := `
		SELECT id, order_number, email, username, invite_link, notes, cart_items,
		       subtotal, tax, total, status, facebook_password, created_at
		FROM successful_orders
		ORDER BY order_number DESC
	`
	rows, err := r.DB.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SuccessfulOrder
	for rows.Next() {
		o, err := scanSuccessful(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// UpdateSuccessfulStatus sets the fulfilment status on a confirmed order.
func (r *OrderRepository) UpdateSuccessfulStatus(ctx context.Context, orderNumber int64, status string) error {
	q := `UPDATE successful_orders SET status=$2 WHERE order_number=$1`
	tag, err := r.DB.Exec(ctx, q, orderNumber, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSuccessful(row pgx.Row) (*model.SuccessfulOrder, error) {
	var (
		o        model.SuccessfulOrder
		items    []byte
		email    *string
		username *string
	)
	err := row.Scan(
		&o.ID,
		&o.OrderNumber,
		&email,
		&username,
		&o.InviteLink,
		&o.Notes,
		&items,
		&o.Subtotal,
		&o.Tax,
		&o.Total,
		&o.Status,
		&o.EncryptedCredential,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if email != nil {
		o.Email = *email
	}
	if username != nil {
		o.Username = *username
	}
	if err := json.Unmarshal(items, &o.CartItems); err != nil {
		return nil, fmt.Errorf("unmarshal cart items: %w", err)
	}
	return &o, nil
}
