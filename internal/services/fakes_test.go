package services

import (
	"context"
	"errors"
	"sync"

	"github.com/MGservicing/MGservice-2/internal/model"
	"github.com/MGservicing/MGservice-2/internal/pricing"
	"github.com/MGservicing/MGservice-2/internal/repository"
)

// fakeStore is an in-memory OrderStore. The mutex makes the conditional
// transition behave like the database's conditional update under
// concurrent callers.
type fakeStore struct {
	mu         sync.Mutex
	nextNumber int64
	pending    map[int64]*model.PendingOrder
	successful map[int64]*model.SuccessfulOrder

	failCreatePending bool
	failAttachSession bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextNumber: 100,
		pending:    make(map[int64]*model.PendingOrder),
		successful: make(map[int64]*model.SuccessfulOrder),
	}
}

func (f *fakeStore) CreatePending(ctx context.Context, o *model.PendingOrder) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreatePending {
		return 0, errors.New("store down")
	}
	f.nextNumber++
	cp := *o
	cp.OrderNumber = f.nextNumber
	f.pending[cp.OrderNumber] = &cp
	return cp.OrderNumber, nil
}

func (f *fakeStore) AttachSession(ctx context.Context, orderNumber int64, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAttachSession {
		return errors.New("store down")
	}
	o, ok := f.pending[orderNumber]
	if !ok {
		return repository.ErrNotFound
	}
	o.SessionID = &sessionID
	return nil
}

func (f *fakeStore) GetPendingByOrderNumber(ctx context.Context, orderNumber int64) (*model.PendingOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.pending[orderNumber]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeStore) TransitionPendingStatus(ctx context.Context, orderNumber int64, from, to string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.pending[orderNumber]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func (f *fakeStore) CreateSuccessful(ctx context.Context, o *model.SuccessfulOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.successful[o.OrderNumber]; exists {
		// Mirrors ON CONFLICT DO NOTHING.
		return nil
	}
	cp := *o
	f.successful[cp.OrderNumber] = &cp
	return nil
}

func (f *fakeStore) GetSuccessfulByOrderNumber(ctx context.Context, orderNumber int64) (*model.SuccessfulOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.successful[orderNumber]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeStore) ListSuccessful(ctx context.Context) ([]model.SuccessfulOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.SuccessfulOrder, 0, len(f.successful))
	for _, o := range f.successful {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeStore) UpdateSuccessfulStatus(ctx context.Context, orderNumber int64, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.successful[orderNumber]
	if !ok {
		return repository.ErrNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeStore) successfulCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.successful)
}

// fakeGateway accepts any session and treats goodSignature as the only
// valid notification signature.
type fakeGateway struct {
	mu            sync.Mutex
	created       []SessionRequest
	failCreate    bool
	goodSignature string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{goodSignature: "good-signature"}
}

func (g *fakeGateway) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failCreate {
		return nil, errors.New("provider unavailable")
	}
	g.created = append(g.created, req)
	return &Session{
		ID:          "sess-123",
		RedirectURL: "https://pay.example.com/sess-123",
	}, nil
}

func (g *fakeGateway) VerifySignature(orderRef, statusCode, grossAmount, signature string) bool {
	return signature == g.goodSignature
}

// fakeMailer records sends and can be told to fail.
type fakeMailer struct {
	mu             sync.Mutex
	customerEmails []int64
	adminAlerts    []int64
	fail           bool
}

func (m *fakeMailer) SendCustomerConfirmation(ctx context.Context, toEmail string, orderNumber int64, amounts pricing.Totals) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp down")
	}
	m.customerEmails = append(m.customerEmails, orderNumber)
	return nil
}

func (m *fakeMailer) SendAdminAlert(ctx context.Context, orderNumber int64, customerEmail string, total float64, items []model.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp down")
	}
	m.adminAlerts = append(m.adminAlerts, orderNumber)
	return nil
}
