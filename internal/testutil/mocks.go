package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"lexcaribe/ms_fiscal_core/internal/core/audit"
	"lexcaribe/ms_fiscal_core/internal/core/client"
	"lexcaribe/ms_fiscal_core/internal/core/invoice"
	"lexcaribe/ms_fiscal_core/internal/core/ncf"
)

// MockInvoiceRepository is an in-memory invoice.Repository with optional
// per-method overrides.
type MockInvoiceRepository struct {
	mu       sync.Mutex
	invoices map[uuid.UUID]invoice.Invoice

	CreateFunc       func(ctx context.Context, inv invoice.Invoice) error
	UpdateFunc       func(ctx context.Context, inv invoice.Invoice) error
	FindByIDFunc     func(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error)
	ListFunc         func(ctx context.Context, params invoice.ListParams) ([]invoice.Invoice, error)
	ListByPeriodFunc func(ctx context.Context, from, to time.Time) ([]invoice.Invoice, error)
}

// NewMockInvoiceRepository creates an empty in-memory invoice repository.
func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{invoices: make(map[uuid.UUID]invoice.Invoice)}
}

func (m *MockInvoiceRepository) Create(ctx context.Context, inv invoice.Invoice) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, inv)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices[inv.ID] = inv
	return nil
}

func (m *MockInvoiceRepository) Update(ctx context.Context, inv invoice.Invoice) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, inv)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.invoices[inv.ID]; !ok {
		return invoice.ErrNotFound
	}
	m.invoices[inv.ID] = inv
	return nil
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.invoices[id]
	if !ok {
		return nil, invoice.ErrNotFound
	}
	return &inv, nil
}

func (m *MockInvoiceRepository) List(ctx context.Context, params invoice.ListParams) ([]invoice.Invoice, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, params)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []invoice.Invoice
	for _, inv := range m.invoices {
		if params.Status != "" && inv.Status != params.Status {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (m *MockInvoiceRepository) ListByPeriod(ctx context.Context, from, to time.Time) ([]invoice.Invoice, error) {
	if m.ListByPeriodFunc != nil {
		return m.ListByPeriodFunc(ctx, from, to)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []invoice.Invoice
	for _, inv := range m.invoices {
		if !inv.IssueDate.Before(from) && inv.IssueDate.Before(to) {
			out = append(out, inv)
		}
	}
	return out, nil
}

// Stored returns the number of persisted invoices.
func (m *MockInvoiceRepository) Stored() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.invoices)
}

// MockClientRepository is an in-memory client.Repository.
type MockClientRepository struct {
	mu      sync.Mutex
	clients map[uuid.UUID]client.Client

	CreateFunc   func(ctx context.Context, c client.Client) error
	FindByIDFunc func(ctx context.Context, id uuid.UUID) (*client.Client, error)
	ListFunc     func(ctx context.Context, activeOnly bool) ([]client.Client, error)
}

// NewMockClientRepository creates an in-memory client repository seeded
// with the given clients.
func NewMockClientRepository(seed ...client.Client) *MockClientRepository {
	m := &MockClientRepository{clients: make(map[uuid.UUID]client.Client)}
	for _, c := range seed {
		m.clients[c.ID] = c
	}
	return m
}

func (m *MockClientRepository) Create(ctx context.Context, c client.Client) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[c.ID] = c
	return nil
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	return &c, nil
}

func (m *MockClientRepository) List(ctx context.Context, activeOnly bool) ([]client.Client, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, activeOnly)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []client.Client
	for _, c := range m.clients {
		if activeOnly && !c.Active {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// MockAuditRepository records fiscal trail entries in memory.
type MockAuditRepository struct {
	mu      sync.Mutex
	Entries []audit.Entry

	SaveFunc func(ctx context.Context, entry audit.Entry) error
}

func (m *MockAuditRepository) Save(ctx context.Context, entry audit.Entry) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, entry)
	return nil
}

func (m *MockAuditRepository) FindByNCF(_ context.Context, ncfCode string) ([]audit.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []audit.Entry
	for _, e := range m.Entries {
		if e.NCF == ncfCode {
			out = append(out, e)
		}
	}
	return out, nil
}

// Recorded returns a copy of the saved entries.
func (m *MockAuditRepository) Recorded() []audit.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]audit.Entry, len(m.Entries))
	copy(out, m.Entries)
	return out
}

// FailingCounterStore wraps a ncf.CounterStore and fails selected methods.
type FailingCounterStore struct {
	Inner ncf.CounterStore

	GetErr       error
	IncrementErr error
	ResetErr     error
}

func (f *FailingCounterStore) Get(ctx context.Context, t ncf.Type) (int64, error) {
	if f.GetErr != nil {
		return 0, f.GetErr
	}
	return f.Inner.Get(ctx, t)
}

func (f *FailingCounterStore) Increment(ctx context.Context, t ncf.Type) (int64, error) {
	if f.IncrementErr != nil {
		return 0, f.IncrementErr
	}
	return f.Inner.Increment(ctx, t)
}

func (f *FailingCounterStore) ResetAll(ctx context.Context) error {
	if f.ResetErr != nil {
		return f.ResetErr
	}
	return f.Inner.ResetAll(ctx)
}
