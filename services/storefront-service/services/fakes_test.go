package services_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/corexathletics/storefront/services/storefront-service/models"
)

// --- In-memory repositories ---

type memCartRepo struct {
	mu    sync.Mutex
	carts map[string]*models.Cart
	fail  error
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: map[string]*models.Cart{}}
}

func (m *memCartRepo) GetCart(_ context.Context, ownerKey string) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	c, ok := m.carts[ownerKey]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Items = append([]models.CartItem(nil), c.Items...)
	return &cp, nil
}

func (m *memCartRepo) SaveCart(_ context.Context, cart *models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if len(cart.Items) == 0 {
		delete(m.carts, cart.OwnerID)
		return nil
	}
	cp := *cart
	cp.Items = append([]models.CartItem(nil), cart.Items...)
	cp.UpdatedAt = time.Now()
	m.carts[cart.OwnerID] = &cp
	return nil
}

func (m *memCartRepo) DeleteCart(_ context.Context, ownerKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	delete(m.carts, ownerKey)
	return nil
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions  map[string]models.CheckoutRecord
	saves     int
	deleteErr error
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: map[string]models.CheckoutRecord{}}
}

func (m *memSessionRepo) GetSession(_ context.Context, ownerKey string) (*models.CheckoutRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.sessions[ownerKey]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *memSessionRepo) SaveSession(_ context.Context, rec *models.CheckoutRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.sessions[rec.OwnerID] = *rec
	return nil
}

func (m *memSessionRepo) DeleteSession(_ context.Context, ownerKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.sessions, ownerKey)
	return nil
}

// --- Publisher and metrics ---

type publishedEvent struct {
	topic     string
	eventType string
	payload   any
}

type mockPublisher struct {
	events []publishedEvent
	err    error
}

func (p *mockPublisher) Publish(_ context.Context, topicArn, eventType string, payload any) error {
	p.events = append(p.events, publishedEvent{topicArn, eventType, payload})
	return p.err
}

type mockMetrics struct {
	counts map[string]int
}

func newMockMetrics() *mockMetrics { return &mockMetrics{counts: map[string]int{}} }

func (m *mockMetrics) RecordCount(_ context.Context, name string, _ map[string]string) error {
	m.counts[name]++
	return nil
}

func (m *mockMetrics) RecordLatency(context.Context, string, time.Duration, map[string]string) error {
	return nil
}

func (m *mockMetrics) IsEnabled() bool { return true }

var errRedisDown = errors.New("redis down")
