package services_test

import (
	"context"
	"sync"
	"time"

	awspkg "github.com/corexathletics/storefront/pkg/aws"
	"github.com/corexathletics/storefront/services/account-service/models"
	"github.com/corexathletics/storefront/services/account-service/repository"
	"github.com/google/uuid"
)

type memUsers struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*models.User
	profiles map[uuid.UUID]*models.Profile
	tokens   map[string]*models.RefreshToken
}

func newMemUsers() *memUsers {
	return &memUsers{
		users:    map[uuid.UUID]*models.User{},
		profiles: map[uuid.UUID]*models.Profile{},
		tokens:   map[string]*models.RefreshToken{},
	}
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) CreateWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.CreatedAt = time.Now()
	profile.UserID = user.ID
	m.users[user.ID] = user
	m.profiles[user.ID] = profile
	return nil
}

func (m *memUsers) CreateRefreshToken(ctx context.Context, rt *models.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[rt.TokenID] = rt
	return nil
}

func (m *memUsers) GetRefreshToken(ctx context.Context, tokenID string) (*models.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rt, ok := m.tokens[tokenID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *rt
	return &cp, nil
}

func (m *memUsers) RevokeRefreshToken(ctx context.Context, tokenID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rt, ok := m.tokens[tokenID]; ok {
		rt.Revoked = true
	}
	return nil
}

func (m *memUsers) RevokeAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rt := range m.tokens {
		if rt.UserID == userID {
			rt.Revoked = true
		}
	}
	return nil
}

func (m *memUsers) activeTokens(userID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, rt := range m.tokens {
		if rt.UserID == userID && !rt.Revoked {
			n++
		}
	}
	return n
}

// memProfiles reads the profiles created through memUsers.
type memProfiles struct {
	users *memUsers
	saves int
}

func (m *memProfiles) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	m.users.mu.Lock()
	defer m.users.mu.Unlock()
	p, ok := m.users.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProfiles) Save(ctx context.Context, p *models.Profile) error {
	m.users.mu.Lock()
	defer m.users.mu.Unlock()
	m.saves++
	cp := *p
	m.users.profiles[p.UserID] = &cp
	return nil
}

type memWishlist struct {
	items []models.WishlistItem
}

func (m *memWishlist) List(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	var out []models.WishlistItem
	for _, it := range m.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memWishlist) Add(ctx context.Context, item models.WishlistItem) error {
	for _, it := range m.items {
		if it.UserID == item.UserID && it.ProductID == item.ProductID {
			return nil
		}
	}
	item.CreatedAt = time.Now()
	m.items = append(m.items, item)
	return nil
}

func (m *memWishlist) Remove(ctx context.Context, userID, productID string) error {
	out := m.items[:0]
	for _, it := range m.items {
		if it.UserID != userID || it.ProductID != productID {
			out = append(out, it)
		}
	}
	m.items = out
	return nil
}

type mockPublisher struct {
	events []string
}

func (p *mockPublisher) Publish(ctx context.Context, topicArn, eventType string, payload any) error {
	p.events = append(p.events, eventType)
	return nil
}

type mockMetrics struct {
	counts map[string]int
}

func newMockMetrics() *mockMetrics { return &mockMetrics{counts: map[string]int{}} }

func (m *mockMetrics) RecordCount(ctx context.Context, name string, dims map[string]string) error {
	m.counts[name]++
	return nil
}

func (m *mockMetrics) RecordLatency(ctx context.Context, name string, d time.Duration, dims map[string]string) error {
	return nil
}

func (m *mockMetrics) IsEnabled() bool { return true }

type mockPresigner struct {
	bucket, key, contentType string
}

func (p *mockPresigner) PresignPut(ctx context.Context, bucket, key, contentType string, expiry time.Duration) (*awspkg.PresignedUpload, error) {
	p.bucket, p.key, p.contentType = bucket, key, contentType
	return &awspkg.PresignedUpload{
		URL:       "https://s3.local/" + bucket + "/" + key,
		Method:    "PUT",
		Headers:   map[string]string{"Content-Type": contentType},
		Key:       key,
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}
