// Package auth issues and verifies the HS256 access and refresh tokens shared
// by every storefront service.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrNoSecret     = errors.New("jwt secret not configured")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrWrongType    = errors.New("invalid token type")
)

// Claims is the token payload.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Type  string `json:"typ"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string { return c.Subject }

// TokenPair is the result of a sign in or refresh.
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshTokenID   string    `json:"-"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// Issue creates an access token and a refresh token. The refresh token's jti
// is returned in RefreshTokenID so it can be stored for revocation.
func (m *TokenManager) Issue(userID, email, name string) (*TokenPair, error) {
	now := m.now()
	access, err := m.sign(userID, email, name, TypeAccess, "", now, now.Add(m.accessTTL))
	if err != nil {
		return nil, err
	}
	jti := uuid.NewString()
	refresh, err := m.sign(userID, email, name, TypeRefresh, jti, now, now.Add(m.refreshTTL))
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		RefreshTokenID:   jti,
		AccessExpiresAt:  now.Add(m.accessTTL),
		RefreshExpiresAt: now.Add(m.refreshTTL),
	}, nil
}

func (m *TokenManager) sign(userID, email, name, typ, jti string, now, exp time.Time) (string, error) {
	claims := Claims{
		Email: email,
		Name:  name,
		Type:  typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, nil
}

// Parse verifies signature, expiry and, when expectedType is set, the typ claim.
func (m *TokenManager) Parse(tokenStr, expectedType string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if expectedType != "" && claims.Type != expectedType {
		return nil, ErrWrongType
	}
	return claims, nil
}
