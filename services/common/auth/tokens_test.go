package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m, err := NewTokenManager("test-secret", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	pair, err := m.Issue("user-1", "asha@example.com", "Asha")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.RefreshTokenID)

	claims, err := m.Parse(pair.AccessToken, TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "asha@example.com", claims.Email)

	refresh, err := m.Parse(pair.RefreshToken, TypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshTokenID, refresh.ID)

	_, err = m.Parse(pair.RefreshToken, TypeAccess)
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestParseRejectsForeignAndExpiredTokens(t *testing.T) {
	m, err := NewTokenManager("secret-a", time.Minute, time.Hour)
	require.NoError(t, err)
	other, err := NewTokenManager("secret-b", time.Minute, time.Hour)
	require.NoError(t, err)

	pair, err := other.Issue("user-1", "a@b.c", "")
	require.NoError(t, err)
	_, err = m.Parse(pair.AccessToken, TypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, err := m.Issue("user-1", "a@b.c", "")
	require.NoError(t, err)
	_, err = m.Parse(stale.AccessToken, TypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("not-a-jwt", "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", time.Minute, time.Hour)
	assert.ErrorIs(t, err, ErrNoSecret)
}
