package services_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	awspkg "github.com/corexathletics/storefront/pkg/aws"
	"github.com/corexathletics/storefront/services/account-service/models"
	"github.com/corexathletics/storefront/services/account-service/services"
	"github.com/corexathletics/storefront/services/common/auth"
	apperrors "github.com/corexathletics/storefront/services/common/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const strongPassword = "Trail-Run9x"

type authFixture struct {
	svc       services.AuthService
	users     *memUsers
	publisher *mockPublisher
	metrics   *mockMetrics
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	tokens, err := auth.NewTokenManager("test-secret", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	f := &authFixture{users: newMemUsers(), publisher: &mockPublisher{}, metrics: newMockMetrics()}
	f.svc = services.NewAuthService(services.AuthDeps{
		Users:      f.users,
		Tokens:     tokens,
		Publisher:  f.publisher,
		UserTopic:  "arn:aws:sns:us-east-1:000000000000:users",
		Metrics:    f.metrics,
		Logger:     zap.NewNop(),
		BcryptCost: bcrypt.MinCost,
	})
	return f
}

func signUp(t *testing.T, f *authFixture) *models.AuthResponse {
	t.Helper()
	resp, err := f.svc.SignUp(context.Background(), models.SignUpRequest{
		Name: "Asha Rao", Email: " Asha@Example.com ", Password: strongPassword,
	})
	require.NoError(t, err)
	return resp
}

func TestSignUp_CreatesUserProfileAndTokens(t *testing.T) {
	f := newAuthFixture(t)
	resp := signUp(t, f)

	assert.Equal(t, "asha@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEqual(t, strongPassword, f.users.users[resp.User.ID].Password)

	profile := f.users.profiles[resp.User.ID]
	require.NotNil(t, profile)
	assert.Equal(t, "Asha Rao", profile.FullName)
	assert.True(t, profile.Preferences.Notifications)

	assert.Equal(t, 1, f.users.activeTokens(resp.User.ID))
	assert.Equal(t, []string{models.EventUserSignedUp}, f.publisher.events)
	assert.Equal(t, 1, f.metrics.counts[awspkg.MetricSignUps])
}

func TestSignUp_Rejections(t *testing.T) {
	f := newAuthFixture(t)
	signUp(t, f)

	cases := []struct {
		name   string
		req    models.SignUpRequest
		status int
	}{
		{"duplicate email", models.SignUpRequest{Name: "A", Email: "asha@example.com", Password: strongPassword}, http.StatusConflict},
		{"weak password", models.SignUpRequest{Name: "B", Email: "b@example.com", Password: "short"}, http.StatusBadRequest},
		{"sequential password", models.SignUpRequest{Name: "C", Email: "c@example.com", Password: "Abc-12345"}, http.StatusBadRequest},
		{"blank name", models.SignUpRequest{Name: "  ", Email: "d@example.com", Password: strongPassword}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.SignUp(context.Background(), tc.req)
			assert.Equal(t, tc.status, apperrors.StatusOf(err))
		})
	}
}

func TestSignIn(t *testing.T) {
	f := newAuthFixture(t)
	created := signUp(t, f)

	resp, err := f.svc.SignIn(context.Background(), models.SignInRequest{Email: "ASHA@example.com", Password: strongPassword})
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, resp.User.ID)
	assert.Equal(t, 1, f.metrics.counts[awspkg.MetricSignIns])

	_, err = f.svc.SignIn(context.Background(), models.SignInRequest{Email: "asha@example.com", Password: "Wrong-Pass7"})
	assert.Equal(t, apperrors.ErrInvalidCredentials, err)

	_, err = f.svc.SignIn(context.Background(), models.SignInRequest{Email: "nobody@example.com", Password: strongPassword})
	assert.Equal(t, apperrors.ErrInvalidCredentials, err)
}

func TestRefresh_RotatesAndDetectsReuse(t *testing.T) {
	f := newAuthFixture(t)
	created := signUp(t, f)
	ctx := context.Background()

	rotated, err := f.svc.Refresh(ctx, created.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, created.RefreshToken, rotated.RefreshToken)
	assert.Equal(t, 1, f.users.activeTokens(created.User.ID))

	// Replaying the first token revokes the whole family.
	_, err = f.svc.Refresh(ctx, created.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusOf(err))
	assert.Equal(t, 0, f.users.activeTokens(created.User.ID))

	_, err = f.svc.Refresh(ctx, rotated.RefreshToken)
	assert.Error(t, err)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	f := newAuthFixture(t)
	created := signUp(t, f)

	_, err := f.svc.Refresh(context.Background(), created.AccessToken)
	assert.Equal(t, apperrors.ErrInvalidToken, err)
}

func TestSignOut_RevokesEverything(t *testing.T) {
	f := newAuthFixture(t)
	created := signUp(t, f)
	_, err := f.svc.SignIn(context.Background(), models.SignInRequest{Email: "asha@example.com", Password: strongPassword})
	require.NoError(t, err)
	require.Equal(t, 2, f.users.activeTokens(created.User.ID))

	require.NoError(t, f.svc.SignOut(context.Background(), created.User.ID.String()))
	assert.Equal(t, 0, f.users.activeTokens(created.User.ID))
}

func TestCurrentUser(t *testing.T) {
	f := newAuthFixture(t)
	created := signUp(t, f)

	u, err := f.svc.CurrentUser(context.Background(), created.User.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", u.Name)

	u, err = f.svc.CurrentUser(context.Background(), uuid.NewString())
	assert.NoError(t, err)
	assert.Nil(t, u)

	u, err = f.svc.CurrentUser(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestPasswordValidator(t *testing.T) {
	v := services.NewPasswordValidator()
	cases := map[string]error{
		strongPassword: nil,
		"Sh0rt!":       services.ErrPasswordTooShort,
		"lowercase9!":  services.ErrPasswordNoUpper,
		"ALLUPPER9!":   services.ErrPasswordNoLower,
		"NoDigits-Ok":  services.ErrPasswordNoNumber,
		"NoSpecial9x":  services.ErrPasswordNoSpecial,
		"Baaa-Rket9":   services.ErrPasswordRepeating,
		"Axyz-Trail9":  services.ErrPasswordSequential,
		"Password1!":   services.ErrPasswordCommon,
	}
	for pw, want := range cases {
		t.Run(pw, func(t *testing.T) {
			assert.Equal(t, want, v.Validate(pw))
		})
	}
}
