package services

import (
	"context"
	"errors"
	"strings"

	awspkg "github.com/corexathletics/storefront/pkg/aws"
	"github.com/corexathletics/storefront/services/account-service/models"
	"github.com/corexathletics/storefront/services/account-service/repository"
	"github.com/corexathletics/storefront/services/common/auth"
	apperrors "github.com/corexathletics/storefront/services/common/errors"
	"github.com/corexathletics/storefront/services/common/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error)
	SignIn(ctx context.Context, req models.SignInRequest) (*models.AuthResponse, error)
	// Refresh rotates a refresh token: the presented one is revoked.
	Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error)
	SignOut(ctx context.Context, userID string) error
	// CurrentUser returns nil, nil when userID does not name a user.
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
}

type TokenIssuer interface {
	Issue(userID, email, name string) (*auth.TokenPair, error)
	Parse(tokenStr, expectedType string) (*auth.Claims, error)
}

type AuthDeps struct {
	Users      repository.UserRepository
	Tokens     TokenIssuer
	Passwords  *PasswordValidator
	Publisher  awspkg.EventPublisher
	UserTopic  string
	Metrics    awspkg.MetricsRecorder
	Logger     *zap.Logger
	BcryptCost int
}

type authService struct {
	AuthDeps
}

func NewAuthService(deps AuthDeps) AuthService {
	if deps.Passwords == nil {
		deps.Passwords = NewPasswordValidator()
	}
	if deps.BcryptCost == 0 {
		deps.BcryptCost = bcrypt.DefaultCost
	}
	return &authService{AuthDeps: deps}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.BadRequest("Name is required", nil)
	}
	if err := s.Passwords.Validate(req.Password); err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	_, err := s.Users.FindByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.Conflict("Email already exists", nil)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal("Failed to look up user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.BcryptCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &models.User{ID: uuid.New(), Email: email, Name: name, Password: string(hash)}
	profile := &models.Profile{Email: email, FullName: name, Preferences: models.DefaultPreferences()}
	if err := s.Users.CreateWithProfile(ctx, user, profile); err != nil {
		return nil, apperrors.Internal("Failed to create account", err)
	}

	s.record(ctx, awspkg.MetricSignUps)
	s.publishSignedUp(ctx, user)
	logger.For(ctx, s.Logger).Info("account created", zap.String("user_id", user.ID.String()))

	return s.issue(ctx, user)
}

func (s *authService) SignIn(ctx context.Context, req models.SignInRequest) (*models.AuthResponse, error) {
	user, err := s.Users.FindByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to look up user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	s.record(ctx, awspkg.MetricSignIns)
	return s.issue(ctx, user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	if refreshToken == "" {
		return nil, apperrors.Unauthorized("Refresh token not found")
	}
	claims, err := s.Tokens.Parse(refreshToken, auth.TypeRefresh)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	stored, err := s.Users.GetRefreshToken(ctx, claims.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrInvalidToken
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to look up refresh token", err)
	}
	if stored.Revoked {
		// A reused refresh token means it may have leaked; end every session.
		_ = s.Users.RevokeAllUserRefreshTokens(ctx, stored.UserID)
		logger.For(ctx, s.Logger).Warn("revoked refresh token presented", zap.String("user_id", stored.UserID.String()))
		return nil, apperrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID())
	if err != nil || userID != stored.UserID {
		return nil, apperrors.ErrInvalidToken
	}
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if err := s.Users.RevokeRefreshToken(ctx, claims.ID); err != nil {
		return nil, apperrors.Internal("Failed to rotate refresh token", err)
	}
	return s.issue(ctx, user)
}

func (s *authService) SignOut(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return apperrors.ErrUnauthorized
	}
	if err := s.Users.RevokeAllUserRefreshTokens(ctx, id); err != nil {
		return apperrors.Internal("Failed to sign out", err)
	}
	return nil
}

func (s *authService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, nil
	}
	user, err := s.Users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to load user", err)
	}
	return user, nil
}

func (s *authService) issue(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	pair, err := s.Tokens.Issue(user.ID.String(), user.Email, user.Name)
	if err != nil {
		return nil, apperrors.Internal("Failed to generate tokens", err)
	}
	rt := &models.RefreshToken{
		ID:        uuid.New(),
		TokenID:   pair.RefreshTokenID,
		UserID:    user.ID,
		ExpiresAt: pair.RefreshExpiresAt,
	}
	if err := s.Users.CreateRefreshToken(ctx, rt); err != nil {
		return nil, apperrors.Internal("Failed to store refresh token", err)
	}
	return &models.AuthResponse{
		User:             user,
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}, nil
}

func (s *authService) record(ctx context.Context, metric string) {
	if s.Metrics == nil {
		return
	}
	if err := s.Metrics.RecordCount(ctx, metric, map[string]string{"Service": "account-service"}); err != nil {
		logger.For(ctx, s.Logger).Warn("metric write failed", zap.String("metric", metric), zap.Error(err))
	}
}

func (s *authService) publishSignedUp(ctx context.Context, user *models.User) {
	if s.Publisher == nil || s.UserTopic == "" {
		logger.For(ctx, s.Logger).Warn("user topic not configured, skipping user.signed_up event")
		return
	}
	event := models.UserSignedUpEvent{
		UserID:    user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
	if err := s.Publisher.Publish(ctx, s.UserTopic, models.EventUserSignedUp, event); err != nil {
		logger.For(ctx, s.Logger).Error("publish user.signed_up failed", zap.Error(err))
	}
}
