package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"slices"
	"strings"
	"time"

	awspkg "github.com/corexathletics/storefront/pkg/aws"
	"github.com/corexathletics/storefront/pkg/catalog"
	"github.com/corexathletics/storefront/services/account-service/models"
	"github.com/corexathletics/storefront/services/account-service/repository"
	apperrors "github.com/corexathletics/storefront/services/common/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const avatarURLExpiry = 15 * time.Minute

var avatarContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.Profile, error)
	AvatarUploadURL(ctx context.Context, userID string, req models.AvatarUploadRequest) (*awspkg.PresignedUpload, error)
}

type profileService struct {
	repo      repository.ProfileRepository
	presigner awspkg.UploadPresigner
	bucket    string
	logger    *zap.Logger
}

func NewProfileService(repo repository.ProfileRepository, presigner awspkg.UploadPresigner, bucket string, logger *zap.Logger) ProfileService {
	return &profileService{repo: repo, presigner: presigner, bucket: bucket, logger: logger}
}

func parseUserID(userID string) (uuid.UUID, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, apperrors.ErrUnauthorized
	}
	return id, nil
}

func (s *profileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Profile not found", err)
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to load profile", err)
	}
	return p, nil
}

func (s *profileService) Update(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.Profile, error) {
	if fieldErrs := ValidateProfileUpdate(req); len(fieldErrs) > 0 {
		return nil, apperrors.Unprocessable("Invalid profile", nil).WithDetails(fieldErrs)
	}

	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	applyProfileUpdate(p, req)
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, apperrors.Internal("Failed to update profile", err)
	}
	return p, nil
}

// ValidateProfileUpdate returns a message per offending JSON field.
func ValidateProfileUpdate(req models.UpdateProfileRequest) map[string]string {
	errs := map[string]string{}
	if req.Email != nil && !strings.Contains(*req.Email, "@") {
		errs["email"] = "Please enter a valid email address"
	}
	if req.FullName != nil && strings.TrimSpace(*req.FullName) == "" {
		errs["full_name"] = "Please fill all the details"
	}
	if pref := req.Preferences; pref != nil {
		if pref.FavoriteCategories != nil {
			for _, c := range *pref.FavoriteCategories {
				if !slices.Contains(models.Activities, c) {
					errs["preferences.favorite_categories"] = fmt.Sprintf("unknown category %q", c)
					break
				}
			}
		}
		if sp := pref.SizePreferences; sp != nil {
			if sp.Tops != "" {
				if _, err := catalog.ParseSize(sp.Tops); err != nil {
					errs["preferences.size_preferences.tops"] = err.Error()
				}
			}
			if sp.Bottoms != "" {
				if _, err := catalog.ParseSize(sp.Bottoms); err != nil {
					errs["preferences.size_preferences.bottoms"] = err.Error()
				}
			}
			if sp.Shoes != "" && !slices.Contains(models.ShoeSizes, sp.Shoes) {
				errs["preferences.size_preferences.shoes"] = fmt.Sprintf("unknown shoe size %q", sp.Shoes)
			}
		}
	}
	return errs
}

func applyProfileUpdate(p *models.Profile, req models.UpdateProfileRequest) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&p.Email, req.Email)
	set(&p.FullName, req.FullName)
	set(&p.Phone, req.Phone)
	set(&p.Bio, req.Bio)
	set(&p.Location, req.Location)
	set(&p.AvatarURL, req.AvatarURL)
	set(&p.AddressStreet, req.AddressStreet)
	set(&p.AddressCity, req.AddressCity)
	set(&p.AddressState, req.AddressState)
	set(&p.AddressZip, req.AddressZip)
	set(&p.AddressCountry, req.AddressCountry)

	if pref := req.Preferences; pref != nil {
		if pref.FavoriteCategories != nil {
			p.Preferences.FavoriteCategories = slices.Clone(*pref.FavoriteCategories)
		}
		if sp := pref.SizePreferences; sp != nil {
			tops, _ := catalog.ParseSize(sp.Tops)
			bottoms, _ := catalog.ParseSize(sp.Bottoms)
			p.Preferences.SizePreferences = models.SizePreferences{
				Tops:    string(tops),
				Bottoms: string(bottoms),
				Shoes:   sp.Shoes,
			}
		}
		if pref.Notifications != nil {
			p.Preferences.Notifications = *pref.Notifications
		}
	}
}

func (s *profileService) AvatarUploadURL(ctx context.Context, userID string, req models.AvatarUploadRequest) (*awspkg.PresignedUpload, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	ext, ok := avatarContentTypes[strings.ToLower(req.ContentType)]
	if !ok {
		return nil, apperrors.BadRequest("Only JPEG, PNG, WebP or GIF images are allowed", nil)
	}
	if s.presigner == nil || s.bucket == "" {
		return nil, apperrors.New(http.StatusServiceUnavailable, "Avatar uploads are not configured", nil)
	}

	base := strings.TrimSuffix(path.Base(req.Filename), path.Ext(req.Filename))
	key := fmt.Sprintf("avatars/%s/%d-%s%s", id, time.Now().Unix(), sanitizeName(base), ext)

	upload, err := s.presigner.PresignPut(ctx, s.bucket, key, strings.ToLower(req.ContentType), avatarURLExpiry)
	if err != nil {
		s.logger.Error("avatar presign failed", zap.String("key", key), zap.Error(err))
		return nil, apperrors.Internal("Failed to create upload URL", err)
	}
	return upload, nil
}

// sanitizeName keeps ASCII letters, digits, dash and underscore.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
		if b.Len() >= 64 {
			break
		}
	}
	if b.Len() == 0 {
		return "avatar"
	}
	return b.String()
}
