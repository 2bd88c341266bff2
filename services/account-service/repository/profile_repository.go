package repository

import (
	"context"

	"github.com/corexathletics/storefront/services/account-service/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
}

type GormProfileRepository struct {
	db *gorm.DB
}

func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

func (r *GormProfileRepository) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *GormProfileRepository) Save(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
