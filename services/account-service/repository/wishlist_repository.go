package repository

import (
	"context"

	"github.com/corexathletics/storefront/services/account-service/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WishlistRepository stores a set of (user, product) pairs. Add and Remove are
// idempotent.
type WishlistRepository interface {
	List(ctx context.Context, userID string) ([]models.WishlistItem, error)
	Add(ctx context.Context, item models.WishlistItem) error
	Remove(ctx context.Context, userID, productID string) error
}

type GormWishlistRepository struct {
	db *gorm.DB
}

func NewGormWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

func (r *GormWishlistRepository) List(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *GormWishlistRepository) Add(ctx context.Context, item models.WishlistItem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&item).Error
}

func (r *GormWishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{}).Error
}
