package repositories

import (
	"context"
	"errors"

	"github.com/soundstitch/storefront/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CheckoutDetailsRepository interface {
	Upsert(ctx context.Context, details *models.CheckoutDetails) error
	GetByCartKey(ctx context.Context, cartKey string) (*models.CheckoutDetails, error)
	Delete(ctx context.Context, cartKey string) error
}

type checkoutDetailsRepository struct {
	db *gorm.DB
}

func NewCheckoutDetailsRepository(db *gorm.DB) CheckoutDetailsRepository {
	return &checkoutDetailsRepository{db}
}

func (r *checkoutDetailsRepository) Upsert(ctx context.Context, details *models.CheckoutDetails) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "phone", "address", "updated_at"}),
		}).
		Create(details).Error
}

func (r *checkoutDetailsRepository) GetByCartKey(ctx context.Context, cartKey string) (*models.CheckoutDetails, error) {
	var details models.CheckoutDetails
	err := r.db.WithContext(ctx).Where("cart_key = ?", cartKey).First(&details).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &details, nil
}

func (r *checkoutDetailsRepository) Delete(ctx context.Context, cartKey string) error {
	return r.db.WithContext(ctx).
		Where("cart_key = ?", cartKey).
		Delete(&models.CheckoutDetails{}).Error
}
