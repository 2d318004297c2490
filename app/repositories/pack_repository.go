package repositories

import (
	"context"
	"errors"

	"github.com/soundstitch/storefront/app/models"
	"gorm.io/gorm"
)

type PackRepository interface {
	GetAll(ctx context.Context) ([]models.Pack, error)
	GetByIDWithSamples(ctx context.Context, id string) (*models.Pack, error)
}

type packRepository struct {
	db *gorm.DB
}

func NewPackRepository(db *gorm.DB) PackRepository {
	return &packRepository{db}
}

func (r *packRepository) GetAll(ctx context.Context) ([]models.Pack, error) {
	var packs []models.Pack
	err := r.db.WithContext(ctx).
		Preload("Samples").
		Order("name asc").
		Find(&packs).Error
	if err != nil {
		return nil, err
	}
	return packs, nil
}

func (r *packRepository) GetByIDWithSamples(ctx context.Context, id string) (*models.Pack, error) {
	var pack models.Pack
	err := r.db.WithContext(ctx).
		Preload("Samples").
		Where("id = ?", id).
		First(&pack).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pack, nil
}
