package repositories

import (
	"context"
	"errors"

	"github.com/soundstitch/storefront/app/models"
	"gorm.io/gorm"
)

// SampleFilter narrows catalog listings. Zero values mean "no filter".
type SampleFilter struct {
	Genre  string
	MinBPM int
	MaxBPM int
	Search string
}

type SampleRepository interface {
	GetAll(ctx context.Context, filter SampleFilter) ([]models.Sample, error)
	GetByID(ctx context.Context, id string) (*models.Sample, error)
}

type sampleRepository struct {
	db *gorm.DB
}

func NewSampleRepository(db *gorm.DB) SampleRepository {
	return &sampleRepository{db}
}

func (r *sampleRepository) GetAll(ctx context.Context, filter SampleFilter) ([]models.Sample, error) {
	query := r.db.WithContext(ctx).Model(&models.Sample{})

	if filter.Genre != "" {
		query = query.Where("genre = ?", filter.Genre)
	}
	if filter.MinBPM > 0 {
		query = query.Where("bpm >= ?", filter.MinBPM)
	}
	if filter.MaxBPM > 0 {
		query = query.Where("bpm <= ?", filter.MaxBPM)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR artist LIKE ? OR tags LIKE ?", like, like, like)
	}

	var samples []models.Sample
	if err := query.Order("name asc").Find(&samples).Error; err != nil {
		return nil, err
	}
	return samples, nil
}

func (r *sampleRepository) GetByID(ctx context.Context, id string) (*models.Sample, error) {
	var sample models.Sample
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sample).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sample, nil
}
