package repositories

import (
	"context"
	"errors"

	"github.com/soundstitch/storefront/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotRepository is the cart persistence bridge: a plain string
// key/value contract holding the serialized item list per cart key.
// It is a best-effort cache; the in-memory store stays authoritative
// for the session.
type SnapshotRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, payload string) error
	Delete(ctx context.Context, key string) error
}

type snapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db}
}

func (r *snapshotRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var snapshot models.CartSnapshot
	err := r.db.WithContext(ctx).Where("cart_key = ?", key).First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return snapshot.Payload, true, nil
}

func (r *snapshotRepository) Set(ctx context.Context, key, payload string) error {
	snapshot := models.CartSnapshot{CartKey: key, Payload: payload}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&snapshot).Error
}

func (r *snapshotRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("cart_key = ?", key).
		Delete(&models.CartSnapshot{}).Error
}
