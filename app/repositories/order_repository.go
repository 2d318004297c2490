package repositories

import (
	"context"
	"errors"

	"github.com/soundstitch/storefront/app/models"
	"gorm.io/gorm"
)

type OrderRepository interface {
	// Create inserts the order together with its lines.
	Create(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, orderID string) error
	GetByCode(ctx context.Context, orderCode string) (*models.Order, error)
	GetByCartKey(ctx context.Context, cartKey string) ([]models.Order, error)
	SetPaymentRef(ctx context.Context, orderID, transactionID, paymentURL string) error
	UpdatePaymentStatus(ctx context.Context, orderID, paymentStatus string, status int) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) Delete(ctx context.Context, orderID string) error {
	return r.db.WithContext(ctx).Where("id = ?", orderID).Delete(&models.Order{}).Error
}

func (r *orderRepository) GetByCode(ctx context.Context, orderCode string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Where("order_code = ?", orderCode).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByCartKey(ctx context.Context, cartKey string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Where("cart_key = ?", cartKey).
		Order("order_date desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) SetPaymentRef(ctx context.Context, orderID, transactionID, paymentURL string) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"midtrans_transaction_id": transactionID,
			"midtrans_payment_url":    paymentURL,
		}).Error
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, orderID, paymentStatus string, status int) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"payment_status": paymentStatus,
			"status":         status,
		}).Error
}
