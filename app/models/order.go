package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = 1
	OrderStatusPaid      = 2
	OrderStatusCancelled = 3
	OrderStatusExpired   = 4
	OrderStatusFailed    = 5
)

// Order is a finalized checkout attempt. Totals here are the
// authoritative, server-computed ones; client-side figures are display
// estimates only.
type Order struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	CartKey   string    `gorm:"size:64;index" json:"cart_key"`
	OrderCode string    `gorm:"type:varchar(255);unique;not null" json:"order_code"`
	OrderDate time.Time `gorm:"not null" json:"order_date"`

	OrderItems []OrderItem `json:"order_items"`

	Subtotal   decimal.Decimal `gorm:"type:decimal(16,2);" json:"subtotal"`
	TaxPercent decimal.Decimal `gorm:"type:decimal(10,2);" json:"tax_percent"`
	TaxAmount  decimal.Decimal `gorm:"type:decimal(16,2);" json:"tax_amount"`
	GrandTotal decimal.Decimal `gorm:"type:decimal(16,2);" json:"grand_total"`

	CustomerName    string `gorm:"size:255" json:"customer_name"`
	CustomerEmail   string `gorm:"size:255" json:"customer_email"`
	CustomerPhone   string `gorm:"size:50" json:"customer_phone"`
	ShippingAddress string `gorm:"type:text" json:"shipping_address"`

	MidtransTransactionID string `gorm:"size:255;index" json:"-"`
	MidtransPaymentURL    string `gorm:"type:text" json:"payment_url,omitempty"`
	PaymentStatus         string `gorm:"size:100" json:"payment_status"`

	Status int `gorm:"default:1" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

// OrderItem is one cart line frozen into an order. Payload keeps the
// full serialized cart item so the purchase history can be rebuilt
// without re-deriving variant fields from columns.
type OrderItem struct {
	ID        string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderID   string          `gorm:"size:36;index" json:"order_id"`
	ItemID    string          `gorm:"size:64;index" json:"item_id"`
	ItemType  string          `gorm:"size:20" json:"item_type"`
	Name      string          `gorm:"size:255" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(16,2);" json:"unit_price"`
	Qty       int             `json:"qty"`
	LineTotal decimal.Decimal `gorm:"type:decimal(16,2);" json:"line_total"`
	Payload   string          `gorm:"type:text" json:"-"`
	CreatedAt time.Time       `json:"created_at"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}
