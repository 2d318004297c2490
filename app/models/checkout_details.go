package models

import "time"

// CheckoutDetails holds the contact details a shopper submits before
// payment. One row per cart key; checkout refuses to create an order
// until these exist.
type CheckoutDetails struct {
	CartKey   string    `gorm:"size:64;primaryKey" json:"cart_key"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Phone     string    `gorm:"size:50" json:"phone,omitempty"`
	Address   string    `gorm:"type:text" json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
