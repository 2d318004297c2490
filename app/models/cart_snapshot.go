package models

import "time"

// CartSnapshot is the persisted form of a cart: the serialized item list
// keyed by the session's cart key. Purchase history is never stored
// here; orders are the durable record of purchases.
type CartSnapshot struct {
	CartKey   string    `gorm:"size:64;primaryKey" json:"cart_key"`
	Payload   string    `gorm:"type:longtext" json:"payload"`
	UpdatedAt time.Time `json:"updated_at"`
}
