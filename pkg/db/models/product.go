package models

import "time"

// Product is a catalog entry. Price is stored in minor currency units.
// Deleting a product only clears the active flag so historical order items
// keep a resolvable reference until the next consolidation.
type Product struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;size:255;not null" json:"name"`
	Price     int       `gorm:"column:price;not null" json:"price"`
	Active    bool      `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
