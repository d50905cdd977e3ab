package models

import "time"

// OrderItem is one user's selection of a product within a group order.
// There is no uniqueness constraint on (group_order_id, user_id,
// product_id): duplicate rows are legal and are summed during
// consolidation, never collapsed.
type OrderItem struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	GroupOrderID int64     `gorm:"column:group_order_id;not null;index" json:"groupOrderId"`
	UserID       int64     `gorm:"column:user_id;not null;index" json:"userId"`
	ProductID    int64     `gorm:"column:product_id;not null" json:"productId"`
	Quantity     int       `gorm:"column:quantity;not null" json:"quantity"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
