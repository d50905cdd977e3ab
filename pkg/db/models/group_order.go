package models

import (
	"time"

	"github.com/juanfvasquez/pedidos-backend/pkg/enums"
)

// GroupOrder is a shared order round. DeliveryCost is in minor currency
// units and is split evenly across participants at read time. Orders are
// closed, never deleted.
type GroupOrder struct {
	ID           int64                  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DeliveryCost int                    `gorm:"column:delivery_cost;not null;default:0" json:"deliveryCost"`
	Status       enums.GroupOrderStatus `gorm:"column:status;size:16;not null;default:open" json:"status"`
	ClosedAt     *time.Time             `gorm:"column:closed_at" json:"closedAt"`
	CreatedAt    time.Time              `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time              `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
