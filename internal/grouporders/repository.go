package grouporders

import (
	"context"
	"time"

	"github.com/juanfvasquez/pedidos-backend/pkg/db/models"
	"github.com/juanfvasquez/pedidos-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository provides group order persistence over GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetActive returns the open group order. Nothing prevents several rows
// from being open at once, so the most recent one by id wins to keep the
// answer deterministic.
func (r *Repository) GetActive(ctx context.Context) (*models.GroupOrder, error) {
	var order models.GroupOrder
	err := r.db.WithContext(ctx).
		Where("status = ?", enums.GroupOrderStatusOpen).
		Order("id DESC").
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Create inserts a new group order in open status.
func (r *Repository) Create(ctx context.Context, order *models.GroupOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// UpdateDeliveryCost sets the shared delivery cost on the order row.
func (r *Repository) UpdateDeliveryCost(ctx context.Context, id int64, deliveryCost int) error {
	return r.db.WithContext(ctx).
		Model(&models.GroupOrder{}).
		Where("id = ?", id).
		Update("delivery_cost", deliveryCost).Error
}

// Close marks the order closed and stamps closed_at. Orders are never
// deleted.
func (r *Repository) Close(ctx context.Context, id int64, closedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.GroupOrder{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":    enums.GroupOrderStatusClosed,
			"closed_at": closedAt,
		}).Error
}
