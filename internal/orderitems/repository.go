package orderitems

import (
	"context"

	"github.com/juanfvasquez/pedidos-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository provides order item persistence over GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByGroupOrder returns every item in the group order, oldest first.
func (r *Repository) ListByGroupOrder(ctx context.Context, groupOrderID int64) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.db.WithContext(ctx).
		Where("group_order_id = ?", groupOrderID).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListByUser returns one user's items within a group order, oldest first.
func (r *Repository) ListByUser(ctx context.Context, userID, groupOrderID int64) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND group_order_id = ?", userID, groupOrderID).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a new item row. Nothing deduplicates repeated product
// picks; aggregation happens at read time.
func (r *Repository) Create(ctx context.Context, item *models.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// UpdateQuantity sets the quantity on an item row.
func (r *Repository) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

// Delete removes the item row outright. Items are the only hard-deleted
// records in the schema.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Delete(&models.OrderItem{}, "id = ?", id).Error
}
