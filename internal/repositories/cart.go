package repositories

import (
	"context"
	"fmt"

	"mesa/internal/models"

	"gorm.io/gorm"
)

// CartRepository clears a customer's cart entries once they are ordered.
type CartRepository interface {
	DeleteMatching(ctx context.Context, customerID uint, menuItemIDs []uint) error
	ListByCustomer(ctx context.Context, customerID uint) ([]models.CartItem, error)
}

type cartRepository struct {
	db *gorm.DB
}

func (r *cartRepository) DeleteMatching(ctx context.Context, customerID uint, menuItemIDs []uint) error {
	if len(menuItemIDs) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND menu_item_id IN ?", customerID, menuItemIDs).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete cart items: %w", err)
	}
	return nil
}

func (r *cartRepository) ListByCustomer(ctx context.Context, customerID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	return items, nil
}
