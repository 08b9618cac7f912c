package repositories

import (
	"context"
	"fmt"

	"mesa/internal/models"

	"gorm.io/gorm"
)

// CatalogRepository resolves the entities an order draft references:
// customers, restaurants, addresses, menu items and variants. These are
// owned by other subsystems; settlement only reads them, except for the
// restaurant's running order counter.
type CatalogRepository interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetRestaurant(ctx context.Context, id uint) (*models.Restaurant, error)
	GetAddress(ctx context.Context, id uint) (*models.Address, error)
	GetMenuItem(ctx context.Context, id uint) (*models.MenuItem, error)
	GetVariant(ctx context.Context, id uint) (*models.ItemVariant, error)
	IncrementOrderCount(ctx context.Context, restaurantID uint) error
}

type catalogRepository struct {
	db *gorm.DB
}

func (r *catalogRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *catalogRepository) GetRestaurant(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).First(&restaurant, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	return &restaurant, nil
}

func (r *catalogRepository) GetAddress(ctx context.Context, id uint) (*models.Address, error) {
	var address models.Address
	if err := r.db.WithContext(ctx).First(&address, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAddressNotFound
		}
		return nil, fmt.Errorf("failed to get address: %w", err)
	}
	return &address, nil
}

func (r *catalogRepository) GetMenuItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return &item, nil
}

func (r *catalogRepository) GetVariant(ctx context.Context, id uint) (*models.ItemVariant, error) {
	var variant models.ItemVariant
	if err := r.db.WithContext(ctx).First(&variant, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrVariantNotFound
		}
		return nil, fmt.Errorf("failed to get item variant: %w", err)
	}
	return &variant, nil
}

func (r *catalogRepository) IncrementOrderCount(ctx context.Context, restaurantID uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Restaurant{}).
		Where("id = ?", restaurantID).
		Update("order_count", gorm.Expr("order_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to increment order count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}
