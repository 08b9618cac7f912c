package repositories

import (
	"context"
	"fmt"

	"mesa/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderRepository persists orders and their delivery progress records.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error

	CreateProgress(ctx context.Context, progress *models.DeliveryProgress) error
	GetProgress(ctx context.Context, orderID uint) (*models.DeliveryProgress, error)
	UpdateProgress(ctx context.Context, progress *models.DeliveryProgress) error

	// AddTip accumulates a tip on both the order row and its delivery
	// progress record.
	AddTip(ctx context.Context, orderID uint, amount decimal.Decimal) error
}

type orderRepository struct {
	db *gorm.DB
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) Update(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}

func (r *orderRepository) CreateProgress(ctx context.Context, progress *models.DeliveryProgress) error {
	if err := r.db.WithContext(ctx).Create(progress).Error; err != nil {
		return fmt.Errorf("failed to create delivery progress: %w", err)
	}
	return nil
}

func (r *orderRepository) GetProgress(ctx context.Context, orderID uint) (*models.DeliveryProgress, error) {
	var progress models.DeliveryProgress
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&progress).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get delivery progress: %w", err)
	}
	return &progress, nil
}

func (r *orderRepository) UpdateProgress(ctx context.Context, progress *models.DeliveryProgress) error {
	if err := r.db.WithContext(ctx).Save(progress).Error; err != nil {
		return fmt.Errorf("failed to update delivery progress: %w", err)
	}
	return nil
}

func (r *orderRepository) AddTip(ctx context.Context, orderID uint, amount decimal.Decimal) error {
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("tip_amount", gorm.Expr("tip_amount + ?", amount)).Error
	if err != nil {
		return fmt.Errorf("failed to add tip to order: %w", err)
	}
	err = r.db.WithContext(ctx).
		Model(&models.DeliveryProgress{}).
		Where("order_id = ?", orderID).
		Update("tip_amount", gorm.Expr("tip_amount + ?", amount)).Error
	if err != nil {
		return fmt.Errorf("failed to add tip to delivery progress: %w", err)
	}
	return nil
}
