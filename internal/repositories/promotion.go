package repositories

import (
	"context"
	"fmt"
	"time"

	"mesa/internal/models"

	"gorm.io/gorm"
)

// PromotionRepository finds promotions applicable to a set of food
// categories at a point in time.
type PromotionRepository interface {
	FindActiveForCategories(ctx context.Context, categoryIDs models.IDList, now time.Time) ([]models.Promotion, error)
}

type promotionRepository struct {
	db *gorm.DB
}

func (r *promotionRepository) FindActiveForCategories(ctx context.Context, categoryIDs models.IDList, now time.Time) ([]models.Promotion, error) {
	var promos []models.Promotion
	err := r.db.WithContext(ctx).
		Where("status = ? AND start_date <= ? AND end_date >= ?",
			models.PromotionStatusActive, now, now).
		Find(&promos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find promotions: %w", err)
	}

	// Category intersection is checked in Go; the category set lives in a
	// jsonb column and stays small.
	matched := promos[:0]
	for _, p := range promos {
		if p.CategoryIDs.Intersects(categoryIDs) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}
