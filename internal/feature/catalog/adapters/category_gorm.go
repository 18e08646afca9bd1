// Package adapters provides GORM repository implementations for the catalog feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"auction_backend/internal/feature/catalog/domain"
	"auction_backend/internal/feature/catalog/domain/entity"
	"auction_backend/internal/feature/catalog/usecase"
)

// DefaultCategories is the category set created by Seed on a fresh database.
var DefaultCategories = []string{
	"Books", "Collectibles", "Electronics", "Fashion", "Home", "Sports", "Toys", "Other",
}

// categoryGorm is the GORM implementation of usecase.CategoryRepository.
type categoryGorm struct {
	db *gorm.DB
}

var _ usecase.CategoryRepository = (*categoryGorm)(nil)

// NewCategoryRepository creates a category repository backed by db.
func NewCategoryRepository(db *gorm.DB) *categoryGorm {
	return &categoryGorm{db: db}
}

// List returns all categories ordered by name.
func (r *categoryGorm) List(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindByID returns domain.ErrCategoryNotFound when no category matches.
func (r *categoryGorm) FindByID(ctx context.Context, id uint) (*entity.Category, error) {
	var c entity.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Seed inserts the named categories, skipping names that already exist.
func (r *categoryGorm) Seed(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	rows := make([]entity.Category, 0, len(names))
	for _, n := range names {
		rows = append(rows, entity.Category{Name: n})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows).Error
}
