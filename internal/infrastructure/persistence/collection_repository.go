package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCollectionRepository implements CollectionRepository using GORM
type GormCollectionRepository struct {
	db *gorm.DB
}

// NewGormCollectionRepository creates a new GormCollectionRepository
func NewGormCollectionRepository(db *gorm.DB) *GormCollectionRepository {
	return &GormCollectionRepository{db: db}
}

// FindByID finds a collection by its ID
func (r *GormCollectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Collection, error) {
	var collection catalog.Collection
	if err := r.db.WithContext(ctx).First(&collection, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &collection, nil
}

// FindByIDWithCount finds a collection together with its products count
func (r *GormCollectionRepository) FindByIDWithCount(ctx context.Context, id uuid.UUID) (*catalog.CollectionWithCount, error) {
	var result catalog.CollectionWithCount
	err := r.db.WithContext(ctx).Model(&catalog.Collection{}).
		Select("collections.*, (?) AS products_count", r.productsCountSubquery()).
		Where("collections.id = ?", id).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

// FindAll finds all collections with their products count
func (r *GormCollectionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.CollectionWithCount, error) {
	var results []catalog.CollectionWithCount
	query := r.db.WithContext(ctx).Model(&catalog.Collection{}).
		Select("collections.*, (?) AS products_count", r.productsCountSubquery())

	if filter.Search != "" {
		query = query.Where("collections.title ILIKE ?", "%"+filter.Search+"%")
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CollectionSortFields, "title")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if err := query.Order(orderBy + " " + orderDir).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Save creates or updates a collection
func (r *GormCollectionRepository) Save(ctx context.Context, collection *catalog.Collection) error {
	return r.db.WithContext(ctx).Save(collection).Error
}

// Delete deletes a collection. The application layer refuses the delete
// while products still reference it; ON DELETE SET NULL is the backstop.
func (r *GormCollectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Collection{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts collections
func (r *GormCollectionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.Collection{})
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCollectionRepository) productsCountSubquery() *gorm.DB {
	return r.db.Model(&catalog.Product{}).
		Select("COUNT(*)").
		Where("products.collection_id = collections.id")
}

// Ensure GormCollectionRepository implements CollectionRepository
var _ catalog.CollectionRepository = (*GormCollectionRepository)(nil)
