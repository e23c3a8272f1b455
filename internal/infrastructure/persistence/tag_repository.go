package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTagRepository implements TagRepository using GORM
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GormTagRepository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// FindByID finds a tag by its ID
func (r *GormTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Tag, error) {
	var tag catalog.Tag
	if err := r.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// FindByLabel finds a tag by its label
func (r *GormTagRepository) FindByLabel(ctx context.Context, label string) (*catalog.Tag, error) {
	var tag catalog.Tag
	if err := r.db.WithContext(ctx).First(&tag, "label = ?", label).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// FindAll finds all tags
func (r *GormTagRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Tag, error) {
	var tags []catalog.Tag
	query := r.db.WithContext(ctx).Model(&catalog.Tag{})

	if filter.Search != "" {
		query = query.Where("label ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TagSortFields, "label")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if err := query.Order(orderBy + " " + orderDir).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// FindByProduct finds all tags attached to a product
func (r *GormTagRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Tag, error) {
	var tags []catalog.Tag
	err := r.db.WithContext(ctx).Model(&catalog.Tag{}).
		Joins("JOIN product_tags ON product_tags.tag_id = tags.id").
		Where("product_tags.product_id = ?", productID).
		Order("tags.label ASC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// Save creates or updates a tag
func (r *GormTagRepository) Save(ctx context.Context, tag *catalog.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

// Delete deletes a tag and its product links
func (r *GormTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&catalog.ProductTag{}, "tag_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&catalog.Tag{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Attach links a tag to a product. Attaching twice is a no-op.
func (r *GormTagRepository) Attach(ctx context.Context, tagID, productID uuid.UUID) error {
	link := catalog.NewProductTag(tagID, productID)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tag_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(link).Error
}

// Detach removes the link between a tag and a product
func (r *GormTagRepository) Detach(ctx context.Context, tagID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&catalog.ProductTag{}, "tag_id = ? AND product_id = ?", tagID, productID).Error
}

// Ensure GormTagRepository implements TagRepository
var _ catalog.TagRepository = (*GormTagRepository)(nil)
