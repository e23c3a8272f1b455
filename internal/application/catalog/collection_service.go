package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// CollectionService handles collection-related business operations
type CollectionService struct {
	collectionRepo catalog.CollectionRepository
	productRepo    catalog.ProductRepository
}

// NewCollectionService creates a new CollectionService
func NewCollectionService(collectionRepo catalog.CollectionRepository, productRepo catalog.ProductRepository) *CollectionService {
	return &CollectionService{
		collectionRepo: collectionRepo,
		productRepo:    productRepo,
	}
}

// Create creates a new collection
func (s *CollectionService) Create(ctx context.Context, req CreateCollectionRequest) (*CollectionResponse, error) {
	collection, err := catalog.NewCollection(req.Title)
	if err != nil {
		return nil, err
	}

	if err := s.collectionRepo.Save(ctx, collection); err != nil {
		return nil, err
	}

	response := ToCollectionResponse(&catalog.CollectionWithCount{Collection: *collection})
	return &response, nil
}

// GetByID retrieves a collection with its products count
func (s *CollectionService) GetByID(ctx context.Context, collectionID uuid.UUID) (*CollectionResponse, error) {
	collection, err := s.collectionRepo.FindByIDWithCount(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	response := ToCollectionResponse(collection)
	return &response, nil
}

// List lists collections with their products count
func (s *CollectionService) List(ctx context.Context, filter CollectionListFilter) ([]CollectionResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "title"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}

	collections, err := s.collectionRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.collectionRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CollectionResponse, 0, len(collections))
	for i := range collections {
		responses = append(responses, ToCollectionResponse(&collections[i]))
	}
	return responses, total, nil
}

// Update renames a collection
func (s *CollectionService) Update(ctx context.Context, collectionID uuid.UUID, req UpdateCollectionRequest) (*CollectionResponse, error) {
	collection, err := s.collectionRepo.FindByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	if err := collection.Rename(req.Title); err != nil {
		return nil, err
	}

	if err := s.collectionRepo.Save(ctx, collection); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, collectionID)
}

// Delete deletes a collection. A collection still holding products cannot
// be deleted.
func (s *CollectionService) Delete(ctx context.Context, collectionID uuid.UUID) error {
	if _, err := s.collectionRepo.FindByID(ctx, collectionID); err != nil {
		return err
	}

	count, err := s.productRepo.CountByCollection(ctx, collectionID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("CONFLICT",
			fmt.Sprintf("Collection cannot be deleted because it contains %d product(s)", count))
	}

	return s.collectionRepo.Delete(ctx, collectionID)
}
