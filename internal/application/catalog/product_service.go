package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// ProductCache caches product reads. Get returns (nil, nil) on a miss.
// Cache failures must never fail the underlying operation.
type ProductCache interface {
	Get(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	Set(ctx context.Context, product *catalog.Product) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}

// ProductService handles product-related business operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	collectionRepo catalog.CollectionRepository
	orderRepo      order.OrderRepository
	cache          ProductCache
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	collectionRepo catalog.CollectionRepository,
	orderRepo order.OrderRepository,
) *ProductService {
	return &ProductService{
		productRepo:    productRepo,
		collectionRepo: collectionRepo,
		orderRepo:      orderRepo,
	}
}

// SetCache sets the read cache for single-product lookups
func (s *ProductService) SetCache(cache ProductCache) {
	s.cache = cache
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new product. The slug is derived from the title when
// not supplied.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	slug := req.Slug
	if slug == "" {
		slug = catalog.Slugify(req.Title)
	}

	exists, err := s.productRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this slug already exists")
	}

	if req.CollectionID != nil {
		if _, err := s.collectionRepo.FindByID(ctx, *req.CollectionID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_COLLECTION", "Collection not found")
			}
			return nil, err
		}
	}

	product, err := catalog.NewProduct(req.Title, slug, req.Description, valueobject.NewMoneyUSD(req.UnitPrice), req.Inventory)
	if err != nil {
		return nil, err
	}

	if req.CollectionID != nil {
		product.SetCollection(req.CollectionID)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID, consulting the read cache first
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, productID); err == nil && cached != nil {
			response := ToProductResponse(cached)
			return &response, nil
		}
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, product)
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetBySlug retrieves a product by its slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List lists products matching the filter
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductListResponse, int64, error) {
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
		Filters:  make(map[string]interface{}),
	}
	if filter.CollectionID != nil {
		domainFilter.Filters["collection_id"] = *filter.CollectionID
	}
	if filter.MinPrice != nil {
		domainFilter.Filters["min_price"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		domainFilter.Filters["max_price"] = *filter.MaxPrice
	}
	if filter.InStock != nil {
		domainFilter.Filters["in_stock"] = *filter.InStock
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductListResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductListResponse(&products[i]))
	}
	return responses, total, nil
}

// Update updates a product's mutable fields
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	title := product.Title
	description := product.Description
	if req.Title != nil {
		title = *req.Title
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := product.Update(title, description); err != nil {
		return nil, err
	}

	if req.UnitPrice != nil {
		if err := product.SetUnitPrice(valueobject.NewMoneyUSD(*req.UnitPrice)); err != nil {
			return nil, err
		}
	}

	if req.Inventory != nil {
		if err := product.SetInventory(*req.Inventory); err != nil {
			return nil, err
		}
	}

	if req.CollectionID != nil {
		if _, err := s.collectionRepo.FindByID(ctx, *req.CollectionID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_COLLECTION", "Collection not found")
			}
			return nil, err
		}
		product.SetCollection(req.CollectionID)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, product.ID)
	}
	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product. A product referenced by any order line cannot
// be deleted; order history keeps its price snapshots but the referential
// link must stay intact. Cart lines referencing the product go away with it.
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}

	referenced, err := s.orderRepo.CountItemsByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if referenced > 0 {
		return shared.NewDomainError("CONFLICT",
			fmt.Sprintf("Product cannot be deleted because it is referenced by %d order item(s)", referenced))
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, productID)
	}
	return nil
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, product.GetDomainEvents()...); err != nil {
		// Log but don't fail the operation
	}
	product.ClearDomainEvents()
}
