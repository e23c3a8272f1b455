package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// TagService handles tag labels and their product links
type TagService struct {
	tagRepo     catalog.TagRepository
	productRepo catalog.ProductRepository
}

// NewTagService creates a new TagService
func NewTagService(tagRepo catalog.TagRepository, productRepo catalog.ProductRepository) *TagService {
	return &TagService{
		tagRepo:     tagRepo,
		productRepo: productRepo,
	}
}

// Create creates a new tag label
func (s *TagService) Create(ctx context.Context, req CreateTagRequest) (*TagResponse, error) {
	if _, err := s.tagRepo.FindByLabel(ctx, req.Label); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Tag with this label already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	tag, err := catalog.NewTag(req.Label)
	if err != nil {
		return nil, err
	}

	if err := s.tagRepo.Save(ctx, tag); err != nil {
		return nil, err
	}

	response := ToTagResponse(tag)
	return &response, nil
}

// List lists all tags
func (s *TagService) List(ctx context.Context) ([]TagResponse, error) {
	filter := shared.DefaultFilter()
	filter.OrderBy = "label"
	filter.OrderDir = "asc"
	filter.PageSize = 1000

	tags, err := s.tagRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]TagResponse, 0, len(tags))
	for i := range tags {
		responses = append(responses, ToTagResponse(&tags[i]))
	}
	return responses, nil
}

// Update relabels a tag. The new label must not collide with another tag.
func (s *TagService) Update(ctx context.Context, tagID uuid.UUID, req UpdateTagRequest) (*TagResponse, error) {
	tag, err := s.tagRepo.FindByID(ctx, tagID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.tagRepo.FindByLabel(ctx, req.Label); err == nil {
		if existing.ID != tag.ID {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Tag with this label already exists")
		}
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := tag.Relabel(req.Label); err != nil {
		return nil, err
	}

	if err := s.tagRepo.Save(ctx, tag); err != nil {
		return nil, err
	}

	response := ToTagResponse(tag)
	return &response, nil
}

// ListByProduct lists the tags attached to a product
func (s *TagService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]TagResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	tags, err := s.tagRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	responses := make([]TagResponse, 0, len(tags))
	for i := range tags {
		responses = append(responses, ToTagResponse(&tags[i]))
	}
	return responses, nil
}

// Attach links a tag to a product. Attaching twice is a no-op.
func (s *TagService) Attach(ctx context.Context, tagID, productID uuid.UUID) error {
	if _, err := s.tagRepo.FindByID(ctx, tagID); err != nil {
		return err
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}
	return s.tagRepo.Attach(ctx, tagID, productID)
}

// Detach removes the link between a tag and a product
func (s *TagService) Detach(ctx context.Context, tagID, productID uuid.UUID) error {
	if _, err := s.tagRepo.FindByID(ctx, tagID); err != nil {
		return err
	}
	return s.tagRepo.Detach(ctx, tagID, productID)
}

// Delete deletes a tag. Its product links go away with it.
func (s *TagService) Delete(ctx context.Context, tagID uuid.UUID) error {
	if _, err := s.tagRepo.FindByID(ctx, tagID); err != nil {
		return err
	}
	return s.tagRepo.Delete(ctx, tagID)
}
