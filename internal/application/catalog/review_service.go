package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// ReviewService handles product review operations. Reviews are always
// addressed through their product.
type ReviewService struct {
	reviewRepo  catalog.ReviewRepository
	productRepo catalog.ProductRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo catalog.ReviewRepository, productRepo catalog.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// Create creates a review for a product
func (s *ReviewService) Create(ctx context.Context, productID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	review, err := catalog.NewReview(productID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	response := ToReviewResponse(review)
	return &response, nil
}

// GetByID retrieves a review, verifying it belongs to the product
func (s *ReviewService) GetByID(ctx context.Context, productID, reviewID uuid.UUID) (*ReviewResponse, error) {
	review, err := s.findForProduct(ctx, productID, reviewID)
	if err != nil {
		return nil, err
	}
	response := ToReviewResponse(review)
	return &response, nil
}

// List lists the reviews of a product
func (s *ReviewService) List(ctx context.Context, productID uuid.UUID, page, pageSize int) ([]ReviewResponse, int64, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, 0, err
	}

	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	filter.OrderBy = "date"
	filter.OrderDir = "desc"

	reviews, err := s.reviewRepo.FindByProduct(ctx, productID, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.reviewRepo.CountByProduct(ctx, productID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, ToReviewResponse(&reviews[i]))
	}
	return responses, total, nil
}

// Update updates a review's name and text
func (s *ReviewService) Update(ctx context.Context, productID, reviewID uuid.UUID, req UpdateReviewRequest) (*ReviewResponse, error) {
	review, err := s.findForProduct(ctx, productID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := review.Update(req.Name, req.Description); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	response := ToReviewResponse(review)
	return &response, nil
}

// Delete deletes a review
func (s *ReviewService) Delete(ctx context.Context, productID, reviewID uuid.UUID) error {
	if _, err := s.findForProduct(ctx, productID, reviewID); err != nil {
		return err
	}
	return s.reviewRepo.Delete(ctx, reviewID)
}

func (s *ReviewService) findForProduct(ctx context.Context, productID, reviewID uuid.UUID) (*catalog.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.ProductID != productID {
		return nil, shared.ErrNotFound
	}
	return review, nil
}
