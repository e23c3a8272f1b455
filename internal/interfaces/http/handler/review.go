package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// ReviewHandler handles product review API endpoints. Reviews are always
// addressed through their parent product.
type ReviewHandler struct {
	BaseHandler
	reviewService *catalogapp.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *catalogapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type reviewListQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Create handles POST /catalog/products/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req catalogapp.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, review)
}

// GetByID handles GET /catalog/products/:id/reviews/:review_id
func (h *ReviewHandler) GetByID(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}
	reviewID, err := parseIDParam(c, "review_id")
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	review, err := h.reviewService.GetByID(c.Request.Context(), productID, reviewID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, review)
}

// List handles GET /catalog/products/:id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var query reviewListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if query.Page == 0 {
		query.Page = 1
	}
	if query.PageSize == 0 {
		query.PageSize = 20
	}

	reviews, total, err := h.reviewService.List(c.Request.Context(), productID, query.Page, query.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, reviews, total, query.Page, query.PageSize)
}

// Update handles PUT /catalog/products/:id/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}
	reviewID, err := parseIDParam(c, "review_id")
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	var req catalogapp.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), productID, reviewID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, review)
}

// Delete handles DELETE /catalog/products/:id/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}
	reviewID, err := parseIDParam(c, "review_id")
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), productID, reviewID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
