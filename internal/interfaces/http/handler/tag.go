package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// TagHandler handles tag API endpoints
type TagHandler struct {
	BaseHandler
	tagService *catalogapp.TagService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagService *catalogapp.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// Create handles POST /catalog/tags
func (h *TagHandler) Create(c *gin.Context) {
	var req catalogapp.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tag, err := h.tagService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tag)
}

// Update handles PUT /catalog/tags/:id
func (h *TagHandler) Update(c *gin.Context) {
	tagID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tag ID format")
		return
	}

	var req catalogapp.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tag, err := h.tagService.Update(c.Request.Context(), tagID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tag)
}

// List handles GET /catalog/tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tagService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tags)
}

// ListByProduct handles GET /catalog/products/:id/tags
func (h *TagHandler) ListByProduct(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	tags, err := h.tagService.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tags)
}

// Attach handles POST /catalog/tags/:id/products/:product_id
func (h *TagHandler) Attach(c *gin.Context) {
	tagID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tag ID format")
		return
	}
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.tagService.Attach(c.Request.Context(), tagID, productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Detach handles DELETE /catalog/tags/:id/products/:product_id
func (h *TagHandler) Detach(c *gin.Context) {
	tagID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tag ID format")
		return
	}
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.tagService.Detach(c.Request.Context(), tagID, productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete handles DELETE /catalog/tags/:id
func (h *TagHandler) Delete(c *gin.Context) {
	tagID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tag ID format")
		return
	}

	if err := h.tagService.Delete(c.Request.Context(), tagID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
