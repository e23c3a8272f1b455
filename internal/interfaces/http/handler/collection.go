package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// CollectionHandler handles collection API endpoints
type CollectionHandler struct {
	BaseHandler
	collectionService *catalogapp.CollectionService
}

// NewCollectionHandler creates a new CollectionHandler
func NewCollectionHandler(collectionService *catalogapp.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

// Create handles POST /catalog/collections
func (h *CollectionHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	collection, err := h.collectionService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, collection)
}

// GetByID handles GET /catalog/collections/:id
func (h *CollectionHandler) GetByID(c *gin.Context) {
	collectionID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid collection ID format")
		return
	}

	collection, err := h.collectionService.GetByID(c.Request.Context(), collectionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, collection)
}

// List handles GET /catalog/collections
func (h *CollectionHandler) List(c *gin.Context) {
	var filter catalogapp.CollectionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	collections, total, err := h.collectionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, collections, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// Update handles PUT /catalog/collections/:id
func (h *CollectionHandler) Update(c *gin.Context) {
	collectionID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid collection ID format")
		return
	}

	var req catalogapp.UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	collection, err := h.collectionService.Update(c.Request.Context(), collectionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, collection)
}

// Delete handles DELETE /catalog/collections/:id
func (h *CollectionHandler) Delete(c *gin.Context) {
	collectionID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid collection ID format")
		return
	}

	if err := h.collectionService.Delete(c.Request.Context(), collectionID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
