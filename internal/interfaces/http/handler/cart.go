package handler

import (
	"github.com/gin-gonic/gin"

	cartapp "github.com/storefront/backend/internal/application/cart"
)

// CartHandler handles cart API endpoints. Carts are anonymous; the cart ID
// is the only credential, so none of these routes require authentication.
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Create handles POST /carts
func (h *CartHandler) Create(c *gin.Context) {
	crt, err := h.cartService.Create(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, crt)
}

// GetByID handles GET /carts/:id
func (h *CartHandler) GetByID(c *gin.Context) {
	cartID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}

	crt, err := h.cartService.GetByID(c.Request.Context(), cartID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, crt)
}

// Delete handles DELETE /carts/:id
func (h *CartHandler) Delete(c *gin.Context) {
	cartID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}

	if err := h.cartService.Delete(c.Request.Context(), cartID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddItem handles POST /carts/:id/items
func (h *CartHandler) AddItem(c *gin.Context) {
	cartID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}

	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	crt, err := h.cartService.AddItem(c.Request.Context(), cartID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, crt)
}

// UpdateItem handles PATCH /carts/:id/items/:item_id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	cartID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}
	itemID, err := parseIDParam(c, "item_id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req cartapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	crt, err := h.cartService.UpdateItem(c.Request.Context(), cartID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, crt)
}

// RemoveItem handles DELETE /carts/:id/items/:item_id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}
	itemID, err := parseIDParam(c, "item_id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	if err := h.cartService.RemoveItem(c.Request.Context(), cartID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
