package handler

import (
	"github.com/gin-gonic/gin"

	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	orderapp "github.com/storefront/backend/internal/application/order"
)

// OrderHandler handles order API endpoints, including checkout
type OrderHandler struct {
	BaseHandler
	orderService    *orderapp.OrderService
	checkoutService *checkoutapp.CheckoutService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService, checkoutService *checkoutapp.CheckoutService) *OrderHandler {
	return &OrderHandler{
		orderService:    orderService,
		checkoutService: checkoutService,
	}
}

// PlaceOrder handles POST /orders. This is the checkout: the cart is
// consumed and an order is created in its place.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	principal := getPrincipal(c)
	if principal == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req checkoutapp.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ord, err := h.checkoutService.PlaceOrder(c.Request.Context(), principal.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ord)
}

// ListMine handles GET /orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	principal := getPrincipal(c)
	if principal == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, total, err := h.orderService.ListMine(c.Request.Context(), principal.ID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// GetMine handles GET /orders/:id
func (h *OrderHandler) GetMine(c *gin.Context) {
	principal := getPrincipal(c)
	if principal == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	ord, err := h.orderService.GetOwnByID(c.Request.Context(), principal.ID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ord)
}

// ListAll handles GET /admin/orders (staff only)
func (h *OrderHandler) ListAll(c *gin.Context) {
	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// GetByID handles GET /admin/orders/:id (staff only)
func (h *OrderHandler) GetByID(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	ord, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ord)
}

// SetPaymentStatus handles PUT /admin/orders/:id/payment-status (staff only).
// This is the surface the external payment collaborator reports through.
func (h *OrderHandler) SetPaymentStatus(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderapp.SetPaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ord, err := h.orderService.SetPaymentStatus(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ord)
}
