package handler

import (
	"github.com/gin-gonic/gin"

	customerapp "github.com/storefront/backend/internal/application/customer"
)

// CustomerHandler handles customer API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *customerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *customerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// GetMe handles GET /customers/me
func (h *CustomerHandler) GetMe(c *gin.Context) {
	principal := getPrincipal(c)
	if principal == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cust, err := h.customerService.GetMe(c.Request.Context(), principal.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cust)
}

// UpdateMe handles PUT /customers/me
func (h *CustomerHandler) UpdateMe(c *gin.Context) {
	principal := getPrincipal(c)
	if principal == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req customerapp.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cust, err := h.customerService.UpdateMe(c.Request.Context(), principal.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cust)
}

// GetByID handles GET /customers/:id (staff only)
func (h *CustomerHandler) GetByID(c *gin.Context) {
	customerID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	cust, err := h.customerService.GetByID(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cust)
}

// List handles GET /customers (staff only)
func (h *CustomerHandler) List(c *gin.Context) {
	var filter customerapp.CustomerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customers, total, err := h.customerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, customers, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// SetMembership handles PUT /customers/:id/membership (staff only)
func (h *CustomerHandler) SetMembership(c *gin.Context) {
	customerID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req customerapp.SetMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cust, err := h.customerService.SetMembership(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cust)
}
