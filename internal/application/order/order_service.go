package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderService handles order queries and payment status transitions.
// Orders are created through the checkout flow, never directly.
type OrderService struct {
	orderRepo      order.OrderRepository
	customerRepo   customer.CustomerRepository
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.OrderRepository, customerRepo customer.CustomerRepository) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	ord, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(ord)
	return &response, nil
}

// GetOwnByID retrieves an order by ID, verifying it belongs to the
// customer linked to the given principal.
func (s *OrderService) GetOwnByID(ctx context.Context, principalID, orderID uuid.UUID) (*OrderResponse, error) {
	cust, err := s.customerRepo.FindByPrincipal(ctx, principalID)
	if err != nil {
		return nil, err
	}

	ord, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ord.CustomerID != cust.ID {
		// Hide the existence of other customers' orders
		return nil, shared.ErrNotFound
	}

	response := ToOrderResponse(ord)
	return &response, nil
}

// ListMine lists the orders placed by the customer linked to the principal.
// A principal that has not yet become a customer has no orders.
func (s *OrderService) ListMine(ctx context.Context, principalID uuid.UUID, filter OrderListFilter) ([]OrderListResponse, int64, error) {
	cust, err := s.customerRepo.FindByPrincipal(ctx, principalID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return []OrderListResponse{}, 0, nil
		}
		return nil, 0, err
	}

	domainFilter := s.buildFilter(filter)

	orders, err := s.orderRepo.FindByCustomer(ctx, cust.ID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.CountByCustomer(ctx, cust.ID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderListResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderListResponse(&orders[i]))
	}
	return responses, total, nil
}

// List lists all orders. Intended for staff use.
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderListResponse, int64, error) {
	domainFilter := s.buildFilter(filter)

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderListResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderListResponse(&orders[i]))
	}
	return responses, total, nil
}

// SetPaymentStatus transitions an order's payment status. Only the
// pending status can transition; complete and failed are terminal.
func (s *OrderService) SetPaymentStatus(ctx context.Context, orderID uuid.UUID, req SetPaymentStatusRequest) (*OrderResponse, error) {
	ord, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := ord.SetPaymentStatus(order.PaymentStatus(req.PaymentStatus)); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, ord); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, ord.GetDomainEvents()...); err != nil {
			// Log but don't fail the operation
		}
		ord.ClearDomainEvents()
	}

	response := ToOrderResponse(ord)
	return &response, nil
}

func (s *OrderService) buildFilter(filter OrderListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "placed_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.PaymentStatus != "" {
		domainFilter.Filters["payment_status"] = filter.PaymentStatus
	}
	return domainFilter
}
