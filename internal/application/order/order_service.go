package order

import (
	"context"
	"errors"

	appinventory "github.com/breezehub/backend/internal/application/inventory"
	domaininventory "github.com/breezehub/backend/internal/domain/inventory"
	"github.com/breezehub/backend/internal/domain/identity"
	"github.com/breezehub/backend/internal/domain/order"
	"github.com/breezehub/backend/internal/domain/shared"
	"github.com/breezehub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// maxCreateAttempts bounds the optimistic-lock retry loop for order creation
const maxCreateAttempts = 3

// reservationSourceType tags stock decrements that back an order
const reservationSourceType = "ORDER"

// OrderService builds orders and drives them through the status machine.
// Creation reserves stock and inserts the order inside one transaction, so
// a failed reservation leaves no order behind and a failed insert leaves no
// decrement behind. Status changes write through optimistic locking and
// report the loser of a race as a conflict.
type OrderService struct {
	scope     appinventory.TransactionScope
	orderRepo order.OrderRepository
	ledger    *appinventory.LedgerService
	policy    *order.TransitionPolicy
	publisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(scope appinventory.TransactionScope, orderRepo order.OrderRepository, ledger *appinventory.LedgerService) *OrderService {
	return &OrderService{
		scope:     scope,
		orderRepo: orderRepo,
		ledger:    ledger,
		policy:    order.NewTransitionPolicy(),
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Create validates the cart, reserves stock, and persists a pending order.
// The reservation and the order insert share one transaction; a version
// conflict on any touched product retries the whole unit with fresh stock.
func (s *OrderService) Create(ctx context.Context, principal identity.Principal, req CreateOrderRequest) (*OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Order must contain at least one item")
	}

	shippingAddress, err := valueobject.NewAddress(
		req.ShippingAddress.Street,
		req.ShippingAddress.City,
		req.ShippingAddress.State,
		req.ShippingAddress.ZipCode,
		req.ShippingAddress.Country,
	)
	if err != nil {
		return nil, err
	}

	domainReq := domaininventory.ReservationRequest{
		SourceType: reservationSourceType,
		Lines:      make([]domaininventory.ReservationLine, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is not a valid UUID")
		}
		domainReq.Lines = append(domainReq.Lines, domaininventory.ReservationLine{
			ProductID: productID,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
		})
	}

	var created *order.Order
	var lastErr error
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		lastErr = s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
			reservation, err := s.ledger.ReserveWithin(ctx, repos, domainReq)
			if err != nil {
				return err
			}

			items := make([]order.OrderItem, 0, len(reservation.Lines))
			for _, line := range reservation.Lines {
				item, err := order.NewOrderItem(
					line.ProductID,
					line.VariantID,
					line.ProductName,
					line.Size,
					line.Color,
					line.Quantity,
					line.UnitPrice,
				)
				if err != nil {
					return err
				}
				items = append(items, *item)
			}

			o, err := order.NewOrder(principal.ID, items, shippingAddress)
			if err != nil {
				return err
			}

			if err := repos.OrderRepo().Save(ctx, o); err != nil {
				return err
			}

			created = o
			return nil
		})
		if lastErr == nil {
			s.publishEvents(ctx, created)
			response := ToOrderResponse(created)
			return &response, nil
		}
		if !errors.Is(lastErr, shared.ErrConcurrencyConflict) {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

// Get returns one order, subject to the caller's visibility rules
func (s *OrderService) Get(ctx context.Context, principal identity.Principal, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanView(principal, o) {
		return nil, shared.NewDomainError("FORBIDDEN", "Not allowed to view this order")
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// List returns the orders visible to the caller: all for admins, own
// orders for customers, assigned shipped-or-later orders for riders.
func (s *OrderService) List(ctx context.Context, principal identity.Principal, filter shared.Filter) (*OrderListResponse, error) {
	var orders []*order.Order
	var err error

	switch principal.Role {
	case identity.RoleAdmin:
		orders, err = s.orderRepo.FindAll(ctx, filter)
	case identity.RoleCustomer:
		orders, err = s.orderRepo.FindByUserID(ctx, principal.ID, filter)
	case identity.RoleRider:
		orders, err = s.orderRepo.FindByRiderID(ctx, principal.ID, filter)
	default:
		return nil, shared.NewDomainError("FORBIDDEN", "Unknown role")
	}
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, ToOrderResponse(o))
	}

	return &OrderListResponse{
		Orders:   responses,
		Total:    int64(len(responses)),
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// UpdateStatus applies one transition on behalf of the caller. Role and
// assignment failures surface as FORBIDDEN, state failures as
// INVALID_STATE, and a lost write race as CONCURRENCY_CONFLICT.
func (s *OrderService) UpdateStatus(ctx context.Context, principal identity.Principal, orderID uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	target := order.OrderStatus(req.Status)

	var riderID *uuid.UUID
	if req.RiderID != nil {
		id, err := uuid.Parse(*req.RiderID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_RIDER", "Rider ID is not a valid UUID")
		}
		riderID = &id
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.Authorize(principal, o, target, riderID); err != nil {
		return nil, err
	}
	if err := s.policy.Apply(o, target, riderID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	response := ToOrderResponse(o)
	return &response, nil
}

// MarkPaid is shorthand for the admin pending-to-paid transition
func (s *OrderService) MarkPaid(ctx context.Context, principal identity.Principal, orderID uuid.UUID) (*OrderResponse, error) {
	return s.UpdateStatus(ctx, principal, orderID, UpdateStatusRequest{
		Status: order.OrderStatusPaid.String(),
	})
}

func (s *OrderService) publishEvents(ctx context.Context, o *order.Order) {
	if s.publisher == nil || o == nil {
		return
	}
	for _, event := range o.GetDomainEvents() {
		// Publish failures are logged by the publisher; the write is already committed.
		_ = s.publisher.Publish(ctx, event)
	}
	o.ClearDomainEvents()
}
