package inventory

import (
	"context"
	"errors"

	"github.com/breezehub/backend/internal/domain/catalog"
	"github.com/breezehub/backend/internal/domain/inventory"
	"github.com/breezehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// maxWriteAttempts bounds the optimistic-lock retry loop for stock writes
const maxWriteAttempts = 3

// LedgerService is the sole writer of variant stock. Reservations are
// applied atomically across all requested variants; administrative
// adjustments overwrite a single variant. Both paths go through optimistic
// locking and retry a bounded number of times on version conflicts.
type LedgerService struct {
	scope       TransactionScope
	reservation *inventory.ReservationService
	publisher   shared.EventPublisher
	invalidator CacheInvalidator
}

// CacheInvalidator drops stale cached products after a stock write.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, productID uuid.UUID)
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(scope TransactionScope) *LedgerService {
	return &LedgerService{
		scope:       scope,
		reservation: inventory.NewReservationService(),
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *LedgerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// SetCacheInvalidator drops cached product reads after stock writes
func (s *LedgerService) SetCacheInvalidator(invalidator CacheInvalidator) {
	s.invalidator = invalidator
}

// Reserve decrements stock for every line or none. Version conflicts from
// concurrent writers roll the transaction back and retry with a fresh
// snapshot, so two racing reservations over the same variant serialize.
func (s *LedgerService) Reserve(ctx context.Context, req ReserveRequest) (*inventory.ReservationResult, error) {
	domainReq, err := req.toDomain()
	if err != nil {
		return nil, err
	}

	var result *inventory.ReservationResult
	var lastErr error
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		lastErr = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
			r, err := s.ReserveWithin(ctx, repos, domainReq)
			if err != nil {
				return err
			}
			result = r
			return nil
		})
		if lastErr == nil {
			s.publishProductEvents(ctx, result.Products)
			return result, nil
		}
		if !errors.Is(lastErr, shared.ErrConcurrencyConflict) {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

// ReserveWithin performs a single reservation attempt against the
// repositories of an enclosing transaction. Callers that need more work in
// the same unit (persisting an order) use this directly; the transaction
// rollback is what undoes partial decrements.
func (s *LedgerService) ReserveWithin(ctx context.Context, repos TransactionalRepositories, req inventory.ReservationRequest) (*inventory.ReservationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(req.Lines))
	seen := make(map[uuid.UUID]bool)
	for _, line := range req.Lines {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}

	products, err := repos.ProductRepo().FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	result, err := s.reservation.ReserveStock(ctx, byID, req)
	if err != nil {
		return nil, err
	}

	for _, product := range result.Products {
		if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// AdjustStock overwrites the stock of one variant. Admin-only at the API
// layer; here the only rule is newStock >= 0, enforced by the aggregate.
func (s *LedgerService) AdjustStock(ctx context.Context, productID, variantID uuid.UUID, newStock int64) (*catalog.Product, error) {
	var product *catalog.Product
	var lastErr error
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		lastErr = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
			p, err := repos.ProductRepo().FindByID(ctx, productID)
			if err != nil {
				return err
			}
			if err := p.SetVariantStock(variantID, newStock); err != nil {
				return err
			}
			if err := repos.ProductRepo().SaveWithLock(ctx, p); err != nil {
				return err
			}
			product = p
			return nil
		})
		if lastErr == nil {
			s.publishProductEvents(ctx, []*catalog.Product{product})
			return product, nil
		}
		if !errors.Is(lastErr, shared.ErrConcurrencyConflict) {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

func (s *LedgerService) publishProductEvents(ctx context.Context, products []*catalog.Product) {
	for _, product := range products {
		if s.invalidator != nil {
			s.invalidator.Invalidate(ctx, product.ID)
		}
		if s.publisher == nil {
			continue
		}
		for _, event := range product.GetDomainEvents() {
			// Publish failures are logged by the publisher; stock is already committed.
			_ = s.publisher.Publish(ctx, event)
		}
		product.ClearDomainEvents()
	}
}
