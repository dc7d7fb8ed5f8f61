package event

import (
	"context"

	"github.com/breezehub/backend/internal/domain/catalog"
	"github.com/breezehub/backend/internal/domain/identity"
	"github.com/breezehub/backend/internal/domain/order"
	"github.com/breezehub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditLogHandler writes a structured audit line for every domain event
// the storefront emits. It is the default subscriber wired at startup.
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a new AuditLogHandler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger}
}

var _ shared.EventHandler = (*AuditLogHandler)(nil)

// EventTypes returns the event types this handler subscribes to
func (h *AuditLogHandler) EventTypes() []string {
	return []string{
		catalog.EventTypeProductCreated,
		catalog.EventTypeStockReserved,
		catalog.EventTypeStockAdjusted,
		order.EventTypeOrderCreated,
		order.EventTypeOrderStatusChanged,
		order.EventTypeRiderAssigned,
		identity.EventTypeUserCreated,
		identity.EventTypeUserRoleChanged,
	}
}

// Handle logs the event
func (h *AuditLogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.logger.Info("Domain event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}
