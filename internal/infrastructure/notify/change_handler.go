package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/domain/catalog"
	"github.com/smartbill/backend/internal/domain/procurement"
	"github.com/smartbill/backend/internal/domain/shared"
)

// ChangeHandler bridges the event bus to a ChangeNotifier: every domain event
// that mutates a collection is translated into a change signal for that
// collection. Settled invoices also touch products because stock moved.
type ChangeHandler struct {
	notifier shared.ChangeNotifier
	logger   *zap.Logger
}

func NewChangeHandler(notifier shared.ChangeNotifier, logger *zap.Logger) *ChangeHandler {
	return &ChangeHandler{
		notifier: notifier,
		logger:   logger,
	}
}

// EventTypes implements shared.EventHandler
func (h *ChangeHandler) EventTypes() []string {
	return []string{
		catalog.EventTypeProductCreated,
		catalog.EventTypeProductUpdated,
		catalog.EventTypeProductStockAdjusted,
		catalog.EventTypeProductDeleted,
		billing.EventTypeInvoiceSettled,
		procurement.EventTypePurchaseRecorded,
	}
}

// Handle implements shared.EventHandler
func (h *ChangeHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	for _, collection := range collectionsFor(event.EventType()) {
		if err := h.notifier.NotifyChanged(ctx, collection); err != nil {
			h.logger.Warn("failed to notify collection change",
				zap.String("event_type", event.EventType()),
				zap.String("collection", string(collection)),
				zap.Error(err),
			)
			return err
		}
	}
	return nil
}

func collectionsFor(eventType string) []shared.Collection {
	switch eventType {
	case catalog.EventTypeProductCreated,
		catalog.EventTypeProductUpdated,
		catalog.EventTypeProductStockAdjusted,
		catalog.EventTypeProductDeleted:
		return []shared.Collection{shared.CollectionProducts}
	case billing.EventTypeInvoiceSettled:
		return []shared.Collection{shared.CollectionInvoices, shared.CollectionProducts}
	case procurement.EventTypePurchaseRecorded:
		return []shared.Collection{shared.CollectionPurchases, shared.CollectionProducts}
	default:
		return nil
	}
}

var _ shared.EventHandler = (*ChangeHandler)(nil)
