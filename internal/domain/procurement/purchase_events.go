package procurement

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbill/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypePurchaseEntry = "PurchaseEntry"

// Event type constants
const (
	EventTypePurchaseRecorded = "PurchaseRecorded"
)

// PurchaseRecordedEvent is published after a stock intake is committed
type PurchaseRecordedEvent struct {
	shared.BaseDomainEvent
	EntryID      uuid.UUID       `json:"entry_id"`
	ProductID    uuid.UUID       `json:"product_id"`
	SupplierName string          `json:"supplier_name"`
	Quantity     int             `json:"quantity"`
	CostPrice    decimal.Decimal `json:"cost_price"`
}

// NewPurchaseRecordedEvent creates a new PurchaseRecordedEvent
func NewPurchaseRecordedEvent(entry *PurchaseEntry) *PurchaseRecordedEvent {
	return &PurchaseRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseRecorded, AggregateTypePurchaseEntry, entry.ID),
		EntryID:         entry.ID,
		ProductID:       entry.ProductID,
		SupplierName:    entry.SupplierName,
		Quantity:        entry.Quantity,
		CostPrice:       entry.CostPrice,
	}
}
