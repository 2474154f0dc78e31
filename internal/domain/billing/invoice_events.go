package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbill/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeInvoice = "Invoice"

// Event type constants
const (
	EventTypeInvoiceSettled = "InvoiceSettled"
)

// InvoiceSettledItem carries the stock-relevant part of a settled line
type InvoiceSettledItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// InvoiceSettledEvent is published after a cart is settled and committed
type InvoiceSettledEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID            `json:"invoice_id"`
	InvoiceNumber string               `json:"invoice_number"`
	CustomerName  string               `json:"customer_name"`
	GrandTotal    decimal.Decimal      `json:"grand_total"`
	Items         []InvoiceSettledItem `json:"items"`
}

// NewInvoiceSettledEvent creates a new InvoiceSettledEvent
func NewInvoiceSettledEvent(invoice *Invoice) *InvoiceSettledEvent {
	items := make([]InvoiceSettledItem, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		items = append(items, InvoiceSettledItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return &InvoiceSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceSettled, AggregateTypeInvoice, invoice.ID),
		InvoiceID:       invoice.ID,
		InvoiceNumber:   invoice.InvoiceNumber,
		CustomerName:    invoice.CustomerName,
		GrandTotal:      invoice.GrandTotal,
		Items:           items,
	}
}
