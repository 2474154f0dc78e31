package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbill/backend/internal/domain/catalog"
	"github.com/smartbill/backend/internal/domain/shared"
)

// DefaultCustomerName is used when a sale has no named customer
const DefaultCustomerName = "Walk-in Customer"

// InvoiceItem is a settled cart line, denormalized so invoices stay readable
// after catalog edits or deletions.
type InvoiceItem struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey"`
	InvoiceID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductName     string            `gorm:"not null"`
	SKU             string
	Quantity        int               `gorm:"not null"`
	PriceType       catalog.PriceType `gorm:"not null"`
	UnitPrice       decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	DiscountPercent decimal.Decimal   `gorm:"type:decimal(5,2);not null"`
	GSTPercent      decimal.Decimal   `gorm:"type:decimal(5,2);not null"`
	LineTotal       decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	CreatedAt       time.Time
}

// TableName specifies the database table name
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// Invoice is the immutable record of a settled sale
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber string          `gorm:"uniqueIndex;not null"`
	CustomerName  string          `gorm:"not null"`
	CustomerPhone string
	BillType      catalog.PriceType `gorm:"not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalDiscount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalGST      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedBy     string
	Items         []InvoiceItem   `gorm:"foreignKey:InvoiceID"`
}

// TableName specifies the database table name
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoiceFromCart settles a cart into an immutable invoice. The invoice
// number is assigned later by the repository, inside the settlement
// transaction.
func NewInvoiceFromCart(cart *Cart, customerName, customerPhone string, billType catalog.PriceType, taxMode TaxMode, createdBy string) (*Invoice, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}
	if !billType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRICE_TYPE", "Price type must be retail or wholesale")
	}
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		customerName = DefaultCustomerName
	}

	totals := cart.Totals(taxMode)
	invoice := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerName:      customerName,
		CustomerPhone:     strings.TrimSpace(customerPhone),
		BillType:          billType,
		Subtotal:          totals.Subtotal,
		TotalDiscount:     totals.TotalDiscount,
		TotalGST:          totals.TotalGST,
		GrandTotal:        totals.GrandTotal,
		CreatedBy:         createdBy,
	}

	for _, line := range cart.Items() {
		invoice.Items = append(invoice.Items, InvoiceItem{
			ID:              uuid.New(),
			InvoiceID:       invoice.ID,
			ProductID:       line.ProductID,
			ProductName:     line.ProductName,
			SKU:             line.SKU,
			Quantity:        line.Quantity,
			PriceType:       line.PriceType,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
			GSTPercent:      line.GSTPercent,
			LineTotal:       line.LineTotal(taxMode),
		})
	}

	return invoice, nil
}

// AssignNumber sets the invoice number once. Reassignment is rejected to
// keep settled invoices immutable.
func (inv *Invoice) AssignNumber(number string) error {
	if inv.InvoiceNumber != "" {
		return shared.NewDomainError("INVOICE_NUMBER_ASSIGNED", "Invoice number is already assigned")
	}
	if strings.TrimSpace(number) == "" {
		return shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	inv.InvoiceNumber = number
	return nil
}

// TotalQuantity returns the number of units across all lines
func (inv *Invoice) TotalQuantity() int {
	total := 0
	for _, item := range inv.Items {
		total += item.Quantity
	}
	return total
}

// QuantityByProduct returns per-product sold quantities, used by analytics
func (inv *Invoice) QuantityByProduct() map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(inv.Items))
	for _, item := range inv.Items {
		out[item.ProductID] += item.Quantity
	}
	return out
}
