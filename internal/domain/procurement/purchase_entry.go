package procurement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbill/backend/internal/domain/shared"
)

// PurchaseEntry records one stock intake from a supplier. Entries are
// append-only; corrections are made with a
// compensating entry, never by editing.
type PurchaseEntry struct {
	shared.BaseAggregateRoot
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName  string          `gorm:"not null"`
	SupplierName string          `gorm:"not null;index"`
	Quantity     int             `gorm:"not null"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	InvoiceNo    string
	Date         time.Time       `gorm:"not null;index"`
	Notes        string
	CreatedBy    string
}

// TableName specifies the database table name
func (PurchaseEntry) TableName() string {
	return "purchase_entries"
}

// NewPurchaseEntry creates a validated purchase entry
func NewPurchaseEntry(productID uuid.UUID, productName, supplierName string, quantity int, costPrice decimal.Decimal, invoiceNo string, date time.Time, notes, createdBy string) (*PurchaseEntry, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	supplierName = strings.TrimSpace(supplierName)
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if costPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}
	if date.IsZero() {
		date = time.Now()
	}

	entry := &PurchaseEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		ProductName:       strings.TrimSpace(productName),
		SupplierName:      supplierName,
		Quantity:          quantity,
		CostPrice:         costPrice,
		InvoiceNo:         strings.TrimSpace(invoiceNo),
		Date:              date,
		Notes:             strings.TrimSpace(notes),
		CreatedBy:         createdBy,
	}

	entry.AddDomainEvent(NewPurchaseRecordedEvent(entry))
	return entry, nil
}
