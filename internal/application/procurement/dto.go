package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbill/backend/internal/domain/procurement"
)

// RecordPurchaseRequest represents a stock intake to record
type RecordPurchaseRequest struct {
	ProductID    uuid.UUID       `json:"product_id" binding:"required"`
	SupplierName string          `json:"supplier_name" binding:"required,min=1,max=200"`
	Quantity     int             `json:"quantity" binding:"required,min=1"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	InvoiceNo    string          `json:"invoice_no" binding:"max=100"`
	Date         *time.Time      `json:"date"`
	Notes        string          `json:"notes" binding:"max=2000"`
}

// PurchaseEntryResponse represents a purchase entry in API responses
type PurchaseEntryResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	SupplierName string          `json:"supplier_name"`
	Quantity     int             `json:"quantity"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	InvoiceNo    string          `json:"invoice_no"`
	Date         time.Time       `json:"date"`
	Notes        string          `json:"notes"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToPurchaseEntryResponse converts a domain entry to a response DTO
func ToPurchaseEntryResponse(entry *procurement.PurchaseEntry) *PurchaseEntryResponse {
	return &PurchaseEntryResponse{
		ID:           entry.ID,
		ProductID:    entry.ProductID,
		ProductName:  entry.ProductName,
		SupplierName: entry.SupplierName,
		Quantity:     entry.Quantity,
		CostPrice:    entry.CostPrice,
		InvoiceNo:    entry.InvoiceNo,
		Date:         entry.Date,
		Notes:        entry.Notes,
		CreatedBy:    entry.CreatedBy,
		CreatedAt:    entry.CreatedAt,
	}
}

// ToPurchaseEntryResponses converts a slice of domain entries
func ToPurchaseEntryResponses(entries []*procurement.PurchaseEntry) []*PurchaseEntryResponse {
	out := make([]*PurchaseEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToPurchaseEntryResponse(e))
	}
	return out
}
