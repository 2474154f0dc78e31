package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbill/backend/internal/domain/billing"
)

// CartLineRequest is one line of a cart submitted for quoting or settlement
type CartLineRequest struct {
	ProductID       uuid.UUID        `json:"product_id" binding:"required"`
	Quantity        int              `json:"quantity" binding:"required,min=1"`
	PriceType       string           `json:"price_type" binding:"required,billtype"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
}

// SettleRequest asks for a cart to be settled into an invoice
type SettleRequest struct {
	Items         []CartLineRequest `json:"items" binding:"dive"`
	CustomerName  string            `json:"customer_name" binding:"max=200"`
	CustomerPhone string            `json:"customer_phone" binding:"max=20"`
	BillType      string            `json:"bill_type" binding:"required,billtype"`
}

// QuoteRequest asks for cart totals without settling
type QuoteRequest struct {
	Items []CartLineRequest `json:"items" binding:"dive"`
}

// CartTotalsResponse is the computed summary of a cart
type CartTotalsResponse struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	TotalGST      decimal.Decimal `json:"total_gst"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// InvoiceItemResponse represents a settled line item
type InvoiceItemResponse struct {
	ProductID       uuid.UUID       `json:"product_id"`
	ProductName     string          `json:"product_name"`
	SKU             string          `json:"sku"`
	Quantity        int             `json:"quantity"`
	PriceType       string          `json:"price_type"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	GSTPercent      decimal.Decimal `json:"gst_percent"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	CustomerName  string                `json:"customer_name"`
	CustomerPhone string                `json:"customer_phone"`
	BillType      string                `json:"bill_type"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	TotalDiscount decimal.Decimal       `json:"total_discount"`
	TotalGST      decimal.Decimal       `json:"total_gst"`
	GrandTotal    decimal.Decimal       `json:"grand_total"`
	CreatedBy     string                `json:"created_by"`
	CreatedAt     time.Time             `json:"created_at"`
	Items         []InvoiceItemResponse `json:"items"`
}

// ToInvoiceResponse converts a domain invoice to a response DTO
func ToInvoiceResponse(invoice *billing.Invoice) *InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		items = append(items, InvoiceItemResponse{
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			SKU:             item.SKU,
			Quantity:        item.Quantity,
			PriceType:       string(item.PriceType),
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			GSTPercent:      item.GSTPercent,
			LineTotal:       item.LineTotal,
		})
	}
	return &InvoiceResponse{
		ID:            invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		CustomerName:  invoice.CustomerName,
		CustomerPhone: invoice.CustomerPhone,
		BillType:      string(invoice.BillType),
		Subtotal:      invoice.Subtotal,
		TotalDiscount: invoice.TotalDiscount,
		TotalGST:      invoice.TotalGST,
		GrandTotal:    invoice.GrandTotal,
		CreatedBy:     invoice.CreatedBy,
		CreatedAt:     invoice.CreatedAt,
		Items:         items,
	}
}

// ToInvoiceResponses converts a slice of domain invoices
func ToInvoiceResponses(invoices []*billing.Invoice) []*InvoiceResponse {
	out := make([]*InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, ToInvoiceResponse(inv))
	}
	return out
}

// ToCartTotalsResponse converts computed cart totals
func ToCartTotalsResponse(totals billing.CartTotals) *CartTotalsResponse {
	return &CartTotalsResponse{
		Subtotal:      totals.Subtotal,
		TotalDiscount: totals.TotalDiscount,
		TotalGST:      totals.TotalGST,
		GrandTotal:    totals.GrandTotal,
	}
}
