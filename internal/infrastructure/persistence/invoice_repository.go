package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartbill/backend/internal/domain/billing"
)

const invoiceNumberPrefix = "INV-"

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Save persists an invoice together with its line items. A unique index on
// invoice_number turns concurrent number allocation into ErrAlreadyExists.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FindByID finds an invoice with its line items
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var invoice billing.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&invoice, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &invoice, nil
}

// FindByNumber finds an invoice by its human-readable number
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, number string) (*billing.Invoice, error) {
	var invoice billing.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&invoice, "invoice_number = ?", number).Error; err != nil {
		return nil, translateError(err)
	}
	return &invoice, nil
}

// FindAll returns all invoices newest-first with their line items
func (r *GormInvoiceRepository) FindAll(ctx context.Context) ([]*billing.Invoice, error) {
	var invoices []*billing.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByDateRange returns invoices created in [from, to) newest-first
func (r *GormInvoiceRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]*billing.Invoice, error) {
	var invoices []*billing.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at DESC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// NextInvoiceNumber returns the next number in the INV-0001 sequence. The
// ordering by length before value keeps INV-10000 above INV-9999.
func (r *GormInvoiceRepository) NextInvoiceNumber(ctx context.Context) (string, error) {
	var last string
	err := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Select("invoice_number").
		Order("LENGTH(invoice_number) DESC, invoice_number DESC").
		Limit(1).
		Scan(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	next := 1
	if seq, ok := strings.CutPrefix(last, invoiceNumberPrefix); ok {
		n, err := strconv.Atoi(seq)
		if err != nil {
			return "", fmt.Errorf("malformed invoice number %q: %w", last, err)
		}
		next = n + 1
	}
	return fmt.Sprintf("%s%04d", invoiceNumberPrefix, next), nil
}

// Count counts all invoices
func (r *GormInvoiceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&billing.Invoice{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
