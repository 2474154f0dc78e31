package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InvoiceRepository defines the persistence operations for invoices
type InvoiceRepository interface {
	Save(ctx context.Context, invoice *Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByNumber(ctx context.Context, number string) (*Invoice, error)
	// FindAll returns invoices newest-first with their line items loaded
	FindAll(ctx context.Context) ([]*Invoice, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*Invoice, error)
	// NextInvoiceNumber derives the next sequential number (INV-0001 style)
	// from the invoices already stored. Callers run it inside the settlement
	// transaction; uniqueness is ultimately enforced by the index.
	NextInvoiceNumber(ctx context.Context) (string, error)
	Count(ctx context.Context) (int64, error)
}
