package procurement

import (
	"context"

	"github.com/google/uuid"
)

// PurchaseRepository defines the persistence operations for purchase entries
type PurchaseRepository interface {
	Save(ctx context.Context, entry *PurchaseEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseEntry, error)
	// FindAll returns entries newest-first by purchase date
	FindAll(ctx context.Context) ([]*PurchaseEntry, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*PurchaseEntry, error)
	Count(ctx context.Context) (int64, error)
}
