package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartbill/backend/internal/domain/procurement"
)

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// Save persists a purchase entry
func (r *GormPurchaseRepository) Save(ctx context.Context, entry *procurement.PurchaseEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FindByID finds a purchase entry by its ID
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseEntry, error) {
	var entry procurement.PurchaseEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &entry, nil
}

// FindAll returns all purchase entries newest-first
func (r *GormPurchaseRepository) FindAll(ctx context.Context) ([]*procurement.PurchaseEntry, error) {
	var entries []*procurement.PurchaseEntry
	if err := r.db.WithContext(ctx).
		Order("date DESC, created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByProduct returns the purchase history of one product newest-first
func (r *GormPurchaseRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*procurement.PurchaseEntry, error) {
	var entries []*procurement.PurchaseEntry
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("date DESC, created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Count counts all purchase entries
func (r *GormPurchaseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&procurement.PurchaseEntry{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormPurchaseRepository implements PurchaseRepository
var _ procurement.PurchaseRepository = (*GormPurchaseRepository)(nil)
