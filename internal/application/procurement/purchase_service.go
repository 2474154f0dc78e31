package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartbill/backend/internal/application/inventory"
	"github.com/smartbill/backend/internal/domain/catalog"
	"github.com/smartbill/backend/internal/domain/procurement"
	"github.com/smartbill/backend/internal/domain/shared"
)

// PurchaseService records supplier stock intake
type PurchaseService struct {
	productRepo  catalog.ProductRepository
	purchaseRepo procurement.PurchaseRepository
	txScope      inventory.TransactionScope
	eventBus     shared.EventPublisher
	logger       *zap.Logger
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	productRepo catalog.ProductRepository,
	purchaseRepo procurement.PurchaseRepository,
	txScope inventory.TransactionScope,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *PurchaseService {
	return &PurchaseService{
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		txScope:      txScope,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// Record persists a purchase entry, increments the product's stock and
// overwrites its purchase price with the new cost, all in one transaction.
func (s *PurchaseService) Record(ctx context.Context, req RecordPurchaseRequest, actor string) (*PurchaseEntryResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	date := time.Time{}
	if req.Date != nil {
		date = *req.Date
	}
	entry, err := procurement.NewPurchaseEntry(product.ID, product.Name, req.SupplierName, req.Quantity, req.CostPrice, req.InvoiceNo, date, req.Notes, actor)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
		if err := repos.PurchaseRepo().Save(ctx, entry); err != nil {
			return err
		}
		if err := repos.ProductRepo().AdjustStock(ctx, entry.ProductID, entry.Quantity); err != nil {
			return err
		}
		// latest cost wins; no average-cost bookkeeping
		return repos.ProductRepo().SetPurchasePrice(ctx, entry.ProductID, entry.CostPrice)
	})
	if err != nil {
		return nil, err
	}

	events := entry.GetDomainEvents()
	entry.ClearDomainEvents()
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish purchase events", zap.Error(err))
	}

	return ToPurchaseEntryResponse(entry), nil
}

// Get returns a single purchase entry
func (s *PurchaseService) Get(ctx context.Context, id uuid.UUID) (*PurchaseEntryResponse, error) {
	entry, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToPurchaseEntryResponse(entry), nil
}

// List returns all purchase entries newest-first
func (s *PurchaseService) List(ctx context.Context) ([]*PurchaseEntryResponse, error) {
	entries, err := s.purchaseRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToPurchaseEntryResponses(entries), nil
}

// ListByProduct returns the purchase history of one product
func (s *PurchaseService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*PurchaseEntryResponse, error) {
	entries, err := s.purchaseRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToPurchaseEntryResponses(entries), nil
}
