package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/smartbill/backend/internal/application/inventory"
	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/domain/catalog"
	"github.com/smartbill/backend/internal/domain/shared"
)

// maxNumberingAttempts bounds the retry loop when two settlements race for
// the same invoice number. The unique index on invoice_number is the
// authority; a collision just means re-deriving and trying again.
const maxNumberingAttempts = 3

// SettlementService settles carts into invoices and adjusts stock
type SettlementService struct {
	productRepo catalog.ProductRepository
	invoiceRepo billing.InvoiceRepository
	txScope     inventory.TransactionScope
	eventBus    shared.EventPublisher
	taxMode     billing.TaxMode
	logger      *zap.Logger
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(
	productRepo catalog.ProductRepository,
	invoiceRepo billing.InvoiceRepository,
	txScope inventory.TransactionScope,
	eventBus shared.EventPublisher,
	taxMode billing.TaxMode,
	logger *zap.Logger,
) *SettlementService {
	if !taxMode.IsValid() {
		taxMode = billing.TaxModeExclusive
	}
	return &SettlementService{
		productRepo: productRepo,
		invoiceRepo: invoiceRepo,
		txScope:     txScope,
		eventBus:    eventBus,
		taxMode:     taxMode,
		logger:      logger,
	}
}

// TaxMode returns the configured tax mode
func (s *SettlementService) TaxMode() billing.TaxMode {
	return s.taxMode
}

// buildCart resolves the requested lines against the current catalog. Unit
// prices are pinned here; whatever happens to the catalog afterwards does
// not change the cart.
func (s *SettlementService) buildCart(ctx context.Context, lines []CartLineRequest) (*billing.Cart, error) {
	cart := billing.NewCart()
	for _, line := range lines {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product in cart no longer exists")
			}
			return nil, err
		}
		lenBefore := cart.Len()
		if err := cart.AddItem(product, catalog.PriceType(line.PriceType)); err != nil {
			return nil, err
		}
		if cart.Len() == lenBefore {
			// duplicate request lines merge; add this line's quantity to
			// the existing one
			for idx, item := range cart.Items() {
				if item.ProductID == product.ID && item.PriceType == catalog.PriceType(line.PriceType) {
					if err := cart.UpdateQuantity(idx, line.Quantity-1); err != nil {
						return nil, err
					}
					break
				}
			}
			continue
		}
		index := cart.Len() - 1
		if err := cart.SetQuantity(index, line.Quantity); err != nil {
			return nil, err
		}
		discount := decimal.Zero
		if line.DiscountPercent != nil {
			discount = *line.DiscountPercent
		}
		if err := cart.SetDiscount(index, discount); err != nil {
			return nil, err
		}
	}
	return cart, nil
}

// Quote computes cart totals without settling anything
func (s *SettlementService) Quote(ctx context.Context, req QuoteRequest) (*CartTotalsResponse, error) {
	cart, err := s.buildCart(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	return ToCartTotalsResponse(cart.Totals(s.taxMode)), nil
}

// Settle turns a cart into a persisted invoice. Numbering, the invoice
// insert and the per-line stock decrements all run in one transaction, so
// either the whole sale lands or none of it does.
func (s *SettlementService) Settle(ctx context.Context, req SettleRequest, actor string) (*InvoiceResponse, error) {
	cart, err := s.buildCart(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	var settled *billing.Invoice
	for attempt := 1; attempt <= maxNumberingAttempts; attempt++ {
		invoice, err := billing.NewInvoiceFromCart(cart, req.CustomerName, req.CustomerPhone, catalog.PriceType(req.BillType), s.taxMode, actor)
		if err != nil {
			return nil, err
		}

		err = s.txScope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
			number, err := repos.InvoiceRepo().NextInvoiceNumber(ctx)
			if err != nil {
				return err
			}
			if err := invoice.AssignNumber(number); err != nil {
				return err
			}
			if err := repos.InvoiceRepo().Save(ctx, invoice); err != nil {
				return err
			}
			for _, item := range invoice.Items {
				if err := repos.ProductRepo().AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			settled = invoice
			break
		}
		if errors.Is(err, shared.ErrAlreadyExists) && attempt < maxNumberingAttempts {
			s.logger.Debug("invoice number collision, retrying",
				zap.String("number", invoice.InvoiceNumber),
				zap.Int("attempt", attempt))
			continue
		}
		return nil, err
	}
	if settled == nil {
		return nil, shared.NewDomainError("NUMBERING_CONFLICT", "Could not allocate a unique invoice number")
	}

	event := billing.NewInvoiceSettledEvent(settled)
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish invoice settled event", zap.Error(err))
	}

	return ToInvoiceResponse(settled), nil
}

// Get returns a single invoice with its line items
func (s *SettlementService) Get(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// GetByNumber returns a single invoice by its number
func (s *SettlementService) GetByNumber(ctx context.Context, number string) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// List returns all invoices newest-first with line items
func (s *SettlementService) List(ctx context.Context) ([]*InvoiceResponse, error) {
	invoices, err := s.invoiceRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponses(invoices), nil
}
