package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/smartbill/backend/internal/domain/catalog"
	"github.com/smartbill/backend/internal/domain/shared"
)

// ProductService handles catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	eventBus    shared.EventPublisher
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	existing, err := s.productRepo.FindBySKU(ctx, strings.TrimSpace(req.SKU))
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	product, err := catalog.NewProduct(req.Name, req.SKU, req.Category, catalog.Unit(req.Unit))
	if err != nil {
		return nil, err
	}

	purchase := decimal.Zero
	selling := decimal.Zero
	wholesale := decimal.Zero
	if req.PurchasePrice != nil {
		purchase = *req.PurchasePrice
	}
	if req.SellingPrice != nil {
		selling = *req.SellingPrice
	}
	if req.WholesalePrice != nil {
		wholesale = *req.WholesalePrice
	}
	if err := product.SetPrices(purchase, selling, wholesale); err != nil {
		return nil, err
	}
	if req.GSTPercent != nil {
		if err := product.SetGSTPercent(*req.GSTPercent); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}
	if req.LowStockThreshold != nil {
		if err := product.SetLowStockThreshold(*req.LowStockThreshold); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)
	return ToProductResponse(product), nil
}

// Update applies partial changes to a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := product.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Category != nil {
		product.SetCategory(*req.Category)
	}
	if req.Unit != nil {
		if err := product.SetUnit(catalog.Unit(*req.Unit)); err != nil {
			return nil, err
		}
	}
	if req.PurchasePrice != nil || req.SellingPrice != nil || req.WholesalePrice != nil {
		purchase := product.PurchasePrice
		selling := product.SellingPrice
		wholesale := product.WholesalePrice
		if req.PurchasePrice != nil {
			purchase = *req.PurchasePrice
		}
		if req.SellingPrice != nil {
			selling = *req.SellingPrice
		}
		if req.WholesalePrice != nil {
			wholesale = *req.WholesalePrice
		}
		if err := product.SetPrices(purchase, selling, wholesale); err != nil {
			return nil, err
		}
	}
	if req.GSTPercent != nil {
		if err := product.SetGSTPercent(*req.GSTPercent); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
		product.AddDomainEvent(catalog.NewProductStockAdjustedEvent(product))
	}
	if req.LowStockThreshold != nil {
		if err := product.SetLowStockThreshold(*req.LowStockThreshold); err != nil {
			return nil, err
		}
	}

	product.AddDomainEvent(catalog.NewProductUpdatedEvent(product))
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)
	return ToProductResponse(product), nil
}

// Delete removes a product from the catalog. Settled invoices keep their
// denormalized copy of the product, so history stays intact.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	product.AddDomainEvent(catalog.NewProductDeletedEvent(product))
	s.publishEvents(ctx, product)
	return nil
}

// Get returns a single product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetBySKU returns a single product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List returns products, optionally filtered by a search term over
// name/SKU/category or by an exact category.
func (s *ProductService) List(ctx context.Context, search, category string) ([]*ProductResponse, error) {
	var (
		products []*catalog.Product
		err      error
	)
	switch {
	case strings.TrimSpace(search) != "":
		products, err = s.productRepo.Search(ctx, strings.TrimSpace(search))
	case strings.TrimSpace(category) != "":
		products, err = s.productRepo.FindByCategory(ctx, strings.TrimSpace(category))
	default:
		products, err = s.productRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// ListLowStock returns products at or below their low stock threshold
func (s *ProductService) ListLowStock(ctx context.Context) ([]*ProductResponse, error) {
	products, err := s.productRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	events := product.GetDomainEvents()
	product.ClearDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish product events", zap.Error(err))
	}
}
