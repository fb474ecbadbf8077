package product

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"smartMarket/domain"
	"smartMarket/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint64) error
}

// CatalogSource is anything that can list the whole catalog: the postgres
// repository, the remote catalog client or the static list.
type CatalogSource interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
}

type productService struct {
	productRepo ProductRepository // nil when the catalog is not stored locally
	source      CatalogSource
	fallback    []domain.Product

	group singleflight.Group

	mu      sync.Mutex
	rnd     *rand.Rand
	shuffle func([]domain.Product)
}

// NewProductService builds the catalog service. source is the primary catalog;
// fallback is served when it fails or is empty. productRepo may be nil, in which
// case create/update/delete return domain.ErrReadOnlyCatalog.
func NewProductService(source CatalogSource, productRepo ProductRepository, fallback []domain.Product) *productService {
	s := &productService{
		productRepo: productRepo,
		source:      source,
		fallback:    fallback,
		rnd:         rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // display order only
	}
	s.shuffle = s.randomShuffle
	return s
}

func (s *productService) randomShuffle(products []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rnd.Shuffle(len(products), func(i, j int) {
		products[i], products[j] = products[j], products[i]
	})
}

// GetCatalog returns the current catalog, falling back to the built-in products when
// the primary source errors or is empty. Concurrent callers share one load.
func (s *productService) GetCatalog(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	v, err, _ := s.group.Do("catalog", func() (interface{}, error) {
		return s.loadCatalog(ctx), nil
	})
	if err != nil {
		return nil, err
	}

	products := v.([]domain.Product)
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out, nil
}

func (s *productService) loadCatalog(ctx context.Context) []domain.Product {
	if s.source != nil {
		products, err := s.source.FindAll(ctx)
		switch {
		case err != nil:
			logger.Warn("catalog source failed, using fallback products data", "error", err)
		case len(products) == 0:
			logger.Warn("catalog source returned no products, using fallback products data")
		default:
			return products
		}
	}
	return s.fallback
}

func (s *productService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	return s.GetCatalog(ctx)
}

func (s *productService) GetProductByID(ctx context.Context, id uint64) (*domain.Product, error) {
	if id == 0 {
		logger.Error("invalid product id")
		return nil, fmt.Errorf("%w: invalid product id", domain.ErrInvalidProduct)
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when get product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if s.productRepo != nil {
		product, err := s.productRepo.FindByID(ctx, id)
		if err == nil {
			return &product, nil
		}
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, err
		}
		logger.Warn("failed to find product by id, searching catalog", "id", id, "error", err)
	}

	catalog, err := s.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i], nil
		}
	}

	return nil, domain.ErrProductNotFound
}

func validateProduct(product *domain.Product) error {
	switch {
	case product.Name == "":
		return fmt.Errorf("%w: product name is required", domain.ErrInvalidProduct)
	case product.Category == "":
		return fmt.Errorf("%w: product category is required", domain.ErrInvalidProduct)
	case product.Price <= 0:
		return fmt.Errorf("%w: price must be greater than 0", domain.ErrInvalidProduct)
	case product.Stock < 0:
		return fmt.Errorf("%w: stock cannot be negative", domain.ErrInvalidProduct)
	case product.Rating < 0 || product.Rating > 5:
		return fmt.Errorf("%w: rating must be between 0 and 5", domain.ErrInvalidProduct)
	case product.Discount < 0 || product.Discount > 100:
		return fmt.Errorf("%w: discount must be between 0 and 100", domain.ErrInvalidProduct)
	}
	return nil
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if s.productRepo == nil {
		return nil, domain.ErrReadOnlyCatalog
	}

	if err := validateProduct(product); err != nil {
		logger.Error("Invalid product data", err)
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create new product", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info("product created successfully", "id", product.ID)

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if s.productRepo == nil {
		return nil, domain.ErrReadOnlyCatalog
	}

	if product.ID == 0 {
		logger.Error("Invalid product data: ID is required")
		return nil, fmt.Errorf("%w: product ID is required", domain.ErrInvalidProduct)
	}

	if err := validateProduct(product); err != nil {
		logger.Error("Invalid product data", err)
		return nil, err
	}

	if _, err := s.productRepo.FindByID(ctx, product.ID); err != nil {
		logger.Error("product not found", err)
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("failed to update product", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	updatedProduct, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		logger.Error("failed to fetch updated product", err)
		return nil, fmt.Errorf("failed to fetch updated product: %w", err)
	}

	logger.Info("product updated success", "id", product.ID)

	return &updatedProduct, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uint64) error {
	if id == 0 {
		logger.Error("Invalid product id when deleting product")
		return fmt.Errorf("%w: invalid product id", domain.ErrInvalidProduct)
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting product")
		return fmt.Errorf("context error: %w", err)
	}

	if s.productRepo == nil {
		return domain.ErrReadOnlyCatalog
	}

	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		logger.Error("product not found", err)
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete product", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	logger.Info("product deleted success", "id", id)

	return nil
}
