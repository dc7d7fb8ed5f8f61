package catalog

import (
	"context"

	"github.com/breezehub/backend/internal/domain/catalog"
	"github.com/breezehub/backend/internal/domain/shared"
	"github.com/breezehub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ProductCache is a read-through cache for product lookups. Implementations
// must treat misses and backend failures alike: return ok=false and let the
// caller fall back to the repository.
type ProductCache interface {
	Get(ctx context.Context, id uuid.UUID) (*catalog.Product, bool)
	Set(ctx context.Context, product *catalog.Product)
	Invalidate(ctx context.Context, id uuid.UUID)
}

// ProductService handles catalog operations
type ProductService struct {
	productRepo catalog.ProductRepository
	cache       ProductCache
	publisher   shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
	}
}

// SetCache enables read-through caching of product lookups
func (s *ProductService) SetCache(cache ProductCache) {
	s.cache = cache
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.publisher == nil {
		return
	}
	for _, event := range product.GetDomainEvents() {
		// Publish failures are logged by the publisher; the write is already committed.
		_ = s.publisher.Publish(ctx, event)
	}
	product.ClearDomainEvents()
}

// Create creates a new product with its variants
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Description, req.Brand, catalog.Category(req.Category))
	if err != nil {
		return nil, err
	}

	if len(req.Variants) == 0 {
		return nil, shared.NewDomainError("INVALID_VARIANTS", "Product must have at least one variant")
	}
	for _, v := range req.Variants {
		price := valueobject.NewMoneyUSD(v.Price)
		if _, err := product.AddVariant(v.Size, v.Color, price, v.Stock); err != nil {
			return nil, err
		}
	}

	if len(req.Images) > 0 {
		product.SetImages(req.Images)
	}
	if len(req.Features) > 0 {
		product.SetFeatures(req.Features)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Get returns a single product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	if s.cache != nil {
		if product, ok := s.cache.Get(ctx, id); ok {
			response := ToProductResponse(product)
			return &response, nil
		}
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, product)
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List returns products matching the filter
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*ProductListResponse, error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, ToProductResponse(p))
	}

	return &ProductListResponse{
		Products: responses,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Update replaces the display fields of an existing product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.UpdateDetails(req.Name, req.Description, req.Brand, catalog.Category(req.Category)); err != nil {
		return nil, err
	}
	if req.Images != nil {
		product.SetImages(req.Images)
	}
	if req.Features != nil {
		product.SetFeatures(req.Features)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product and its variants
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}

	return nil
}
