package service

import (
	"context"
	"strings"
	"time"

	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/domain"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/dto"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/logger"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/port"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/serviceerrors"
)

const (
	defaultPage     = 1
	defaultPageSize = 12
)

type CatalogService struct {
	store port.SnapshotStore
}

func NewCatalogService(store port.SnapshotStore) *CatalogService {
	return &CatalogService{store: store}
}

func productMatches(p *domain.Product, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query)
}

// ListProducts filters by a case-insensitive substring of name or
// description and slices the result to the requested page. Pages past
// the end come back empty, not as an error.
func (s *CatalogService) ListProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductPage, error) {
	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	page := filter.Page
	if page < 1 {
		page = defaultPage
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	query := strings.ToLower(filter.Query)

	matched := make([]domain.Product, 0, len(snapshot.Products))
	for _, p := range snapshot.Products {
		if productMatches(&p, query) {
			matched = append(matched, p)
		}
	}

	total := len(matched)
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	// Checking against totalPages before multiplying keeps huge page
	// values from overflowing the start index.
	if page > totalPages {
		return &dto.ProductPage{
			Products:   matched[total:],
			Total:      total,
			Page:       page,
			TotalPages: totalPages,
		}, nil
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	return &dto.ProductPage{
		Products:   matched[start:end],
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id domain.ID) (*domain.Product, error) {
	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	product := snapshot.FindProduct(id)
	if product == nil {
		return nil, serviceerrors.NewNotFoundError("product not found")
	}

	clone := *product
	return &clone, nil
}

func validateProductFields(name string, price float64, stock int) []serviceerrors.FieldError {
	var fields []serviceerrors.FieldError
	if strings.TrimSpace(name) == "" {
		fields = append(fields, serviceerrors.FieldError{Field: "name", Reason: "must not be empty"})
	}
	if price <= 0 {
		fields = append(fields, serviceerrors.FieldError{Field: "price", Reason: "must be a positive number"})
	}
	if stock < 0 {
		fields = append(fields, serviceerrors.FieldError{Field: "stock", Reason: "must not be negative"})
	}
	return fields
}

func (s *CatalogService) AddProduct(ctx context.Context, request *dto.CreateProductRequest, imageRef string) (*domain.Product, error) {
	if fields := validateProductFields(request.Name, request.Price, request.Stock); len(fields) > 0 {
		return nil, serviceerrors.NewValidationError(fields)
	}

	product := domain.NewProduct(
		request.Name,
		request.Description,
		domain.NewAmountFromFloat(request.Price),
		request.Stock,
		imageRef,
	)

	err := s.store.Update(ctx, func(snapshot *domain.Snapshot) error {
		snapshot.Products = append(snapshot.Products, *product)
		return nil
	})
	if err != nil {
		logger.Error(ctx, "catalog: add product failed", err, map[string]any{
			"name": request.Name,
		})
		return nil, err
	}

	logger.Info(ctx, "Product created", map[string]any{"product_id": product.ID})
	return product, nil
}

// UpdateProduct merges the supplied fields into the stored record. An
// absent image reference keeps the stored one; an update must never
// drop an image just because none was uploaded.
func (s *CatalogService) UpdateProduct(ctx context.Context, id domain.ID, request *dto.UpdateProductRequest, imageRef string) (*domain.Product, error) {
	var fields []serviceerrors.FieldError
	if request.Name != nil && strings.TrimSpace(*request.Name) == "" {
		fields = append(fields, serviceerrors.FieldError{Field: "name", Reason: "must not be empty"})
	}
	if request.Price != nil && *request.Price <= 0 {
		fields = append(fields, serviceerrors.FieldError{Field: "price", Reason: "must be a positive number"})
	}
	if request.Stock != nil && *request.Stock < 0 {
		fields = append(fields, serviceerrors.FieldError{Field: "stock", Reason: "must not be negative"})
	}
	if len(fields) > 0 {
		return nil, serviceerrors.NewValidationError(fields)
	}

	var updated domain.Product
	err := s.store.Update(ctx, func(snapshot *domain.Snapshot) error {
		product := snapshot.FindProduct(id)
		if product == nil {
			return serviceerrors.NewNotFoundError("product not found")
		}
		if request.Name != nil {
			product.Name = *request.Name
		}
		if request.Description != nil {
			product.Description = *request.Description
		}
		if request.Price != nil {
			product.Price = domain.NewAmountFromFloat(*request.Price)
		}
		if request.Stock != nil {
			product.Stock = *request.Stock
		}
		if imageRef != "" {
			product.Image = imageRef
		}
		product.UpdatedAt = time.Now()
		updated = *product
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Product updated", map[string]any{"product_id": id})
	return &updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id domain.ID) error {
	err := s.store.Update(ctx, func(snapshot *domain.Snapshot) error {
		if !snapshot.RemoveProduct(id) {
			return serviceerrors.NewNotFoundError("product not found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "Product deleted", map[string]any{"product_id": id})
	return nil
}
