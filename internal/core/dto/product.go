package dto

import "github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/domain"

type CreateProductRequest struct {
	Name        string  `form:"name" json:"name"`
	Description string  `form:"description" json:"description"`
	Price       float64 `form:"price" json:"price"`
	Stock       int     `form:"stock" json:"stock"`
}

// UpdateProductRequest carries only the fields the caller supplied; a
// nil field means "leave as is", which keeps omitted fields apart from
// explicitly cleared ones.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
}

type ProductFilter struct {
	Query    string
	Page     int
	PageSize int
}

type ProductPage struct {
	Products   []domain.Product
	Total      int
	Page       int
	TotalPages int
}
