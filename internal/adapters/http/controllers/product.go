package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/adapters/http/handlers"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/domain"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/dto"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/service"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/serviceerrors"
)

type ProductController struct {
	catalogService *service.CatalogService
	images         *ImageSaver
}

type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
}

func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          string(product.ID),
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price.Float64(),
		Stock:       product.Stock,
		Image:       product.Image,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func NewProductController(catalogService *service.CatalogService, images *ImageSaver) *ProductController {
	return &ProductController{catalogService: catalogService, images: images}
}

// productID validates the id path parameter; a malformed id can never
// name a stored product, so it reads as not found.
func productID(c *gin.Context) (domain.ID, error) {
	id := c.Param("id")
	if !domain.ValidateID(id) {
		return "", serviceerrors.NewNotFoundError("product not found")
	}
	return domain.ID(id), nil
}

// GetAll godoc
// @Summary     List products
// @Description Returns a page of products, optionally filtered by a search query
// @Tags        products
// @Produce     json
// @Param       q         query    string false "Search query (name or description substring)"
// @Param       page      query    int    false "1-indexed page"
// @Param       page_size query    int    false "Page size (default 12)"
// @Success     200 {object} ProductListResponse
// @Failure     503 {object} handlers.ErrorResponse
// @Router      /api/v1/products [get]
func (pc *ProductController) GetAll(c *gin.Context) {
	filter := dto.ProductFilter{Query: c.Query("q")}
	// Malformed numbers fall back to the defaults rather than erroring.
	filter.Page, _ = strconv.Atoi(c.Query("page"))
	filter.PageSize, _ = strconv.Atoi(c.Query("page_size"))

	page, err := pc.catalogService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	products := make([]ProductResponse, len(page.Products))
	for i := range page.Products {
		products[i] = NewProductResponse(&page.Products[i])
	}

	c.JSON(http.StatusOK, ProductListResponse{
		Products:   products,
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	})
}

// GetByID godoc
// @Summary     Get product by ID
// @Tags        products
// @Produce     json
// @Param       id  path     string true "Product ID"
// @Success     200 {object} ProductResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /api/v1/products/{id} [get]
func (pc *ProductController) GetByID(c *gin.Context) {
	id, err := productID(c)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	product, err := pc.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProductResponse(product))
}

// saveUploadedImage stores the optional image file and returns its
// public reference, or "" when no file was sent.
func (pc *ProductController) saveUploadedImage(c *gin.Context) (string, error) {
	if !strings.Contains(c.ContentType(), "multipart/form-data") {
		return "", nil
	}
	file, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", serviceerrors.NewInvalidRequestError(err.Error())
	}
	return pc.images.Save(c, file)
}

// CreateProduct godoc
// @Summary     Create a product
// @Description Creates a product from form fields plus an optional image upload
// @Tags        products
// @Accept      mpfd
// @Produce     json
// @Param       name  formData string true  "Product name"
// @Param       price formData number true  "Unit price"
// @Param       stock formData int    true  "Stock quantity"
// @Param       image formData file   false "Product image"
// @Success     201 {object} ProductResponse
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     503 {object} handlers.ErrorResponse
// @Router      /api/v1/products [post]
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var request dto.CreateProductRequest
	if err := c.ShouldBind(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	imageRef, err := pc.saveUploadedImage(c)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	product, err := pc.catalogService.AddProduct(c.Request.Context(), &request, imageRef)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewProductResponse(product))
}

// bindUpdateRequest builds the partial-update struct. With a multipart
// form only the posted keys become non-nil, so untouched fields stay
// untouched; JSON bodies bind the pointer fields directly.
func bindUpdateRequest(c *gin.Context) (*dto.UpdateProductRequest, error) {
	var request dto.UpdateProductRequest

	if !strings.Contains(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBindJSON(&request); err != nil {
			return nil, serviceerrors.NewInvalidRequestError(err.Error())
		}
		return &request, nil
	}

	if value, ok := c.GetPostForm("name"); ok {
		request.Name = &value
	}
	if value, ok := c.GetPostForm("description"); ok {
		request.Description = &value
	}
	if value, ok := c.GetPostForm("price"); ok {
		price, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, serviceerrors.NewInvalidRequestError("price must be a number")
		}
		request.Price = &price
	}
	if value, ok := c.GetPostForm("stock"); ok {
		stock, err := strconv.Atoi(value)
		if err != nil {
			return nil, serviceerrors.NewInvalidRequestError("stock must be an integer")
		}
		request.Stock = &stock
	}
	return &request, nil
}

// UpdateProduct godoc
// @Summary     Update a product
// @Description Merges the supplied fields; omitting the image keeps the stored one
// @Tags        products
// @Accept      mpfd
// @Produce     json
// @Param       id path string true "Product ID"
// @Success     200 {object} ProductResponse
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /api/v1/products/{id} [put]
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, err := productID(c)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	request, err := bindUpdateRequest(c)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	imageRef, err := pc.saveUploadedImage(c)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	product, err := pc.catalogService.UpdateProduct(c.Request.Context(), id, request, imageRef)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProductResponse(product))
}

// DeleteProduct godoc
// @Summary     Delete a product
// @Tags        products
// @Param       id path string true "Product ID"
// @Success     204
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /api/v1/products/{id} [delete]
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, err := productID(c)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	if err := pc.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
