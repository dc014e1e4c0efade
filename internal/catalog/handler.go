package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shelfwise/shelfwise/internal/domain"
	"github.com/shelfwise/shelfwise/internal/pkg/httputil"
)

// Pagination constants.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Handler handles HTTP requests for the catalog module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new catalog handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers product routes available to any authenticated role.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.CreateProduct)
		r.Get("/{id}", h.GetProduct)
		r.Put("/{id}", h.UpdateProduct)
	})
}

// RegisterManagerRoutes registers product routes that require the manager role.
func (h *Handler) RegisterManagerRoutes(r chi.Router) {
	r.Delete("/products/{id}", h.DeleteProduct)
}

// CreateProductRequest represents the request body for creating a product.
type CreateProductRequest struct {
	Name             string   `json:"name" validate:"required,min=1,max=255"`
	Category         string   `json:"category" validate:"max=100"`
	Description      string   `json:"description"`
	Price            float64  `json:"price" validate:"required,gte=0"`
	ImageURL         string   `json:"image_url" validate:"omitempty,max=500"`
	ThumbnailURL     string   `json:"thumbnail_url" validate:"omitempty,max=500"`
	Tags             []string `json:"tags"`
	Discount         float64  `json:"discount" validate:"gte=0,lte=100"`
	DiscountCategory string   `json:"discount_category" validate:"max=100"`
	Status           string   `json:"status" validate:"omitempty,oneof=published draft"`
}

// ToDomain converts the request to a domain model.
func (r *CreateProductRequest) ToDomain() *domain.Product {
	return &domain.Product{
		Name:             r.Name,
		Category:         r.Category,
		Description:      r.Description,
		Price:            r.Price,
		ImageURL:         r.ImageURL,
		ThumbnailURL:     r.ThumbnailURL,
		Tags:             r.Tags,
		Discount:         r.Discount,
		DiscountCategory: r.DiscountCategory,
		Status:           domain.ProductStatus(r.Status),
	}
}

// UpdateProductRequest represents the request body for updating a product.
type UpdateProductRequest struct {
	Name             string   `json:"name" validate:"required,min=1,max=255"`
	Category         string   `json:"category" validate:"max=100"`
	Description      string   `json:"description"`
	Price            float64  `json:"price" validate:"required,gte=0"`
	ImageURL         string   `json:"image_url" validate:"omitempty,max=500"`
	ThumbnailURL     string   `json:"thumbnail_url" validate:"omitempty,max=500"`
	Tags             []string `json:"tags"`
	Discount         float64  `json:"discount" validate:"gte=0,lte=100"`
	DiscountCategory string   `json:"discount_category" validate:"max=100"`
	Status           string   `json:"status" validate:"required,oneof=published draft"`
}

// ListProductsResponse is the paginated listing envelope.
type ListProductsResponse struct {
	Products   []domain.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

// Pagination describes the page window of a listing response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ListProducts handles GET /products with pagination, search and filters.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := parsePositiveInt(q.Get("page"), 1)
	limit := parsePositiveInt(q.Get("limit"), DefaultPageSize)
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	filter := ProductFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	if statusParam := q.Get("status"); statusParam != "" {
		status := domain.ProductStatus(statusParam)
		if !status.IsValid() {
			httputil.Error(w, http.StatusBadRequest, "invalid status filter")
			return
		}
		filter.Status = &status
	}

	products, total, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		h.handleServiceError(r, w, err)
		return
	}

	if products == nil {
		products = make([]domain.Product, 0)
	}

	pages := (total + limit - 1) / limit

	httputil.Success(w, http.StatusOK, ListProductsResponse{
		Products: products,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	})
}

// GetProduct handles GET /products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		h.handleServiceError(r, w, err)
		return
	}

	httputil.Success(w, http.StatusOK, product)
}

// CreateProduct handles POST /products.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	product := req.ToDomain()
	if err := h.service.CreateProduct(r.Context(), product); err != nil {
		h.handleServiceError(r, w, err)
		return
	}

	httputil.Success(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /products/{id}.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		h.handleServiceError(r, w, err)
		return
	}

	product.Name = req.Name
	product.Category = req.Category
	product.Description = req.Description
	product.Price = req.Price
	product.ImageURL = req.ImageURL
	product.ThumbnailURL = req.ThumbnailURL
	product.Discount = req.Discount
	product.DiscountCategory = req.DiscountCategory
	product.Status = domain.ProductStatus(req.Status)
	if req.Tags != nil {
		product.Tags = req.Tags
	}

	if err := h.service.UpdateProduct(r.Context(), product); err != nil {
		h.handleServiceError(r, w, err)
		return
	}

	httputil.Success(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/{id}.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		h.handleServiceError(r, w, err)
		return
	}

	httputil.Success(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (h *Handler) handleServiceError(r *http.Request, w http.ResponseWriter, err error) {
	httputil.HandleError(r.Context(), w, err, []httputil.ErrorMapping{
		{Error: ErrProductNotFound, Status: http.StatusNotFound},
		{Error: ErrInvalidStatus, Status: http.StatusBadRequest},
	})
}

func parsePositiveInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
