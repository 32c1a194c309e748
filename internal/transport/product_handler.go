package transport

import (
	"net/http"

	"souq-api/internal/domain"
	"souq-api/internal/middleware"
	"souq-api/internal/repository"
	"souq-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateProductRequest represents the product creation payload. Both
// language variants are carried in one document.
type CreateProductRequest struct {
	NameEn        string  `json:"name_en" validate:"required"`
	NameAr        string  `json:"name_ar"`
	DescriptionEn string  `json:"description_en" validate:"required"`
	DescriptionAr string  `json:"description_ar"`
	CategoryEn    string  `json:"category_en" validate:"required"`
	CategoryAr    string  `json:"category_ar"`
	Price         float64 `json:"price" validate:"required,gte=0"`
	ImageURLs     string  `json:"img_urls"`
	Show          bool    `json:"show"`
}

// SubmitFeedbackRequest represents the feedback submission payload
type SubmitFeedbackRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Rating    int       `json:"rate" validate:"required,gte=1,lte=5"`
	Body      string    `json:"feedback" validate:"required"`
}

// ProductHandler handles HTTP requests for the catalog and product feedback
type ProductHandler struct {
	catalogService  service.CatalogService
	feedbackService service.FeedbackService
	adminOnlyCreate bool
	logger          *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalogService service.CatalogService, feedbackService service.FeedbackService, adminOnlyCreate bool, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalogService:  catalogService,
		feedbackService: feedbackService,
		adminOnlyCreate: adminOnlyCreate,
		logger:          logger,
	}
}

// RegisterRoutes registers catalog routes under /api/prod
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/prod", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/categories", h.ListCategories)
		r.Get("/category/{category}", h.ListByCategory)
		r.Get("/searchsort", h.SearchSort)
		r.Get("/feedbacks/{productId}", h.ListFeedback)
		r.Get("/{id}", h.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			if h.adminOnlyCreate {
				r.With(adminMiddleware).Post("/", h.CreateProduct)
			} else {
				r.Post("/", h.CreateProduct)
			}
			r.Post("/feedback", h.SubmitFeedback)
		})
	})
}

// ListProducts returns the whole catalog in the negotiated language
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLang(r.Context())

	products, err := h.catalogService.ListProducts(r.Context(), lang)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// GetProduct returns a single product by id
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid ID format")
		return
	}

	lang := middleware.GetLang(r.Context())

	product, err := h.catalogService.GetProductByID(r.Context(), id, lang)
	if err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error("Failed to get product", zap.Error(err), zap.String("product_id", id.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// ListCategories returns distinct category names with product counts
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLang(r.Context())

	categories, err := h.catalogService.ListCategories(r.Context(), lang)
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "failed to fetch categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// ListByCategory returns the products of one category. An unknown or
// empty category yields 404.
func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	lang := middleware.GetLang(r.Context())

	products, err := h.catalogService.ListByCategory(r.Context(), category, lang)
	if err != nil {
		h.logger.Error("Failed to list products by category", zap.Error(err), zap.String("category", category))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch products")
		return
	}

	if len(products) == 0 {
		middleware.RespondWithError(w, http.StatusNotFound, "no products found")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// SearchSort filters by name substring and category, then sorts. An
// empty result is reported as 404 rather than an empty list.
func (h *ProductHandler) SearchSort(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	search := query.Get("search")
	category := query.Get("category")
	sortBy := query.Get("sort_by")
	lang := middleware.GetLang(r.Context())

	products, err := h.catalogService.SearchSort(r.Context(), search, category, sortBy, lang)
	if err != nil {
		h.logger.Error("Product search failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to search products")
		return
	}

	if len(products) == 0 {
		middleware.RespondWithError(w, http.StatusNotFound, "no products found")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// CreateProduct adds a product with both language variants
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product := &domain.Product{
		ID:            uuid.New(),
		NameEn:        req.NameEn,
		NameAr:        req.NameAr,
		DescriptionEn: req.DescriptionEn,
		DescriptionAr: req.DescriptionAr,
		CategoryEn:    req.CategoryEn,
		CategoryAr:    req.CategoryAr,
		Price:         req.Price,
		ImageURLs:     req.ImageURLs,
		Show:          req.Show,
	}

	if err := h.catalogService.CreateProduct(r.Context(), product); err != nil {
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.String("product_id", product.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// SubmitFeedback records a rating and comment tied to the caller
func (h *ProductHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "access denied")
		return
	}

	var req SubmitFeedbackRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Feedback validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	feedback, err := h.feedbackService.Submit(r.Context(), userID, req.ProductID, req.Rating, req.Body)
	if err != nil {
		if err == service.ErrRatingOutOfRange {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		h.logger.Error("Failed to submit feedback", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "failed to submit feedback")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, feedback)
}

// ListFeedback returns a product's feedback newest-first with
// submitter names
func (h *ProductHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid ID format")
		return
	}

	feedbacks, err := h.feedbackService.ListForProduct(r.Context(), productID)
	if err != nil {
		h.logger.Error("Failed to list feedback", zap.Error(err), zap.String("product_id", productID.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch feedback")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, feedbacks)
}
