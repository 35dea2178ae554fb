package transport

import (
	"net/http"

	"toptan-katalog/internal/middleware"
	"toptan-katalog/internal/repository"
	"toptan-katalog/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ImportRequest carries raw spreadsheet rows for a catalog import.
type ImportRequest struct {
	Rows [][]string `json:"rows" validate:"required"`
}

// ProductImageRequest sets the image URL for a stock code.
type ProductImageRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
}

// CatalogHandler handles HTTP requests for catalog operations
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers catalog routes. Search is public; import and
// image management are admin-only and rate limited.
func (h *CatalogHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware, rateLimitMiddleware func(http.Handler) http.Handler) {
	r.Get("/api/products", h.Search)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)
		r.Use(rateLimitMiddleware)
		r.Post("/api/catalog/import", h.Import)
		r.Put("/api/products/{stockCode}/image", h.SetImage)
	})
}

// Search handles catalog search and filtering
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := service.SearchQuery{
		Term:          q.Get("search"),
		Category:      q.Get("category"),
		Supplier:      q.Get("supplier"),
		SortKey:       q.Get("sort"),
		TopCheapest:   q.Get("top_cheapest") == "true",
		GroupVariants: q.Get("group_variants") == "true",
	}

	// Anonymous search is allowed; the user ID only decorates telemetry.
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		query.UserID = &userID
	}

	result, err := h.catalogService.Search(r.Context(), query)
	if err != nil {
		h.logger.Error("Catalog search failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to search catalog")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// Import handles catalog replacement from spreadsheet rows
func (h *CatalogHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Import validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	summary, err := h.catalogService.Import(r.Context(), req.Rows)
	if err != nil {
		if err == repository.ErrEmptyCatalog {
			middleware.RespondWithError(w, http.StatusBadRequest, "import contains no products")
			return
		}

		h.logger.Error("Catalog import failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to import catalog")
		return
	}

	h.logger.Info("Catalog imported successfully",
		zap.Int("imported", summary.Imported),
		zap.String("currency", summary.Currency))
	middleware.RespondWithJSON(w, http.StatusOK, summary)
}

// SetImage attaches an image URL to a stock code
func (h *CatalogHandler) SetImage(w http.ResponseWriter, r *http.Request) {
	stockCode := chi.URLParam(r, "stockCode")

	var req ProductImageRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.catalogService.SetProductImage(r.Context(), stockCode, req.ImageURL); err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error("Failed to set product image", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to set product image")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "image updated"})
}
