package transport

import (
	"net/http"
	"strconv"

	"toptan-katalog/internal/domain"
	"toptan-katalog/internal/middleware"
	"toptan-katalog/internal/repository"
	"toptan-katalog/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RestrictedTermRequest creates a blocklist entry.
type RestrictedTermRequest struct {
	Term        string `json:"term" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=keyword company product"`
	Description string `json:"description"`
}

// AdminHandler handles HTTP requests for the back office
type AdminHandler struct {
	adminService service.AdminService
	logger       *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService service.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

// RegisterRoutes registers all back-office routes behind auth + admin
func (h *AdminHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)

		r.Get("/dashboard", h.Dashboard)
		r.Get("/users", h.ListUsers)
		r.Get("/companies", h.ListCompanies)

		r.Route("/restricted-terms", func(r chi.Router) {
			r.Get("/", h.ListRestrictedTerms)
			r.Post("/", h.AddRestrictedTerm)
			r.Delete("/{termID}", h.RemoveRestrictedTerm)
		})

		r.Route("/searches", func(r chi.Router) {
			r.Get("/", h.ListSearches)
			r.Get("/top", h.TopSearches)
			r.Delete("/{searchID}", h.DeleteSearch)
		})
	})
}

// Dashboard returns the aggregated back-office counters
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("Failed to load dashboard", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, stats)
}

// ListUsers lists all registered users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	profiles := make([]UserProfile, len(users))
	for i, user := range users {
		profiles[i] = profileOf(user)
	}

	middleware.RespondWithJSON(w, http.StatusOK, profiles)
}

// ListCompanies aggregates registered users by company
func (h *AdminHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.adminService.ListCompanies(r.Context())
	if err != nil {
		h.logger.Error("Failed to list companies", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list companies")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, companies)
}

// ListRestrictedTerms lists all blocklist entries
func (h *AdminHandler) ListRestrictedTerms(w http.ResponseWriter, r *http.Request) {
	terms, err := h.adminService.ListRestrictedTerms(r.Context())
	if err != nil {
		h.logger.Error("Failed to list restricted terms", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list restricted terms")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, terms)
}

// AddRestrictedTerm creates a blocklist entry
func (h *AdminHandler) AddRestrictedTerm(w http.ResponseWriter, r *http.Request) {
	var req RestrictedTermRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Restricted term validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	term, err := h.adminService.AddRestrictedTerm(
		r.Context(), req.Term, domain.RestrictedTermType(req.Type), req.Description)
	if err != nil {
		switch err {
		case service.ErrBlankTerm, service.ErrInvalidTermType:
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		case repository.ErrTermAlreadyExists:
			middleware.RespondWithError(w, http.StatusConflict, "restricted term already exists")
		default:
			h.logger.Error("Failed to add restricted term", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add restricted term")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, term)
}

// RemoveRestrictedTerm deletes a blocklist entry
func (h *AdminHandler) RemoveRestrictedTerm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "termID")

	if err := h.adminService.RemoveRestrictedTerm(r.Context(), id); err != nil {
		if err == repository.ErrTermNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "restricted term not found")
			return
		}

		h.logger.Error("Failed to remove restricted term", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to remove restricted term")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "restricted term removed"})
}

// ListSearches lists recent zero-result searches
func (h *AdminHandler) ListSearches(w http.ResponseWriter, r *http.Request) {
	searches, err := h.adminService.ListUnsuccessfulSearches(r.Context(), queryLimit(r))
	if err != nil {
		h.logger.Error("Failed to list searches", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list searches")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, searches)
}

// TopSearches lists the most frequent zero-result terms
func (h *AdminHandler) TopSearches(w http.ResponseWriter, r *http.Request) {
	top, err := h.adminService.TopUnsuccessfulSearches(r.Context(), queryLimit(r))
	if err != nil {
		h.logger.Error("Failed to aggregate searches", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to aggregate searches")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, top)
}

// DeleteSearch removes one logged search
func (h *AdminHandler) DeleteSearch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "searchID")

	if err := h.adminService.DeleteUnsuccessfulSearch(r.Context(), id); err != nil {
		if err == repository.ErrSearchLogNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "search not found")
			return
		}

		h.logger.Error("Failed to delete search", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete search")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "search deleted"})
}

func queryLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		return 0
	}
	return limit
}
