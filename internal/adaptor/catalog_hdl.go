package adaptor

import (
	"net/http"

	"artdb/internal/dto/request"
	"artdb/internal/dto/response"
	"artdb/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// ListCategories handles GET /api/v1/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	page := parsePagination(r)
	search := r.URL.Query().Get("search")

	categories, count, err := h.service.Catalog.ListCategories(r.Context(), search, page)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Categories retrieved",
		response.NewPaginated(r.URL, page.Page, page.PerPage, count, response.ToCategoryResponses(categories)))
}

// CreateCategory handles POST /api/v1/categories
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	category, err := h.service.Catalog.CreateCategory(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Category created", response.ToCategoryResponse(category))
}

// DeleteCategory handles DELETE /api/v1/categories/{slug}
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Catalog.DeleteCategory(r.Context(), chi.URLParam(r, "slug")); err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseNoContent(w)
}

// ListGenres handles GET /api/v1/genres
func (h *Handler) ListGenres(w http.ResponseWriter, r *http.Request) {
	page := parsePagination(r)
	search := r.URL.Query().Get("search")

	genres, count, err := h.service.Catalog.ListGenres(r.Context(), search, page)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Genres retrieved",
		response.NewPaginated(r.URL, page.Page, page.PerPage, count, response.ToGenreResponses(genres)))
}

// CreateGenre handles POST /api/v1/genres
func (h *Handler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGenreRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	genre, err := h.service.Catalog.CreateGenre(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Genre created", response.ToGenreResponse(genre))
}

// DeleteGenre handles DELETE /api/v1/genres/{slug}
func (h *Handler) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Catalog.DeleteGenre(r.Context(), chi.URLParam(r, "slug")); err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseNoContent(w)
}
