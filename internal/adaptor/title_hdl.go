package adaptor

import (
	"net/http"
	"strconv"

	"artdb/internal/dto/request"
	"artdb/internal/dto/response"
	"artdb/pkg/utils"
)

// ListTitles handles GET /api/v1/titles
func (h *Handler) ListTitles(w http.ResponseWriter, r *http.Request) {
	page := parsePagination(r)
	query := r.URL.Query()

	filter := request.TitleFilterRequest{
		Category: query.Get("category"),
		Genre:    query.Get("genre"),
		Name:     query.Get("name"),
	}
	if raw := query.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid year filter", nil)
			return
		}
		filter.Year = &year
	}

	titles, count, err := h.service.Title.List(r.Context(), filter, page)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Titles retrieved",
		response.NewPaginated(r.URL, page.Page, page.PerPage, count, titles))
}

// CreateTitle handles POST /api/v1/titles
func (h *Handler) CreateTitle(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTitleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	title, err := h.service.Title.Create(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Title created", title)
}

// GetTitle handles GET /api/v1/titles/{title_id}
func (h *Handler) GetTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "title_id", "title")
	if !ok {
		return
	}

	title, err := h.service.Title.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Title retrieved", title)
}

// UpdateTitle handles PATCH /api/v1/titles/{title_id}
func (h *Handler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "title_id", "title")
	if !ok {
		return
	}

	var req request.UpdateTitleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	title, err := h.service.Title.Update(r.Context(), id, req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Title updated", title)
}

// DeleteTitle handles DELETE /api/v1/titles/{title_id}
func (h *Handler) DeleteTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "title_id", "title")
	if !ok {
		return
	}

	if err := h.service.Title.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseNoContent(w)
}
