package adaptor

import (
	"net/http"

	"artdb/internal/authz"
	"artdb/internal/dto/request"
	"artdb/internal/dto/response"
	"artdb/pkg/utils"
)

// ListReviews handles GET /api/v1/titles/{title_id}/reviews
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	titleID, ok := parseUUIDParam(w, r, "title_id", "title")
	if !ok {
		return
	}

	page := parsePagination(r)
	reviews, count, err := h.service.Review.List(r.Context(), titleID, page)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Reviews retrieved",
		response.NewPaginated(r.URL, page.Page, page.PerPage, count, reviews))
}

// CreateReview handles POST /api/v1/titles/{title_id}/reviews
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.FromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID, ok := parseUUIDParam(w, r, "title_id", "title")
	if !ok {
		return
	}

	var req request.CreateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	review, err := h.service.Review.Create(r.Context(), principal, titleID, req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Review created", review)
}

// GetReview handles GET /api/v1/titles/{title_id}/reviews/{review_id}
func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := parseUUIDParam(w, r, "title_id", "title")
	if !ok {
		return
	}
	reviewID, ok := parseUUIDParam(w, r, "review_id", "review")
	if !ok {
		return
	}

	review, err := h.service.Review.Get(r.Context(), titleID, reviewID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Review retrieved", review)
}

// UpdateReview handles PATCH /api/v1/titles/{title_id}/reviews/{review_id}
func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.FromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID, ok := parseUUIDParam(w, r, "title_id", "title")
	if !ok {
		return
	}
	reviewID, ok := parseUUIDParam(w, r, "review_id", "review")
	if !ok {
		return
	}

	var req request.UpdateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	review, err := h.service.Review.Update(r.Context(), principal, titleID, reviewID, req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Review updated", review)
}

// DeleteReview handles DELETE /api/v1/titles/{title_id}/reviews/{review_id}
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.FromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID, ok := parseUUIDParam(w, r, "title_id", "title")
	if !ok {
		return
	}
	reviewID, ok := parseUUIDParam(w, r, "review_id", "review")
	if !ok {
		return
	}

	if err := h.service.Review.Delete(r.Context(), principal, titleID, reviewID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseNoContent(w)
}
