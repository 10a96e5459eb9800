package adaptor

import (
	"net/http"

	"artdb/internal/authz"
	"artdb/internal/dto/request"
	"artdb/internal/dto/response"
	"artdb/pkg/utils"

	"github.com/google/uuid"
)

func (h *Handler) commentPath(w http.ResponseWriter, r *http.Request) (titleID, reviewID uuid.UUID, ok bool) {
	titleID, ok = parseUUIDParam(w, r, "title_id", "title")
	if !ok {
		return
	}
	reviewID, ok = parseUUIDParam(w, r, "review_id", "review")
	return
}

// ListComments handles GET /api/v1/titles/{title_id}/reviews/{review_id}/comments
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := h.commentPath(w, r)
	if !ok {
		return
	}

	page := parsePagination(r)
	comments, count, err := h.service.Comment.List(r.Context(), titleID, reviewID, page)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Comments retrieved",
		response.NewPaginated(r.URL, page.Page, page.PerPage, count, comments))
}

// CreateComment handles POST /api/v1/titles/{title_id}/reviews/{review_id}/comments
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.FromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID, reviewID, ok := h.commentPath(w, r)
	if !ok {
		return
	}

	var req request.CreateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	comment, err := h.service.Comment.Create(r.Context(), principal, titleID, reviewID, req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Comment created", comment)
}

// GetComment handles GET /api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}
func (h *Handler) GetComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := h.commentPath(w, r)
	if !ok {
		return
	}
	commentID, ok := parseUUIDParam(w, r, "comment_id", "comment")
	if !ok {
		return
	}

	comment, err := h.service.Comment.Get(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Comment retrieved", comment)
}

// UpdateComment handles PATCH /api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}
func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.FromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID, reviewID, ok := h.commentPath(w, r)
	if !ok {
		return
	}
	commentID, ok := parseUUIDParam(w, r, "comment_id", "comment")
	if !ok {
		return
	}

	var req request.UpdateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	comment, err := h.service.Comment.Update(r.Context(), principal, titleID, reviewID, commentID, req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Comment updated", comment)
}

// DeleteComment handles DELETE /api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.FromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID, reviewID, ok := h.commentPath(w, r)
	if !ok {
		return
	}
	commentID, ok := parseUUIDParam(w, r, "comment_id", "comment")
	if !ok {
		return
	}

	if err := h.service.Comment.Delete(r.Context(), principal, titleID, reviewID, commentID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseNoContent(w)
}
