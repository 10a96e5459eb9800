package adaptor

import (
	"net/http"

	"artdb/internal/authz"
	"artdb/internal/dto/request"
	"artdb/internal/dto/response"
	"artdb/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// ListUsers handles GET /api/v1/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := parsePagination(r)
	search := r.URL.Query().Get("search")

	users, count, err := h.service.User.List(r.Context(), search, page)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Users retrieved",
		response.NewPaginated(r.URL, page.Page, page.PerPage, count, response.ToUserResponses(users)))
}

// CreateUser handles POST /api/v1/users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	user, err := h.service.User.Create(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "User created", response.ToUserResponse(user))
}

// GetUser handles GET /api/v1/users/{username}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.User.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "User retrieved", response.ToUserResponse(user))
}

// UpdateUser handles PATCH /api/v1/users/{username}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	user, err := h.service.User.Update(r.Context(), chi.URLParam(r, "username"), req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "User updated", response.ToUserResponse(user))
}

// DeleteUser handles DELETE /api/v1/users/{username}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.service.User.Delete(r.Context(), chi.URLParam(r, "username")); err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseNoContent(w)
}

// Me handles GET /api/v1/users/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.FromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	user, err := h.service.User.Me(r.Context(), principal)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved", response.ToUserResponse(user))
}

// UpdateMe handles PATCH /api/v1/users/me
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.FromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	user, err := h.service.User.UpdateMe(r.Context(), principal, req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Profile updated", response.ToUserResponse(user))
}
