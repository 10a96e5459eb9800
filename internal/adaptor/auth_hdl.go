package adaptor

import (
	"net/http"

	"artdb/internal/dto/request"
	"artdb/internal/dto/response"
	"artdb/pkg/utils"
)

// Signup handles POST /api/v1/auth/signup
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	user, err := h.service.Auth.Signup(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Confirmation code sent", response.SignupResponse{
		Username: user.Username,
		Email:    user.Email,
	})
}

// Token handles POST /api/v1/auth/token
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	var req request.TokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	signed, err := h.service.Auth.IssueToken(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Token issued", response.TokenResponse{Token: signed})
}
