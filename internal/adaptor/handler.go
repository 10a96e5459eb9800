package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"artdb/internal/dto/request"
	"artdb/internal/usecase"
	"artdb/pkg/apperr"
	"artdb/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	service *usecase.Service
	log     *zap.Logger
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With(zap.String("layer", "adaptor")),
	}
}

// handleServiceError maps the service error taxonomy onto HTTP statuses.
// Anything untagged is a 500 and gets logged with its full chain.
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		utils.ResponseBadRequest(w, err.Error(), nil)
	case errors.Is(err, apperr.ErrUnauthorized):
		utils.ResponseUnauthorized(w, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		utils.ResponseForbidden(w, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		utils.ResponseNotFound(w, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		utils.ResponseConflict(w, err.Error())
	default:
		h.log.Error("Unhandled service error", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// parseUUIDParam reads a UUID route parameter. A malformed value gets the
// same 404 as a well-formed ID that matches nothing.
func parseUUIDParam(w http.ResponseWriter, r *http.Request, name, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		utils.ResponseNotFound(w, resource+" not found")
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(r *http.Request) request.Pagination {
	page := request.Pagination{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), request.DefaultPage),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), request.DefaultPerPage),
	}
	page.Normalize()
	return page
}
