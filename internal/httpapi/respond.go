package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"delivery-tracking/internal/order"
	"delivery-tracking/internal/places"
	"delivery-tracking/repository"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", zap.Error(err))
	}
}

// writeError maps the error taxonomy onto HTTP status codes. Unrecognized
// errors become a generic 500 so store internals never leak to clients.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrValidation):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, repository.ErrNoLocation):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "no known driver position"})
	case errors.Is(err, places.ErrResolution):
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "address could not be resolved"})
	default:
		s.log.Error("request failed", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
