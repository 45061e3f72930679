package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/notestash/notestash/internal/apperr"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// respondError maps the error taxonomy onto HTTP statuses. Anything outside
// the taxonomy becomes a generic 500: internal detail is logged, never sent.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, apperr.ErrEmailTaken):
		respondJSON(w, http.StatusConflict, map[string]string{"error": "email already registered"})
	case errors.Is(err, apperr.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	case errors.Is(err, apperr.ErrUnauthorized):
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	case errors.Is(err, apperr.ErrUnavailable):
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "service unavailable"})
	default:
		logger.Error("request failed", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validation("body", "invalid JSON")
	}
	return nil
}
