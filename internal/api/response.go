package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/omara/internal/nav"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

type validationResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing"`
}

// catalogueError maps a coordinator error to a response.
func catalogueError(w http.ResponseWriter, err error) {
	var verr *nav.ValidationError
	switch {
	case errors.As(err, &verr):
		jsonResponse(w, http.StatusUnprocessableEntity, validationResponse{Error: verr.Error(), Missing: verr.Missing})
	case errors.Is(err, nav.ErrPoolExhausted),
		errors.Is(err, nav.ErrWearRowsExhausted),
		errors.Is(err, nav.ErrInvalidTransition):
		jsonError(w, http.StatusConflict, err.Error())
	case errors.Is(err, nav.ErrNotFound), errors.Is(err, nav.ErrPrecondition):
		jsonError(w, http.StatusNotFound, "not found")
	case errors.Is(err, nav.ErrNotRestored):
		jsonError(w, http.StatusServiceUnavailable, err.Error())
	default:
		slog.Error("catalogue request failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}
