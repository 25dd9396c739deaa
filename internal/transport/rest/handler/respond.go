package handler

import (
	"careerai/internal/ikigai"
	"careerai/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// GenericFailure is the only detail clients see when synthesis fails
const GenericFailure = "Failed to generate response"

// maxBodyBytes bounds every JSON request body
const maxBodyBytes = 64 << 10

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeServiceError maps domain errors to HTTP responses
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var (
		validation *ikigai.ValidationError
		upstream   *service.UpstreamError
		malformed  *service.MalformedResponseError
		form       *service.FormError
	)

	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":    validation.Message,
			"category": string(validation.Category),
		})
	case errors.As(err, &upstream), errors.As(err, &malformed):
		logger.Error("summarization failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, GenericFailure)
	case errors.Is(err, service.ErrSubmissionInFlight), errors.Is(err, ikigai.ErrNotOnLastCategory):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ikigai.ErrUnknownOption),
		errors.Is(err, service.ErrInvalidChecklist),
		errors.Is(err, service.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoResult):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &form):
		writeError(w, http.StatusBadRequest, form.Message)
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "User already registered")
	default:
		logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
