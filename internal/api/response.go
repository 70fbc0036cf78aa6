package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/erazemk/arsenal/internal/apperrors"
)

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, log *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Error("error encoding response", zap.Error(err))
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, log *zap.Logger, status int, message string) {
	jsonResponse(w, log, status, errorBody{Error: message})
}

// writeError maps a domain error onto a status code. Store failures are logged
// and reported without detail.
func writeError(w http.ResponseWriter, log *zap.Logger, r *http.Request, err error) {
	var ae *apperrors.Error
	errors.As(err, &ae)

	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		body := errorBody{Error: err.Error()}
		if ae != nil {
			body.Error = ae.Message
			body.Fields = ae.Fields
		}
		jsonResponse(w, log, http.StatusBadRequest, body)
	case apperrors.KindNotFound:
		jsonError(w, log, http.StatusNotFound, messageOf(ae, err))
	case apperrors.KindConflict:
		jsonError(w, log, http.StatusConflict, messageOf(ae, err))
	default:
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		jsonError(w, log, http.StatusInternalServerError, "internal error")
	}
}

func messageOf(ae *apperrors.Error, err error) string {
	if ae != nil {
		return ae.Message
	}
	return err.Error()
}

// decodeJSON decodes a JSON request body into the given target. Malformed
// bodies and values of the wrong type are validation errors.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return apperrors.Validation("invalid request body: %v", err)
	}
	return nil
}

func badQuery(name, value string) error {
	return apperrors.ValidationFields(fmt.Sprintf("invalid query parameter %s=%q", name, value),
		map[string]string{name: "must be a whole number"})
}
