package httputil

import (
	"encoding/json"
	"net/http"
	"time"

	"food-order-system/internal/errs"
	"food-order-system/internal/logger"
)

// SuccessResponse is the envelope for every successful response.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the envelope for every error response.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteJSON writes a success envelope with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// WriteError translates err through the taxonomy: business errors carry
// their message to the client, untyped errors are logged with full context
// and surface as a generic message.
func WriteError(w http.ResponseWriter, log *logger.Logger, requestID string, err error) {
	status := errs.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error("request_failed", "Unexpected error", requestID, err, nil)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Success:   false,
		Error:     errs.Message(err),
		Retryable: errs.Retryable(err),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	})
}

// WriteErrorMessage writes a plain error envelope without taxonomy lookup.
func WriteErrorMessage(w http.ResponseWriter, statusCode int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Success:   false,
		Error:     message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	})
}

// DecodeJSON decodes a request body, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return errs.Wrap(errs.InvalidInput, "invalid JSON body", err)
	}
	return nil
}
