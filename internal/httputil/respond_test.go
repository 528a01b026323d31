package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"food-order-system/internal/errs"
	"food-order-system/internal/logger"
)

func TestWriteError_TypedMessagePassesThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, logger.New("httputil-test"), "req-1", errs.E(errs.NotFound, "order not found"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "order not found" {
		t.Errorf("expected message to pass through, got %q", resp.Error)
	}
	if resp.RequestID != "req-1" {
		t.Errorf("expected request id req-1, got %q", resp.RequestID)
	}
}

func TestWriteError_UntypedErrorIsGeneric(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, logger.New("httputil-test"), "req-1", errors.New("pq: relation orders does not exist"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "internal server error" {
		t.Errorf("internal detail leaked to the client: %q", resp.Error)
	}
}

func TestWriteError_RetryableFlag(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, logger.New("httputil-test"), "req-1",
		errs.E(errs.TxConflict, "cart was modified concurrently, please retry"))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Retryable {
		t.Error("expected retryable flag to be set")
	}
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"address":"x","bogus":1}`))

	var dst struct {
		Address string `json:"address"`
	}
	err := DecodeJSON(req, &dst)
	if errs.KindOf(err) != errs.InvalidInput {
		t.Fatalf("expected InvalidInput for unknown field, got %v", err)
	}
}

func TestWithLogging_AttachesRequestID(t *testing.T) {
	var seen string
	handler := WithLogging(logger.New("httputil-test"), func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if seen == "" {
		t.Error("expected a request id in the handler context")
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}
