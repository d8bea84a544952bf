package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/DukeRupert/pagenav/internal/domain"
	"github.com/DukeRupert/pagenav/internal/paginator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// =============================================================================
// Error Response Tests
// =============================================================================

func TestErrorCodeToHTTPStatus(t *testing.T) {
	tests := map[string]int{
		domain.EINVALID:  http.StatusBadRequest,
		domain.ENOTFOUND: http.StatusNotFound,
		domain.EINTERNAL: http.StatusInternalServerError,
		"unknown":        http.StatusInternalServerError,
	}
	for code, want := range tests {
		if got := ErrorCodeToHTTPStatus(code); got != want {
			t.Errorf("ErrorCodeToHTTPStatus(%q) = %d, want %d", code, got, want)
		}
	}
}

func TestErrorResponse_InvalidConfigurationIsBadRequest(t *testing.T) {
	p, err := paginator.New([]int{1, 2, 3}, 10, 1, "?page=(:num)")
	if err != nil {
		t.Fatal(err)
	}
	setErr := p.SetMaxPagesToShow(1)

	req := httptest.NewRequest("GET", "/api/pages", nil)
	rec := httptest.NewRecorder()
	ErrorResponse(rec, req, testLogger(), setErr)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body JSONError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Error.Code != domain.EINVALID {
		t.Errorf("expected code %q, got %q", domain.EINVALID, body.Error.Code)
	}
	if strings.Contains(body.Error.Message, "paginator.Set") {
		t.Errorf("message exposes operation name: %s", body.Error.Message)
	}
}

func TestErrorResponse_InternalErrorHidesDetails(t *testing.T) {
	dbErr := fmt.Errorf("pq: relation \"items\" does not exist")
	internalErr := domain.Internal(dbErr, "PostgresStorage.Items", "query failed")

	for _, accept := range []string{"text/html", "application/json"} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Accept", accept)
		rec := httptest.NewRecorder()

		ErrorResponse(rec, req, testLogger(), internalErr)

		body := rec.Body.String()
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("%s: expected 500, got %d", accept, rec.Code)
		}
		if strings.Contains(body, "relation") || strings.Contains(body, "PostgresStorage") {
			t.Errorf("%s: response exposes internals: %s", accept, body)
		}
		if !strings.Contains(body, "internal error") {
			t.Errorf("%s: expected generic message, got: %s", accept, body)
		}
	}
}

func TestErrorResponse_UnwrappedErrorReturnsGeneric(t *testing.T) {
	rawErr := fmt.Errorf("FATAL: password authentication failed for user \"postgres\"")

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	ErrorResponse(rec, req, testLogger(), rawErr)

	body := rec.Body.String()
	if strings.Contains(body, "FATAL") || strings.Contains(body, "postgres") {
		t.Errorf("response exposes raw error: %s", body)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestNotFoundResponse(t *testing.T) {
	req := httptest.NewRequest("GET", "/nope", nil)
	rec := httptest.NewRecorder()
	NotFoundResponse(rec, req, testLogger())

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("expected plain text for HTML routes, got %q", ct)
	}
}

func TestAcceptsJSON(t *testing.T) {
	tests := []struct {
		path   string
		accept string
		want   bool
	}{
		{"/", "text/html", false},
		{"/", "application/json", true},
		{"/api/pages", "", true},
		{"/health", "*/*", false},
	}
	for _, tc := range tests {
		req := httptest.NewRequest("GET", tc.path, nil)
		if tc.accept != "" {
			req.Header.Set("Accept", tc.accept)
		}
		if got := acceptsJSON(req); got != tc.want {
			t.Errorf("acceptsJSON(%s, %q) = %v, want %v", tc.path, tc.accept, got, tc.want)
		}
	}
}
