package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lumen-hq/hermes/pkg/proxy/types"
)

func TestHealthHandler(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	now := start
	handler := NewHealthHandlerWithClock(func() time.Time { return now })
	now = start.Add(90 * time.Second)

	r := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp types.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Status != "OK" {
		t.Errorf("Expected status OK, got %q", resp.Status)
	}
	if resp.Uptime != 90 {
		t.Errorf("Expected uptime 90, got %v", resp.Uptime)
	}

	ts, err := time.Parse(time.RFC3339, resp.Timestamp)
	if err != nil {
		t.Fatalf("Timestamp %q is not RFC3339: %v", resp.Timestamp, err)
	}
	if !ts.Equal(now) {
		t.Errorf("Expected timestamp %v, got %v", now, ts)
	}
}

func TestHealthHandler_RealClock(t *testing.T) {
	handler := NewHealthHandler()

	r := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	var resp types.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Uptime < 0 {
		t.Errorf("Uptime should be non-negative, got %v", resp.Uptime)
	}
}

func TestHealthHandler_WrongMethod(t *testing.T) {
	handler := NewHealthHandler()

	r := httptest.NewRequest(http.MethodPost, "/api/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for wrong method, got %d", w.Code)
	}
	if got := decodeError(t, w); got != types.MsgNotFound {
		t.Errorf("Expected %q, got %q", types.MsgNotFound, got)
	}
}
