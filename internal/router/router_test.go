package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tanya-chat/internal/config"
	"tanya-chat/internal/handlers"
	"tanya-chat/internal/ratelimit"
)

type staticCompleter struct {
	reply string
}

func (s *staticCompleter) Complete(_ context.Context, _ string) (string, error) {
	return s.reply, nil
}

func testRouter() http.Handler {
	cfg := &config.Config{
		AllowedOrigins:       []string{"http://localhost:3000"},
		EnableRequestLogging: false,
	}
	store := ratelimit.NewMemoryStore(time.Hour)
	chat := handlers.NewChatHandler(&staticCompleter{reply: "Halo!"})
	system := handlers.NewSystemHandler("")
	return New(cfg, store, chat, system)
}

func doChat(r http.Handler, ip, prompt string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"prompt": prompt})
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = ip + ":40000"
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestChatEndpoint_Success(t *testing.T) {
	r := testRouter()

	rr := doChat(r, "10.1.0.1", "Hello")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Response  string `json:"response"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Response == "" {
		t.Error("expected non-empty response")
	}
	if _, err := time.Parse("2006-01-02T15:04:05.000Z", resp.Timestamp); err != nil {
		t.Errorf("timestamp %q is not ISO-8601: %v", resp.Timestamp, err)
	}
}

func TestChatEndpoint_EmptyPrompt(t *testing.T) {
	r := testRouter()

	rr := doChat(r, "10.1.0.2", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Error != "Prompt tidak boleh kosong." {
		t.Errorf("unexpected error message %q", resp.Error)
	}
}

func TestChatEndpoint_ChatRateLimit(t *testing.T) {
	r := testRouter()

	for i := 1; i <= ChatLimit; i++ {
		if rr := doChat(r, "10.1.0.3", "Hello"); rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected status 200, got %d", i, rr.Code)
		}
	}

	rr := doChat(r, "10.1.0.3", "Hello")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("11th request: expected status 429, got %d", rr.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Error != msgChatLimited {
		t.Errorf("unexpected rate limit message %q", resp.Error)
	}

	// A different IP is unaffected.
	if rr := doChat(r, "10.1.0.4", "Hello"); rr.Code != http.StatusOK {
		t.Errorf("other IP: expected status 200, got %d", rr.Code)
	}
}

func TestGlobalRateLimit(t *testing.T) {
	r := testRouter()

	for i := 1; i <= GlobalLimit; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.1.0.5:40000"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected status 200, got %d", i, rr.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.1.0.5:40000"
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429 after %d requests, got %d", GlobalLimit, rr.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.1.0.6:40000"
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp struct {
		Status string `json:"status"`
	}
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Status != "OK" {
		t.Errorf("expected status OK, got %q", resp.Status)
	}
}

func TestNotFound(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/nonexistent", nil)
	req.RemoteAddr = "10.1.0.7:40000"
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("404 body is not JSON: %v", err)
	}
	if resp.Error != "Endpoint tidak ditemukan" {
		t.Errorf("unexpected 404 message %q", resp.Error)
	}
}

func TestRequestsCarryRequestID(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.1.0.8:40000"
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID response header")
	}
}

func TestIndependentIdentitiesDoNotShareBuckets(t *testing.T) {
	r := testRouter()

	for i := 0; i < ChatLimit; i++ {
		doChat(r, "10.1.1.1", "Hello")
	}
	for i := 0; i < 5; i++ {
		ip := fmt.Sprintf("10.1.2.%d", i+1)
		if rr := doChat(r, ip, "Hello"); rr.Code != http.StatusOK {
			t.Errorf("ip %s: expected status 200, got %d", ip, rr.Code)
		}
	}
}
