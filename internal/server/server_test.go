package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sundayezeilo/linkstore/internal/auth"
	"github.com/sundayezeilo/linkstore/internal/config"
	"github.com/sundayezeilo/linkstore/internal/errx"
	"github.com/sundayezeilo/linkstore/internal/httpx"
	"github.com/sundayezeilo/linkstore/internal/link"
)

// verifierFunc adapts a function to auth.Verifier.
type verifierFunc func(token string) (auth.Principal, error)

func (f verifierFunc) Verify(token string) (auth.Principal, error) { return f(token) }

// tokens maps fixed bearer tokens to principals.
var tokens = verifierFunc(func(token string) (auth.Principal, error) {
	switch token {
	case "user-1":
		return auth.Principal{ID: 1}, nil
	case "user-2":
		return auth.Principal{ID: 2}, nil
	case "admin":
		return auth.Principal{ID: 100, IsAdmin: true}, nil
	default:
		return auth.Principal{}, errx.E("test.Verify", errx.Unauthorized, errors.New("unknown token"))
	}
})

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	cfg := &config.Config{
		App: config.AppConfig{ServiceName: "linkstore-test", ServiceVersion: "test"},
	}
	handler := link.NewHandler(link.HandlerConfig{
		Service: link.NewService(link.NewMemoryRepository(), nil),
		Logger:  logger,
	})
	return New(cfg, logger, handler, tokens).Handler()
}

func request(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	rr := request(t, newTestServer(t), "GET", "/x/health", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "ok" || resp["service"] != "linkstore-test" {
		t.Errorf("response = %v", resp)
	}
	if rr.Header().Get(httpx.RequestIDHeader) == "" {
		t.Error("expected request id header on every response")
	}
}

func TestAPIRequiresToken(t *testing.T) {
	h := newTestServer(t)

	for _, tt := range []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"unknown token", "forged"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			rr := request(t, h, "GET", "/api/v1/links", tt.token, "")
			if rr.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rr.Code)
			}
		})
	}
}

func TestLinkLifecycle(t *testing.T) {
	h := newTestServer(t)

	rr := request(t, h, "POST", "/api/v1/links", "user-1", `{"original_url":"https://example.com"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rr.Code, rr.Body.String())
	}
	var created link.LinkResponse
	if err := json.NewDecoder(rr.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.OwnerID != 1 || created.ShortedURL != "aHR0cHM6Ly9leGFtcGxlLmNvbTE=" {
		t.Errorf("created = %+v", created)
	}

	path := "/api/v1/links/1"

	if rr := request(t, h, "GET", path, "user-2", ""); rr.Code != http.StatusForbidden {
		t.Errorf("other user get status = %d, want 403", rr.Code)
	}
	if rr := request(t, h, "GET", path, "admin", ""); rr.Code != http.StatusOK {
		t.Errorf("admin get status = %d, want 200", rr.Code)
	}

	rr = request(t, h, "GET", "/api/v1/links", "user-2", "")
	var list link.ListLinksResponse
	if err := json.NewDecoder(rr.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if list.Count != 0 || len(list.Data) != 0 {
		t.Errorf("user-2 list = %+v, want empty", list)
	}

	rr = request(t, h, "PATCH", path, "user-1", `{"original_url":"https://new.example.com"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rr.Code, rr.Body.String())
	}
	var updated link.LinkResponse
	if err := json.NewDecoder(rr.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if updated.OriginalURL != "https://new.example.com" || updated.ShortedURL != created.ShortedURL || updated.OwnerID != 1 {
		t.Errorf("updated = %+v", updated)
	}

	if rr := request(t, h, "DELETE", path, "user-1", ""); rr.Code != http.StatusOK {
		t.Errorf("delete status = %d, want 200", rr.Code)
	}
	if rr := request(t, h, "GET", path, "user-1", ""); rr.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rr.Code)
	}
}

func TestCORSPreflightSkipsAuth(t *testing.T) {
	rr := request(t, newTestServer(t), "OPTIONS", "/api/v1/links", "", "")
	if rr.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rr.Code)
	}
}
