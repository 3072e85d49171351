package router

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/metrics"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
	"github.com/polkiloo/storefront/internal/session"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func newEngine(facade testhelpers.StorefrontFacadeStub) *gin.Engine {
	return Setup(Params{
		Facade:   facade,
		Sessions: facade,
		Config:   &config.Config{SessionTTL: time.Hour, CookieSameSite: "lax", CORSAllowedOrigins: []string{"*"}},
		Logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Metrics:  metrics.New(),
	})
}

func TestSetupRoutes(t *testing.T) {
	facade := testhelpers.StorefrontFacadeStub{
		ResolveFn: func(_ context.Context, token string) (*session.Session, error) {
			if token == "valid" {
				return &session.Session{ID: "sid", UserID: 7}, nil
			}
			return nil, session.ErrNoSession
		},
	}
	engine := newEngine(facade)

	body, _ := json.Marshal(map[string]string{"username": "user", "password": "pass"})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for register, got %d", resp.Code)
	}
	if resp.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}

	req = httptest.NewRequest(http.MethodGet, "/orders", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for orders, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/profile", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous profile, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "valid"})
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for profile with session, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"id":7`) {
		t.Fatalf("expected profile of session user, got %s", resp.Body.String())
	}
}

func TestSetupPreflightAndMetrics(t *testing.T) {
	engine := newEngine(testhelpers.StorefrontFacadeStub{})

	req := httptest.NewRequest(http.MethodOptions, "/login", nil)
	req.Header.Set("Origin", "http://shop.local")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", resp.Code)
	}
	if resp.Header().Get("Access-Control-Allow-Origin") != "http://shop.local" {
		t.Fatalf("expected origin to be reflected")
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for healthz, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "storefront_http_requests_total") {
		t.Fatalf("expected metrics exposition, got %d", resp.Code)
	}
}

func TestSetupSessionStoreFailure(t *testing.T) {
	engine := newEngine(testhelpers.StorefrontFacadeStub{
		ResolveFn: func(context.Context, string) (*session.Session, error) {
			return nil, context.DeadlineExceeded
		},
	})

	for _, path := range []string{"/orders", "/healthz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "any"})
		resp := httptest.NewRecorder()
		engine.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected %s to be served anonymously when session store fails, got %d", path, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "any"})
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for profile when session store fails, got %d", resp.Code)
	}
}

func TestSetupMetricsGzipEncodedOnce(t *testing.T) {
	engine := newEngine(testhelpers.StorefrontFacadeStub{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	body := resp.Body.Bytes()
	if resp.Header().Get("Content-Encoding") == "gzip" {
		reader, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			t.Fatalf("gzip reader: %v", err)
		}
		body, err = io.ReadAll(reader)
		if err != nil {
			t.Fatalf("read gzip body: %v", err)
		}
	}
	if !strings.Contains(string(body), "storefront_http_requests_total") {
		n := len(body)
		if n > 16 {
			n = 16
		}
		t.Fatalf("expected exposition text after one decode, got %q", body[:n])
	}
}

func TestSetupCompressesAPIResponses(t *testing.T) {
	engine := newEngine(testhelpers.StorefrontFacadeStub{
		OrdersFn: func(context.Context) ([]model.Order, error) { return nil, nil },
	})

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip encoded orders response")
	}
	reader, err := gzip.NewReader(resp.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read gzip body: %v", err)
	}
	if strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("unexpected orders body %q", body)
	}
}

func TestSetupLoginSetsCookie(t *testing.T) {
	engine := newEngine(testhelpers.StorefrontFacadeStub{
		LoginFn: func(_ context.Context, username, _ string) (*model.User, string, error) {
			return &model.User{ID: 1, Username: username}, "signed", nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"ann","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Header().Get("Set-Cookie"), middleware.SessionCookieName+"=signed") {
		t.Fatalf("expected session cookie, got %q", resp.Header().Get("Set-Cookie"))
	}
}

var _ handlers.StorefrontFacade = testhelpers.StorefrontFacadeStub{}
var _ middleware.SessionResolver = testhelpers.StorefrontFacadeStub{}
