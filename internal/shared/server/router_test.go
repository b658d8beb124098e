package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"cvscore-backend/internal/shared/config"
	"cvscore-backend/internal/shared/server/middleware"
)

func testRouter(rules map[string]middleware.RateLimitRule) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(RouterDeps{
		Config:     config.Config{Env: "test", CORSAllowOrigin: []string{"http://localhost:3000"}, JWTSecret: "secret"},
		RateLimits: rules,
	})
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	router := testRouter(nil)
	for _, path := range []string{"/api/v1/health", "/metrics"} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.Code)
		}
	}
}

func TestMeReportsGuest(t *testing.T) {
	router := testRouter(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("X-Guest-Id", "abc")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	if body["userId"] != "guest:abc" || body["isGuest"] != true {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestRouterAppliesRateLimit(t *testing.T) {
	router := testRouter(map[string]middleware.RateLimitRule{
		middleware.RateGroupDefault: {Rate: 0.001, Burst: 1},
	})
	call := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
		req.Header.Set("X-Guest-Id", "limited")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}
	if resp := call(); resp.Code != http.StatusOK {
		t.Fatalf("first call: expected 200, got %d", resp.Code)
	}
	resp := call()
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("second call: expected 429, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "rate_limited") {
		t.Fatalf("expected rate_limited envelope, got %s", resp.Body.String())
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
