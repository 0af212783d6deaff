package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/frauddetect/fraud-detection/internal/auth/api/handler"
	"github.com/frauddetect/fraud-detection/internal/auth/core/service"
	"github.com/frauddetect/fraud-detection/internal/auth/infrastructure/store"
)

type testAuthServer struct {
	e          *echo.Echo
	tokenStore *store.MemoryTokenStore
}

func newTestAuthServer(t *testing.T) *testAuthServer {
	t.Helper()

	tokenStore := store.NewMemoryTokenStore(zerolog.Nop())
	users := store.NewMemoryUserStore()

	authService := service.NewAuthService(users, zerolog.Nop())
	if err := authService.Seed(context.Background(), service.DefaultUsers); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	tokenService := service.NewTokenService(tokenStore, 30*time.Minute, zerolog.Nop())

	e := NewRouter(Deps{
		Auth:      authService,
		Tokens:    tokenService,
		Readiness: map[string]handler.Pinger{},
		Metrics:   prometheus.NewRegistry(),
		Log:       zerolog.Nop(),
	})

	return &testAuthServer{e: e, tokenStore: tokenStore}
}

func (s *testAuthServer) do(method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testAuthServer) login(t *testing.T, username, password string) string {
	t.Helper()

	rec := s.do(http.MethodPost, "/login", `{"username":"`+username+`","password":"`+password+`"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected token in login response")
	}
	return resp.Token
}

type verifyBody struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Error    string `json:"error"`
}

func decodeVerify(t *testing.T, rec *httptest.ResponseRecorder) verifyBody {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("verify-token must always answer 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body verifyBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode verify response: %v", err)
	}
	return body
}

func TestLoginAndVerify(t *testing.T) {
	s := newTestAuthServer(t)

	token := s.login(t, "admin", "admin123")

	body := decodeVerify(t, s.do(http.MethodGet, "/verify-token?token="+token, "", ""))
	if !body.Valid || body.Role != "admin" || body.Username != "admin" {
		t.Fatalf("unexpected verify result: %+v", body)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	s := newTestAuthServer(t)

	rec := s.do(http.MethodPost, "/login", `{"username":"admin","password":"wrong"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = s.do(http.MethodPost, "/login", `{"username":"admin"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d", rec.Code)
	}
}

func TestVerifyNoToken(t *testing.T) {
	s := newTestAuthServer(t)

	body := decodeVerify(t, s.do(http.MethodGet, "/verify-token", "", ""))
	if body.Valid {
		t.Fatalf("expected invalid result")
	}
	if body.Error != "No token provided" {
		t.Fatalf("unexpected error message: %q", body.Error)
	}
}

func TestVerifyGarbageToken(t *testing.T) {
	s := newTestAuthServer(t)

	body := decodeVerify(t, s.do(http.MethodGet, "/verify-token?token=abc123%7Cagent", "", ""))
	if body.Valid {
		t.Fatalf("expected invalid result for unknown token")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	s := newTestAuthServer(t)

	token := s.login(t, "admin", "admin123")

	// Advance the registry clock past the TTL: the token must read as
	// invalid, and stay invalid.
	s.tokenStore.SetClock(func() time.Time { return time.Now().Add(31 * time.Minute) })

	for i := 0; i < 2; i++ {
		body := decodeVerify(t, s.do(http.MethodGet, "/verify-token?token="+token, "", ""))
		if body.Valid {
			t.Fatalf("expected expired token to verify as invalid (attempt %d)", i+1)
		}
	}
}

func TestVerifyDoublePrefixedHeader(t *testing.T) {
	s := newTestAuthServer(t)

	token := s.login(t, "agent", "agent123")

	// The raw Authorization header value lands in the token parameter
	// position; repeated scheme prefixes must be absorbed.
	req := httptest.NewRequest(http.MethodGet, "/verify-token", nil)
	req.Header.Set("Authorization", "Bearer Bearer "+token)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	body := decodeVerify(t, rec)
	if !body.Valid || body.Role != "agent" {
		t.Fatalf("unexpected verify result: %+v", body)
	}
}

func TestUsersMe(t *testing.T) {
	s := newTestAuthServer(t)

	token := s.login(t, "secretary", "secretary123")

	rec := s.do(http.MethodGet, "/users/me", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Username != "secretary" || body.Role != "secretary" {
		t.Fatalf("unexpected identity: %+v", body)
	}

	if rec := s.do(http.MethodGet, "/users/me", "", "bogus"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bogus token, got %d", rec.Code)
	}
}

func TestUserManagement(t *testing.T) {
	s := newTestAuthServer(t)

	adminToken := s.login(t, "admin", "admin123")
	agentToken := s.login(t, "agent", "agent123")

	// Only admins may manage users.
	rec := s.do(http.MethodPost, "/users", `{"username":"carol","password":"pw","role":"agent"}`, agentToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}
	rec = s.do(http.MethodPost, "/users", `{"username":"carol","password":"pw","role":"agent"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = s.do(http.MethodPost, "/users", `{"username":"carol","password":"pw","role":"agent"}`, adminToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = s.do(http.MethodPost, "/users", `{"username":"carol","password":"pw","role":"agent"}`, adminToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate, got %d", rec.Code)
	}
	rec = s.do(http.MethodPost, "/users", `{"username":"dave","password":"pw","role":"superuser"}`, adminToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", rec.Code)
	}

	// The new account can log in right away.
	s.login(t, "carol", "pw")

	rec = s.do(http.MethodDelete, "/users/carol", "", adminToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = s.do(http.MethodDelete, "/users/carol", "", adminToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing user, got %d", rec.Code)
	}
}
