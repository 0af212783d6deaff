package authclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/frauddetect/fraud-detection/internal/transaction/core/domain"
)

func TestVerify_Success(t *testing.T) {
	var gotToken string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/verify-token" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotToken = r.URL.Query().Get("token")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"valid":true,"username":"secretary","role":"secretary"}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, time.Second, zerolog.Nop())

	id, err := client.Verify(context.Background(), "abc123|secretary")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if id.Username != "secretary" || id.Role != "secretary" {
		t.Fatalf("unexpected identity: %+v", id)
	}
	if gotToken != "abc123|secretary" {
		t.Fatalf("unexpected token on the wire: %q", gotToken)
	}
}

func TestVerify_StripsSchemePrefixes(t *testing.T) {
	var gotToken string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.URL.Query().Get("token")
		w.Write([]byte(`{"valid":true,"username":"agent","role":"agent"}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, time.Second, zerolog.Nop())

	if _, err := client.Verify(context.Background(), "Bearer Bearer abc123|agent"); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if gotToken != "abc123|agent" {
		t.Fatalf("expected bare token on the wire, got %q", gotToken)
	}
}

func TestVerify_Rejected(t *testing.T) {
	cases := []struct {
		name string
		body string
		code int
	}{
		{"invalid token", `{"valid":false}`, http.StatusOK},
		{"missing role", `{"valid":true,"username":"agent"}`, http.StatusOK},
		{"malformed body", `not json`, http.StatusOK},
		{"upstream 500", `{"valid":true,"role":"agent"}`, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.code)
				w.Write([]byte(tc.body))
			}))
			defer upstream.Close()

			client := NewClient(upstream.URL, time.Second, zerolog.Nop())

			_, err := client.Verify(context.Background(), "abc")
			if !errors.Is(err, domain.ErrAuthenticationFailed) {
				t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
			}
		})
	}
}

func TestVerify_Unreachable(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	client := NewClient(upstream.URL, time.Second, zerolog.Nop())

	_, err := client.Verify(context.Background(), "abc")
	if !errors.Is(err, domain.ErrAuthServiceUnavailable) {
		t.Fatalf("expected ErrAuthServiceUnavailable, got %v", err)
	}
}

func TestVerify_Timeout(t *testing.T) {
	release := make(chan struct{})
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		upstream.Close()
	}()

	client := NewClient(upstream.URL, 50*time.Millisecond, zerolog.Nop())

	_, err := client.Verify(context.Background(), "abc")
	if !errors.Is(err, domain.ErrAuthServiceUnavailable) {
		t.Fatalf("expected ErrAuthServiceUnavailable on timeout, got %v", err)
	}
}

func TestPing(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, time.Second, zerolog.Nop())

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}

	down := NewClient("http://127.0.0.1:0", time.Second, zerolog.Nop())
	if err := down.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping to fail against unreachable upstream")
	}
}
