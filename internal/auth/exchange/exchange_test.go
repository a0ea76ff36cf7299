package exchange_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"chillguy-miniapp/internal/auth/exchange"

	"github.com/go-faster/errors"
)

func TestExchangeURLTokenSuccess(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/auth/telegram" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if payload["token"] != "one-time" {
			t.Errorf("token payload = %q, want %q", payload["token"], "one-time")
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "sess-1"})
	}))
	defer srv.Close()

	got, err := exchange.NewClient(srv.URL).ExchangeURLToken(context.Background(), "one-time")
	if err != nil {
		t.Fatalf("ExchangeURLToken() error: %v", err)
	}
	if got != "sess-1" {
		t.Fatalf("ExchangeURLToken() = %q, want %q", got, "sess-1")
	}
	if calls.Load() != 1 {
		t.Fatalf("server got %d calls, want 1", calls.Load())
	}
}

func TestExchangeURLTokenNoRetryOnTransient(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := exchange.NewClient(srv.URL).ExchangeURLToken(context.Background(), "one-time")
	if err == nil {
		t.Fatal("expected error on 500")
	}
	// Одноразовый токен не ретраится даже на временном сбое.
	if calls.Load() != 1 {
		t.Fatalf("server got %d calls, want 1", calls.Load())
	}
}

func TestExchangeInitDataRetriesTransient(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/telegram-webapp" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "sess-2"})
	}))
	defer srv.Close()

	got, err := exchange.NewClient(srv.URL).ExchangeInitData(context.Background(), "query_id=abc")
	if err != nil {
		t.Fatalf("ExchangeInitData() error: %v", err)
	}
	if got != "sess-2" {
		t.Fatalf("ExchangeInitData() = %q, want %q", got, "sess-2")
	}
	if calls.Load() != 3 {
		t.Fatalf("server got %d calls, want 3", calls.Load())
	}
}

func TestExchangeInitDataStopsOnRejection(t *testing.T) {
	t.Parallel()

	const reason = "Аккаунт заблокирован до 01.09.2026."

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"reason": reason})
	}))
	defer srv.Close()

	_, err := exchange.NewClient(srv.URL).ExchangeInitData(context.Background(), "query_id=abc")

	var ae *exchange.AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("error %v is not *AuthError", err)
	}
	if ae.Kind != exchange.KindForbidden {
		t.Fatalf("Kind = %d, want KindForbidden", ae.Kind)
	}
	// Причина бэкенда показывается дословно.
	if ae.UserMessage() != reason {
		t.Fatalf("UserMessage() = %q, want %q", ae.UserMessage(), reason)
	}
	// Явный отказ прерывает серию немедленно.
	if calls.Load() != 1 {
		t.Fatalf("server got %d calls, want 1", calls.Load())
	}
}

func TestExchangeInitDataExhaustionKeepsLastError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := exchange.NewClient(srv.URL).ExchangeInitData(context.Background(), "query_id=abc")

	var ae *exchange.AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("error %v is not *AuthError", err)
	}
	if ae.Kind != exchange.KindGeneric {
		t.Fatalf("Kind = %d, want KindGeneric", ae.Kind)
	}
	if calls.Load() != 3 {
		t.Fatalf("server got %d calls, want 3", calls.Load())
	}
}

func TestClassification(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		status   int
		wantKind exchange.Kind
		wantMsg  string
	}{
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			wantKind: exchange.KindUnauthorized,
			wantMsg:  "Неверные данные авторизации. Попробуйте перезапустить приложение.",
		},
		{
			name:     "notFound",
			status:   http.StatusNotFound,
			wantKind: exchange.KindNotFound,
			wantMsg:  "Пользователь не найден.",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			_, err := exchange.NewClient(srv.URL).ExchangeURLToken(context.Background(), "tok")

			var ae *exchange.AuthError
			if !errors.As(err, &ae) {
				t.Fatalf("error %v is not *AuthError", err)
			}
			if ae.Kind != tc.wantKind {
				t.Fatalf("Kind = %d, want %d", ae.Kind, tc.wantKind)
			}
			if ae.UserMessage() != tc.wantMsg {
				t.Fatalf("UserMessage() = %q, want %q", ae.UserMessage(), tc.wantMsg)
			}
		})
	}
}
