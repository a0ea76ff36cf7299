package vpnapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"chillguy-miniapp/internal/vpnapi"

	"github.com/go-faster/errors"
)

// fakeTokens — TokenSource в памяти.
type fakeTokens struct {
	mu      sync.Mutex
	token   string
	cleared int
}

func (f *fakeTokens) Get() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeTokens) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.cleared++
	return nil
}

func TestBearerInjection(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sess-1" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer sess-1")
		}
		if r.URL.Path != "/me" {
			t.Errorf("path = %q, want /me", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":{"id":7,"name":"Тест","balance":150.5}}`))
	}))
	defer srv.Close()

	c := vpnapi.NewClient(srv.URL, 100, &fakeTokens{token: "sess-1"})
	profile, err := c.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if profile.ID != 7 || profile.Name != "Тест" || profile.Balance != 150.5 {
		t.Fatalf("Profile() = %#v", profile)
	}
}

func TestUnauthorizedClearsSession(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "expired"}
	c := vpnapi.NewClient(srv.URL, 100, tokens)

	_, err := c.Subscriptions(context.Background())
	if !errors.Is(err, vpnapi.ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}

	tokens.mu.Lock()
	defer tokens.mu.Unlock()
	if tokens.cleared != 1 {
		t.Fatalf("Clear() called %d times, want 1", tokens.cleared)
	}
	if tokens.token != "" {
		t.Fatal("token must be cleared after 401")
	}
}

func TestAPIErrorBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Недостаточно средств"}`))
	}))
	defer srv.Close()

	c := vpnapi.NewClient(srv.URL, 100, &fakeTokens{token: "sess-1"})
	_, err := c.CreatePayment(context.Background(), vpnapi.CreatePaymentRequest{Amount: 100, Method: "sbp"})

	var apiErr *vpnapi.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %v is not *APIError", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity || apiErr.Message != "Недостаточно средств" {
		t.Fatalf("APIError = %#v", apiErr)
	}
}

func TestAnonymousRequestHasNoBearer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, want empty", got)
		}
		_, _ = w.Write([]byte(`{"data":{"tariffs":[]}}`))
	}))
	defer srv.Close()

	c := vpnapi.NewClient(srv.URL, 100, &fakeTokens{})
	if _, err := c.Tariffs(context.Background()); err != nil {
		t.Fatalf("Tariffs() error: %v", err)
	}
}
