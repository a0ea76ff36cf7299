package web_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chillguy-miniapp/internal/auth/controller"
	"chillguy-miniapp/internal/auth/exchange"
	"chillguy-miniapp/internal/auth/session"
	"chillguy-miniapp/internal/vpnapi"
	"chillguy-miniapp/internal/web"
)

// newTestServer собирает Server поверх временного хранилища сессии и
// тестового бэкенда (может быть пустым адресом, если бэкенд не нужен).
func newTestServer(t *testing.T, backendURL string) (*web.Server, *session.Store) {
	t.Helper()

	sess, err := session.Open(filepath.Join(t.TempDir(), "state.bbolt"))
	if err != nil {
		t.Fatalf("session.Open() error: %v", err)
	}
	t.Cleanup(func() { _ = sess.Close() })

	auth := controller.New(sess, exchange.NewClient(backendURL))
	t.Cleanup(auth.Stop)
	api := vpnapi.NewClient(backendURL, 100, sess)

	return web.NewServer("127.0.0.1:0", "https://t.me/chillguy_vpn_bot", sess, api, auth), sess
}

// postForm отправляет форму в обработчик и возвращает рекордер ответа.
func postForm(s *web.Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestGuardRedirectsUnauthenticated(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, "")

	paths := []string{"/", "/subscriptions", "/subscriptions/7", "/referrals", "/top-up"}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("GET %s: status = %d, want %d", path, rec.Code, http.StatusSeeOther)
		}
		// Целевой маршрут отбрасывается: редирект всегда на чистый /auth.
		if loc := rec.Header().Get("Location"); loc != "/auth" {
			t.Fatalf("GET %s: Location = %q, want /auth", path, loc)
		}
	}
}

func TestGuardPassesAuthenticated(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"id":1,"name":"Тест"}}`))
	}))
	defer backend.Close()

	s, sess := newTestServer(t, backend.URL)
	if err := sess.Set("sess-1"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestAuthPageIsPublic(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/auth?token=one-time", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestAuthPageRedirectsWhenAuthenticated(t *testing.T) {
	t.Parallel()

	s, sess := newTestServer(t, "")
	if err := sess.Set("sess-1"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("Location = %q, want /", loc)
	}
}

// Внутри Telegram с пустым initData старт завершается фатальной ошибкой,
// без попыток обмена.
func TestAuthStartInsideWithoutInitData(t *testing.T) {
	t.Parallel()

	s, sess := newTestServer(t, "")

	rec := postForm(s, "/auth/start", url.Values{
		"inside":  {"1"},
		"tg_data": {""},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Не удалось получить данные авторизации от Telegram.") {
		t.Fatalf("fragment = %q, want host identity failure message", rec.Body.String())
	}
	if sess.IsAuthenticated() {
		t.Fatal("session must stay empty after fatal resolution")
	}
}

// Повтор после неудачного старта разрешает источник заново: initData,
// появившийся после задержавшегося рукопожатия платформы, приводит
// серию к Authorized.
func TestAuthRetryPicksUpLateInitData(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/telegram-webapp" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"late-token"}`))
	}))
	defer backend.Close()

	s, sess := newTestServer(t, backend.URL)

	// Старт до рукопожатия: initData ещё пуст, серия падает фатально.
	postForm(s, "/auth/start", url.Values{"inside": {"1"}, "tg_data": {""}})

	// Повтор уже с initData.
	postForm(s, "/auth/retry", url.Values{"inside": {"1"}, "tg_data": {"query_id=AA&hash=bb"}})

	deadline := time.Now().Add(3 * time.Second)
	for !sess.IsAuthenticated() {
		if time.Now().After(deadline) {
			t.Fatal("retry with fresh initData must end authorized")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// Опрос статуса после успеха уводит на главный экран.
	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get("HX-Redirect"); got != "/" {
		t.Fatalf("HX-Redirect = %q, want /", got)
	}
}

func TestExpiredSessionRedirectsToAuth(t *testing.T) {
	t.Parallel()

	// Бэкенд отвечает 401: перехватчик vpnapi сбрасывает сессию, обработчик
	// уводит на /auth.
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer backend.Close()

	s, sess := newTestServer(t, backend.URL)
	if err := sess.Set("expired"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/auth" {
		t.Fatalf("Location = %q, want /auth", loc)
	}
	if sess.IsAuthenticated() {
		t.Fatal("session must be cleared after backend 401")
	}
}
