package session_test

import (
	"path/filepath"
	"testing"

	"chillguy-miniapp/internal/auth/session"
)

func openStore(t *testing.T, path string) *session.Store {
	t.Helper()
	s, err := session.Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	return s
}

func TestTokenSurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.bbolt")

	s := openStore(t, path)
	if s.IsAuthenticated() {
		t.Fatal("fresh store must start unauthenticated")
	}
	if err := s.Set("token-123"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	// Новый процесс: токен должен быть гидрирован с диска.
	s = openStore(t, path)
	defer s.Close()

	if got := s.Get(); got != "token-123" {
		t.Fatalf("Get() after reopen = %q, want %q", got, "token-123")
	}
	if !s.IsAuthenticated() {
		t.Fatal("IsAuthenticated() must agree with Get()")
	}
}

func TestClearNotifiesSubscribers(t *testing.T) {
	t.Parallel()

	s := openStore(t, filepath.Join(t.TempDir(), "state.bbolt"))
	defer s.Close()

	if err := s.Set("token-123"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	fired := 0
	s.OnInvalidate(func() { fired++ })

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if s.IsAuthenticated() {
		t.Fatal("store must be unauthenticated after Clear")
	}
	if fired != 1 {
		t.Fatalf("invalidate subscribers fired %d times, want 1", fired)
	}
}

func TestMusicFlag(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.bbolt")
	s := openStore(t, path)

	// По умолчанию музыка включена.
	if !s.MusicEnabled() {
		t.Fatal("MusicEnabled() must default to true")
	}
	if err := s.SetMusicEnabled(false); err != nil {
		t.Fatalf("SetMusicEnabled() error: %v", err)
	}
	if s.MusicEnabled() {
		t.Fatal("MusicEnabled() = true after disabling")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	// Флаг переживает перезапуск.
	s = openStore(t, path)
	defer s.Close()
	if s.MusicEnabled() {
		t.Fatal("music flag must survive reopen")
	}
}
