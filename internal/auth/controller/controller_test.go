package controller_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"chillguy-miniapp/internal/auth/controller"
	"chillguy-miniapp/internal/auth/credential"
	"chillguy-miniapp/internal/auth/exchange"
)

// fakeSession — SessionWriter в памяти.
type fakeSession struct {
	mu    sync.Mutex
	token string
}

func (f *fakeSession) IsAuthenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token != ""
}

func (f *fakeSession) Set(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
	return nil
}

func (f *fakeSession) get() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

// fakeExchanger — Exchanger с подменяемыми обработчиками.
type fakeExchanger struct {
	urlCalls  atomic.Int32
	initCalls atomic.Int32
	urlFn     func(ctx context.Context, token string) (string, error)
	initFn    func(ctx context.Context, initData string) (string, error)
}

func (f *fakeExchanger) ExchangeURLToken(ctx context.Context, token string) (string, error) {
	f.urlCalls.Add(1)
	return f.urlFn(ctx, token)
}

func (f *fakeExchanger) ExchangeInitData(ctx context.Context, initData string) (string, error) {
	f.initCalls.Add(1)
	return f.initFn(ctx, initData)
}

// waitState ждёт, пока контроллер не перейдёт в ожидаемое состояние.
func waitState(t *testing.T, c *controller.Controller, want controller.State) controller.Snapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		snap := c.Snapshot()
		if snap.State == want {
			return snap
		}
		select {
		case <-deadline:
			t.Fatalf("state = %v, want %v", snap.State, want)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestBeginAlreadyAuthenticated(t *testing.T) {
	t.Parallel()

	sess := &fakeSession{token: "existing"}
	ex := &fakeExchanger{}
	c := controller.New(sess, ex)

	c.Begin("", credential.PlatformContext{InsideTelegram: true, InitData: "query_id=abc"})

	snap := c.Snapshot()
	if snap.State != controller.StateAuthorized {
		t.Fatalf("state = %v, want StateAuthorized", snap.State)
	}
	// Обмен не запускается вовсе.
	if ex.initCalls.Load() != 0 || ex.urlCalls.Load() != 0 {
		t.Fatal("exchange must not be called when already authenticated")
	}
}

func TestBeginWithoutCredential(t *testing.T) {
	t.Parallel()

	c := controller.New(&fakeSession{}, &fakeExchanger{})
	c.Begin("", credential.PlatformContext{})

	snap := c.Snapshot()
	if snap.State != controller.StateFailed {
		t.Fatalf("state = %v, want StateFailed", snap.State)
	}
	if snap.Failure == nil || snap.Failure.Kind != exchange.KindNoCredential {
		t.Fatalf("failure = %#v, want KindNoCredential", snap.Failure)
	}
}

func TestBeginHostIdentityUnavailable(t *testing.T) {
	t.Parallel()

	ex := &fakeExchanger{}
	c := controller.New(&fakeSession{}, ex)
	c.Begin("", credential.PlatformContext{InsideTelegram: true})

	snap := c.Snapshot()
	if snap.State != controller.StateFailed {
		t.Fatalf("state = %v, want StateFailed", snap.State)
	}
	if snap.Failure == nil || snap.Failure.Kind != exchange.KindHostIdentityUnavailable {
		t.Fatalf("failure = %#v, want KindHostIdentityUnavailable", snap.Failure)
	}
	if ex.initCalls.Load() != 0 {
		t.Fatal("exchange must not be attempted without initData")
	}
}

func TestURLTokenAuthorization(t *testing.T) {
	t.Parallel()

	sess := &fakeSession{}
	ex := &fakeExchanger{
		urlFn: func(_ context.Context, token string) (string, error) {
			if token != "one-time" {
				t.Errorf("token = %q, want %q", token, "one-time")
			}
			return "sess-1", nil
		},
	}
	c := controller.New(sess, ex)

	c.Begin("one-time", credential.PlatformContext{})
	waitState(t, c, controller.StateAuthorized)

	if got := sess.get(); got != "sess-1" {
		t.Fatalf("session token = %q, want %q", got, "sess-1")
	}
	if ex.urlCalls.Load() != 1 {
		t.Fatalf("url exchange called %d times, want 1", ex.urlCalls.Load())
	}
}

func TestInitDataAuthorization(t *testing.T) {
	t.Parallel()

	sess := &fakeSession{}
	ex := &fakeExchanger{
		initFn: func(_ context.Context, initData string) (string, error) {
			if initData != "query_id=abc" {
				t.Errorf("initData = %q, want %q", initData, "query_id=abc")
			}
			return "abc", nil
		},
	}
	c := controller.New(sess, ex)

	if snap := c.Snapshot(); snap.State != controller.StateIdle {
		t.Fatalf("initial state = %v, want StateIdle", snap.State)
	}
	c.Begin("", credential.PlatformContext{InsideTelegram: true, InitData: "query_id=abc"})
	waitState(t, c, controller.StateAuthorized)

	if got := sess.get(); got != "abc" {
		t.Fatalf("session token = %q, want %q", got, "abc")
	}
	if ex.initCalls.Load() != 1 {
		t.Fatalf("initData exchange called %d times, want 1", ex.initCalls.Load())
	}
}

func TestURLTokenNotFound(t *testing.T) {
	t.Parallel()

	ex := &fakeExchanger{
		urlFn: func(context.Context, string) (string, error) {
			return "", &exchange.AuthError{Kind: exchange.KindNotFound}
		},
	}
	sess := &fakeSession{}
	c := controller.New(sess, ex)

	c.Begin("stale-token", credential.PlatformContext{})
	snap := waitState(t, c, controller.StateFailed)

	if snap.Failure.UserMessage() != "Пользователь не найден." {
		t.Fatalf("UserMessage() = %q", snap.Failure.UserMessage())
	}
	if got := sess.get(); got != "" {
		t.Fatalf("session token = %q, want empty after rejected exchange", got)
	}
}

func TestRetrySupersedesStaleSeries(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	firstDone := make(chan struct{})
	sess := &fakeSession{}
	ex := &fakeExchanger{}
	ex.urlFn = func(context.Context, string) (string, error) {
		if ex.urlCalls.Load() == 1 {
			// Первая серия зависает до release и возвращает устаревший токен.
			close(started)
			<-release
			defer close(firstDone)
			return "stale", nil
		}
		return "fresh", nil
	}
	c := controller.New(sess, ex)

	c.Begin("tok", credential.PlatformContext{})
	<-started
	c.Retry("tok", credential.PlatformContext{})
	waitState(t, c, controller.StateAuthorized)
	if got := sess.get(); got != "fresh" {
		t.Fatalf("session token = %q, want %q", got, "fresh")
	}

	// Запоздавший результат первой серии обязан быть отброшен.
	close(release)
	<-firstDone
	time.Sleep(20 * time.Millisecond)

	if got := sess.get(); got != "fresh" {
		t.Fatalf("stale series overwrote token: %q", got)
	}
	if snap := c.Snapshot(); snap.State != controller.StateAuthorized {
		t.Fatalf("state = %v after stale commit, want StateAuthorized", snap.State)
	}
}

func TestResetReturnsToIdle(t *testing.T) {
	t.Parallel()

	c := controller.New(&fakeSession{}, &fakeExchanger{})
	c.Begin("", credential.PlatformContext{})
	if snap := c.Snapshot(); snap.State != controller.StateFailed {
		t.Fatalf("state = %v, want StateFailed", snap.State)
	}

	c.Reset()
	snap := c.Snapshot()
	if snap.State != controller.StateIdle || snap.Failure != nil {
		t.Fatalf("after Reset: %#v, want clean StateIdle", snap)
	}
}

func TestStopDropsPendingSeries(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})
	sess := &fakeSession{}
	ex := &fakeExchanger{
		urlFn: func(ctx context.Context, _ string) (string, error) {
			defer close(done)
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	c := controller.New(sess, ex)

	c.Begin("tok", credential.PlatformContext{})
	c.Stop()
	<-done
	time.Sleep(20 * time.Millisecond)

	// Исход погашенной серии не фиксируется: ни Failed, ни токена.
	if snap := c.Snapshot(); snap.State == controller.StateFailed {
		t.Fatal("cancelled series must not commit a failure")
	}
	if sess.get() != "" {
		t.Fatal("cancelled series must not persist a token")
	}
}
