// Пакет controller — машина состояний экрана авторизации:
// Idle → Authorizing → Authorized | Failed, из Failed пользовательский
// Retry возвращает в начало. Состояния управляют только отрисовкой;
// доступ к API ограничивает сессия, а не контроллер.
//
// В каждый момент авторитетна ровно одна серия обмена. Номер поколения
// вшивается в горутину обмена: Retry и Stop поднимают поколение и
// отменяют контекст серии, поэтому запоздавший результат устаревшей
// серии (включая её таймеры ретрая) фиксируется как no-op и не может
// перезаписать исход новой.
package controller

import (
	"context"
	"sync"

	"chillguy-miniapp/internal/auth/credential"
	"chillguy-miniapp/internal/auth/exchange"
	"chillguy-miniapp/internal/infra/logger"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// State — фаза экрана авторизации.
type State int

const (
	StateIdle State = iota
	StateAuthorizing
	StateAuthorized
	StateFailed
)

// String нужен для логов и шаблонов.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAuthorizing:
		return "authorizing"
	case StateAuthorized:
		return "authorized"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot — снимок состояния для слоя отрисовки.
type Snapshot struct {
	State   State
	Failure *exchange.AuthError // только при StateFailed
}

// Exchanger — шов для подмены клиента обмена в тестах.
type Exchanger interface {
	ExchangeURLToken(ctx context.Context, token string) (string, error)
	ExchangeInitData(ctx context.Context, initData string) (string, error)
}

// SessionWriter — то, что контроллеру нужно от хранилища сессии.
type SessionWriter interface {
	IsAuthenticated() bool
	Set(token string) error
}

// Controller управляет единственной авторизационной серией.
type Controller struct {
	mu       sync.Mutex
	state    State
	failure  *exchange.AuthError
	gen      int // номер авторитетной серии
	cancel   context.CancelFunc
	session  SessionWriter
	exchange Exchanger
}

// New создаёт контроллер в состоянии Idle.
func New(sess SessionWriter, ex Exchanger) *Controller {
	return &Controller{session: sess, exchange: ex, state: StateIdle}
}

// Snapshot возвращает текущий снимок состояния.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{State: c.state, Failure: c.failure}
}

// Begin запускает авторизацию с нуля: разрешает источник учётных данных и,
// если он есть, стартует обмен в фоне. Уже авторизованный пользователь
// сразу получает Authorized — до Authorizing дело не доходит, слой выше
// делает редирект на главный экран.
func (c *Controller) Begin(urlToken string, pc credential.PlatformContext) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.IsAuthenticated() {
		c.state = StateAuthorized
		c.failure = nil
		return
	}

	cred, err := credential.Resolve(urlToken, pc)
	if err != nil {
		// Внутри Telegram без initData: фатально, без попыток обмена.
		c.state = StateFailed
		c.failure = &exchange.AuthError{Kind: exchange.KindHostIdentityUnavailable}
		return
	}

	switch cr := cred.(type) {
	case credential.None:
		// Не ошибка для ретрая, а инструкция: открыть через Telegram
		// или по ссылке с токеном.
		c.state = StateFailed
		c.failure = &exchange.AuthError{Kind: exchange.KindNoCredential}
	case credential.UrlToken:
		c.startLocked(func(ctx context.Context) (string, error) {
			return c.exchange.ExchangeURLToken(ctx, cr.Value)
		})
	case credential.PlatformIdentity:
		c.startLocked(func(ctx context.Context) (string, error) {
			return c.exchange.ExchangeInitData(ctx, cr.Raw)
		})
	}
}

// Retry — пользовательский повтор из Failed. Поднимает поколение (гася
// прежнюю серию вместе с её таймерами) и заново разрешает источник:
// initData мог появиться после задержавшегося рукопожатия платформы.
func (c *Controller) Retry(urlToken string, pc credential.PlatformContext) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
	c.state = StateIdle
	c.failure = nil
	c.mu.Unlock()

	c.Begin(urlToken, pc)
}

// Stop гасит текущую серию (уход с экрана, shutdown). Ожидающие таймеры
// ретрая отменяются; результат незавершённого запроса будет отброшен.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
}

// Reset гасит текущую серию и возвращает машину в Idle. Вызывается при
// инвалидции сессии: без сброса снимок мог бы показывать Authorized уже
// после того, как токен отозван.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
	c.state = StateIdle
	c.failure = nil
}

// startLocked переводит машину в Authorizing и запускает обмен в горутине,
// привязанной к текущему поколению. Вызывающий держит c.mu.
func (c *Controller) startLocked(run func(ctx context.Context) (string, error)) {
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	gen := c.gen
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.state = StateAuthorizing
	c.failure = nil

	go func() {
		token, err := run(ctx)
		c.commit(gen, token, err)
	}()
}

// commit фиксирует исход серии gen. Серия, переставшая быть авторитетной,
// игнорируется целиком — это и есть гарантия от «воскресшего» таймера.
func (c *Controller) commit(gen int, token string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		logger.Debug("auth: stale exchange result dropped", zap.Int("gen", gen))
		return
	}
	c.cancel = nil

	if err != nil {
		c.state = StateFailed
		c.failure = asAuthError(err)
		logger.Warn("auth: exchange failed", zap.Error(err))
		return
	}

	if setErr := c.session.Set(token); setErr != nil {
		c.state = StateFailed
		c.failure = &exchange.AuthError{Kind: exchange.KindGeneric}
		logger.Error("auth: failed to persist session token", zap.Error(setErr))
		return
	}
	c.state = StateAuthorized
	c.failure = nil
	logger.Info("auth: authorized")
}

// asAuthError приводит любой сбой к AuthError; незнакомые ошибки
// отображаются как Generic.
func asAuthError(err error) *exchange.AuthError {
	var ae *exchange.AuthError
	if errors.As(err, &ae) {
		return ae
	}
	return &exchange.AuthError{Kind: exchange.KindGeneric}
}
