// Пакет exchange реализует обмен учётных данных на токен сессии.
//
// Здесь:
//   - два эндпоинта бэкенда: /auth/telegram (токен из ссылки) и
//     /auth/telegram-webapp (initData от Telegram);
//   - классификация ответов на постоянные (401/403/404 — ожидание не
//     поможет) и временные (сеть, 5xx);
//   - ограниченный ретрай только для initData: payload стабилен, а
//     временный сбой бэкенда — ожидаемая причина. Токен из ссылки
//     одноразовый и time-boxed, его повтор тратит узкое окно валидности
//     и рискует сработать как replay.
//
// Успешный обмен записывает токен вызывающая сторона; сам клиент ничего
// не персистит.
package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"chillguy-miniapp/internal/infra/logger"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// Kind классифицирует исход авторизации для UI.
type Kind int

const (
	KindGeneric Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindHostIdentityUnavailable
	KindNoCredential
)

// AuthError — классифицированная ошибка авторизации. Reason заполняется
// текстом бэкенда (403) и показывается пользователю дословно.
type AuthError struct {
	Kind   Kind
	Reason string
	cause  error
}

func (e *AuthError) Error() string {
	switch {
	case e.cause != nil:
		return fmt.Sprintf("auth: %s", e.cause)
	case e.Reason != "":
		return fmt.Sprintf("auth: %s", e.Reason)
	default:
		return fmt.Sprintf("auth: kind %d", e.Kind)
	}
}

func (e *AuthError) Unwrap() error { return e.cause }

// UserMessage возвращает фиксированный текст для экрана авторизации.
// Тексты совпадают с веб-версией мини-аппа.
func (e *AuthError) UserMessage() string {
	switch e.Kind {
	case KindUnauthorized:
		return "Неверные данные авторизации. Попробуйте перезапустить приложение."
	case KindForbidden:
		if e.Reason != "" {
			return e.Reason
		}
		return "Аккаунт заблокирован."
	case KindNotFound:
		return "Пользователь не найден."
	case KindHostIdentityUnavailable:
		return "Не удалось получить данные авторизации от Telegram."
	case KindNoCredential:
		return "Откройте приложение через Telegram или используйте ссылку с токеном."
	default:
		return "Ошибка авторизации. Попробуйте позже."
	}
}

const (
	// retryDelay — фиксированная пауза между попытками обмена initData.
	retryDelay = 2 * time.Second
	// extraAttempts — дополнительные попытки после первой (итого 3).
	extraAttempts = 2

	httpTimeout = 30 * time.Second
)

// Client выполняет обмен учётных данных через REST-бэкенд.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient создаёт клиент обмена. baseURL — без завершающего слэша,
// включая префикс API (например, https://api.chillguyvpn.com/api/v1).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: httpTimeout},
	}
}

// ExchangeURLToken обменивает одноразовый токен из ссылки. Ровно одна
// попытка: любой сбой — сразу классифицированная ошибка.
func (c *Client) ExchangeURLToken(ctx context.Context, token string) (string, error) {
	return c.post(ctx, "/auth/telegram", map[string]string{"token": token})
}

// ExchangeInitData обменивает initData от Telegram. Временные сбои
// повторяются с фиксированной паузой (до трёх попыток суммарно); явный
// отказ бэкенда (401/403/404) прерывает ретрай немедленно. После
// исчерпания попыток возвращается последняя конкретная ошибка, а не
// обобщённая — пользователь видит настоящую финальную причину.
//
// Отмена ctx (новая попытка пользователя либо уход с экрана) прекращает
// и ожидание паузы, и последующие попытки: результат устаревшей серии
// никуда не записывается.
func (c *Client) ExchangeInitData(ctx context.Context, initData string) (string, error) {
	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(retryDelay), extraAttempts),
		ctx,
	)
	attempt := 0
	return backoff.RetryWithData(func() (string, error) {
		attempt++
		accessToken, err := c.post(ctx, "/auth/telegram-webapp", map[string]string{"tg_data": initData})
		if err != nil {
			var authErr *AuthError
			if errors.As(err, &authErr) && permanentKind(authErr.Kind) {
				return "", backoff.Permanent(err)
			}
			logger.Warn("auth: initData exchange attempt failed",
				zap.Int("attempt", attempt), zap.Error(err))
			return "", err
		}
		return accessToken, nil
	}, bo)
}

// permanentKind — отказ, который не лечится ожиданием.
func permanentKind(k Kind) bool {
	return k == KindUnauthorized || k == KindForbidden || k == KindNotFound
}

// tokenResponse — успешный ответ эндпоинтов обмена.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// rejectBody — тело отказа; reason приходит при блокировке аккаунта.
type rejectBody struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// post выполняет один POST и нормализует ответ в (token, *AuthError).
func (c *Client) post(ctx context.Context, path string, payload map[string]string) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &AuthError{Kind: KindGeneric, cause: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", &AuthError{Kind: KindGeneric, cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &AuthError{Kind: KindGeneric, cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &AuthError{Kind: KindGeneric, cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(resp.StatusCode, raw)
	}

	var tr tokenResponse
	if err = json.Unmarshal(raw, &tr); err != nil {
		return "", &AuthError{Kind: KindGeneric, cause: err}
	}
	if tr.AccessToken == "" {
		// 200 без токена — неконсистентный бэкенд, считаем временным сбоем.
		return "", &AuthError{Kind: KindGeneric, cause: fmt.Errorf("no access token in response")}
	}
	return tr.AccessToken, nil
}

// classifyStatus переводит не-200 в AuthError согласно таксономии:
// 401 — неверные данные, 403 — блокировка (с причиной бэкенда),
// 404 — пользователь не найден, остальное — временный сбой.
func classifyStatus(status int, raw []byte) *AuthError {
	var rb rejectBody
	_ = json.Unmarshal(raw, &rb) // тело отказа может быть пустым или не-JSON

	switch status {
	case http.StatusUnauthorized:
		return &AuthError{Kind: KindUnauthorized}
	case http.StatusForbidden:
		return &AuthError{Kind: KindForbidden, Reason: rb.Reason}
	case http.StatusNotFound:
		return &AuthError{Kind: KindNotFound}
	default:
		return &AuthError{Kind: KindGeneric, cause: fmt.Errorf("unexpected status %d", status)}
	}
}
