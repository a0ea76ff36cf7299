// Пакет vpnapi — типизированный клиент REST-бэкенда ChillGuy VPN.
//
// Вся бизнес-логика (биллинг, выдача подписок, учёт трафика) живёт на
// бэкенде; клиент только ходит по эндпоинтам с Bearer-токеном. Токен на
// каждый запрос читается из хранилища сессии через единственный аксессор —
// локальных копий нет, фоновая инвалидция видна немедленно.
//
// Глобальный перехватчик: 401 от ЛЮБОГО эндпоинта сбрасывает сессию
// (единственное действие восстановления) и возвращает ErrUnauthorized;
// следующий переход по защищённому маршруту уйдёт на экран авторизации.
package vpnapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"chillguy-miniapp/internal/infra/logger"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrUnauthorized сигнализирует о сброшенной по 401 сессии.
var ErrUnauthorized = errors.New("vpnapi: unauthorized")

const httpTimeout = 30 * time.Second

// TokenSource — то, что клиенту нужно от хранилища сессии: чтение токена
// и сброс при 401.
type TokenSource interface {
	Get() string
	Clear() error
}

// APIError — не-2xx ответ бэкенда с разобранным телом.
type APIError struct {
	Status  int
	Message string
	Reason  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("vpnapi: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("vpnapi: unexpected status %d", e.Status)
}

// Client — HTTP-клиент бэкенда с token bucket на исходящие запросы.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	tokens  TokenSource
}

// NewClient создаёт клиент. rps ограничивает среднюю частоту запросов
// к бэкенду (burst равен rps).
func NewClient(baseURL string, rps int, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: httpTimeout},
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		tokens:  tokens,
	}
}

// envelope — одиночный ответ бэкенда: {"data": ..., "message": ...}.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// errorBody — тело ошибки; message и reason опциональны.
type errorBody struct {
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

// do выполняет запрос и декодирует тело ответа в out (если out != nil).
// Тело запроса (body != nil) сериализуется в JSON.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Чтение через единственный аксессор: никакого кеширования токена.
	if token := c.tokens.Get(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "perform request")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	if resp.StatusCode == http.StatusUnauthorized {
		logger.Warn("vpnapi: 401, clearing session",
			zap.String("method", method), zap.String("path", path))
		if clearErr := c.tokens.Clear(); clearErr != nil {
			logger.Error("vpnapi: failed to clear session", zap.Error(clearErr))
		}
		return ErrUnauthorized
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return &APIError{Status: resp.StatusCode, Message: eb.Message, Reason: eb.Reason}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err = json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// decodeData распаковывает поле data конверта в out.
func decodeData(env envelope, out any) error {
	return errors.Wrap(json.Unmarshal(env.Data, out), "decode data")
}

// getData выполняет GET и распаковывает конверт {"data": ...} в out.
func (c *Client) getData(ctx context.Context, path string, query url.Values, out any) error {
	var env envelope
	if err := c.do(ctx, http.MethodGet, path, query, nil, &env); err != nil {
		return err
	}
	return decodeData(env, out)
}

// postData выполняет POST и распаковывает конверт {"data": ...} в out
// (out может быть nil, если тело ответа не нужно).
func (c *Client) postData(ctx context.Context, path string, body, out any) error {
	var env envelope
	if err := c.do(ctx, http.MethodPost, path, nil, body, &env); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeData(env, out)
}

// pageQuery собирает стандартные параметры пагинации.
func pageQuery(page, perPage int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	return q
}
