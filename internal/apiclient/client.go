// Package apiclient - транспорт до удалённого REST API.
//
// Client отправляет JSON-запросы, разбирает ответы и превращает не-2xx
// статусы в *APIError. Ответ без тела (204 или Content-Length: 0) считается
// успешным пустым результатом. Все вызовы проходят через circuit breaker:
// при серии 5xx/сетевых ошибок запросы временно не отправляются и
// возвращается ErrUnavailable.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// RequestIDHeader - заголовок с идентификатором запроса, уходящий в API.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody ограничивает чтение тела ошибки.
const maxErrorBody = 1 << 20

// BreakerSettings - параметры circuit breaker.
type BreakerSettings struct {
	MaxRequests  uint32        // запросов в полуоткрытом состоянии
	Interval     time.Duration // период сброса счётчиков в закрытом состоянии
	Timeout      time.Duration // сколько breaker остаётся открытым
	MinRequests  uint32        // минимум запросов до оценки доли ошибок
	FailureRatio float64       // доля ошибок, при которой breaker размыкается
}

// DefaultBreakerSettings - значения по умолчанию.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  3,
		FailureRatio: 0.6,
	}
}

// Client - HTTP-клиент API.
type Client struct {
	baseURL  string
	http     *http.Client
	log      logrus.FieldLogger
	settings BreakerSettings
	breaker  *gobreaker.CircuitBreaker
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет http.Client (например, в тестах).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout задаёт общий таймаут одного запроса.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.http
			hc.Timeout = d
			c.http = &hc
		}
	}
}

// WithLogger задаёт логгер.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) { c.log = l }
}

// WithBreaker задаёт параметры circuit breaker.
func WithBreaker(s BreakerSettings) Option {
	return func(c *Client) { c.settings = s }
}

// New создаёт клиента для API по адресу baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 30 * time.Second},
		log:      logrus.StandardLogger(),
		settings: DefaultBreakerSettings(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = c.newBreaker()
	return c, nil
}

func (c *Client) newBreaker() *gobreaker.CircuitBreaker {
	s := c.settings
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "api",
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= s.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
		IsSuccessful: isSuccessful,
	})
}

// isSuccessful решает, считать ли результат отказом API.
// 4xx - ошибка клиента, отмена контекста - решение вызывающего.
func isSuccessful(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode < http.StatusInternalServerError
	}
	return false
}

// Do выполняет запрос method path с телом body (nil - без тела) и
// декодирует ответ в out.
//
// Возвращает true, если тело ответа было декодировано, и false для пустого
// успешного ответа. Ошибки: *APIError для не-2xx, ErrUnavailable при
// разомкнутом breaker, остальные - сетевые и ошибки кодирования.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) (bool, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
	}

	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.send(ctx, method, path, payload, out)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return false, fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
		}
		return false, err
	}
	decoded, _ := res.(bool)
	return decoded, nil
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, out any) (bool, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return false, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	reqID := requestID(ctx)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	entry := c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode,
		"duration":   time.Since(start),
		"request_id": reqID,
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := readAPIError(resp)
		entry.WithField("error", apiErr.Message).Warn("api request failed")
		return false, apiErr
	}
	entry.Debug("api request")

	if out == nil || isEmpty(resp) {
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		// Тело неизвестной длины оказалось пустым.
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return true, nil
}

func isEmpty(resp *http.Response) bool {
	return resp.StatusCode == http.StatusNoContent ||
		resp.ContentLength == 0 ||
		resp.Header.Get("Content-Length") == "0"
}

func readAPIError(resp *http.Response) *APIError {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body struct {
		Message string `json:"message"`
	}
	parsed := json.Unmarshal(data, &body) == nil
	return newAPIError(resp.StatusCode, body.Message, parsed)
}

// requestID берёт id входящего запроса (chi RequestID) или генерирует новый.
func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

// Path собирает путь из префикса и экранированных сегментов:
// Path("/TaskItems", "project", id) -> "/TaskItems/project/<id>".
func Path(prefix string, segments ...string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
