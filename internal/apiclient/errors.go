package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnavailable - API временно недоступно: circuit breaker разомкнут
// и запрос даже не отправлялся.
var ErrUnavailable = errors.New("api unavailable")

// APIError - ответ API с не-2xx статусом.
//
// Message берётся из поля "message" JSON-тела ошибки, а если его нет -
// из текста HTTP-статуса.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// newAPIError собирает APIError по правилам разбора тела ошибки:
//   - тело не JSON: текст статуса;
//   - JSON без message: "HTTP error! status: N".
func newAPIError(status int, message string, parsed bool) *APIError {
	if !parsed {
		message = http.StatusText(status)
	}
	if message == "" {
		message = fmt.Sprintf("HTTP error! status: %d", status)
	}
	return &APIError{StatusCode: status, Message: message}
}

// StatusCode возвращает HTTP-статус из цепочки ошибок или 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound сообщает, что API ответило 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// Message достаёт текст для баннера: сообщение API, если оно есть,
// иначе текст самой ошибки.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnavailable) {
		return "El servicio no está disponible. Inténtalo más tarde."
	}
	return err.Error()
}
