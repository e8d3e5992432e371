// Package middleware содержит HTTP-middleware: функции-обёртки над http.Handler,
// которые добавляют общий функционал (логирование, заголовки, таймауты)
// вокруг основного обработчика без изменения его кода.
package middleware

import (
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// LoggingMiddleware измеряет время обработки запроса и пишет запись в лог
// после того, как основной обработчик завершил работу.
//
// Важно: логирование идёт "после" next.ServeHTTP, поэтому в duration входит
// вся обработка запроса обработчиком и другими middleware внутри цепочки.
// Статус ответа снимается через обёртку chi над ResponseWriter.
func LoggingMiddleware(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now() // фиксируем момент начала обработки
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r) // передаём управление следующему обработчику

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			entry := log.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     status,
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start),
				"request_id": chiMiddleware.GetReqID(r.Context()),
			})
			if status >= http.StatusInternalServerError {
				entry.Warn("request served")
				return
			}
			entry.Info("request served")
		})
	}
}

// JSONHeaderMiddleware проставляет заголовок Content-Type для JSON-ответов.
//
// Заголовки нужно выставлять ДО записи тела ответа (до w.Write / Encode).
func JSONHeaderMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r) // дальше обработчик пишет JSON-тело
	})
}

// HTMLHeaderMiddleware - то же для HTML-страниц.
func HTMLHeaderMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}
