package middleware

import (
	"context"
	"net/http"
	"time"
)

// RequestTimeoutMiddleware выставляет таймаут на обработку запроса через context.WithTimeout.
//
// Это НЕ "убийца" хендлеров: таймаут сработает только там, где нижние слои
// проверяют ctx.Done()/ctx.Err(). У нас это исходящие вызовы API - они
// получают контекст входящего запроса и прерываются вместе с ним.
// d <= 0 отключает таймаут.
func RequestTimeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
