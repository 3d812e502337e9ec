package middleware

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-RescheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-RescheduleService/pkg/authctx"
)

const (
	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "некорректный заголовок Authorization"
	msgExpiredToken = "срок действия токена истек"
)

// Auth переносит bearer-токен вызывающей стороны в контекст запроса, чтобы клиенты
// бэкенда ходили от имени пользователя. Подпись проверяет бэкенд; здесь отсекаются
// только токены с истекшим exp. При required=false запрос без токена пропускается,
// и клиенты используют сервисный токен.
func Auth(required bool, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				if required {
					logger.Warn("%s %s - Missing Authorization header", r.Method, r.URL.Path)
					handlers.RespondUnauthorized(w, msgMissingToken)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token, ok := authctx.FromHeader(header)
			if !ok {
				logger.Warn("%s %s - Malformed Authorization header", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}
			if authctx.Expired(token, time.Now(), 0) {
				logger.Warn("%s %s - Expired bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgExpiredToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(authctx.WithBearerToken(r.Context(), token)))
		})
	}
}
