// Package authctx переносит bearer-токен вызывающей стороны через context.Context
// до клиентов внешних сервисов.
package authctx

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey struct{}

// WithBearerToken кладет токен в контекст
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKey{}, token)
}

// BearerToken достает токен из контекста
func BearerToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(ctxKey{}).(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// FromHeader извлекает токен из значения заголовка Authorization ("Bearer <token>")
func FromHeader(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Expiry читает claim exp из JWT без проверки подписи.
// Подпись проверяет бэкенд, здесь нужен только срок жизни.
// ok=false, если токен не JWT или exp отсутствует.
func Expiry(token string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Expired сообщает, истекает ли токен раньше now+leeway.
// Непрозрачные токены без exp считаются действующими.
func Expired(token string, now time.Time, leeway time.Duration) bool {
	exp, ok := Expiry(token)
	if !ok {
		return false
	}
	return !now.Add(leeway).Before(exp)
}
