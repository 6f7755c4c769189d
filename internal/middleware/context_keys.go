package middleware

import (
	"barter/internal/auth"
	"context"
)

// ContextKey - тип ключей контекста, чтобы избежать коллизий
type ContextKey string

const (
	// UserIDCtxKey - id аутентифицированного пользователя (int64)
	UserIDCtxKey = ContextKey("user_id")
	// ClaimsCtxKey - проверенные claims токена (*auth.Claims)
	ClaimsCtxKey = ContextKey("claims")
)

// UserIDFromContext возвращает id пользователя, установленный JWTAuth
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDCtxKey).(int64)
	return id, ok && id > 0
}

func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(ClaimsCtxKey).(*auth.Claims)
	return c, ok
}

// WithUser кладет пользователя в контекст
func WithUser(ctx context.Context, claims *auth.Claims, userID int64) context.Context {
	ctx = context.WithValue(ctx, ClaimsCtxKey, claims)
	return context.WithValue(ctx, UserIDCtxKey, userID)
}
