package middleware

import (
	"barter/internal/auth"
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// TokenValidator проверяет строку токена
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// RevocationChecker сообщает, отозван ли токен при выходе
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// JWTAuth пропускает запрос только с действительным Bearer-токеном
// и кладет id пользователя в контекст. revoked может быть nil.
func JWTAuth(tokens TokenValidator, revoked RevocationChecker, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, ok := strings.Cut(header, " ")
			if header == "" || !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Validate(strings.TrimSpace(token))
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			if revoked != nil {
				isRevoked, err := revoked.IsRevoked(r.Context(), claims.ID)
				if err != nil {
					logger.Error("Failed to check token revocation", zap.Error(err))
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}
				if isRevoked {
					http.Error(w, "Token has been revoked", http.StatusUnauthorized)
					return
				}
			}

			// Validate уже проверил subject
			userID, _ := claims.UserID()
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), claims, userID)))
		})
	}
}
