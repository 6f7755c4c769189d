package middleware_test

import (
	"barter/internal/auth"
	"barter/internal/middleware"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type revokedSet struct {
	ids map[string]bool
	err error
}

func (r *revokedSet) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return r.ids[tokenID], r.err
}

// echoUser отвечает id пользователя из контекста
func echoUser(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no user", http.StatusTeapot)
		return
	}
	w.Write([]byte(strconv.FormatInt(id, 10)))
}

func doRequest(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	token, claims, err := tokens.Issue(42)
	require.NoError(t, err)

	revoked := &revokedSet{ids: map[string]bool{}}
	h := middleware.JWTAuth(tokens, revoked, zap.NewNop())(http.HandlerFunc(echoUser))

	w := doRequest(h, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "42", w.Body.String())

	w = doRequest(h, "bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer not-a-token", token} {
		w = doRequest(h, header)
		require.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}

	other := auth.NewTokenManager("other-secret", time.Hour)
	foreign, _, err := other.Issue(42)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, doRequest(h, "Bearer "+foreign).Code)

	revoked.ids[claims.ID] = true
	require.Equal(t, http.StatusUnauthorized, doRequest(h, "Bearer "+token).Code)
}

func TestJWTAuthRevocationError(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	token, _, err := tokens.Issue(1)
	require.NoError(t, err)

	h := middleware.JWTAuth(tokens, &revokedSet{err: errors.New("redis down")}, zap.NewNop())(http.HandlerFunc(echoUser))
	require.Equal(t, http.StatusInternalServerError, doRequest(h, "Bearer "+token).Code)
}

func TestJWTAuthWithoutRevocation(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	token, _, err := tokens.Issue(7)
	require.NoError(t, err)

	h := middleware.JWTAuth(tokens, nil, zap.NewNop())(http.HandlerFunc(echoUser))
	w := doRequest(h, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "7", w.Body.String())
}
