package testutils

import (
	"context"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
)

// WithChiURLParams кладет параметры пути в контекст маршрута chi, как это
// делает роутер. Уже установленные параметры запроса сохраняются.
func WithChiURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.RouteContext(req.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rctx.URLParams.Add(k, params[k])
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
