package testutils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestWithChiURLParams(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/proposals/7/status", nil)
	req = WithChiURLParams(req, map[string]string{"proposalId": "7"})
	req = WithChiURLParams(req, map[string]string{"adId": "3"})

	require.Equal(t, "7", chi.URLParam(req, "proposalId"))
	require.Equal(t, "3", chi.URLParam(req, "adId"))
	require.Equal(t, "", chi.URLParam(req, "missing"))
}
