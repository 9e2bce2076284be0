// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package httpapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cinedex/cinedex/internal/catalog"
	"github.com/cinedex/cinedex/internal/httpapi"
)

// doWithHeaders runs a request with extra headers through the router.
func (h *harness) doWithHeaders(t *testing.T, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestRequestID(t *testing.T) {
	t.Run("echoes a caller-supplied ID", func(t *testing.T) {
		h := newHarness(t)
		h.films.On("List", mock.Anything, catalog.Filter{}, catalog.DefaultListLimit, 0).
			Return([]*catalog.Film{}, nil)

		rec := h.doWithHeaders(t, http.MethodGet, "/api/v1/films",
			map[string]string{"X-Request-ID": "trace-me-1234"})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "trace-me-1234", rec.Header().Get("X-Request-ID"))
	})

	t.Run("generates one when absent", func(t *testing.T) {
		h := newHarness(t)
		h.films.On("List", mock.Anything, catalog.Filter{}, catalog.DefaultListLimit, 0).
			Return([]*catalog.Film{}, nil)

		rec := h.do(t, http.MethodGet, "/api/v1/films", nil, "")

		require.Equal(t, http.StatusOK, rec.Code)
		id := rec.Header().Get("X-Request-ID")
		_, err := ulid.Parse(id)
		assert.NoError(t, err, "generated request ID %q", id)
	})
}

func TestBearerParsing(t *testing.T) {
	t.Run("a bad token is rejected even on public routes", func(t *testing.T) {
		h := newHarness(t)

		rec := h.do(t, http.MethodGet, "/api/v1/films", nil, "garbage")

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid or expired token", errMessage(t, rec))
	})

	t.Run("non-bearer authorization reads as anonymous on public routes", func(t *testing.T) {
		h := newHarness(t)
		h.films.On("List", mock.Anything, catalog.Filter{}, catalog.DefaultListLimit, 0).
			Return([]*catalog.Film{}, nil)

		rec := h.doWithHeaders(t, http.MethodGet, "/api/v1/films",
			map[string]string{"Authorization": "Basic dXNlcjpwYXNz"})

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-bearer authorization is rejected on private routes", func(t *testing.T) {
		h := newHarness(t)

		rec := h.doWithHeaders(t, http.MethodGet, "/api/v1/me",
			map[string]string{"Authorization": "Basic dXNlcjpwYXNz"})

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "authorization required", errMessage(t, rec))
	})
}

func TestCORS(t *testing.T) {
	withOrigins := func(cfg *httpapi.Config) {
		cfg.CORSOrigins = []string{"https://*.example.com", "http://localhost:5173"}
	}

	t.Run("answers preflight from an allowed origin", func(t *testing.T) {
		h := newHarness(t, withOrigins)

		rec := h.doWithHeaders(t, http.MethodOptions, "/api/v1/films",
			map[string]string{"Origin": "https://app.example.com"})

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
		assert.Contains(t, rec.Header().Values("Vary"), "Origin")
	})

	t.Run("marks responses for an allowed origin", func(t *testing.T) {
		h := newHarness(t, withOrigins)
		h.films.On("List", mock.Anything, catalog.Filter{}, catalog.DefaultListLimit, 0).
			Return([]*catalog.Film{}, nil)

		rec := h.doWithHeaders(t, http.MethodGet, "/api/v1/films",
			map[string]string{"Origin": "http://localhost:5173"})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("leaves unmatched origins without headers", func(t *testing.T) {
		h := newHarness(t, withOrigins)
		h.films.On("List", mock.Anything, catalog.Filter{}, catalog.DefaultListLimit, 0).
			Return([]*catalog.Film{}, nil)

		rec := h.doWithHeaders(t, http.MethodGet, "/api/v1/films",
			map[string]string{"Origin": "https://evil.test"})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight from an unmatched origin finds no route", func(t *testing.T) {
		h := newHarness(t, withOrigins)

		rec := h.doWithHeaders(t, http.MethodOptions, "/api/v1/films",
			map[string]string{"Origin": "https://evil.test"})

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
