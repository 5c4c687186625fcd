package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baechuer/devevent-service/internal/domain"
)

func TestHealthHandler(t *testing.T) {
	t.Run("healthz_always_ok", func(t *testing.T) {
		h := NewHealthHandler(nil)
		rr := httptest.NewRecorder()
		h.Healthz(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"data":{"status":"ok"}}`, rr.Body.String())
	})

	t.Run("readyz_ok_when_all_up", func(t *testing.T) {
		h := NewHealthHandler(map[string]Pinger{"mongodb": stubPinger{}, "redis": stubPinger{}})
		rr := httptest.NewRecorder()
		h.Readyz(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"data":{"status":"ready","mongodb":"up","redis":"up"}}`, rr.Body.String())
	})

	t.Run("readyz_503_when_database_down", func(t *testing.T) {
		down := domain.ErrUnavailable("database not configured", errors.New("no uri"))
		h := NewHealthHandler(map[string]Pinger{"mongodb": stubPinger{err: down}})
		rr := httptest.NewRecorder()
		h.Readyz(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Contains(t, rr.Body.String(), `"mongodb":"down"`)
	})
}
