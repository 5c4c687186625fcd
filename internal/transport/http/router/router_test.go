package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/baechuer/devevent-service/internal/application/booking"
	"github.com/baechuer/devevent-service/internal/application/event"
	"github.com/baechuer/devevent-service/internal/config"
	"github.com/baechuer/devevent-service/internal/fallback"
	"github.com/baechuer/devevent-service/internal/infrastructure/db/mongo"
	"github.com/baechuer/devevent-service/internal/transport/http/handlers"
	authmw "github.com/baechuer/devevent-service/internal/transport/http/middleware"
)

type stubClock struct{}

func (stubClock) Now() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

// newOfflineRouter wires the real stack against a database that is not configured.
func newOfflineRouter(auth *authmw.AuthMiddleware, cfg *config.Config) http.Handler {
	conn := mongo.Unavailable{}
	events := event.New(mongo.NewEventRepo(conn, time.Second), stubClock{}, nil, nil, nil, 0, 0)
	bookings := booking.New(mongo.NewBookingRepo(conn, time.Second), events, stubClock{}, nil)

	h := handlers.NewEventsHandler(events, bookings, fallback.New(), 0)
	b := handlers.NewBookingsHandler(bookings)
	z := handlers.NewHealthHandler(map[string]handlers.Pinger{"mongodb": conn})
	return New(h, b, z, auth, cfg)
}

func TestRouter_Routing(t *testing.T) {
	auth := authmw.NewAuth("secret", "issuer", "organizer", "admin")
	r := newOfflineRouter(auth, &config.Config{RLEnabled: false})

	serve := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	t.Run("healthz_returns_200", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve("GET", "/healthz", "").Code)
	})

	t.Run("readyz_returns_503_without_database", func(t *testing.T) {
		rr := serve("GET", "/readyz", "")
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Contains(t, rr.Body.String(), "unavailable")
	})

	t.Run("list_degrades_to_fallback", func(t *testing.T) {
		rr := serve("GET", "/api/v1/events", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"source":"fallback"`)
	})

	t.Run("detail_degrades_to_fallback", func(t *testing.T) {
		slug := fallback.New().All()[0].Slug
		rr := serve("GET", "/api/v1/events/"+slug, "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), slug)
	})

	t.Run("similar_degrades_to_empty", func(t *testing.T) {
		rr := serve("GET", "/api/v1/events/anything/similar", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"events":[]`)
	})

	t.Run("booking_without_database_returns_503", func(t *testing.T) {
		rr := serve("POST", "/api/v1/bookings", `{"eventId":"65f000000000000000000001","email":"ada@example.com"}`)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})

	t.Run("protected_route_returns_401_without_token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve("POST", "/api/v1/events", "{}").Code)
		assert.Equal(t, http.StatusUnauthorized, serve("PATCH", "/api/v1/events/x", "{}").Code)
	})

	t.Run("organizer_token_reaches_handler", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, authmw.Claims{
			UserID: "u1",
			Role:   "organizer",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "issuer",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		ss, _ := token.SignedString([]byte("secret"))

		req := httptest.NewRequest("POST", "/api/v1/events", strings.NewReader(`{"title":`))
		req.Header.Set("Authorization", "Bearer "+ss)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown_route_returns_404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, serve("GET", "/nope", "").Code)
	})

	t.Run("metrics_exposed", func(t *testing.T) {
		rr := serve("GET", "/metrics", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "http_requests_total")
	})
}

func TestRouter_OpenAuthoringWithoutAuth(t *testing.T) {
	r := newOfflineRouter(nil, &config.Config{})

	req := httptest.NewRequest("POST", "/api/v1/events", strings.NewReader(`{"title":`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	r := newOfflineRouter(nil, &config.Config{RLEnabled: true, RLLimit: 1, RLWindow: time.Minute})

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest("GET", "/healthz", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest("GET", "/healthz", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
