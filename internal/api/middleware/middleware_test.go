package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/pkg/metrics"
)

func captureActor(dst **domain.Actor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*dst = ActorFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestActorFromHeaders(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderUserID, "u1")
	r.Header.Set(HeaderUserName, "Kari Nordmann")
	r.Header.Set(HeaderUserBaseClass, "3")
	r.Header.Set(HeaderUserClasses, "JEG, HK416")
	r.Header.Set(HeaderUserAdmin, "true")

	actor, err := ActorFromHeaders(r)
	require.NoError(t, err)
	assert.Equal(t, &domain.Actor{
		ID:        "u1",
		Name:      "Kari Nordmann",
		IsAdmin:   true,
		BaseClass: domain.Class3,
		Classes:   []domain.Class{domain.ClassJEG, domain.ClassHK416},
	}, actor)

	anonymous, err := ActorFromHeaders(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Nil(t, anonymous)

	r.Header.Set(HeaderUserClasses, "3")
	_, err = ActorFromHeaders(r)
	assert.ErrorIs(t, err, domain.ErrInvalidEligibilitySet)
}

func TestAuth(t *testing.T) {
	var actor *domain.Actor
	handler := Auth(captureActor(&actor))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.Header.Set(HeaderUserID, "u1")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, actor)
	assert.Equal(t, "u1", actor.ID)
}

func TestActor(t *testing.T) {
	var actor *domain.Actor
	handler := Actor(captureActor(&actor))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, actor)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderUserID, "u1")
	r.Header.Set(HeaderUserClasses, "XYZ")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New("range-booking")

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.HandleFunc("/competitions/{competitionId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/competitions/5", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(),
		`http_requests_total{method="GET",route="/competitions/{competitionId}",service="range-booking",status="418"} 1`)
}
