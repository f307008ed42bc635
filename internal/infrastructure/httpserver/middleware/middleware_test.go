package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicboard/clinicboard/internal/infrastructure/httpserver/helpers"
	custommw "github.com/clinicboard/clinicboard/internal/infrastructure/httpserver/middleware"
)

func TestCollectHTTPMetrics_LabelsByRouteTemplate(t *testing.T) {
	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "test_http_requests_total"},
		[]string{"method", "endpoint", "status"},
	)
	durations := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "test_http_request_duration_seconds"},
		[]string{"method", "endpoint"},
	)
	mw := custommw.NewMetricsMiddleware(requests, durations)

	e := echo.New()
	e.Use(mw.CollectHTTPMetrics())
	e.GET("/appointments/:id", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/appointments/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// Two distinct appointment ids collapse into one series.
	assert.Equal(t, float64(2),
		testutil.ToFloat64(requests.WithLabelValues("GET", "/appointments/:id", "200")))
}

func TestRequestLogging_CarriesDoctorIdentity(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	mw := custommw.NewLoggingMiddleware(logger)

	doctorID := uuid.New()
	e := echo.New()
	e.Use(mw.RequestLogging())
	e.GET("/appointments", func(c echo.Context) error {
		c.Set(helpers.ContextDoctorID, doctorID)
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointments", nil))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, doctorID, entry.Data["doctor_id"])
	assert.Equal(t, "/appointments", entry.Data["path"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
}

func TestRequestLogging_NoDoctorOnPublicRoute(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	mw := custommw.NewLoggingMiddleware(logger)

	e := echo.New()
	e.Use(mw.RequestLogging())
	e.GET("/doctors/status", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/doctors/status", nil))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	_, hasDoctor := entry.Data["doctor_id"]
	assert.False(t, hasDoctor)
}
