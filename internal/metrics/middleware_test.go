package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/staffdex/internal/domain/search/mode"
)

func TestMiddleware_RecordsRoutePatternAndStatus(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/search/{mode}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/search/hybrid", "/search/keyword", "/health"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	}

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/search/{mode}", "502")); got < 2 {
		t.Errorf("expected >= 2 requests on route pattern, got %f", got)
	}
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/health", "200")); got < 1 {
		t.Errorf("expected implicit 200 to be recorded, got %f", got)
	}
}

func TestMiddleware_UnknownRoute(t *testing.T) {
	h := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", http.NoBody))

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unknown", "404")); got < 1 {
		t.Errorf("expected unknown route label, got %f", got)
	}
}

func TestObserveSearch(t *testing.T) {
	before := testutil.ToFloat64(searchRequestsTotal.WithLabelValues("hybrid", StatusError))
	ObserveSearch(mode.Hybrid, StatusError, 10*time.Millisecond, 0)
	ObserveSearch(mode.Hybrid, StatusOK, time.Millisecond, 3)

	if got := testutil.ToFloat64(searchRequestsTotal.WithLabelValues("hybrid", StatusError)); got != before+1 {
		t.Errorf("expected error counter to grow by 1, got %f -> %f", before, got)
	}
	if testutil.CollectAndCount(searchResults) == 0 {
		t.Error("expected search_results observations")
	}
}

func TestRegister_Idempotent(t *testing.T) {
	Register()
	Register()
}
