package metrics_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/spokeworks/gearhub/pkg/metrics"
)

func instrumentedMux() chi.Router {
	mux := chi.NewRouter()
	mux.Use(metrics.Middleware())
	mux.Get("/order/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func TestRequestSeriesLabelRoutePattern(t *testing.T) {
	mux := instrumentedMux()

	before := testutil.CollectAndCount(metrics.RequestTotal)
	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/order/%024x", i), nil))
	}
	after := testutil.CollectAndCount(metrics.RequestTotal)

	if got := after - before; got != 1 {
		t.Errorf("expected one series for all /order/{id} requests, got %d new series", got)
	}
}

func TestUnmatchedPathsShareOneSeries(t *testing.T) {
	mux := instrumentedMux()

	before := testutil.CollectAndCount(metrics.RequestTotal)
	for _, path := range []string{"/nope", "/also/nope", "/still/nope"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}
	after := testutil.CollectAndCount(metrics.RequestTotal)

	if got := after - before; got != 1 {
		t.Errorf("expected invented paths to collapse into one series, got %d new series", got)
	}
}
