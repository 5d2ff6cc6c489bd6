// Package metrics exposes Prometheus instrumentation for lifecycle
// transitions and the HTTP boundary.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
)

// Transition results.
const (
	ResultOK         = "ok"
	ResultValidation = "validation"
	ResultNotFound   = "not_found"
	ResultConflict   = "conflict"
	ResultStore      = "store_error"
)

var (
	// transitions counts lifecycle operations by outcome.
	// Labels: op, result
	transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tigertrack",
		Name:      "transitions_total",
		Help:      "Lifecycle transitions by operation and result",
	}, []string{"op", "result"})

	// transitionDuration measures how long each lifecycle operation takes,
	// store round trips included.
	transitionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tigertrack",
		Name:      "transition_duration_seconds",
		Help:      "Lifecycle transition latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5},
	}, []string{"op"})

	// sweptItems counts records the sweeper archived.
	// Labels: reason (expired, unsolved)
	sweptItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tigertrack",
		Subsystem: "sweep",
		Name:      "archived_total",
		Help:      "Records archived by the background sweeper",
	}, []string{"reason"})

	// httpRequests counts API requests by method and status code.
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tigertrack",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method and status",
	}, []string{"method", "status"})
)

// Result classifies err into a transition result label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, model.ErrValidation):
		return ResultValidation
	case errors.Is(err, model.ErrNotFound):
		return ResultNotFound
	case errors.Is(err, model.ErrConflict):
		return ResultConflict
	default:
		return ResultStore
	}
}

// ObserveTransition records the outcome and latency of one lifecycle operation.
func ObserveTransition(op string, start time.Time, err error) {
	transitions.WithLabelValues(op, Result(err)).Inc()
	transitionDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// AddSwept records n records archived by the sweeper for reason.
func AddSwept(reason model.Reason, n int) {
	if n > 0 {
		sweptItems.WithLabelValues(string(reason)).Add(float64(n))
	}
}

// ObserveRequest records one served HTTP request.
func ObserveRequest(method string, status int) {
	httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
