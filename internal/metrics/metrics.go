package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mind-engage/mindengage-grades/internal/grading"
)

type Metrics struct {
	gatherer prometheus.Gatherer

	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	GradesComputed  *prometheus.CounterVec
	Advisories      *prometheus.CounterVec
	FinalGrade      prometheus.Histogram
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in tests.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2},
			},
			[]string{"method", "endpoint"},
		),
		GradesComputed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grades_computed_total",
				Help: "Grades computed, by kind (preview|record)",
			},
			[]string{"kind"},
		),
		Advisories: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grading_advisories_total",
				Help: "Input advisories raised while grading",
			},
			[]string{"code"},
		),
		FinalGrade: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "grading_final_grade",
			Help:    "Distribution of recorded final grades",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		}),
	}
	reg.MustRegister(m.RequestCounter, m.RequestDuration, m.GradesComputed, m.Advisories, m.FinalGrade)
	return m
}

// ObserveGrade counts one computed breakdown. kind is "preview" or "record";
// only recorded grades feed the final grade histogram.
func (m *Metrics) ObserveGrade(kind string, b grading.Breakdown) {
	if m == nil {
		return
	}
	m.GradesComputed.WithLabelValues(kind).Inc()
	for _, a := range b.Advisories {
		m.Advisories.WithLabelValues(a.Code).Inc()
	}
	if kind == "record" {
		m.FinalGrade.Observe(b.FinalGrade)
	}
}

// Middleware records request count and latency keyed by the chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		// raw paths would give every 404 its own series
		endpoint := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			endpoint = rc.RoutePattern()
		}
		m.RequestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(ww.Status())).Inc()
		m.RequestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
