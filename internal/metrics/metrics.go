// Package metrics expone métricas Prometheus del servicio: tráfico HTTP y
// el estado del catálogo, que se recalcula en cada scrape.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"pet-adoption/internal/domain/reports"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "petadopt"

// Summarizer es la parte del servicio de reportes que usa el collector.
type Summarizer interface {
	Summary(ctx context.Context) (reports.Report, error)
}

type Metrics struct {
	Registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New crea un registry propio (sin el global) con runtime, HTTP y catálogo.
// summary puede ser nil si no se quieren las métricas de catálogo.
func New(summary Summarizer) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
	)
	if summary != nil {
		reg.MustRegister(NewStoreCollector(summary))
	}
	return m
}

// Middleware usa el patrón de chi como label para no explotar la cardinalidad con ids.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// storeCollector publica los conteos del reporte como gauges.
type storeCollector struct {
	summary Summarizer
	timeout time.Duration

	petsBySpecies    *prometheus.Desc
	petsByStatus     *prometheus.Desc
	requestsByStatus *prometheus.Desc
	adoptionRate     *prometheus.Desc
}

func NewStoreCollector(summary Summarizer) prometheus.Collector {
	return &storeCollector{
		summary: summary,
		timeout: 2 * time.Second,
		petsBySpecies: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "pets_by_species"),
			"Pets in the catalogue by species.",
			[]string{"species"}, nil,
		),
		petsByStatus: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "pets_by_status"),
			"Pets in the catalogue by adoption status.",
			[]string{"status"}, nil,
		),
		requestsByStatus: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "adoption_requests"),
			"Adoption requests by status.",
			[]string{"status"}, nil,
		),
		adoptionRate: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "adoption_rate"),
			"Share of catalogued pets that are adopted.",
			nil, nil,
		),
	}
}

func (c *storeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.petsBySpecies
	ch <- c.petsByStatus
	ch <- c.requestsByStatus
	ch <- c.adoptionRate
}

func (c *storeCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	rep, err := c.summary.Summary(ctx)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.petsBySpecies, err)
		return
	}

	for species, n := range rep.PetsBySpecies {
		ch <- prometheus.MustNewConstMetric(c.petsBySpecies, prometheus.GaugeValue, float64(n), string(species))
	}
	for status, n := range rep.PetsByStatus {
		ch <- prometheus.MustNewConstMetric(c.petsByStatus, prometheus.GaugeValue, float64(n), string(status))
	}
	for status, n := range rep.RequestsByStatus {
		ch <- prometheus.MustNewConstMetric(c.requestsByStatus, prometheus.GaugeValue, float64(n), string(status))
	}
	ch <- prometheus.MustNewConstMetric(c.adoptionRate, prometheus.GaugeValue, rep.AdoptionRate)
}
