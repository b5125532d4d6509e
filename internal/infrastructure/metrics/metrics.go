// Package metrics expone métricas Prometheus de la API (latencia, volumen y peticiones en curso)
// y contadores de negocio del inventario.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores registrados en un registro propio.
type Metrics struct {
	registry *prometheus.Registry

	inFlight        prometheus.Gauge
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	stockMovements  *prometheus.CounterVec
	insights        *prometheus.CounterVec
}

// New crea y registra los colectores. Incluye los colectores de proceso y runtime de Go.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		stockMovements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zola_stock_movements_total",
			Help: "Stock movements recorded, by type.",
		}, []string{"type"}),
		insights: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zola_ai_insights_requests_total",
			Help: "AI insights requests, by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(
		m.inFlight, m.requestsTotal, m.requestDuration, m.stockMovements, m.insights,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry devuelve el registro (útil en tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Middleware mide cada petición. La etiqueta path usa la ruta registrada (/api/products/:id),
// no la URL concreta, para no disparar la cardinalidad.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		m.inFlight.Inc()
		defer m.inFlight.Dec()
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		path := c.Route().Path
		if path == "" || (path == "/" && c.Path() != "/") {
			path = "unmatched"
		}
		labels := []string{c.Method(), path, strconv.Itoa(status)}
		m.requestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(labels...).Inc()
		return err
	}
}

// Handler sirve el formato de exposición de Prometheus sobre Fiber.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// StockMovementRecorded incrementa el contador del tipo de movimiento.
func (m *Metrics) StockMovementRecorded(movementType string) {
	if m == nil {
		return
	}
	m.stockMovements.WithLabelValues(movementType).Inc()
}

// InsightsRequested registra el resultado de una petición de insights ("ok", "unavailable", "timeout", "error").
func (m *Metrics) InsightsRequested(outcome string) {
	if m == nil {
		return
	}
	m.insights.WithLabelValues(outcome).Inc()
}
