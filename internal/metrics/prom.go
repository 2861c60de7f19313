// internal/metrics/prom.go
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prom is a Collector backed by a private Prometheus registry.
type Prom struct {
	registry *prometheus.Registry

	reads         *prometheus.CounterVec
	readDuration  prometheus.Histogram
	cycles        *prometheus.CounterVec
	cycleDuration prometheus.Histogram
	values        *prometheus.GaugeVec
	health        prometheus.Gauge
	publishes     *prometheus.CounterVec
}

// NewProm creates a collector with all metrics registered.
func NewProm() *Prom {
	p := &Prom{
		registry: prometheus.NewRegistry(),
		reads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sensorreader_reads_total",
			Help: "Per-category range read passes.",
		}, []string{"category", "result"}),
		readDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sensorreader_read_duration_seconds",
			Help:    "Duration of one per-category read pass.",
			Buckets: prometheus.DefBuckets,
		}),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sensorreader_cycles_total",
			Help: "Full multi-category read cycles.",
		}, []string{"result"}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sensorreader_cycle_duration_seconds",
			Help:    "Duration of one full read cycle.",
			Buckets: prometheus.DefBuckets,
		}),
		values: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sensorreader_sensor_value",
			Help: "Latest decoded sensor value.",
		}, []string{"sensor"}),
		health: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sensorreader_source_health",
			Help: "Source device health code (0 unknown, 1 ok, 2 error).",
		}),
		publishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sensorreader_publishes_total",
			Help: "Sink deliveries.",
		}, []string{"sink", "result"}),
	}

	p.registry.MustRegister(
		p.reads, p.readDuration,
		p.cycles, p.cycleDuration,
		p.values, p.health, p.publishes,
	)

	return p
}

// Handler returns the HTTP handler serving the registry.
func (p *Prom) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func (p *Prom) ObserveRead(category string, d time.Duration, err error) {
	p.reads.WithLabelValues(category, result(err)).Inc()
	p.readDuration.Observe(d.Seconds())
}

func (p *Prom) ObserveCycle(d time.Duration, err error) {
	p.cycles.WithLabelValues(result(err)).Inc()
	p.cycleDuration.Observe(d.Seconds())
}

func (p *Prom) SetSensorValue(id string, v float64) {
	p.values.WithLabelValues(id).Set(v)
}

func (p *Prom) SetHealth(code float64) {
	p.health.Set(code)
}

func (p *Prom) ObservePublish(sink string, err error) {
	p.publishes.WithLabelValues(sink, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
