package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SeederCollector bundles the Prometheus metrics of one generation run.
// A nil *SeederCollector is valid and records nothing.
type SeederCollector struct {
	gatherer prometheus.Gatherer

	RecordsGenerated   *prometheus.CounterVec
	ArtifactBytes      prometheus.Gauge
	GenerationDuration prometheus.Histogram
	LastSuccess        prometheus.Gauge
}

// NewSeederCollector registers seeder metrics against reg, defaulting to the
// global registry when nil. Already-registered collectors are reused.
func NewSeederCollector(reg prometheus.Registerer) (*SeederCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	records, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "seeder_records_generated_total",
		Help: "Synthetic speed-test records generated, labeled by network type.",
	}, []string{"network_type"}), "seeder_records_generated_total")
	if err != nil {
		return nil, err
	}
	bytes, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "seeder_artifact_bytes",
		Help: "Size in bytes of the last SQL artifact written.",
	}), "seeder_artifact_bytes")
	if err != nil {
		return nil, err
	}
	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "seeder_generation_duration_seconds",
		Help:    "Wall time of a full generate-render-write run.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}), "seeder_generation_duration_seconds")
	if err != nil {
		return nil, err
	}
	last, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "seeder_last_success_timestamp_seconds",
		Help: "Unix time of the last successful run.",
	}), "seeder_last_success_timestamp_seconds")
	if err != nil {
		return nil, err
	}

	return &SeederCollector{
		gatherer:           gatherer,
		RecordsGenerated:   records,
		ArtifactBytes:      bytes,
		GenerationDuration: duration,
		LastSuccess:        last,
	}, nil
}

// ObserveRecord counts one generated record.
func (c *SeederCollector) ObserveRecord(networkType string) {
	if c == nil || c.RecordsGenerated == nil {
		return
	}
	c.RecordsGenerated.WithLabelValues(networkType).Inc()
}

// ObserveRun records the outcome of a successful run.
func (c *SeederCollector) ObserveRun(bytes int, took time.Duration, finished time.Time) {
	if c == nil {
		return
	}
	if c.ArtifactBytes != nil {
		c.ArtifactBytes.Set(float64(bytes))
	}
	if c.GenerationDuration != nil {
		c.GenerationDuration.Observe(took.Seconds())
	}
	if c.LastSuccess != nil {
		c.LastSuccess.Set(float64(finished.Unix()))
	}
}

// WriteTextfile dumps the gathered metrics in the node_exporter textfile
// format, the usual exposition path for batch jobs.
func (c *SeederCollector) WriteTextfile(path string) error {
	if c == nil {
		return nil
	}
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerGauge(reg prometheus.Registerer, g prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return g, nil
}
