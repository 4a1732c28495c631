// Package metrics collects statistics about generation runs. They can be
// written in the Prometheus text format for the node exporter's textfile
// collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/theMomax/weathersim/config"
	"github.com/theMomax/weathersim/models/condition"
)

// Config paths
const (
	PathTextfile = "metrics.textfile"
)

const namespace = "weathersim"

func init() {
	config.RootCtx.PersistentFlags().String(PathTextfile, "", "file to write run metrics to in Prometheus text format (disabled if empty)")
	config.Viper.BindPFlag(PathTextfile, config.RootCtx.PersistentFlags().Lookup(PathTextfile))
}

// Collector holds the metrics of a generation run.
type Collector struct {
	registry *prometheus.Registry

	ObservationsTotal     *prometheus.CounterVec
	ValidationErrorsTotal *prometheus.CounterVec
	GenerationDuration    prometheus.Histogram
	Pressure              prometheus.Histogram
	Humidity              prometheus.Histogram
}

// NewCollector returns a Collector registered on its own registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	c := &Collector{
		registry: reg,

		ObservationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "observations_total",
				Help:      "Total number of generated observations by condition",
			},
			[]string{"condition"},
		),

		ValidationErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_errors_total",
				Help:      "Total number of rejected observations by field",
			},
			[]string{"field"},
		),

		GenerationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "Duration of generation runs in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
			},
		),

		Pressure: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pressure_hectopascals",
				Help:      "Generated air pressure in hPa",
				Buckets:   prometheus.LinearBuckets(700, 50, 12),
			},
		),

		Humidity: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "humidity_percent",
				Help:      "Generated relative humidity in percent",
				Buckets:   prometheus.LinearBuckets(10, 10, 10),
			},
		),
	}

	// expose every condition, even if it never occurs
	for _, cond := range condition.All {
		c.ObservationsTotal.WithLabelValues(string(cond))
	}

	return c
}

// RecordObservation counts an observation and its pressure in Pa and
// humidity in percent.
func (c *Collector) RecordObservation(cond condition.Condition, pressure, humidity float64) {
	c.ObservationsTotal.WithLabelValues(string(cond)).Inc()
	c.Pressure.Observe(pressure / 100)
	c.Humidity.Observe(humidity)
}

// RecordValidationError counts a rejected observation.
func (c *Collector) RecordValidationError(field string) {
	c.ValidationErrorsTotal.WithLabelValues(field).Inc()
}

// ObserveDuration records the duration of a run.
func (c *Collector) ObserveDuration(d time.Duration) {
	c.GenerationDuration.Observe(d.Seconds())
}

// Gatherer returns the registry holding c's metrics.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteToTextfile writes c's metrics to path atomically.
func (c *Collector) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

// WriteFromConfig writes c's metrics to the configured textfile, if any.
func (c *Collector) WriteFromConfig() (path string, err error) {
	path = config.Viper.GetString(PathTextfile)
	if path == "" {
		return "", nil
	}
	return path, c.WriteToTextfile(path)
}
