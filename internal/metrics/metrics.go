// Package metrics provides the centralized Prometheus metrics registry for the predictor.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fight_predictor"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of fight predictions by predicted corner",
	}, []string{"winner_corner"})
	PredictionErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prediction_errors_total",
		Help:      "Total number of rejected prediction requests by reason and side",
	}, []string{"reason", "side"})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of API requests by route and status code",
	}, []string{"route", "status"})
)

// Gauge metrics
var (
	FighterRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "fighter_records",
		Help:      "Number of historical fight rows loaded into the record store",
	})
	KnownFighters = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "known_fighters",
		Help:      "Number of distinct fighter names across both corners",
	})
	PredictionCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "prediction_cache_hit_ratio",
		Help:      "Prediction cache hit ratio",
	})
)

// Histogram metrics
var (
	PredictionLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prediction_latency_seconds",
		Help:      "Latency of a single fight prediction in seconds",
		Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
	})
	PredictionConfidence = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prediction_confidence_percent",
		Help:      "Distribution of reported prediction confidence",
		Buckets:   []float64{50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(PredictionErrorsTotal)
		registry.MustRegister(HTTPRequestsTotal)

		registry.MustRegister(FighterRecords)
		registry.MustRegister(KnownFighters)
		registry.MustRegister(PredictionCacheHitRatio)

		registry.MustRegister(PredictionLatency)
		registry.MustRegister(PredictionConfidence)

		registry.MustRegister(TrainingRunsTotal)
		registry.MustRegister(TrainingDuration)
		registry.MustRegister(ModelAccuracy)
		registry.MustRegister(TrainingSamples)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPrediction records a successful prediction.
func RecordPrediction(winnerCorner string, confidence float64, durationSeconds float64) {
	PredictionsTotal.WithLabelValues(winnerCorner).Inc()
	PredictionConfidence.Observe(confidence)
	PredictionLatency.Observe(durationSeconds)
}

// RecordPredictionError records a rejected prediction.
func RecordPredictionError(reason, side string) {
	PredictionErrorsTotal.WithLabelValues(reason, side).Inc()
}

// RecordHTTPRequest records a served API request.
func RecordHTTPRequest(route string, status int) {
	HTTPRequestsTotal.WithLabelValues(route, statusLabel(status)).Inc()
}

// UpdateRecordStore updates the record store gauges.
func UpdateRecordStore(rows, fighters int) {
	FighterRecords.Set(float64(rows))
	KnownFighters.Set(float64(fighters))
}

// UpdateCacheHitRatio updates the prediction cache hit ratio gauge.
func UpdateCacheHitRatio(ratio float64) {
	PredictionCacheHitRatio.Set(ratio)
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
