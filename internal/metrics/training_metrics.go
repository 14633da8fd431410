package metrics

import "github.com/prometheus/client_golang/prometheus"

// Training counter vectors
var (
	TrainingRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "training_runs_total",
		Help:      "Total number of training runs by status",
	}, []string{"status"})
)

// Training histograms
var (
	TrainingDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "training_duration_seconds",
		Help:      "Duration of training runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
	})
)

// Training gauges
var (
	ModelAccuracy = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "model_accuracy",
		Help:      "Accuracy of the most recently trained classifier on its evaluation partition",
	})
	TrainingSamples = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "training_samples",
		Help:      "Number of samples in the most recent training run by partition",
	}, []string{"partition"})
)

// RecordTrainingRun records a finished training run.
func RecordTrainingRun(status string, durationSeconds float64) {
	TrainingRunsTotal.WithLabelValues(status).Inc()
	TrainingDuration.Observe(durationSeconds)
}

// UpdateModelEvaluation updates the evaluation gauges of the latest model.
func UpdateModelEvaluation(accuracy float64, trainSamples, testSamples int) {
	ModelAccuracy.Set(accuracy)
	TrainingSamples.WithLabelValues("train").Set(float64(trainSamples))
	TrainingSamples.WithLabelValues("test").Set(float64(testSamples))
}
