package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/fight-predictor/internal/config"
	"github.com/yourusername/fight-predictor/internal/dataset"
	"github.com/yourusername/fight-predictor/internal/features"
	"github.com/yourusername/fight-predictor/internal/logger"
	"github.com/yourusername/fight-predictor/internal/metrics"
	"github.com/yourusername/fight-predictor/internal/ml"
	"github.com/yourusername/fight-predictor/internal/models"
	"github.com/yourusername/fight-predictor/internal/repository"
)

// TrainingConfig configures one training run
type TrainingConfig struct {
	DatasetPath        string
	ScalerPath         string
	ModelPath          string
	LockPath           string
	ModelName          string
	TestSize           float64
	Seed               int64
	ExcludeTitleFights bool
	Classifier         ml.LogisticRegressionConfig
}

// TrainingConfigFrom derives a TrainingConfig from the application config
func TrainingConfigFrom(cfg *config.Config) TrainingConfig {
	return TrainingConfig{
		DatasetPath:        cfg.Dataset.Path,
		ScalerPath:         cfg.Artifacts.ScalerPath,
		ModelPath:          cfg.Artifacts.ModelPath,
		LockPath:           cfg.TrainingLockPath(),
		ModelName:          cfg.Training.ModelName,
		TestSize:           cfg.Training.TestSize,
		Seed:               cfg.Training.Seed,
		ExcludeTitleFights: cfg.Training.ExcludeTitleFights,
		Classifier: ml.LogisticRegressionConfig{
			C:             cfg.Training.RegularizationC,
			LearningRate:  cfg.Training.LearningRate,
			MaxIterations: cfg.Training.MaxIterations,
			Tolerance:     cfg.Training.Tolerance,
		},
	}
}

// TrainingReport summarizes a finished run
type TrainingReport struct {
	ModelID             uuid.UUID
	Version             string
	TotalRows           int
	TitleFightsExcluded int
	TrainSamples        int
	TestSamples         int
	Iterations          int
	Evaluation          ml.Evaluation
	TrainedAt           time.Time
	Duration            time.Duration
	ScalerPath          string
	ModelPath           string
}

// TrainingService fits and persists the scaler and classifier
type TrainingService struct {
	cfg    TrainingConfig
	client *dataset.RateLimitedHTTPClient
	models repository.ModelRepository
	log    *logrus.Logger
	tlog   *logger.TrainingLogger
	audit  *logger.AuditLogger
	now    func() time.Time
}

// NewTrainingService creates a training service. client and modelRepo may be nil.
func NewTrainingService(cfg TrainingConfig, client *dataset.RateLimitedHTTPClient, modelRepo repository.ModelRepository, log *logrus.Logger) *TrainingService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cfg.TestSize == 0 {
		cfg.TestSize = ml.DefaultTestSize
	}
	return &TrainingService{
		cfg:    cfg,
		client: client,
		models: modelRepo,
		log:    log,
		tlog:   logger.NewTrainingLogger(log),
		audit:  logger.NewAuditLogger(log),
		now:    time.Now,
	}
}

// BuildTrainingSet turns fight rows into feature rows and labels. A row is
// labelled 1 when the recorded winner is the red corner.
func BuildTrainingSet(rows []models.FightRow) ([][]float64, []int) {
	X := make([][]float64, len(rows))
	y := make([]int, len(rows))
	for i := range rows {
		X[i] = features.Build(rows[i].Red, rows[i].Blue).Values()
		if rows[i].RedWon() {
			y[i] = 1
		}
	}
	return X, y
}

// Run executes one training run end to end. Only one run may hold the
// artifact lock at a time; a concurrent run fails with ErrTrainingInProgress.
func (s *TrainingService) Run(ctx context.Context) (report *TrainingReport, err error) {
	start := s.now()
	defer func() {
		status := "success"
		if err != nil {
			status = "failure"
		}
		metrics.RecordTrainingRun(status, time.Since(start).Seconds())
	}()

	release, err := acquireLock(s.cfg.LockPath)
	if err != nil {
		return nil, err
	}
	defer release()

	src := dataset.NewSource(s.cfg.DatasetPath, s.client)
	rows, err := dataset.Load(ctx, src, s.log)
	if err != nil {
		s.tlog.LogTrainingFailed("load_dataset", err)
		return nil, err
	}

	report = &TrainingReport{TotalRows: len(rows)}
	if s.cfg.ExcludeTitleFights {
		kept := rows[:0:0]
		for _, row := range rows {
			if row.TitleFight {
				report.TitleFightsExcluded++
				continue
			}
			kept = append(kept, row)
		}
		rows = kept
	}
	s.tlog.LogDatasetPrepared(src.Name(), report.TotalRows, report.TitleFightsExcluded, len(rows))

	X, y := BuildTrainingSet(rows)
	trainIdx, testIdx, err := ml.TrainTestSplit(len(X), s.cfg.TestSize, s.cfg.Seed)
	if err != nil {
		s.tlog.LogTrainingFailed("split", err)
		return nil, err
	}
	xTrain, yTrain := gather(X, y, trainIdx)
	xTest, yTest := gather(X, y, testIdx)
	report.TrainSamples, report.TestSamples = len(xTrain), len(xTest)
	s.tlog.LogSplit(len(xTrain), len(xTest), s.cfg.Seed)

	scaler := ml.NewStandardScaler()
	if err := scaler.Fit(xTrain); err != nil {
		s.tlog.LogTrainingFailed("fit_scaler", err)
		return nil, err
	}
	xTrainScaled, err := scaler.TransformAll(xTrain)
	if err != nil {
		return nil, err
	}
	xTestScaled, err := scaler.TransformAll(xTest)
	if err != nil {
		return nil, err
	}

	classifier := ml.NewLogisticRegression(s.cfg.Classifier)
	if err := classifier.Fit(xTrainScaled, yTrain); err != nil {
		s.tlog.LogTrainingFailed("fit_classifier", err)
		return nil, err
	}
	report.Iterations = classifier.Iterations

	yPred := make([]int, len(xTestScaled))
	for i, row := range xTestScaled {
		if yPred[i], err = classifier.Predict(row); err != nil {
			return nil, err
		}
	}
	if report.Evaluation, err = ml.Evaluate(yTest, yPred); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.TrainedAt = s.now().UTC()
	report.Version = VersionFromTime(report.TrainedAt)
	if err := ml.SaveScaler(s.cfg.ScalerPath, scaler, report.TrainedAt); err != nil {
		s.tlog.LogTrainingFailed("save_scaler", err)
		return nil, err
	}
	if err := ml.SaveClassifier(s.cfg.ModelPath, classifier, report.TrainedAt); err != nil {
		s.tlog.LogTrainingFailed("save_classifier", err)
		return nil, err
	}
	report.ScalerPath, report.ModelPath = s.cfg.ScalerPath, s.cfg.ModelPath
	s.tlog.LogArtifactsSaved(s.cfg.ScalerPath, s.cfg.ModelPath)

	if s.models != nil {
		if err := s.register(ctx, report, classifier); err != nil {
			s.tlog.LogTrainingFailed("register", err)
			return nil, err
		}
	}

	report.Duration = s.now().Sub(start)
	metrics.UpdateModelEvaluation(report.Evaluation.Accuracy, report.TrainSamples, report.TestSamples)
	s.tlog.LogTrainingCompleted(report.Version, report.Evaluation.Accuracy, report.Iterations, report.Duration)
	return report, nil
}

// register records the run in the model registry and activates it
func (s *TrainingService) register(ctx context.Context, report *TrainingReport, classifier *ml.LogisticRegression) error {
	metricsJSON, err := json.Marshal(map[string]interface{}{
		"accuracy":         report.Evaluation.Accuracy,
		"confusion_matrix": report.Evaluation.Confusion,
		"train_samples":    report.TrainSamples,
		"test_samples":     report.TestSamples,
	})
	if err != nil {
		return err
	}
	hyperJSON, err := json.Marshal(map[string]interface{}{
		"classifier": classifier.Config,
		"test_size":  s.cfg.TestSize,
		"seed":       s.cfg.Seed,
	})
	if err != nil {
		return err
	}

	entry := &models.Model{
		ID:              uuid.New(),
		Name:            s.cfg.ModelName,
		Version:         report.Version,
		ModelType:       ml.KindLogisticRegression,
		Path:            s.cfg.ModelPath,
		ScalerPath:      s.cfg.ScalerPath,
		Metrics:         metricsJSON,
		Hyperparameters: hyperJSON,
		TrainedAt:       report.TrainedAt,
	}
	if err := s.models.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to register model: %w", err)
	}
	if err := s.models.SetActive(ctx, entry.ID); err != nil {
		return fmt.Errorf("failed to activate model: %w", err)
	}

	report.ModelID = entry.ID
	s.audit.LogModelActivated(entry.ID.String(), entry.Version, entry.Path, report.Evaluation.Accuracy)
	return nil
}

func gather(X [][]float64, y []int, idx []int) ([][]float64, []int) {
	xs := make([][]float64, len(idx))
	ys := make([]int, len(idx))
	for i, j := range idx {
		xs[i] = X[j]
		ys[i] = y[j]
	}
	return xs, ys
}
