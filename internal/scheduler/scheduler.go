// Package scheduler runs periodic model retraining on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/fight-predictor/internal/service"
)

// TrainingRunner runs one training pass
type TrainingRunner interface {
	Run(ctx context.Context) (*service.TrainingReport, error)
}

// Scheduler manages scheduled retraining jobs
type Scheduler struct {
	cron       *cron.Cron
	runner     TrainingRunner
	logger     *logrus.Entry
	jobTimeout time.Duration
	onComplete func(*service.TrainingReport)

	mu        sync.RWMutex
	isRunning bool
	jobIDs    []cron.EntryID
}

// NewScheduler creates a new scheduler. Overlapping runs are skipped.
func NewScheduler(runner TrainingRunner, logger *logrus.Logger) *Scheduler {
	entry := logger.WithField("component", "scheduler")
	cl := cronLogger{entry: entry}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		runner:     runner,
		logger:     entry,
		jobTimeout: time.Hour,
		jobIDs:     make([]cron.EntryID, 0),
	}
}

// OnComplete registers a callback invoked after each successful run
func (s *Scheduler) OnComplete(fn func(*service.TrainingReport)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onComplete = fn
}

// ScheduleRetraining schedules retraining with a standard cron expression or descriptor
func (s *Scheduler) ScheduleRetraining(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	entryID, err := s.cron.AddFunc(cronExpression, func() { s.runJob(context.Background()) })
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("schedule", cronExpression).Info("Scheduled retraining job")

	return nil
}

func (s *Scheduler) runJob(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, s.jobTimeout)
	defer cancel()

	s.logger.Info("Starting scheduled retraining")
	report, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Scheduled retraining failed")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"version":  report.Version,
		"accuracy": report.Evaluation.Accuracy,
	}).Info("Scheduled retraining completed")

	s.mu.RLock()
	onComplete := s.onComplete
	s.mu.RUnlock()
	if onComplete != nil {
		onComplete(report)
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")
}

// NextRun returns the next scheduled run time, or the zero time when nothing is scheduled
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var next time.Time
	for _, id := range s.jobIDs {
		entry := s.cron.Entry(id)
		if entry.Next.IsZero() {
			continue
		}
		if next.IsZero() || entry.Next.Before(next) {
			next = entry.Next
		}
	}
	return next
}

// cronLogger adapts logrus to cron.Logger
type cronLogger struct {
	entry *logrus.Entry
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(toFields(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(toFields(keysAndValues)).WithError(err).Error(msg)
}

func toFields(keysAndValues []interface{}) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
