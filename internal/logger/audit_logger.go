package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogModelActivated logs a model registry entry becoming the active model.
func (al *AuditLogger) LogModelActivated(modelID, version, modelPath string, accuracy float64) {
	al.WithFields(logrus.Fields{
		"model_id":   modelID,
		"version":    version,
		"model_path": modelPath,
		"accuracy":   accuracy,
	}).Info("Model activated")
}

// LogRequest logs a served API request.
func (al *AuditLogger) LogRequest(method, path string, status int, duration time.Duration, remoteAddr, requestID string) {
	al.WithFields(logrus.Fields{
		"method":      method,
		"path":        path,
		"status":      status,
		"duration_ms": duration.Milliseconds(),
		"remote_addr": remoteAddr,
		"request_id":  requestID,
	}).Info("Request served")
}
