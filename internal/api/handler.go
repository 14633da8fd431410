// Package api exposes the prediction service over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/fight-predictor/internal/models"
)

// MaxBodySize limits the size of request bodies to 64KB
const MaxBodySize = 65536

// Predictor is the part of the prediction service the handlers need
type Predictor interface {
	PredictFight(ctx context.Context, red, blue string) (*models.Outcome, error)
	Fighters() []string
}

type Handler struct {
	predictor Predictor
	logger    *logrus.Entry
	validator *validator.Validate
}

func NewHandler(predictor Predictor, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		predictor: predictor,
		logger:    log.WithField("component", "api"),
		validator: validator.New(),
	}
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}
