package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/fight-predictor/internal/models"
)

// PredictRequest names the two fighters of a matchup
type PredictRequest struct {
	Red  string `json:"red" validate:"required,max=200"`
	Blue string `json:"blue" validate:"required,max=200"`
}

// PredictResponse is the rendered prediction
type PredictResponse struct {
	Message         string        `json:"message"`
	Winner          string        `json:"winner"`
	WinnerCorner    models.Corner `json:"winner_corner"`
	Confidence      float64       `json:"confidence"`
	ProbabilityRed  float64       `json:"probability_red"`
	ProbabilityBlue float64       `json:"probability_blue"`
}

// NotFoundResponse names the side and fighter that could not be resolved
type NotFoundResponse struct {
	Error string        `json:"error"`
	Side  models.Corner `json:"side"`
	Name  string        `json:"name"`
}

// FightersResponse lists every known fighter
type FightersResponse struct {
	Fighters []string `json:"fighters"`
}

// Predict handles POST /api/predict
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.errorResponse(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		h.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	outcome, err := h.predictor.PredictFight(r.Context(), req.Red, req.Blue)
	if err != nil {
		h.predictError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, PredictResponse{
		Message:         outcome.Message,
		Winner:          outcome.Winner,
		WinnerCorner:    outcome.WinnerCorner,
		Confidence:      outcome.Confidence.InexactFloat64(),
		ProbabilityRed:  outcome.ProbabilityRed,
		ProbabilityBlue: outcome.ProbabilityBlue,
	})
}

// Fighters handles GET /api/fighters
func (h *Handler) Fighters(w http.ResponseWriter, r *http.Request) {
	fighters := h.predictor.Fighters()
	if fighters == nil {
		fighters = []string{}
	}
	h.jsonResponse(w, http.StatusOK, FightersResponse{Fighters: fighters})
}

func (h *Handler) predictError(w http.ResponseWriter, err error) {
	var notFound *models.FighterNotFoundError
	switch {
	case errors.As(err, &notFound):
		h.jsonResponse(w, http.StatusNotFound, NotFoundResponse{
			Error: err.Error(),
			Side:  notFound.Side,
			Name:  notFound.Name,
		})
	case errors.Is(err, models.ErrInvalidInput):
		h.errorResponse(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.WithError(err).Error("Prediction failed")
		h.errorResponse(w, http.StatusInternalServerError, "prediction failed")
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("invalid %s: fighter name is required", jsonField(fe.Field()))
	case "max":
		return fmt.Sprintf("invalid %s: must be at most %s characters", jsonField(fe.Field()), fe.Param())
	default:
		return fmt.Sprintf("invalid %s", jsonField(fe.Field()))
	}
}

func jsonField(field string) string {
	switch field {
	case "Red":
		return "red"
	case "Blue":
		return "blue"
	}
	return field
}
