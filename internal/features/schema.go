// Package features defines the fight feature schema shared by training and inference.
package features

import (
	"github.com/yourusername/fight-predictor/internal/models"
)

// Epsilon keeps the win ratio defined for fighters with no recorded bouts.
const Epsilon = 1e-5

// Dim is the length of a feature vector.
const Dim = 9

// Names lists the features in the order every vector, scaler and classifier uses.
var Names = []string{
	"sig_str_diff",
	"str_def_diff",
	"td_diff",
	"td_def_diff",
	"sub_diff",
	"ctrl_diff",
	"reach_diff",
	"height_diff",
	"wins_perc_diff",
}

// Vector is the red-minus-blue difference between two fighters.
type Vector struct {
	SigStrDiff   float64 `json:"sig_str_diff"`
	StrDefDiff   float64 `json:"str_def_diff"`
	TDDiff       float64 `json:"td_diff"`
	TDDefDiff    float64 `json:"td_def_diff"`
	SubDiff      float64 `json:"sub_diff"`
	CtrlDiff     float64 `json:"ctrl_diff"`
	ReachDiff    float64 `json:"reach_diff"`
	HeightDiff   float64 `json:"height_diff"`
	WinsPercDiff float64 `json:"wins_perc_diff"`
}

// Values returns the vector laid out in Names order.
func (v Vector) Values() []float64 {
	return []float64{
		v.SigStrDiff,
		v.StrDefDiff,
		v.TDDiff,
		v.TDDefDiff,
		v.SubDiff,
		v.CtrlDiff,
		v.ReachDiff,
		v.HeightDiff,
		v.WinsPercDiff,
	}
}

// WinRatio is wins / (wins + losses + Epsilon).
func WinRatio(wins, losses float64) float64 {
	return wins / (wins + losses + Epsilon)
}

// Build computes the difference vector for red against blue.
func Build(red, blue models.FighterStats) Vector {
	return Vector{
		SigStrDiff:   red.SigStrAcc - blue.SigStrAcc,
		StrDefDiff:   red.StrDef - blue.StrDef,
		TDDiff:       red.TDAcc - blue.TDAcc,
		TDDefDiff:    red.TDDef - blue.TDDef,
		SubDiff:      red.SubAtt - blue.SubAtt,
		CtrlDiff:     red.Ctrl - blue.Ctrl,
		ReachDiff:    red.Reach - blue.Reach,
		HeightDiff:   red.Height - blue.Height,
		WinsPercDiff: WinRatio(red.Wins, red.Losses) - WinRatio(blue.Wins, blue.Losses),
	}
}

// SameSchema reports whether names matches Names exactly, including order.
func SameSchema(names []string) bool {
	if len(names) != len(Names) {
		return false
	}
	for i, name := range names {
		if name != Names[i] {
			return false
		}
	}
	return true
}
