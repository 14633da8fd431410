package models

// Corner identifies the side of the cage a fighter was assigned to
type Corner string

const (
	CornerRed  Corner = "red"
	CornerBlue Corner = "blue"
)

// Prefix returns the dataset column prefix used for the corner ("r" or "b")
func (c Corner) Prefix() string {
	switch c {
	case CornerRed:
		return "r"
	case CornerBlue:
		return "b"
	default:
		return ""
	}
}

// FighterStats holds one fighter's career aggregates as recorded for a single
// corner of a single historical bout. Absent source values are stored as 0.
type FighterStats struct {
	Name      string  `json:"name"`
	SigStrAcc float64 `json:"sig_str_acc"`
	StrDef    float64 `json:"str_def"`
	TDAcc     float64 `json:"td_acc"`
	TDDef     float64 `json:"td_def"`
	SubAtt    float64 `json:"sub_att"`
	Ctrl      float64 `json:"ctrl"`
	Reach     float64 `json:"reach"`
	Height    float64 `json:"height"`
	Wins      float64 `json:"wins"`
	Losses    float64 `json:"losses"`
}

// FightRow is one row of the historical dataset
type FightRow struct {
	Index      int          `json:"index"`
	RedName    string       `json:"r_name"`
	BlueName   string       `json:"b_name"`
	Winner     string       `json:"winner"`
	TitleFight bool         `json:"title_fight"`
	Red        FighterStats `json:"red"`
	Blue       FighterStats `json:"blue"`
}

// Stats returns the statistics recorded for the given corner
func (r *FightRow) Stats(corner Corner) FighterStats {
	if corner == CornerBlue {
		return r.Blue
	}
	return r.Red
}

// RedWon reports whether the recorded winner is the red-corner fighter
func (r *FightRow) RedWon() bool {
	return r.Winner == r.RedName
}
