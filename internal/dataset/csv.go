package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/yourusername/fight-predictor/internal/models"
)

const (
	colRedName    = "r_name"
	colBlueName   = "b_name"
	colWinner     = "winner"
	colTitleFight = "title_fight"
)

// per-corner numeric columns, without the r_/b_ prefix
var statColumns = []string{
	"sig_str_acc", "str_def", "td_acc", "td_def", "sub_att",
	"ctrl", "reach", "height", "wins", "losses",
}

// NormalizeName lower-cases and trims a fighter name
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CSVParser turns the historical CSV export into fight rows
type CSVParser struct{}

// NewCSVParser creates a new CSV parser
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse reads the header and every data row. Unknown columns are ignored.
func (p *CSVParser) Parse(r io.Reader) ([]models.FightRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, required := range []string{colRedName, colBlueName} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	var rows []models.FightRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}
		stats := func(corner models.Corner, name string) models.FighterStats {
			prefix := corner.Prefix() + "_"
			values := make([]float64, len(statColumns))
			for i, col := range statColumns {
				values[i] = parseNumber(get(prefix + col))
			}
			return models.FighterStats{
				Name:      name,
				SigStrAcc: values[0],
				StrDef:    values[1],
				TDAcc:     values[2],
				TDDef:     values[3],
				SubAtt:    values[4],
				Ctrl:      values[5],
				Reach:     values[6],
				Height:    values[7],
				Wins:      values[8],
				Losses:    values[9],
			}
		}

		redName := NormalizeName(get(colRedName))
		blueName := NormalizeName(get(colBlueName))
		rows = append(rows, models.FightRow{
			Index:      len(rows),
			RedName:    redName,
			BlueName:   blueName,
			Winner:     NormalizeName(get(colWinner)),
			TitleFight: parseFlag(get(colTitleFight)),
			Red:        stats(models.CornerRed, redName),
			Blue:       stats(models.CornerBlue, blueName),
		})
	}

	return rows, nil
}

// parseNumber maps empty, NaN-like and unparsable cells to 0
func parseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "1.0", "true", "t", "yes":
		return true
	default:
		return false
	}
}
