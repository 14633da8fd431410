// Package dataset loads the historical fight record set.
package dataset

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/fight-predictor/internal/models"
)

// Source supplies the raw historical dataset as CSV
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	Name() string
}

// FileSource reads the dataset from the local filesystem
type FileSource struct {
	Path string
}

// Open opens the CSV file
func (s FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewSourceError(s.Path, ErrCodeNotFound, "dataset file not found", err)
		}
		return nil, NewSourceError(s.Path, ErrCodeInvalidData, "failed to open dataset", err)
	}
	return f, nil
}

// Name returns the file path
func (s FileSource) Name() string {
	return s.Path
}

// HTTPSource downloads the dataset over HTTP(S)
type HTTPSource struct {
	URL    string
	Client *RateLimitedHTTPClient
}

// Open issues the GET request and returns the response body
func (s HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := s.Client.Get(ctx, s.URL)
	if err != nil {
		return nil, NewSourceError(s.URL, ErrCodeNetworkError, "failed to download dataset", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, NewSourceError(s.URL, ErrCodeNotFound, "dataset not found", nil)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, NewSourceError(s.URL, ErrCodeServerError, fmt.Sprintf("unexpected status: %d", resp.StatusCode), nil)
	}
	return resp.Body, nil
}

// Name returns the URL
func (s HTTPSource) Name() string {
	return s.URL
}

// NewSource picks an HTTP source for http(s) locations and a file source otherwise.
// client may be nil for file locations.
func NewSource(location string, client *RateLimitedHTTPClient) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		if client == nil {
			client = NewRateLimitedHTTPClient(DefaultHTTPClientConfig(), nil)
		}
		return HTTPSource{URL: location, Client: client}
	}
	return FileSource{Path: location}
}

// Load reads every fight row from the source in source order
func Load(ctx context.Context, src Source, logger *logrus.Logger) ([]models.FightRow, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	rows, err := NewCSVParser().Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", src.Name(), err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", src.Name(), ErrEmptyDataset)
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"source": src.Name(),
			"rows":   len(rows),
		}).Info("Dataset loaded")
	}

	return rows, nil
}

// Fingerprint identifies the content of a loaded dataset. Rows with the same
// names, flags and statistics in the same order share a fingerprint.
func Fingerprint(rows []models.FightRow) string {
	h := xxhash.New()
	var buf [8]byte
	writeFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	writeStats := func(s models.FighterStats) {
		for _, v := range []float64{s.SigStrAcc, s.StrDef, s.TDAcc, s.TDDef, s.SubAtt, s.Ctrl, s.Reach, s.Height, s.Wins, s.Losses} {
			writeFloat(v)
		}
	}

	for _, row := range rows {
		for _, s := range []string{row.RedName, row.BlueName, row.Winner} {
			h.WriteString(s)
			h.Write([]byte{0})
		}
		if row.TitleFight {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
		writeStats(row.Red)
		writeStats(row.Blue)
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
