package dataset

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/fight-predictor/internal/config"
	"github.com/yourusername/fight-predictor/internal/models"
)

const sampleCSV = `r_name,b_name,winner,title_fight,r_sig_str_acc,b_sig_str_acc,r_str_def,b_str_def,r_td_acc,b_td_acc,r_td_def,b_td_def,r_sub_att,b_sub_att,r_ctrl,b_ctrl,r_reach,b_reach,r_height,b_height,r_wins,b_wins,r_losses,b_losses
  Jon Jones ,Daniel Cormier,Jon Jones,1,0.58,0.52,0.64,0.55,0.45,0.43,0.95,0.8,0.5,0.4,120,90,84.5,72.5,76,71,26,22,1,3
Israel Adesanya,Alex Pereira,ALEX PEREIRA,0,0.5,0.62,0.6,,0.1,0,0.8,0.7,0.1,NaN,30,10,80,79,76,76,24,7,2,1
`

func parseSample(t *testing.T) []models.FightRow {
	t.Helper()
	rows, err := NewCSVParser().Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	return rows
}

func TestParseNormalizesNames(t *testing.T) {
	rows := parseSample(t)

	assert.Equal(t, "jon jones", rows[0].RedName)
	assert.Equal(t, "daniel cormier", rows[0].BlueName)
	assert.Equal(t, "jon jones", rows[0].Winner)
	assert.Equal(t, "jon jones", rows[0].Red.Name)
	assert.Equal(t, "alex pereira", rows[1].Winner)
	assert.True(t, rows[0].RedWon())
	assert.False(t, rows[1].RedWon())
}

func TestParseKeepsSourceOrder(t *testing.T) {
	rows := parseSample(t)
	for i, row := range rows {
		assert.Equal(t, i, row.Index)
	}
}

func TestParseMissingValuesAreZero(t *testing.T) {
	rows := parseSample(t)

	assert.Zero(t, rows[1].Blue.StrDef, "empty cell")
	assert.Zero(t, rows[1].Blue.SubAtt, "NaN cell")
	assert.InDelta(t, 0.62, rows[1].Blue.SigStrAcc, 1e-12)
	assert.InDelta(t, 84.5, rows[0].Red.Reach, 1e-12)
	assert.Equal(t, 26.0, rows[0].Red.Wins)
	assert.Equal(t, 3.0, rows[0].Blue.Losses)
}

func TestParseTitleFlag(t *testing.T) {
	rows := parseSample(t)
	assert.True(t, rows[0].TitleFight)
	assert.False(t, rows[1].TitleFight)

	for raw, want := range map[string]bool{"1": true, "1.0": true, "True": true, "0": false, "": false, "0.0": false} {
		assert.Equal(t, want, parseFlag(raw), raw)
	}
}

func TestParseAbsentStatColumns(t *testing.T) {
	rows, err := NewCSVParser().Parse(strings.NewReader("r_name,b_name\nA,B\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.FighterStats{Name: "a"}, rows[0].Red)
	assert.Equal(t, "", rows[0].Winner)
}

func TestParseMissingNameColumn(t *testing.T) {
	_, err := NewCSVParser().Parse(strings.NewReader("r_name,winner\nA,A\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

func TestNormalizeNameIsIdempotent(t *testing.T) {
	once := NormalizeName("  Conor McGregor ")
	assert.Equal(t, "conor mcgregor", once)
	assert.Equal(t, once, NormalizeName(once))
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ufc.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	rows, err := Load(context.Background(), NewSource(path, nil), nil)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), NewSource(filepath.Join(t.TempDir(), "missing.csv"), nil), nil)
	require.Error(t, err)

	var srcErr SourceError
	require.True(t, errors.As(err, &srcErr))
	assert.Equal(t, ErrCodeNotFound, srcErr.Code)
}

func TestLoadEmptyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("r_name,b_name\n"), 0o644))

	_, err := Load(context.Background(), NewSource(path, nil), nil)
	assert.True(t, errors.Is(err, ErrEmptyDataset))
}

func TestLoadFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ufc.csv" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	client := NewRateLimitedHTTPClient(HTTPClientConfig{
		Timeout:      5 * time.Second,
		MaxRetries:   1,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
		RateLimit:    100,
	}, nil)
	defer client.Close()

	src := NewSource(server.URL+"/ufc.csv", client)
	_, isHTTP := src.(HTTPSource)
	require.True(t, isHTTP)

	rows, err := Load(context.Background(), src, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = Load(context.Background(), NewSource(server.URL+"/other.csv", client), nil)
	var srcErr SourceError
	require.True(t, errors.As(err, &srcErr))
	assert.Equal(t, ErrCodeNotFound, srcErr.Code)
}

func TestHTTPClientConfigFrom(t *testing.T) {
	c := HTTPClientConfigFrom(config.DatasetConfig{FetchTimeoutSeconds: 12, MaxRetries: 1, RateLimitPerSecond: 0})

	assert.Equal(t, 12*time.Second, c.Timeout)
	assert.Equal(t, 1, c.MaxRetries)
	assert.Equal(t, 0.0, c.RateLimit)
	assert.Equal(t, DefaultHTTPClientConfig().CircuitBreakerMax, c.CircuitBreakerMax)
}

func TestFingerprintTracksContent(t *testing.T) {
	rows := parseSample(t)
	fp := Fingerprint(rows)
	assert.Equal(t, fp, Fingerprint(parseSample(t)))

	changed := parseSample(t)
	changed[1].Blue.Wins++
	assert.NotEqual(t, fp, Fingerprint(changed))

	reordered := []models.FightRow{rows[1], rows[0]}
	assert.NotEqual(t, fp, Fingerprint(reordered))

	flagged := parseSample(t)
	flagged[1].TitleFight = true
	assert.NotEqual(t, fp, Fingerprint(flagged))
}
