package app

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/mortplot/internal/adapters/memory"
	"github.com/bft-labs/mortplot/internal/domain"
	"github.com/bft-labs/mortplot/pkg/log"
)

var sixRows = [][]string{
	{"2000", "101.5", "Ages 35-64", "White", "Male"},
	{"2000", "98.0", "Ages 65+", "White", "Female"},
	{"2001", "110.25", "Ages 35-64", "White", "Male"},
	{"2001", "87.0", "Ages 65+", "Black", "Female"},
	{"2002", "120.0", "Ages 65+", "White", "Male"},
	{"2002", "93.5", "Ages 35-64", "White", "Female"},
}

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.OutputDir = filepath.Join(t.TempDir(), "charts")
	cfg.Width, cfg.Height = 400, 300
	return cfg
}

func writeCSV(t *testing.T, header []string, rows [][]string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString(strings.Join(header, ",") + "\n")
	for _, r := range rows {
		b.WriteString(strings.Join(r, ",") + "\n")
	}
	path := filepath.Join(t.TempDir(), "hypertension_cvd_mortality.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestPipeline_EndToEnd(t *testing.T) {
	cfg := testConfig(t)
	cfg.InputPath = writeCSV(t, domain.DefaultColumns(), sixRows)

	report, err := NewPipeline(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.OK())
	require.Len(t, report.Written, 3)

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{TrendFile, AgeGroupFile, RaceFile}, names)

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, name))
		require.NoError(t, err)
		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err, name)
		assert.Equal(t, 400, img.Bounds().Dx(), name)
		assert.Equal(t, 300, img.Bounds().Dy(), name)
	}
}

func TestPipeline_RerunOverwrites(t *testing.T) {
	cfg := testConfig(t)
	cfg.InputPath = writeCSV(t, domain.DefaultColumns(), sixRows)
	p := NewPipeline(cfg)

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	_, err = p.Run(context.Background())
	require.NoError(t, err)

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestPipeline_InputUnchanged(t *testing.T) {
	ds, err := domain.NewDataset(domain.DefaultColumns(), sixRows)
	require.NoError(t, err)
	before := ds.Records()

	store := memory.NewChartStore()
	_, err = NewPipeline(testConfig(t),
		WithSource(memory.NewSource("inline", ds)),
		WithChartStore(store),
	).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, before, ds.Records())
	assert.Equal(t, []string{AgeGroupFile, TrendFile, RaceFile}, store.Names())
}

func TestPipeline_MissingRaceColumn(t *testing.T) {
	header := []string{domain.ColumnYear, domain.ColumnValue, domain.ColumnStratification1, domain.ColumnStratification3}
	rows := make([][]string, 0, len(sixRows))
	for _, r := range sixRows {
		rows = append(rows, []string{r[0], r[1], r[2], r[4]})
	}
	src, err := memory.FromRecords("inline", header, rows)
	require.NoError(t, err)
	rec := log.NewRecorder()
	store := memory.NewChartStore()

	report, err := NewPipeline(testConfig(t),
		WithSource(src),
		WithChartStore(store),
		WithLogger(rec),
	).Run(context.Background())

	require.NoError(t, err)
	assert.Len(t, report.Written, 2)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, RaceFile, report.Skipped[0].File)
	assert.Contains(t, report.Skipped[0].Reason, domain.ColumnRace)
	assert.Empty(t, report.Failed)
	assert.True(t, rec.Has(log.LevelWarn, "chart skipped"))
	assert.Equal(t, []string{AgeGroupFile, TrendFile}, store.Names())
}

func TestPipeline_RaceUnderThreshold(t *testing.T) {
	cfg := testConfig(t)
	cfg.MinSamples = 10
	ds, err := domain.NewDataset(domain.DefaultColumns(), sixRows)
	require.NoError(t, err)
	store := memory.NewChartStore()

	report, err := NewPipeline(cfg,
		WithSource(memory.NewSource("inline", ds)),
		WithChartStore(store),
	).Run(context.Background())

	require.NoError(t, err)
	require.Len(t, report.Skipped, 1)
	assert.ErrorIs(t, report.Skipped[0].Err, domain.ErrChartSkip)
	assert.Len(t, report.Written, 2)
}

func TestPipeline_LoadFailureWritesNothing(t *testing.T) {
	cfg := testConfig(t)
	cfg.InputPath = filepath.Join(t.TempDir(), "data", "hypertension_cvd_mortality.csv")

	_, err := NewPipeline(cfg).Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLoadFailure)
	_, statErr := os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(statErr), "output dir must not be created")
}

func TestPipeline_AllMeasurementsMissing(t *testing.T) {
	rows := [][]string{
		{"2000", "", "Ages 35-64", "White", "Male"},
		{"2001", "NA", "Ages 65+", "Black", "Female"},
	}
	src, err := memory.FromRecords("inline", domain.DefaultColumns(), rows)
	require.NoError(t, err)
	store := memory.NewChartStore()

	_, err = NewPipeline(testConfig(t), WithSource(src), WithChartStore(store)).Run(context.Background())

	assert.ErrorIs(t, err, domain.ErrLoadFailure)
	assert.Empty(t, store.Names())
}

func TestPipeline_DirectoryCreationFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.InputPath = writeCSV(t, domain.DefaultColumns(), sixRows)
	cfg.OutputDir = filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(cfg.OutputDir, []byte("x"), 0o644))

	_, err := NewPipeline(cfg).Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDirectoryCreationFailure)
	assert.True(t, domain.KindOf(err).Fatal())
}

func TestPipeline_CanceledContext(t *testing.T) {
	ds, err := domain.NewDataset(domain.DefaultColumns(), sixRows)
	require.NoError(t, err)
	store := memory.NewChartStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewPipeline(testConfig(t),
		WithSource(memory.NewSource("inline", ds)),
		WithChartStore(store),
	).Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.Names())
}

func TestVisualizer_SaveFailureIsIsolated(t *testing.T) {
	ds, err := domain.NewDataset(domain.DefaultColumns(), sixRows)
	require.NoError(t, err)
	store := memory.NewChartStore()
	store.FailSave(TrendFile, errors.New("disk full"))
	rec := log.NewRecorder()

	report, err := NewVisualizer(store, testConfig(t), rec).Render(context.Background(), domain.Clean(ds), "")

	require.NoError(t, err)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, TrendFile, report.Failed[0].File)
	assert.Len(t, report.Written, 2)
	assert.True(t, rec.Has(log.LevelError, "chart save failed"))
}

func TestVisualizer_PrepareFailure(t *testing.T) {
	ds, err := domain.NewDataset(domain.DefaultColumns(), sixRows)
	require.NoError(t, err)
	store := memory.NewChartStore()
	store.FailPrepare(errors.New("read-only"))

	_, err = NewVisualizer(store, testConfig(t), nil).Render(context.Background(), ds, "")

	assert.ErrorIs(t, err, domain.ErrDirectoryCreationFailure)
}

func TestVisualizer_EmptyDataset(t *testing.T) {
	ds, err := domain.NewDataset(domain.DefaultColumns(), nil)
	require.NoError(t, err)

	_, err = NewVisualizer(memory.NewChartStore(), testConfig(t), nil).Render(context.Background(), ds, "")

	assert.ErrorIs(t, err, domain.ErrLoadFailure)
	assert.Contains(t, domain.CauseOf(err), "empty after filtering")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "no input", mutate: func(c *Config) { c.InputPath = "" }, wantErr: true},
		{name: "no output", mutate: func(c *Config) { c.OutputDir = "" }, wantErr: true},
		{name: "negative rows", mutate: func(c *Config) { c.MaxRows = -1 }, wantErr: true},
		{name: "zero samples", mutate: func(c *Config) { c.MinSamples = 0 }, wantErr: true},
		{name: "negative width", mutate: func(c *Config) { c.Width = -5 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPipeline_WarnsAboutRowsLeftOut(t *testing.T) {
	src, err := memory.FromRecords("inline", domain.DefaultColumns(), [][]string{
		{"2000.0", "10", "Ages 35-64", "White", "Male"},
		{"2000.0", "12", "Ages 65+", "White", "Female"},
		{"2001", "11", "Ages 65+", "White", "Male"},
		{"unknown", "9", "Ages 65+", "", "Male"},
	})
	require.NoError(t, err)
	cfg := testConfig(t)
	cfg.MinSamples = 1
	rec := log.NewRecorder()

	report, err := NewPipeline(cfg,
		WithSource(src),
		WithChartStore(memory.NewChartStore()),
		WithLogger(rec),
	).Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, report.Written, 3)

	leftOut := map[string]interface{}{}
	for _, e := range rec.Entries() {
		if e.Level != log.LevelWarn || e.Message != "rows left out of chart" {
			continue
		}
		chart, _ := e.Field("chart")
		rows, _ := e.Field("rows")
		leftOut[chart.(string)] = rows
	}
	assert.Equal(t, map[string]interface{}{TrendFile: 1, RaceFile: 1}, leftOut)
}

func TestPipeline_LogsSkippedRename(t *testing.T) {
	header := append(domain.DefaultColumns(), domain.ColumnRace)
	rows := make([][]string, 0, len(sixRows))
	for _, r := range sixRows {
		rows = append(rows, append(append([]string(nil), r...), r[3]))
	}
	src, err := memory.FromRecords("inline", header, rows)
	require.NoError(t, err)
	rec := log.NewRecorder()

	_, err = NewPipeline(testConfig(t),
		WithSource(src),
		WithChartStore(memory.NewChartStore()),
		WithLogger(rec),
	).Run(context.Background())

	require.NoError(t, err)
	assert.True(t, rec.Has(log.LevelDebug, "rename skipped"))
}
