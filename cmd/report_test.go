package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/mtasim/tracksim/sim"
	"github.com/mtasim/tracksim/sim/trace"
)

// smallExperiment runs a short capped experiment with a trace.
func smallExperiment(t *testing.T) (sim.ExperimentConfig, *sim.ExperimentResult) {
	t.Helper()
	params := sim.NewStationParameters(20_000_000, 1, 2000, 5000)
	params.CleaningMinutes = 0
	params.FireRepairMinutes = 0
	cfg := sim.NewExperimentConfig(params, sim.MetricFires, 1)
	cfg.Horizon = 20000
	cfg.MinReplications = 2
	cfg.MaxReplications = 3
	cfg.Trace = trace.TraceConfig{Level: trace.TraceLevelEvents, MaxReplications: 1}
	res, err := sim.RunExperiment(cfg, nil)
	require.NoError(t, err)
	return cfg, res
}

func TestRenderReport_ListsEveryMetric(t *testing.T) {
	cfg, res := smallExperiment(t)

	out := renderReport("run-1", cfg, res)

	assert.Contains(t, out, "run-1")
	for _, m := range sim.ReportMetrics {
		assert.Contains(t, out, string(m))
	}
	assert.Contains(t, out, "95% windows")
}

func TestRenderReport_LabelsStandardDeviation(t *testing.T) {
	// GIVEN a report that also prints 95% windows
	cfg, res := smallExperiment(t)

	out := renderReport("run-3", cfg, res)

	// THEN the spread column is labelled as a standard deviation, not a half-width
	assert.Contains(t, out, "(mean, sd)")
	assert.Contains(t, out, "(sd=")
	assert.NotContains(t, out, "±")
}

func TestRenderTraceSummary(t *testing.T) {
	_, res := smallExperiment(t)
	require.NotNil(t, res.TraceSummary)

	out := renderTraceSummary(res.TraceSummary)

	assert.Contains(t, out, "trash-arrival")
	assert.Contains(t, out, "Simultaneous Fires")
}

func TestRenderStations(t *testing.T) {
	cfg, err := loadDefaultsConfig(writeDefaults(t, testDefaults))
	require.NoError(t, err)

	out := renderStations(cfg)

	assert.Contains(t, out, "busiest")
	assert.Contains(t, out, "threshold=1000")
}

func TestWriteResults_RoundTripsSummary(t *testing.T) {
	// GIVEN a finished experiment
	cfg, res := smallExperiment(t)
	path := filepath.Join(t.TempDir(), "results.json")

	// WHEN its results are written
	require.NoError(t, writeResults(path, newResultsFile("run-2", "reference", cfg, res)))

	// THEN the file carries the run ID, every record and the summary
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got ResultsFile
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "run-2", got.RunID)
	assert.Equal(t, "reference", got.Station)
	assert.Equal(t, res.Replications, got.Replications)
	assert.Len(t, got.Records, res.Replications)
	assert.Equal(t, res.Summary[sim.MetricFires].Baseline.N, got.Summary[sim.MetricFires].Baseline.N)
	assert.NotNil(t, got.TraceSummary)
}

func TestWriteResults_BadPath(t *testing.T) {
	_, res := smallExperiment(t)
	path := filepath.Join(t.TempDir(), "missing", "results.json")

	err := writeResults(path, ResultsFile{Records: res.Records})

	assert.Error(t, err)
}

func TestProgressObserver_CountsReplications(t *testing.T) {
	observe, finish := progressObserver(2)

	observe(sim.ReplicationRecord{}, sim.StopDecision{})
	observe(sim.ReplicationRecord{}, sim.StopDecision{Stop: true, Reason: sim.StopCap})
	finish()
}
