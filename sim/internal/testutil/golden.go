package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one recorded replication of a station.
type GoldenTestCase struct {
	Name            string        `json:"name"`
	AnnualRidership float64       `json:"annual_ridership"`
	TrackBeds       int           `json:"track_beds"`
	TrashThreshold  int64         `json:"trash_threshold"`
	CleaningPeriod  float64       `json:"cleaning_period"`
	Horizon         float64       `json:"horizon"`
	Seed            int64         `json:"seed"`
	Replication     int           `json:"replication"`
	Metrics         GoldenMetrics `json:"metrics"`
}

// GoldenMetrics are the exact counters expected from a golden test case.
type GoldenMetrics struct {
	FiresBaseline          int `json:"fires_baseline"`
	TotalCleaningsBaseline int `json:"total_cleanings_baseline"`
	FiresAlt               int `json:"fires_alt"`
	ThresholdCleaningsAlt  int `json:"threshold_cleanings_alt"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	return &dataset
}
