package cmd

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	sim "github.com/mtasim/tracksim/sim"
)

// Station describes a preset station in defaults.yaml. Metric and
// MaxReplications are optional overrides of the experiment defaults.
type Station struct {
	Description     string  `yaml:"description"`
	AnnualRidership float64 `yaml:"annual_ridership"`
	TrackBeds       int     `yaml:"track_beds"`
	TrashThreshold  int64   `yaml:"trash_threshold"`
	CleaningPeriod  float64 `yaml:"cleaning_period"`
	Metric          string  `yaml:"metric"`
	MaxReplications int     `yaml:"max_replications"`
}

// Config represents the full defaults.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Version  string             `yaml:"version"`
	Defaults DefaultConfig      `yaml:"defaults"`
	Stations map[string]Station `yaml:"stations"`
}

// DefaultConfig holds experiment settings used when no flag overrides them.
type DefaultConfig struct {
	Metric          string  `yaml:"metric"`
	MinReplications int     `yaml:"min_replications"`
	MaxReplications int     `yaml:"max_replications"`
	Horizon         float64 `yaml:"horizon"`
	Seed            int64   `yaml:"seed"`
}

// Parameters returns the station with every cost, scalar and duration at its
// default.
func (s Station) Parameters() sim.StationParameters {
	return sim.NewStationParameters(s.AnnualRidership, s.TrackBeds, s.TrashThreshold, s.CleaningPeriod)
}

// loadDefaultsConfig parses defaults.yaml into a Config struct.
// Uses strict field checking: typos must cause errors.
func loadDefaultsConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read defaults file: %w", err)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse defaults YAML %s: %w", path, err)
	}
	return cfg, nil
}

// GetStation looks up a preset by name.
func (c Config) GetStation(name string) (Station, error) {
	st, ok := c.Stations[name]
	if !ok {
		return Station{}, fmt.Errorf("unknown station %q (known: %v)", name, c.StationNames())
	}
	return st, nil
}

// StationNames returns the preset names in sorted order.
func (c Config) StationNames() []string {
	names := make([]string, 0, len(c.Stations))
	for name := range c.Stations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
