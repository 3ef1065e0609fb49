package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	sim "github.com/mtasim/tracksim/sim"
	"github.com/mtasim/tracksim/sim/trace"
)

// runOptions holds every flag of the run command.
type runOptions struct {
	station          string  // preset name from defaults.yaml
	defaultsFilePath string  // path to defaults.yaml
	metric           string  // comparison metric for the stopping rule
	minReplications  int     // replications before the rule is evaluated
	maxReplications  int     // replication cap; 0 runs until separation
	horizon          float64 // minutes per replication
	seed             int64   // master seed
	logLevel         string  // log verbosity level
	traceLevel       string  // trace verbosity (none, events)
	traceReps        int     // replications to trace; 0 traces all
	summarizeTrace   bool    // print the trace summary
	resultsPath      string  // JSON results file
	progress         bool    // show a progress bar on stderr

	// Station and policy parameters
	annualRidership float64
	trackBeds       int
	trashThreshold  int64
	cleaningPeriod  float64

	trashScalar     float64
	fireScalar      float64
	cleaningCost    float64
	fireRepairCost  float64
	wagePerMinute   float64
	cleaningMinutes float64
	fireMinutes     float64
}

var opts runOptions

// register binds the flags of o to fs with their defaults.
func (o *runOptions) register(fs *pflag.FlagSet) {
	fs.StringVar(&o.station, "station", "", "Station preset from the defaults file")
	fs.StringVar(&o.defaultsFilePath, "defaults-filepath", "defaults.yaml", "Path to the defaults file with station presets")
	fs.StringVar(&o.metric, "metric", string(sim.MetricMaintenance), "Comparison metric for the stopping rule (fires, maintenance, productivity)")
	fs.IntVar(&o.minReplications, "min-reps", sim.DefaultMinReplications, "Replications before the stopping rule is evaluated")
	fs.IntVar(&o.maxReplications, "max-reps", 0, "Replication cap (0 = run until the policies separate)")
	fs.Float64Var(&o.horizon, "horizon", sim.MinutesPerYear, "Simulated minutes per replication")
	fs.Int64Var(&o.seed, "seed", 42, "Master seed for the replication streams")
	fs.StringVar(&o.logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	fs.StringVar(&o.traceLevel, "trace-level", string(trace.TraceLevelNone), "Event trace level (none, events)")
	fs.IntVar(&o.traceReps, "trace-reps", 1, "Replications to trace (0 = all)")
	fs.BoolVar(&o.summarizeTrace, "summarize-trace", false, "Print the event trace summary")
	fs.StringVar(&o.resultsPath, "results-path", "", "Write the records and summary as JSON to this file")
	fs.BoolVar(&o.progress, "progress", false, "Show replication progress on stderr")

	fs.Float64Var(&o.annualRidership, "ridership", 20_000_000, "Annual ridership of the station")
	fs.IntVar(&o.trackBeds, "track-beds", 1, "Track beds sharing the ridership")
	fs.Int64Var(&o.trashThreshold, "threshold", 6000, "Alt policy: clean once trash exceeds this")
	fs.Float64Var(&o.cleaningPeriod, "period", 60000, "Baseline policy: minutes between scheduled cleanings")

	fs.Float64Var(&o.trashScalar, "trash-scalar", sim.DefaultTrashArrivalRateScalar, "Trash units per rider")
	fs.Float64Var(&o.fireScalar, "fire-scalar", sim.DefaultFireArrivalRateScalar, "Fire rate per unit of trash per minute")
	fs.Float64Var(&o.cleaningCost, "cleaning-cost", sim.DefaultCleaningCost, "Cost of a no-fire cleaning")
	fs.Float64Var(&o.fireRepairCost, "fire-cost", sim.DefaultFireRepairCost, "Cost of a fire repair")
	fs.Float64Var(&o.wagePerMinute, "wage", sim.DefaultWagePerMinute, "Rider wage per minute")
	fs.Float64Var(&o.cleaningMinutes, "cleaning-minutes", sim.DefaultCleaningMinutes, "Track closure for a no-fire cleaning")
	fs.Float64Var(&o.fireMinutes, "fire-minutes", sim.DefaultFireRepairMinutes, "Track closure for a fire repair")
}

// loadDefaults reads the defaults file. A missing file is only an error when
// it was asked for explicitly or a preset needs it.
func (o *runOptions) loadDefaults(fs *pflag.FlagSet) (*Config, error) {
	cfg, err := loadDefaultsConfig(o.defaultsFilePath)
	if err == nil {
		return &cfg, nil
	}
	if errors.Is(err, os.ErrNotExist) && o.station == "" && !fs.Changed("defaults-filepath") {
		logrus.Debugf("no defaults file at %s; using flag defaults", o.defaultsFilePath)
		return nil, nil
	}
	return nil, err
}

// experimentConfig resolves the experiment. Explicit flags win over the
// station preset, which wins over the defaults section, which wins over flag
// defaults.
func (o *runOptions) experimentConfig(fs *pflag.FlagSet) (sim.ExperimentConfig, error) {
	file, err := o.loadDefaults(fs)
	if err != nil {
		return sim.ExperimentConfig{}, err
	}

	metric, minReps, maxReps, horizon, seed := o.metric, o.minReplications, o.maxReplications, o.horizon, o.seed
	params := sim.NewStationParameters(o.annualRidership, o.trackBeds, o.trashThreshold, o.cleaningPeriod)

	if file != nil {
		d := file.Defaults
		if !fs.Changed("metric") && d.Metric != "" {
			metric = d.Metric
		}
		if !fs.Changed("min-reps") && d.MinReplications > 0 {
			minReps = d.MinReplications
		}
		if !fs.Changed("max-reps") && d.MaxReplications > 0 {
			maxReps = d.MaxReplications
		}
		if !fs.Changed("horizon") && d.Horizon > 0 {
			horizon = d.Horizon
		}
		if !fs.Changed("seed") && d.Seed != 0 {
			seed = d.Seed
		}
	}
	if o.station != "" {
		st, err := file.GetStation(o.station)
		if err != nil {
			return sim.ExperimentConfig{}, err
		}
		preset := st.Parameters()
		if !fs.Changed("ridership") {
			params.AnnualRidership = preset.AnnualRidership
		}
		if !fs.Changed("track-beds") {
			params.TrackBeds = preset.TrackBeds
		}
		if !fs.Changed("threshold") {
			params.TrashThreshold = preset.TrashThreshold
		}
		if !fs.Changed("period") {
			params.CleaningPeriod = preset.CleaningPeriod
		}
		if !fs.Changed("metric") && st.Metric != "" {
			metric = st.Metric
		}
		if !fs.Changed("max-reps") && st.MaxReplications > 0 {
			maxReps = st.MaxReplications
		}
	}

	params.TrashArrivalRateScalar = o.trashScalar
	params.FireArrivalRateScalar = o.fireScalar
	params.CleaningCost = o.cleaningCost
	params.FireRepairCost = o.fireRepairCost
	params.WagePerMinute = o.wagePerMinute
	params.CleaningMinutes = o.cleaningMinutes
	params.FireRepairMinutes = o.fireMinutes

	cfg := sim.NewExperimentConfig(params, sim.Metric(metric), seed)
	cfg.Horizon = horizon
	cfg.MinReplications = minReps
	cfg.MaxReplications = maxReps
	cfg.Trace = trace.TraceConfig{Level: trace.TraceLevel(o.traceLevel), MaxReplications: o.traceReps}
	if err := cfg.Validate(); err != nil {
		return sim.ExperimentConfig{}, err
	}
	return cfg, nil
}

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "tracksim",
	Short: "Paired discrete-event simulator for subway track-bed maintenance policies",
}

// runCmd executes the experiment using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compare periodic and threshold cleaning at one station",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(opts.logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", opts.logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := opts.experimentConfig(cmd.Flags())
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		runID := uuid.New().String()
		p := cfg.Params
		logrus.Infof("run %s: ridership=%.0f beds=%d threshold=%d period=%.0f metric=%s seed=%d",
			runID, p.AnnualRidership, p.TrackBeds, p.TrashThreshold, p.CleaningPeriod, cfg.Metric, cfg.Seed)
		logrus.Infof("trash arrival rate %.6f/min, expected trash per cleaning period %.1f",
			p.TrashArrivalRate(), p.ExpectedTrashPerPeriod())

		var observe sim.ReplicationObserver
		finish := func() {}
		if opts.progress {
			observe, finish = progressObserver(cfg.MaxReplications)
		}

		res, err := sim.RunExperiment(cfg, observe)
		if err != nil {
			logrus.Fatalf("Experiment failed: %v", err)
		}
		finish()

		fmt.Print(renderReport(runID, cfg, res))
		if opts.summarizeTrace && res.TraceSummary != nil {
			fmt.Print(renderTraceSummary(res.TraceSummary))
		}
		if opts.resultsPath != "" {
			if err := writeResults(opts.resultsPath, newResultsFile(runID, opts.station, cfg, res)); err != nil {
				logrus.Fatalf("Failed to save results: %v", err)
			}
			logrus.Infof("results written to %s", opts.resultsPath)
		}
	},
}

var stationsDefaultsFilePath string

// stationsCmd lists the presets available to run --station
var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "List station presets from the defaults file",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadDefaultsConfig(stationsDefaultsFilePath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		fmt.Print(renderStations(cfg))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	opts.register(runCmd.Flags())
	stationsCmd.Flags().StringVar(&stationsDefaultsFilePath, "defaults-filepath", "defaults.yaml", "Path to the defaults file with station presets")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(stationsCmd)
}
