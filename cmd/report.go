package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"

	sim "github.com/mtasim/tracksim/sim"
	"github.com/mtasim/tracksim/sim/trace"
)

var (
	accent = lipgloss.Color("#FF0000")
	muted  = lipgloss.Color("#666666")
	good   = lipgloss.Color("#00CC66")
	white  = lipgloss.Color("#FFFFFF")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(white)
	accentStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(muted)
	goodStyle   = lipgloss.NewStyle().Foreground(good).Bold(true)
)

const rule = "─────────────────────────────────────────────────────────────────"

// renderReport formats the per-policy mean and standard deviation of every
// report metric.
func renderReport(runID string, cfg sim.ExperimentConfig, res *sim.ExperimentResult) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("=== Track Bed Maintenance Comparison ===") + "\n")
	fmt.Fprintf(&sb, "%s %s\n", mutedStyle.Render("Run ID        :"), runID)
	fmt.Fprintf(&sb, "%s %d (%s)\n", mutedStyle.Render("Replications  :"), res.Replications, res.Reason)
	verdict := accentStyle.Render("overlapping")
	if res.Separated {
		verdict = goodStyle.Render("separated")
	}
	fmt.Fprintf(&sb, "%s %s %s\n", mutedStyle.Render("Comparison    :"), res.Comparison, verdict)
	fmt.Fprintf(&sb, "%s %.2fs\n", mutedStyle.Render("Wall time     :"), res.WallTime.Seconds())
	sb.WriteString(mutedStyle.Render(rule) + "\n")
	fmt.Fprintf(&sb, "%-18s %24s %24s\n", "metric (mean, sd)", "baseline (periodic)", "alt (threshold)")
	for _, m := range sim.ReportMetrics {
		pi := res.Summary[m]
		fmt.Fprintf(&sb, "%-18s %24s %24s\n", m, meanStd(pi.Baseline), meanStd(pi.Alt))
	}
	sb.WriteString(mutedStyle.Render(rule) + "\n")
	pi := res.Summary[cfg.Metric]
	fmt.Fprintf(&sb, "%s baseline [%.2f, %.2f]  alt [%.2f, %.2f]\n",
		mutedStyle.Render("95% windows   :"), pi.Baseline.Lower(), pi.Baseline.Upper(), pi.Alt.Lower(), pi.Alt.Upper())
	return sb.String()
}

func meanStd(iv sim.Interval) string {
	return fmt.Sprintf("%.2f (sd=%.2f)", iv.Mean, iv.StdDev)
}

// renderTraceSummary formats event counts from a traced run.
func renderTraceSummary(ts *trace.TraceSummary) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("=== Trace Summary ===") + "\n")
	fmt.Fprintf(&sb, "Total Events       : %d\n", ts.TotalEvents)
	kinds := make([]string, 0, len(ts.KindDistribution))
	for k := range ts.KindDistribution {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(&sb, "  %-18s: %d\n", k, ts.KindDistribution[k])
	}
	fmt.Fprintf(&sb, "Simultaneous Fires : %d\n", ts.SimultaneousFires)
	fmt.Fprintf(&sb, "Charges            : %d (%d shared)\n", ts.TotalCharges, ts.SharedCharges)
	return sb.String()
}

// renderStations lists the presets of cfg.
func renderStations(cfg Config) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Station presets") + "\n")
	for _, name := range cfg.StationNames() {
		st := cfg.Stations[name]
		fmt.Fprintf(&sb, "  %s %s\n", accentStyle.Render(fmt.Sprintf("%-10s", name)), mutedStyle.Render(st.Description))
		fmt.Fprintf(&sb, "    ridership=%.0f beds=%d threshold=%d period=%.0f\n",
			st.AnnualRidership, st.TrackBeds, st.TrashThreshold, st.CleaningPeriod)
	}
	return sb.String()
}

// newProgressBar tracks completed replications. An uncapped experiment shows
// a spinner with a running count.
func newProgressBar(maxReplications int) *progressbar.ProgressBar {
	total := maxReplications
	if total <= 0 {
		total = -1
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("replications"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "",
			BarEnd:        "",
		}),
		progressbar.OptionClearOnFinish(),
	)
}

// progressObserver advances a progress bar once per replication. The returned
// func clears the bar.
func progressObserver(maxReplications int) (sim.ReplicationObserver, func()) {
	bar := newProgressBar(maxReplications)
	observe := func(_ sim.ReplicationRecord, d sim.StopDecision) {
		if d.Intervals.Baseline.N > 0 {
			bar.Describe(fmt.Sprintf("replications (separated=%v)", d.Separated))
		}
		_ = bar.Add(1)
	}
	return observe, func() { _ = bar.Finish() }
}

// ResultsFile is the JSON document written by --results-path.
type ResultsFile struct {
	RunID        string                             `json:"run_id"`
	Station      string                             `json:"station,omitempty"`
	Seed         int64                              `json:"seed"`
	Metric       sim.Metric                         `json:"metric"`
	Horizon      float64                            `json:"horizon"`
	Parameters   sim.StationParameters              `json:"parameters"`
	Replications int                                `json:"replications"`
	Separated    bool                               `json:"separated"`
	StopReason   sim.StopReason                     `json:"stop_reason"`
	WallTimeMs   int64                              `json:"wall_time_ms"`
	Summary      map[sim.Metric]sim.PairedIntervals `json:"summary"`
	Records      []sim.ReplicationRecord            `json:"records"`
	TraceSummary *trace.TraceSummary                `json:"trace_summary,omitempty"`
}

// newResultsFile collects an experiment into its JSON form.
func newResultsFile(runID, station string, cfg sim.ExperimentConfig, res *sim.ExperimentResult) ResultsFile {
	return ResultsFile{
		RunID:        runID,
		Station:      station,
		Seed:         cfg.Seed,
		Metric:       cfg.Metric,
		Horizon:      cfg.Horizon,
		Parameters:   cfg.Params,
		Replications: res.Replications,
		Separated:    res.Separated,
		StopReason:   res.Reason,
		WallTimeMs:   res.WallTime.Milliseconds(),
		Summary:      res.Summary,
		Records:      res.Records,
		TraceSummary: res.TraceSummary,
	}
}

// writeResults saves rf as indented JSON at path.
func writeResults(path string, rf ResultsFile) error {
	data, err := json.MarshalIndent(rf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write results %s: %w", path, err)
	}
	return nil
}
