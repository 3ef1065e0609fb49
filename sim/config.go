package sim

import (
	"fmt"
	"math"
)

// MinutesPerYear is the canonical replication horizon: one simulated year.
const MinutesPerYear = 525600

const (
	// DefaultTrashArrivalRateScalar yields roughly one unit of trash every ten
	// minutes at the busiest stations.
	DefaultTrashArrivalRateScalar = 1.0 / 380
	// DefaultFireArrivalRateScalar yields roughly two fires per year at the
	// busiest stations under periodic cleaning.
	DefaultFireArrivalRateScalar = 1.0 / 100000000

	DefaultCleaningCost      = 10000.0
	DefaultFireRepairCost    = 30000.0
	DefaultWagePerMinute     = 0.56667 // $34/hr
	DefaultCleaningMinutes   = 90.0
	DefaultFireRepairMinutes = 270.0
)

// StationParameters describes one station and both maintenance policies.
// Immutable for the lifetime of an experiment.
type StationParameters struct {
	AnnualRidership float64 // riders per year across the station
	TrackBeds       int     // number of track beds sharing the ridership (must be > 0)
	TrashThreshold  int64   // alt policy: clean once trash exceeds this
	CleaningPeriod  float64 // baseline policy: minutes between scheduled cleanings

	TrashArrivalRateScalar float64 // trash units per rider
	FireArrivalRateScalar  float64 // fire rate per unit of trash, per minute

	CleaningCost   float64 // maintenance cost of a no-fire cleaning
	FireRepairCost float64 // maintenance cost of a fire repair

	WagePerMinute     float64 // rider wage used for productivity loss
	CleaningMinutes   float64 // track closure for a no-fire cleaning
	FireRepairMinutes float64 // track closure for a fire repair
}

// NewStationParameters returns parameters for the given station with every
// cost, scalar and duration at its default.
func NewStationParameters(annualRidership float64, trackBeds int, trashThreshold int64, cleaningPeriod float64) StationParameters {
	return StationParameters{
		AnnualRidership:        annualRidership,
		TrackBeds:              trackBeds,
		TrashThreshold:         trashThreshold,
		CleaningPeriod:         cleaningPeriod,
		TrashArrivalRateScalar: DefaultTrashArrivalRateScalar,
		FireArrivalRateScalar:  DefaultFireArrivalRateScalar,
		CleaningCost:           DefaultCleaningCost,
		FireRepairCost:         DefaultFireRepairCost,
		WagePerMinute:          DefaultWagePerMinute,
		CleaningMinutes:        DefaultCleaningMinutes,
		FireRepairMinutes:      DefaultFireRepairMinutes,
	}
}

// RidersPerMinutePerTrack is the rider flow past a single track bed.
func (p StationParameters) RidersPerMinutePerTrack() float64 {
	return (p.AnnualRidership / float64(p.TrackBeds)) / MinutesPerYear
}

// TrashArrivalRate is the rate (units per minute) of the shared Poisson trash
// process observed by both policies.
func (p StationParameters) TrashArrivalRate() float64 {
	return p.TrashArrivalRateScalar * p.RidersPerMinutePerTrack()
}

// ExpectedTrashPerPeriod is the mean trash accumulated over one baseline
// cleaning period.
func (p StationParameters) ExpectedTrashPerPeriod() float64 {
	return p.TrashArrivalRate() * p.CleaningPeriod
}

// Validate checks that every parameter is in range.
func (p StationParameters) Validate() error {
	if !(p.AnnualRidership > 0) || math.IsInf(p.AnnualRidership, 0) {
		return fmt.Errorf("annual ridership must be a positive finite number, got %v", p.AnnualRidership)
	}
	if p.TrackBeds <= 0 {
		return fmt.Errorf("track beds must be positive, got %d", p.TrackBeds)
	}
	if p.TrashThreshold < 0 {
		return fmt.Errorf("trash threshold must be non-negative, got %d", p.TrashThreshold)
	}
	if !(p.CleaningPeriod > 0) {
		return fmt.Errorf("cleaning period must be positive, got %v", p.CleaningPeriod)
	}
	if !(p.TrashArrivalRateScalar > 0) {
		return fmt.Errorf("trash arrival rate scalar must be positive, got %v", p.TrashArrivalRateScalar)
	}
	if p.FireArrivalRateScalar < 0 {
		return fmt.Errorf("fire arrival rate scalar must be non-negative, got %v", p.FireArrivalRateScalar)
	}
	if p.CleaningCost < 0 || p.FireRepairCost < 0 {
		return fmt.Errorf("costs must be non-negative, got cleaning=%v fire=%v", p.CleaningCost, p.FireRepairCost)
	}
	if p.WagePerMinute < 0 {
		return fmt.Errorf("wage per minute must be non-negative, got %v", p.WagePerMinute)
	}
	if p.CleaningMinutes < 0 || p.FireRepairMinutes < 0 {
		return fmt.Errorf("durations must be non-negative, got cleaning=%v fire=%v", p.CleaningMinutes, p.FireRepairMinutes)
	}
	return nil
}
