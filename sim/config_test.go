package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mtasim/tracksim/sim/internal/testutil"
)

func TestNewStationParameters_Defaults(t *testing.T) {
	got := NewStationParameters(3752400, 1, 1000, 65700)
	want := StationParameters{
		AnnualRidership:        3752400,
		TrackBeds:              1,
		TrashThreshold:         1000,
		CleaningPeriod:         65700,
		TrashArrivalRateScalar: DefaultTrashArrivalRateScalar,
		FireArrivalRateScalar:  DefaultFireArrivalRateScalar,
		CleaningCost:           DefaultCleaningCost,
		FireRepairCost:         DefaultFireRepairCost,
		WagePerMinute:          DefaultWagePerMinute,
		CleaningMinutes:        DefaultCleaningMinutes,
		FireRepairMinutes:      DefaultFireRepairMinutes,
	}
	assert.Equal(t, want, got)
}

func TestStationParameters_DerivedRates(t *testing.T) {
	// GIVEN 20M riders split over two track beds
	p := NewStationParameters(20_000_000, 2, 6000, 60000)

	// THEN riders per track and the shared trash rate follow from ridership
	wantRiders := 10_000_000.0 / MinutesPerYear
	testutil.AssertFloat64Equal(t, "riders per minute per track", wantRiders, p.RidersPerMinutePerTrack(), 1e-12)
	testutil.AssertFloat64Equal(t, "trash arrival rate", wantRiders/380, p.TrashArrivalRate(), 1e-12)
	testutil.AssertFloat64Equal(t, "expected trash per period", wantRiders/380*60000, p.ExpectedTrashPerPeriod(), 1e-12)
}

func TestStationParameters_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StationParameters)
		wantErr bool
	}{
		{"defaults", func(*StationParameters) {}, false},
		{"zero threshold", func(p *StationParameters) { p.TrashThreshold = 0 }, false},
		{"zero ridership", func(p *StationParameters) { p.AnnualRidership = 0 }, true},
		{"NaN ridership", func(p *StationParameters) { p.AnnualRidership = math.NaN() }, true},
		{"infinite ridership", func(p *StationParameters) { p.AnnualRidership = math.Inf(1) }, true},
		{"zero track beds", func(p *StationParameters) { p.TrackBeds = 0 }, true},
		{"negative threshold", func(p *StationParameters) { p.TrashThreshold = -1 }, true},
		{"zero period", func(p *StationParameters) { p.CleaningPeriod = 0 }, true},
		{"zero trash scalar", func(p *StationParameters) { p.TrashArrivalRateScalar = 0 }, true},
		{"zero fire scalar", func(p *StationParameters) { p.FireArrivalRateScalar = 0 }, false},
		{"negative fire scalar", func(p *StationParameters) { p.FireArrivalRateScalar = -1 }, true},
		{"negative cost", func(p *StationParameters) { p.FireRepairCost = -1 }, true},
		{"negative wage", func(p *StationParameters) { p.WagePerMinute = -0.1 }, true},
		{"negative duration", func(p *StationParameters) { p.CleaningMinutes = -5 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := regressionParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
