package nav

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForecast_Deterministic(t *testing.T) {
	for _, year := range []int{1997, 2024, 2025, 2030, 2097, 2100} {
		first := Forecast(year)
		second := Forecast(year)

		assert.Equal(t, first, second, "forecast for %d must be bit-identical", year)
		assert.Equal(t, year, first.Year)
	}
}

func TestForecast_Ranges(t *testing.T) {
	for year := 2000; year <= 2120; year++ {
		f := Forecast(year)

		assert.GreaterOrEqual(t, f.GrowthPct, 5.0)
		assert.LessOrEqual(t, f.GrowthPct, 17.0)
		assert.GreaterOrEqual(t, f.NetWorthChange, 5000)
		assert.LessOrEqual(t, f.NetWorthChange, 30000)
		assert.GreaterOrEqual(t, f.Savings, 3000)
		assert.LessOrEqual(t, f.Savings, 15000)
		assert.Contains(t, []RiskLevel{RiskLow, RiskMedium, RiskHigh}, f.RiskLevel)
	}
}

func TestForecast_RiskBuckets(t *testing.T) {
	// Risk must follow the documented buckets of the internal rnd(4) value:
	// < 0.33 low, < 0.66 medium, otherwise high.
	for year := 2000; year <= 2120; year++ {
		r := (math.Sin(float64(year%97)+4) + 1) / 2

		want := RiskHigh
		switch {
		case r < 0.33:
			want = RiskLow
		case r < 0.66:
			want = RiskMedium
		}

		assert.Equal(t, want, Forecast(year).RiskLevel, "year %d", year)
	}
}

func TestForecast_GrowthHasOneDecimal(t *testing.T) {
	for year := 2020; year <= 2040; year++ {
		f := Forecast(year)
		scaled := f.GrowthPct * 10

		assert.InDelta(t, math.Round(scaled), scaled, 1e-9)
	}
}
