package nav

import "math"

// Forecast produces the deterministic synthetic outlook for a year. This is
// a placeholder numeric generator, not a statistical model: the same year
// always yields the same forecast, and every field stays inside its
// documented range. seed = year mod 97 and rnd(n) = (sin(seed+n)+1)/2 keep
// it bit-compatible across runs.
func Forecast(year int) YearlyForecast {
	seed := float64(year % 97)
	rnd := func(n int) float64 {
		return (math.Sin(seed+float64(n)) + 1) / 2
	}

	growthPct := math.Round((5+rnd(1)*12)*10) / 10
	netWorthChange := int(math.Round(5000 + rnd(2)*25000))
	savings := int(math.Round(3000 + rnd(3)*12000))

	risk := RiskHigh
	switch r := rnd(4); {
	case r < 0.33:
		risk = RiskLow
	case r < 0.66:
		risk = RiskMedium
	}

	return YearlyForecast{
		Year:           year,
		GrowthPct:      growthPct,
		NetWorthChange: netWorthChange,
		Savings:        savings,
		RiskLevel:      risk,
	}
}
