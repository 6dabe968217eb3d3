package nav

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, time.March, 14, 9, 0, 0, 0, time.UTC)
	}
}

func testClassifier() *Classifier {
	names := []string{
		"Home", "Dashboard", "Portfolio", "Insights", "Loans",
		"Settings", "About", "Contact", "Careers", "Press", "Recommendations",
	}
	return NewClassifier(names, WithClock(fixedClock(2026)))
}

func TestClassifier_RulePriority(t *testing.T) {
	c := testClassifier()

	tests := []struct {
		name       string
		input      string
		wantKind   IntentKind
		wantConf   float64
		wantTarget string
		wantYear   int
	}{
		{
			name:     "back wins over navigate",
			input:    "go back to dashboard",
			wantKind: IntentBack,
			wantConf: 0.95,
		},
		{
			name:       "forecast wins over home and navigate",
			input:      "forecast for home loans",
			wantKind:   IntentForecast,
			wantConf:   0.9,
			wantTarget: "yearly",
			wantYear:   2026,
		},
		{
			name:     "standalone home",
			input:    "take me home",
			wantKind: IntentHome,
			wantConf: 0.95,
		},
		{
			name:       "home inside another word is not the home intent",
			input:      "homeward bound",
			wantKind:   IntentNavigate,
			wantConf:   0.8,
			wantTarget: "homeward bound",
		},
		{
			name:       "forecast with explicit year",
			input:      "forecast for 2030",
			wantKind:   IntentForecast,
			wantConf:   0.9,
			wantTarget: "yearly",
			wantYear:   2030,
		},
		{
			name:       "year cadence phrase defaults the year",
			input:      "what does next year look like",
			wantKind:   IntentForecast,
			wantConf:   0.9,
			wantTarget: "yearly",
			wantYear:   2026,
		},
		{
			name:       "navigation verb with target extraction",
			input:      "go to dashboard",
			wantKind:   IntentNavigate,
			wantConf:   0.8,
			wantTarget: "dashboard",
		},
		{
			name:       "polite request keeps the meaningful words",
			input:      "can you open settings",
			wantKind:   IntentNavigate,
			wantConf:   0.8,
			wantTarget: "settings",
		},
		{
			name:       "destination name alone is a navigate",
			input:      "portfolio please",
			wantKind:   IntentNavigate,
			wantConf:   0.8,
			wantTarget: "portfolio",
		},
		{
			name:     "stop words only leaves an empty target",
			input:    "please can you",
			wantKind: IntentNavigate,
			wantConf: 0.8,
		},
		{
			name:     "help vocabulary",
			input:    "how does this work",
			wantKind: IntentHelp,
			wantConf: 0.9,
		},
		{
			name:       "can-you phrasing is a navigation request, not help",
			input:      "what can you do",
			wantKind:   IntentNavigate,
			wantConf:   0.8,
			wantTarget: "what do",
		},
		{
			name:       "search vocabulary with target",
			input:      "where is my statement",
			wantKind:   IntentSearch,
			wantConf:   0.7,
			wantTarget: "my statement",
		},
		{
			name:     "gibberish is unknown",
			input:    "asdkfj qqq",
			wantKind: IntentUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.Classify(tt.input)

			assert.Equal(t, tt.wantKind, res.Kind)
			assert.InDelta(t, tt.wantConf, res.Confidence, 1e-9)
			assert.Equal(t, tt.wantTarget, res.Target)
			assert.Equal(t, tt.wantYear, res.Year)
		})
	}
}

func TestClassifier_InputIsTrimmedAndLowered(t *testing.T) {
	c := testClassifier()

	res := c.Classify("  GO TO Dashboard  ")

	assert.Equal(t, IntentNavigate, res.Kind)
	assert.Equal(t, "dashboard", res.Target)
}

func TestClassifier_MalformedYearFallsBack(t *testing.T) {
	c := testClassifier()

	// "for 1999" satisfies the cadence phrase but the token is outside
	// 20xx, so the current calendar year is used instead.
	res := c.Classify("projection for 1999")

	assert.Equal(t, IntentForecast, res.Kind)
	assert.Equal(t, 2026, res.Year)
}
