package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matcherCatalog() Catalog {
	return Catalog{
		{
			Name:        "Home",
			Path:        "/",
			Description: "Landing page",
			Category:    "general",
			Keywords:    []string{"start", "main"},
		},
		{
			Name:        "Dashboard",
			Path:        "/dashboard",
			Description: "Your financial overview",
			Category:    "finance",
			Keywords:    []string{"overview", "stats"},
			Aliases:     []string{"dash"},
		},
		{
			Name:        "Portfolio",
			Path:        "/portfolio",
			Description: "Investment holdings",
			Category:    "finance",
			Keywords:    []string{"investments", "holdings"},
		},
		{
			Name:        "Contact",
			Path:        "/contact",
			Description: "Get in touch",
			Category:    "company",
			Keywords:    []string{"support", "email"},
		},
	}
}

func TestResolve_Precedence(t *testing.T) {
	catalog := matcherCatalog()

	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{name: "direct path with slash", input: "/dashboard", wantPath: "/dashboard"},
		{name: "direct path without slash", input: "dashboard", wantPath: "/dashboard"},
		{name: "exact name case-insensitive", input: "Dashboard", wantPath: "/dashboard"},
		{name: "alias", input: "dash", wantPath: "/dashboard"},
		{name: "synonym table", input: "contact us", wantPath: "/contact"},
		{name: "fuzzy keyword", input: "investments", wantPath: "/portfolio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt, ok := Resolve(tt.input, catalog)

			require.True(t, ok)
			assert.Equal(t, tt.wantPath, opt.Path)
		})
	}
}

func TestResolve_NoMatchBelowThreshold(t *testing.T) {
	_, ok := Resolve("zzz qqq xxw", matcherCatalog())

	assert.False(t, ok)
}

func TestResolve_IgnoresEmptyTerms(t *testing.T) {
	// Options without a description (or with empty keywords) must not
	// swallow arbitrary input via the fuzzy fallback.
	catalog := Catalog{
		{Name: "Home", Path: "/", Category: "general"},
		{Name: "Dashboard", Path: "/dashboard", Category: "finance"},
	}

	_, ok := Resolve("the moon base", catalog)

	assert.False(t, ok)
}

func TestResolve_TieBreakKeepsCatalogOrder(t *testing.T) {
	catalog := Catalog{
		{Name: "Reports A", Path: "/reports-a", Keywords: []string{"report"}},
		{Name: "Reports B", Path: "/reports-b", Keywords: []string{"report"}},
	}

	opt, ok := Resolve("report", catalog)

	require.True(t, ok)
	assert.Equal(t, "/reports-a", opt.Path)
}

func TestFuzzyScore(t *testing.T) {
	tests := []struct {
		name  string
		query string
		text  string
		want  float64
	}{
		{name: "substring is a full hit", query: "dash", text: "dashboard", want: 1.0},
		{name: "case-insensitive substring", query: "DASH", text: "Dashboard", want: 1.0},
		{name: "cross-containment word pairs", query: "dash board", text: "dashboard", want: 0.5},
		{name: "no overlap", query: "zebra", text: "dashboard", want: 0.0},
		{name: "empty text matches nothing", query: "the moon base", text: "", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FuzzyScore(tt.query, tt.text), 1e-9)
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "contact", Normalize("  Contact Us  "))
	assert.Equal(t, "personal", Normalize("Profile"))
	assert.Equal(t, "resume", Normalize("résumé"))
	assert.Equal(t, "go to dashboard", Normalize("go   to\tdashboard"))
}
