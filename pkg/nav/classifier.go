package nav

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Classification is an ordered rule table: the first matching rule wins.
// The order is a contract, not an accident. "go back to the dashboard" is
// back, not navigate; "forecast for home loans" is forecast, not home,
// which is why the forecast rule sits ahead of the home rule.

var (
	backPattern = regexp.MustCompile(`(?:^|\s)back(?:\s|$)`)
	homePattern = regexp.MustCompile(`(?:^|\s)home(?:\s|$)`)

	forecastPatterns = []*regexp.Regexp{
		regexp.MustCompile(`forecast|prediction|predict|projection|outlook`),
		regexp.MustCompile(`this year|next year|yearly|annual|for \d{4}`),
	}
	yearPattern = regexp.MustCompile(`20\d{2}`)

	navigateVerbPattern   = regexp.MustCompile(`go to|take me to|navigate to|show me|open|visit|access`)
	navigatePolitePattern = regexp.MustCompile(`i want to|i need to|can you|please`)

	helpPattern = regexp.MustCompile(`help|what can you do|how does this work|what are my options|guide|assist|support`)

	searchPattern = regexp.MustCompile(`find|search for|look for|where is|what is|tell me about`)
)

var navigateStopWords = map[string]bool{
	"go": true, "to": true, "take": true, "me": true, "navigate": true,
	"show": true, "open": true, "visit": true, "access": true,
	"i": true, "want": true, "need": true, "can": true, "you": true, "please": true,
}

var searchStopWords = map[string]bool{
	"find": true, "search": true, "for": true, "look": true, "where": true,
	"is": true, "what": true, "tell": true, "me": true, "about": true,
}

type classifierRule struct {
	kind       IntentKind
	confidence float64
	matches    func(text string) bool
	extract    func(text string, res *IntentResult)
}

// Classifier turns free text into an IntentResult using the documented
// rule priorities. It is deterministic and makes no claim to generalize
// beyond its patterns.
type Classifier struct {
	rules []classifierRule
	now   func() time.Time
}

type ClassifierOption func(*Classifier)

// WithClock overrides the clock used for the current-year forecast fallback.
func WithClock(now func() time.Time) ClassifierOption {
	return func(c *Classifier) {
		c.now = now
	}
}

// NewClassifier builds the rule table. destinationNames are the catalog's
// destination names; mentioning one is enough to count as a navigate intent
// even without a navigation verb.
func NewClassifier(destinationNames []string, opts ...ClassifierOption) *Classifier {
	c := &Classifier{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}

	namePattern := compileNamePattern(destinationNames)

	c.rules = []classifierRule{
		{
			kind:       IntentBack,
			confidence: 0.95,
			matches:    backPattern.MatchString,
		},
		{
			kind:       IntentForecast,
			confidence: 0.9,
			matches: func(text string) bool {
				for _, p := range forecastPatterns {
					if p.MatchString(text) {
						return true
					}
				}
				return false
			},
			extract: func(text string, res *IntentResult) {
				res.Target = "yearly"
				res.Year = c.extractYear(text)
			},
		},
		{
			kind:       IntentHome,
			confidence: 0.95,
			matches:    homePattern.MatchString,
		},
		{
			kind:       IntentNavigate,
			confidence: 0.8,
			matches: func(text string) bool {
				if navigateVerbPattern.MatchString(text) || navigatePolitePattern.MatchString(text) {
					return true
				}
				return namePattern != nil && namePattern.MatchString(text)
			},
			extract: func(text string, res *IntentResult) {
				res.Target = stripStopWords(text, navigateStopWords)
			},
		},
		{
			kind:       IntentHelp,
			confidence: 0.9,
			matches:    helpPattern.MatchString,
		},
		{
			kind:       IntentSearch,
			confidence: 0.7,
			matches:    searchPattern.MatchString,
			extract: func(text string, res *IntentResult) {
				res.Target = stripStopWords(text, searchStopWords)
			},
		},
	}

	return c
}

// Classify evaluates the rule table top to bottom and returns the first
// match. Input is trimmed and lower-cased before matching; callers must
// suppress empty input themselves.
func (c *Classifier) Classify(text string) IntentResult {
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, rule := range c.rules {
		if !rule.matches(lower) {
			continue
		}
		res := IntentResult{Kind: rule.kind, Confidence: rule.confidence}
		if rule.extract != nil {
			rule.extract(lower, &res)
		}
		return res
	}

	return IntentResult{Kind: IntentUnknown, Confidence: 0}
}

// extractYear pulls a 4-digit 20xx token out of the text, falling back to
// the current calendar year when none parses.
func (c *Classifier) extractYear(text string) int {
	if token := yearPattern.FindString(text); token != "" {
		if year, err := strconv.Atoi(token); err == nil {
			return year
		}
	}
	return c.now().Year()
}

func stripStopWords(text string, stop map[string]bool) string {
	var kept []string
	for _, word := range strings.Fields(text) {
		if !stop[word] {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}

func compileNamePattern(names []string) *regexp.Regexp {
	var quoted []string
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			quoted = append(quoted, regexp.QuoteMeta(name))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(strings.Join(quoted, "|"))
}
