package nav

import "time"

type IntentKind string

const (
	IntentNavigate IntentKind = "navigate"
	IntentHelp     IntentKind = "help"
	IntentSearch   IntentKind = "search"
	IntentForecast IntentKind = "forecast"
	IntentHome     IntentKind = "home"
	IntentBack     IntentKind = "back"
	IntentUnknown  IntentKind = "unknown"
)

type IntentResult struct {
	Kind       IntentKind `json:"kind"`
	Confidence float64    `json:"confidence"`
	Target     string     `json:"target,omitempty"`
	Year       int        `json:"year,omitempty"`
}

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type MessageType string

const (
	MessageText       MessageType = "text"
	MessageNavigation MessageType = "navigation"
	MessageSuggestion MessageType = "suggestion"
	MessageForecast   MessageType = "forecast"
)

// Message is one entry of the conversation transcript. The payload fields
// are populated by Type: Target for navigation, Suggestions for suggestion,
// Forecast for forecast. A message is never mutated after being appended.
type Message struct {
	ID          string          `json:"id"`
	Text        string          `json:"text"`
	Sender      Sender          `json:"sender"`
	Timestamp   time.Time       `json:"timestamp"`
	Type        MessageType     `json:"type"`
	Target      string          `json:"target,omitempty"`
	Suggestions []Option        `json:"suggestions,omitempty"`
	Forecast    *YearlyForecast `json:"forecast,omitempty"`
}

// Option is one destination of the navigation catalog.
type Option struct {
	Name        string   `json:"name"`
	Path        string   `json:"path"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Keywords    []string `json:"keywords"`
	Aliases     []string `json:"aliases"`
}

// Catalog is the ordered, immutable list of destinations supplied by the
// host. Order matters: it is the fuzzy tie-break and the fallback ranking
// for suggestions.
type Catalog []Option

func (c Catalog) FindByPath(path string) (Option, bool) {
	for _, opt := range c {
		if opt.Path == path {
			return opt, true
		}
	}
	return Option{}, false
}

// Names returns the destination names, used by the classifier as known
// navigation tokens.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for _, opt := range c {
		names = append(names, opt.Name)
	}
	return names
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type YearlyForecast struct {
	Year           int       `json:"year"`
	GrowthPct      float64   `json:"projected_portfolio_growth_pct"`
	NetWorthChange int       `json:"projected_net_worth_change"`
	Savings        int       `json:"projected_savings"`
	RiskLevel      RiskLevel `json:"risk_level"`
}
