package nav

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Simulated latency of a turn. The reply delay separates a submitted
// message from the bot's answer; the navigation delays separate the answer
// from the navigation side-effect so the session is Idle again before the
// host router moves.
const (
	DefaultReplyDelay    = 600 * time.Millisecond
	DefaultNavigateDelay = 500 * time.Millisecond
	DefaultHomeDelay     = 300 * time.Millisecond
)

const (
	welcomeText     = "Hi, I'm Nova. Try: 'go to dashboard', 'back', 'home', or 'forecast 2025'."
	helpText        = "Try: 'Go to dashboard', 'Contact us', 'Back', 'Home', or 'Forecast for 2025'."
	noMatchText     = "I couldn't find an exact match. Here are some suggestions:"
	fallbackText    = "I didn't quite understand that. You can ask me to navigate or say 'help'."
	goingHomeText   = "Taking you home."
	goingBackText   = "Going back to the previous page."
	rootPath        = "/"
	submitKey       = "Enter"
)

// Navigator is the side-effecting callback the session uses to request a
// location change. How navigation physically happens is the host's problem.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Session is the conversation state machine. It owns the append-only
// message log, the path history stack, and the busy flag that keeps at most
// one turn in flight. All methods are safe for concurrent use; pending
// timers are cancelled by Close.
type Session struct {
	mu sync.Mutex

	catalog    Catalog
	navigator  Navigator
	classifier *Classifier
	tasks      *taskGroup

	messages    []Message
	history     []string
	suggestions []Option
	currentPath string
	busy        bool
	closed      bool

	replyDelay    time.Duration
	navigateDelay time.Duration
	homeDelay     time.Duration

	now      func() time.Time
	newID    func() string
	listener func(Message)
}

type SessionOption func(*Session)

// WithDelays overrides the simulated turn latencies. Tests use this to keep
// turns fast without changing the ordering guarantees.
func WithDelays(reply, navigate, home time.Duration) SessionOption {
	return func(s *Session) {
		s.replyDelay = reply
		s.navigateDelay = navigate
		s.homeDelay = home
	}
}

// WithSessionClock overrides message timestamps and the forecast-year
// fallback clock.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// WithMessageListener registers a callback invoked for every appended
// message, in append order.
func WithMessageListener(fn func(Message)) SessionOption {
	return func(s *Session) {
		s.listener = fn
	}
}

func NewSession(catalog Catalog, navigator Navigator, opts ...SessionOption) *Session {
	s := &Session{
		catalog:       catalog,
		navigator:     navigator,
		tasks:         newTaskGroup(),
		replyDelay:    DefaultReplyDelay,
		navigateDelay: DefaultNavigateDelay,
		homeDelay:     DefaultHomeDelay,
		now:           time.Now,
		newID:         func() string { return ulid.Make().String() },
	}

	for _, opt := range opts {
		opt(s)
	}

	s.classifier = NewClassifier(catalog.Names(), WithClock(s.now))
	s.suggestions = Suggest("", catalog, DefaultMaxSuggestions)

	s.append(Message{Text: welcomeText, Sender: SenderBot, Type: MessageText})

	return s
}

// SendMessage submits one user turn. It reports false, with no state
// change, when the text is blank, a turn is already resolving, or the
// session is closed. The user message is appended synchronously so the log
// always reflects submission order.
func (s *Session) SendMessage(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	s.mu.Lock()
	if s.closed || s.busy {
		s.mu.Unlock()
		return false
	}
	s.busy = true
	msg := s.appendLocked(Message{Text: text, Sender: SenderUser, Type: MessageText})
	s.mu.Unlock()

	s.notify(msg)

	s.tasks.After(s.replyDelay, func() {
		s.resolveTurn(text)
	})

	return true
}

// QuickAction feeds a suggestion keyword through the normal turn pipeline.
func (s *Session) QuickAction(keyword string) bool {
	return s.SendMessage(keyword)
}

// KeyPress is the submit-keystroke adapter: Enter sends the pending input,
// anything else is ignored.
func (s *Session) KeyPress(key, input string) bool {
	if key != submitKey {
		return false
	}
	return s.SendMessage(input)
}

// SuggestionClick acknowledges a clicked suggestion chip and schedules
// navigation to it, bypassing classification.
func (s *Session) SuggestionClick(opt Option) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	msg := s.appendLocked(Message{
		Text:   fmt.Sprintf("Taking you to %s!", opt.Name),
		Sender: SenderBot,
		Type:   MessageNavigation,
		Target: opt.Path,
	})
	s.mu.Unlock()

	s.notify(msg)
	s.scheduleNavigation(opt.Path, s.navigateDelay)
}

// ObservePath records an externally-reported location change: it maintains
// the history stack (never pushing a consecutive duplicate) and refreshes
// the contextual suggestions.
func (s *Session) ObservePath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.currentPath = path
	if n := len(s.history); n == 0 || s.history[n-1] != path {
		s.history = append(s.history, path)
	}
	s.suggestions = Suggest(path, s.catalog, DefaultMaxSuggestions)
}

// resolveTurn runs after the reply delay: classify, answer, and schedule
// any navigation side-effect. The session is Idle again before the
// navigation callback fires.
func (s *Session) resolveTurn(text string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	res := s.classifier.Classify(text)

	var (
		reply   Message
		navPath string
		navWait time.Duration
		goBack  bool
	)

	switch res.Kind {
	case IntentHome:
		reply = Message{Text: goingHomeText, Sender: SenderBot, Type: MessageNavigation, Target: rootPath}
		navPath, navWait = rootPath, s.homeDelay

	case IntentBack:
		reply = Message{Text: goingBackText, Sender: SenderBot, Type: MessageNavigation}
		goBack, navWait = true, s.homeDelay

	case IntentNavigate, IntentSearch:
		target := res.Target
		if target == "" {
			target = text
		}
		if match, ok := Resolve(target, s.catalog); ok {
			reply = Message{
				Text:   fmt.Sprintf("I'll take you to %s!", match.Name),
				Sender: SenderBot,
				Type:   MessageNavigation,
				Target: match.Path,
			}
			navPath, navWait = match.Path, s.navigateDelay
		} else {
			reply = Message{
				Text:        noMatchText,
				Sender:      SenderBot,
				Type:        MessageSuggestion,
				Suggestions: append([]Option(nil), s.suggestions...),
			}
		}

	case IntentForecast:
		forecast := Forecast(res.Year)
		reply = Message{
			Text:     fmt.Sprintf("Yearly outlook for %d", forecast.Year),
			Sender:   SenderBot,
			Type:     MessageForecast,
			Forecast: &forecast,
		}

	case IntentHelp:
		reply = Message{Text: helpText, Sender: SenderBot, Type: MessageSuggestion}

	default:
		reply = Message{Text: fallbackText, Sender: SenderBot, Type: MessageSuggestion}
	}

	appended := s.appendLocked(reply)
	s.busy = false
	s.mu.Unlock()

	s.notify(appended)

	if goBack {
		s.tasks.After(navWait, s.fireBack)
	} else if navPath != "" {
		s.scheduleNavigation(navPath, navWait)
	}
}

// fireBack pops the current location and navigates to the previous one, or
// to the root when the stack is too shallow to go anywhere.
func (s *Session) fireBack() {
	s.mu.Lock()
	target := rootPath
	if len(s.history) > 1 {
		s.history = s.history[:len(s.history)-1]
		target = s.history[len(s.history)-1]
		s.history = s.history[:len(s.history)-1]
	}
	s.mu.Unlock()

	if s.navigator != nil {
		s.navigator.Navigate(target)
	}
}

func (s *Session) scheduleNavigation(path string, wait time.Duration) {
	s.tasks.After(wait, func() {
		if s.navigator != nil {
			s.navigator.Navigate(path)
		}
	})
}

// Close tears the session down, cancelling every pending timer so no late
// callback mutates a disposed session.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.tasks.Close()
}

// Messages returns a snapshot of the transcript in append order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

// Busy reports whether a turn is currently resolving.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Suggestions returns the current quick-action chips.
func (s *Session) Suggestions() []Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Option(nil), s.suggestions...)
}

// History returns a snapshot of the visited-path stack, oldest first.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

// CurrentPath returns the last externally-reported location.
func (s *Session) CurrentPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPath
}

func (s *Session) append(msg Message) {
	s.mu.Lock()
	appended := s.appendLocked(msg)
	s.mu.Unlock()
	s.notify(appended)
}

func (s *Session) appendLocked(msg Message) Message {
	msg.ID = s.newID()
	msg.Timestamp = s.now()
	s.messages = append(s.messages, msg)
	return msg
}

func (s *Session) notify(msg Message) {
	if s.listener != nil {
		s.listener(msg)
	}
}
