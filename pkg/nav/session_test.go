package nav

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type navRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *navRecorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *navRecorder) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func fastDelays() SessionOption {
	return WithDelays(5*time.Millisecond, 5*time.Millisecond, 5*time.Millisecond)
}

func waitIdle(t *testing.T, s *Session) {
	t.Helper()
	require.Eventually(t, func() bool { return !s.Busy() },
		time.Second, time.Millisecond)
}

func lastMessage(s *Session) Message {
	msgs := s.Messages()
	return msgs[len(msgs)-1]
}

func TestSession_OpensWithWelcome(t *testing.T) {
	s := NewSession(suggestCatalog(), &navRecorder{}, fastDelays())
	defer s.Close()

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, SenderBot, msgs[0].Sender)
	assert.Equal(t, MessageText, msgs[0].Type)
	assert.NotEmpty(t, msgs[0].ID)
}

func TestSession_NavigateTurn(t *testing.T) {
	rec := &navRecorder{}
	s := NewSession(suggestCatalog(), rec, fastDelays())
	defer s.Close()

	require.True(t, s.SendMessage("go to dashboard"))
	assert.True(t, s.Busy())

	// The user message is visible before the bot reply is computed.
	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, SenderUser, msgs[1].Sender)
	assert.Equal(t, "go to dashboard", msgs[1].Text)

	waitIdle(t, s)

	reply := lastMessage(s)
	assert.Equal(t, "I'll take you to Dashboard!", reply.Text)
	assert.Equal(t, MessageNavigation, reply.Type)
	assert.Equal(t, "/dashboard", reply.Target)

	require.Eventually(t, func() bool { return len(rec.recorded()) == 1 },
		time.Second, time.Millisecond)
	assert.Equal(t, []string{"/dashboard"}, rec.recorded())
}

func TestSession_ForecastTurn(t *testing.T) {
	rec := &navRecorder{}
	s := NewSession(suggestCatalog(), rec, fastDelays())
	defer s.Close()

	require.True(t, s.SendMessage("forecast for 2030"))
	waitIdle(t, s)

	reply := lastMessage(s)
	assert.Equal(t, MessageForecast, reply.Type)
	require.NotNil(t, reply.Forecast)
	assert.Equal(t, 2030, reply.Forecast.Year)
	assert.Equal(t, Forecast(2030), *reply.Forecast)

	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, rec.recorded(), "forecast must not navigate")
}

func TestSession_UnknownTurn(t *testing.T) {
	rec := &navRecorder{}
	s := NewSession(suggestCatalog(), rec, fastDelays())
	defer s.Close()

	s.ObservePath("/")
	before := s.History()

	require.True(t, s.SendMessage("asdkfj qqq"))
	waitIdle(t, s)

	reply := lastMessage(s)
	assert.Equal(t, MessageSuggestion, reply.Type)
	assert.Equal(t, fallbackText, reply.Text)

	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, rec.recorded())
	assert.Equal(t, before, s.History())
}

func TestSession_NoMatchYieldsSuggestions(t *testing.T) {
	s := NewSession(suggestCatalog(), &navRecorder{}, fastDelays())
	defer s.Close()

	require.True(t, s.SendMessage("go to the moon base"))
	waitIdle(t, s)

	reply := lastMessage(s)
	assert.Equal(t, MessageSuggestion, reply.Type)
	assert.Equal(t, noMatchText, reply.Text)
	assert.NotEmpty(t, reply.Suggestions)
}

func TestSession_RejectsBlankAndBusy(t *testing.T) {
	s := NewSession(suggestCatalog(), &navRecorder{},
		WithDelays(50*time.Millisecond, time.Millisecond, time.Millisecond))
	defer s.Close()

	assert.False(t, s.SendMessage("   "))
	require.Len(t, s.Messages(), 1)

	require.True(t, s.SendMessage("go to dashboard"))
	assert.False(t, s.SendMessage("go to settings"), "second turn must be rejected while busy")
	require.Len(t, s.Messages(), 2, "rejected turn must not append a message")

	waitIdle(t, s)
	assert.True(t, s.SendMessage("go to settings"), "accepted again once idle")
}

func TestSession_HistoryDedupAndBack(t *testing.T) {
	rec := &navRecorder{}
	s := NewSession(suggestCatalog(), rec, fastDelays())
	defer s.Close()

	for _, p := range []string{"/", "/dashboard", "/dashboard", "/portfolio"} {
		s.ObservePath(p)
	}
	assert.Equal(t, []string{"/", "/dashboard", "/portfolio"}, s.History())

	require.True(t, s.SendMessage("back"))
	waitIdle(t, s)
	require.Eventually(t, func() bool { return len(rec.recorded()) == 1 },
		time.Second, time.Millisecond)
	assert.Equal(t, "/dashboard", rec.recorded()[0])

	require.True(t, s.SendMessage("back"))
	waitIdle(t, s)
	require.Eventually(t, func() bool { return len(rec.recorded()) == 2 },
		time.Second, time.Millisecond)
	assert.Equal(t, "/", rec.recorded()[1])
}

func TestSession_BackFromShallowStackGoesToRoot(t *testing.T) {
	rec := &navRecorder{}
	s := NewSession(suggestCatalog(), rec, fastDelays())
	defer s.Close()

	s.ObservePath("/dashboard")

	require.True(t, s.SendMessage("back"))
	waitIdle(t, s)
	require.Eventually(t, func() bool { return len(rec.recorded()) == 1 },
		time.Second, time.Millisecond)
	assert.Equal(t, "/", rec.recorded()[0])
}

func TestSession_HomeNavigatesToRoot(t *testing.T) {
	rec := &navRecorder{}
	s := NewSession(suggestCatalog(), rec, fastDelays())
	defer s.Close()

	s.ObservePath("/portfolio")

	require.True(t, s.SendMessage("home"))
	waitIdle(t, s)
	require.Eventually(t, func() bool { return len(rec.recorded()) == 1 },
		time.Second, time.Millisecond)
	assert.Equal(t, "/", rec.recorded()[0])
}

func TestSession_CloseCancelsPendingWork(t *testing.T) {
	rec := &navRecorder{}
	s := NewSession(suggestCatalog(), rec,
		WithDelays(20*time.Millisecond, 20*time.Millisecond, 20*time.Millisecond))

	require.True(t, s.SendMessage("go to dashboard"))
	s.Close()

	time.Sleep(80 * time.Millisecond)
	assert.Len(t, s.Messages(), 2, "no bot reply after teardown")
	assert.Empty(t, rec.recorded(), "no navigation after teardown")
	assert.False(t, s.SendMessage("go to settings"))
}

func TestSession_ObservePathRefreshesSuggestions(t *testing.T) {
	s := NewSession(suggestCatalog(), &navRecorder{}, fastDelays())
	defer s.Close()

	s.ObservePath("/dashboard")

	got := s.Suggestions()
	require.NotEmpty(t, got)
	assert.Equal(t, "/portfolio", got[0].Path, "category siblings come first")
	assert.Equal(t, "/dashboard", s.CurrentPath())
}

func TestSession_KeyPressAdapter(t *testing.T) {
	s := NewSession(suggestCatalog(), &navRecorder{}, fastDelays())
	defer s.Close()

	assert.False(t, s.KeyPress("Escape", "go to dashboard"))
	require.Len(t, s.Messages(), 1)

	assert.True(t, s.KeyPress("Enter", "go to dashboard"))
	require.Len(t, s.Messages(), 2)
	waitIdle(t, s)
}

func TestSession_SuggestionClick(t *testing.T) {
	rec := &navRecorder{}
	s := NewSession(suggestCatalog(), rec, fastDelays())
	defer s.Close()

	s.SuggestionClick(Option{Name: "Portfolio", Path: "/portfolio"})

	reply := lastMessage(s)
	assert.Equal(t, "Taking you to Portfolio!", reply.Text)
	assert.Equal(t, MessageNavigation, reply.Type)

	require.Eventually(t, func() bool { return len(rec.recorded()) == 1 },
		time.Second, time.Millisecond)
	assert.Equal(t, "/portfolio", rec.recorded()[0])
}

func TestSession_ListenerSeesAppendOrder(t *testing.T) {
	var mu sync.Mutex
	var seen []Sender

	s := NewSession(suggestCatalog(), &navRecorder{}, fastDelays(),
		WithMessageListener(func(m Message) {
			mu.Lock()
			seen = append(seen, m.Sender)
			mu.Unlock()
		}))
	defer s.Close()

	require.True(t, s.SendMessage("help"))
	waitIdle(t, s)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Sender{SenderBot, SenderUser, SenderBot}, seen)
}
