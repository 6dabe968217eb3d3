package assistantService

import (
	"context"
	"sync"
	"testing"
	"time"

	"fineo-backend/internal/api/assistant"
	assistantRepository "fineo-backend/internal/api/assistant/repository"
	"fineo-backend/internal/entity"
	"fineo-backend/pkg/nav"
	redisPkg "fineo-backend/pkg/redis"
	"fineo-backend/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xcontext "golang.org/x/net/context"
)

type stubPageRepo struct {
	mu    sync.Mutex
	pages []entity.NavigationPage
}

func (s *stubPageRepo) GetActivePages(_ xcontext.Context) ([]entity.NavigationPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.NavigationPage(nil), s.pages...), nil
}

func (s *stubPageRepo) GetPageByPath(_ xcontext.Context, path string) (entity.NavigationPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, page := range s.pages {
		if page.Path == path {
			return page, nil
		}
	}
	return entity.NavigationPage{}, assistant.ErrPageNotFound
}

func (s *stubPageRepo) CreatePage(_ xcontext.Context, page entity.NavigationPage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages = append(s.pages, page)
	return nil
}

func (s *stubPageRepo) UpdatePage(_ xcontext.Context, page entity.NavigationPage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pages {
		if s.pages[i].Path == page.Path {
			s.pages[i] = page
			return nil
		}
	}
	return assistant.ErrPageNotFound
}

type stubCommandRepo struct {
	mu       sync.Mutex
	commands []entity.AssistantCommand
}

func (s *stubCommandRepo) CreateCommand(_ xcontext.Context, command entity.AssistantCommand) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, command)
	return nil
}

func (s *stubCommandRepo) GetCommandsByUserID(_ xcontext.Context, userID string, limit int) ([]entity.AssistantCommand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.AssistantCommand
	for _, command := range s.commands {
		if command.UserID == userID {
			out = append(out, command)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *stubCommandRepo) CountCommandsByUserID(_ xcontext.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, command := range s.commands {
		if command.UserID == userID {
			total++
		}
	}
	return total, nil
}

func (s *stubCommandRepo) snapshot() []entity.AssistantCommand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.AssistantCommand(nil), s.commands...)
}

type stubRepository struct {
	page    *stubPageRepo
	command *stubCommandRepo
}

func (s *stubRepository) NewClient(bool) (assistantRepository.Client, error) {
	return assistantRepository.Client{
		Page:     s.page,
		Command:  s.command,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type stubRedis struct {
	mu    sync.Mutex
	store map[string][]entity.NavigationPage
}

func newStubRedis() *stubRedis {
	return &stubRedis{store: make(map[string][]entity.NavigationPage)}
}

func (s *stubRedis) SetCatalog(_ context.Context, key string, pages []entity.NavigationPage, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store[key] = append([]entity.NavigationPage(nil), pages...)
	return nil
}

func (s *stubRedis) GetCatalog(_ context.Context, key string) ([]entity.NavigationPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pages, ok := s.store[key]
	if !ok {
		return nil, redisPkg.ErrCacheMiss
	}
	return append([]entity.NavigationPage(nil), pages...), nil
}

func (s *stubRedis) DeleteCatalog(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.store, key)
	return nil
}

func newTestService(t *testing.T) (IAssistantService, *stubRepository) {
	t.Helper()

	repo := &stubRepository{page: &stubPageRepo{}, command: &stubCommandRepo{}}
	logger := logrus.New()

	svc := NewAssistantService(logger, repo, newStubRedis(), utils.New())
	return svc, repo
}

func TestSendMessage_AcceptedAndBusy(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.SendMessage(ctx, "user-1", assistant.SendMessageRequest{Text: "go to dashboard"})
	require.NoError(t, err)
	assert.True(t, resp.Accepted)
	assert.True(t, resp.Busy)

	// A second message while the first turn is resolving is refused.
	_, err = svc.SendMessage(ctx, "user-1", assistant.SendMessageRequest{Text: "go to settings"})
	assert.ErrorIs(t, err, assistant.ErrSessionBusy)
}

func TestSendMessage_EmptyText(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SendMessage(context.Background(), "user-1", assistant.SendMessageRequest{Text: "   "})
	assert.ErrorIs(t, err, assistant.ErrEmptyMessage)
}

func TestSendMessage_PersistsResolvedTurn(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, "user-1", assistant.SendMessageRequest{Text: "go to dashboard"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(repo.command.snapshot()) == 1
	}, 3*time.Second, 20*time.Millisecond)

	commands := repo.command.snapshot()
	assert.Equal(t, "user-1", commands[0].UserID)
	assert.Equal(t, "go to dashboard", commands[0].Input)
	assert.Equal(t, string(nav.IntentNavigate), commands[0].Intent)
	assert.Equal(t, "dashboard", commands[0].Target)
	assert.Contains(t, commands[0].Response, "Dashboard")
	assert.NotEmpty(t, commands[0].ID)
}

func TestSubscribe_StreamsConversationEvents(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	events, cancel := svc.Subscribe("user-1")
	defer cancel()

	_, err := svc.SendMessage(ctx, "user-1", assistant.SendMessageRequest{Text: "go to dashboard"})
	require.NoError(t, err)

	var received []assistant.Event
	deadline := time.After(3 * time.Second)
	for len(received) < 4 {
		select {
		case event := <-events:
			received = append(received, event)
		case <-deadline:
			t.Fatalf("timed out waiting for events, got %d", len(received))
		}
	}

	// Welcome, user message, bot reply, then the navigation side-effect.
	assert.Equal(t, assistant.EventMessage, received[0].Type)
	assert.Equal(t, nav.SenderBot, received[0].Message.Sender)
	assert.Equal(t, nav.SenderUser, received[1].Message.Sender)
	assert.Equal(t, nav.SenderBot, received[2].Message.Sender)
	assert.Equal(t, nav.MessageNavigation, received[2].Message.Type)
	assert.Equal(t, assistant.EventNavigate, received[3].Type)
	assert.Equal(t, "/dashboard", received[3].Path)
}

func TestReportPath_UpdatesStateAndSuggestions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.ReportPath(ctx, "user-1", assistant.ReportPathRequest{Path: "/dashboard"}))
	require.NoError(t, svc.ReportPath(ctx, "user-1", assistant.ReportPathRequest{Path: "/portfolio"}))

	state, err := svc.GetState(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "/portfolio", state.CurrentPath)
	assert.Equal(t, []string{"/dashboard", "/portfolio"}, state.History)

	suggestions, err := svc.GetSuggestions(ctx, "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)
	// Category siblings of /portfolio outrank the popular fallback.
	assert.Equal(t, "/dashboard", suggestions[0].Path)
	assert.NotEqual(t, "/portfolio", suggestions[0].Path)
}

func TestGetState_NoSession(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetState(context.Background(), "nobody")
	assert.ErrorIs(t, err, assistant.ErrSessionNotFound)
}

func TestEndSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, "user-1", assistant.SendMessageRequest{Text: "hello help"})
	require.NoError(t, err)

	require.NoError(t, svc.EndSession(ctx, "user-1"))
	assert.ErrorIs(t, svc.EndSession(ctx, "user-1"), assistant.ErrSessionNotFound)
}

func TestTestIntent(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.TestIntent(context.Background(), assistant.IntentTestRequest{Text: "forecast 2030"})
	require.NoError(t, err)
	assert.Equal(t, string(nav.IntentForecast), resp.Intent)
	assert.Equal(t, 2030, resp.Year)
}

func TestGetForecast_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetForecast(ctx, 123)
	assert.ErrorIs(t, err, assistant.ErrInvalidYear)

	forecast, err := svc.GetForecast(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, forecast.Year)
	assert.Equal(t, *forecast, nav.Forecast(2025))
}

func TestGetPages_FallsBackToDefaultCatalog(t *testing.T) {
	svc, _ := newTestService(t)

	pages, err := svc.GetPages(context.Background())
	require.NoError(t, err)
	require.Len(t, pages, 13)
	assert.Equal(t, "/", pages[0].Path)
	assert.Equal(t, "Dashboard", pages[1].Name)
}

func TestCreatePage_RejectsDuplicatePath(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := assistant.PageRequest{
		Name:     "Reports",
		Path:     "/reports",
		Category: "finance",
	}

	require.NoError(t, svc.CreatePage(ctx, req))
	assert.ErrorIs(t, svc.CreatePage(ctx, req), assistant.ErrPagePathExists)
}
