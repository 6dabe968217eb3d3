package assistantService

import (
	"context"
	"sync"

	"fineo-backend/internal/api/assistant"
	assistantRepository "fineo-backend/internal/api/assistant/repository"
	"fineo-backend/pkg/nav"
	"fineo-backend/pkg/redis"
	"fineo-backend/pkg/utils"

	"github.com/sirupsen/logrus"
)

type IAssistantService interface {
	SendMessage(ctx context.Context, userID string, req assistant.SendMessageRequest) (*assistant.SendMessageResponse, error)
	QuickAction(ctx context.Context, userID string, req assistant.QuickActionRequest) (*assistant.SendMessageResponse, error)
	ReportPath(ctx context.Context, userID string, req assistant.ReportPathRequest) error
	GetMessages(ctx context.Context, userID string) ([]nav.Message, error)
	GetSuggestions(ctx context.Context, userID string) ([]nav.Option, error)
	GetState(ctx context.Context, userID string) (*assistant.StateResponse, error)
	EndSession(ctx context.Context, userID string) error

	Subscribe(userID string) (<-chan assistant.Event, func())

	GetHistory(ctx context.Context, userID string, limit int) (*assistant.CommandHistoryResponse, error)
	TestIntent(ctx context.Context, req assistant.IntentTestRequest) (*assistant.IntentTestResponse, error)
	GetForecast(ctx context.Context, year int) (*nav.YearlyForecast, error)

	GetPages(ctx context.Context) ([]assistant.PageResponse, error)
	CreatePage(ctx context.Context, req assistant.PageRequest) error
	UpdatePage(ctx context.Context, path string, req assistant.PageRequest) error
}

type assistantService struct {
	log           *logrus.Logger
	assistantRepo assistantRepository.Repository
	redisServer   redis.IRedis
	utils         utils.IUtils

	mu          sync.Mutex
	sessions    map[string]*userSession
	subscribers map[string]map[int]chan assistant.Event
	nextSubID   int
}

func NewAssistantService(
	log *logrus.Logger,
	assistantRepo assistantRepository.Repository,
	redisServer redis.IRedis,
	utils utils.IUtils,
) IAssistantService {
	s := &assistantService{
		log:           log,
		assistantRepo: assistantRepo,
		redisServer:   redisServer,
		utils:         utils,
		sessions:      make(map[string]*userSession),
		subscribers:   make(map[string]map[int]chan assistant.Event),
	}

	go s.reapIdleSessions()

	return s
}
