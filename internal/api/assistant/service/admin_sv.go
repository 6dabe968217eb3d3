package assistantService

import (
	"context"

	"fineo-backend/internal/api/assistant"
	"fineo-backend/internal/entity"
	contextPkg "fineo-backend/pkg/context"
	"fineo-backend/pkg/nav"

	"github.com/sirupsen/logrus"
)

const defaultHistoryLimit = 20

func (s *assistantService) GetHistory(ctx context.Context, userID string, limit int) (*assistant.CommandHistoryResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultHistoryLimit
	}

	repo, err := s.assistantRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	commands, err := repo.Command.GetCommandsByUserID(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	total, err := repo.Command.CountCommandsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]assistant.CommandHistoryItem, 0, len(commands))
	for _, command := range commands {
		items = append(items, assistant.CommandHistoryItem{
			ID:         command.ID,
			Input:      command.Input,
			Intent:     command.Intent,
			Confidence: command.Confidence,
			Target:     command.Target,
			Year:       command.Year,
			Response:   command.Response,
			CreatedAt:  command.CreatedAt,
		})
	}

	return &assistant.CommandHistoryResponse{
		Commands: items,
		Total:    total,
	}, nil
}

// TestIntent classifies a piece of text without touching any session, for
// debugging the rule table against a live catalog.
func (s *assistantService) TestIntent(ctx context.Context, req assistant.IntentTestRequest) (*assistant.IntentTestResponse, error) {
	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	res := nav.NewClassifier(catalog.Names()).Classify(req.Text)

	return &assistant.IntentTestResponse{
		Intent:     string(res.Kind),
		Confidence: res.Confidence,
		Target:     res.Target,
		Year:       res.Year,
	}, nil
}

func (s *assistantService) GetForecast(ctx context.Context, year int) (*nav.YearlyForecast, error) {
	if year < 1000 || year > 9999 {
		return nil, assistant.ErrInvalidYear
	}

	forecast := nav.Forecast(year)
	return &forecast, nil
}

func (s *assistantService) GetPages(ctx context.Context) ([]assistant.PageResponse, error) {
	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	pages := make([]assistant.PageResponse, 0, len(catalog))
	for _, opt := range catalog {
		pages = append(pages, assistant.PageResponse{
			Name:        opt.Name,
			Path:        opt.Path,
			Description: opt.Description,
			Category:    opt.Category,
			Keywords:    opt.Keywords,
			Aliases:     opt.Aliases,
			IsActive:    true,
		})
	}

	return pages, nil
}

func (s *assistantService) CreatePage(ctx context.Context, req assistant.PageRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.assistantRepo.NewClient(true)
	if err != nil {
		return err
	}
	defer repo.Rollback()

	if _, err := repo.Page.GetPageByPath(ctx, req.Path); err == nil {
		return assistant.ErrPagePathExists
	}

	if err := repo.Page.CreatePage(ctx, s.makePage(req)); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		return err
	}

	s.invalidateCatalog(ctx)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"path":       req.Path,
	}).Info("Navigation page created")

	return nil
}

func (s *assistantService) UpdatePage(ctx context.Context, path string, req assistant.PageRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.assistantRepo.NewClient(true)
	if err != nil {
		return err
	}
	defer repo.Rollback()

	page := s.makePage(req)
	page.Path = path

	if err := repo.Page.UpdatePage(ctx, page); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		return err
	}

	s.invalidateCatalog(ctx)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"path":       path,
	}).Info("Navigation page updated")

	return nil
}

func (s *assistantService) makePage(req assistant.PageRequest) entity.NavigationPage {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return entity.NavigationPage{
		Name:        req.Name,
		Path:        req.Path,
		Description: req.Description,
		Category:    req.Category,
		Keywords:    req.Keywords,
		Aliases:     req.Aliases,
		IsActive:    isActive,
	}
}

func (s *assistantService) invalidateCatalog(ctx context.Context) {
	if err := s.redisServer.DeleteCatalog(ctx, catalogCacheKey); err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Failed to invalidate catalog cache")
	}
}
