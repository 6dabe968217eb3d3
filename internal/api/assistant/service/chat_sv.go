package assistantService

import (
	"context"
	"strings"

	"fineo-backend/internal/api/assistant"
	contextPkg "fineo-backend/pkg/context"
	"fineo-backend/pkg/nav"

	"github.com/sirupsen/logrus"
)

func (s *assistantService) SendMessage(ctx context.Context, userID string, req assistant.SendMessageRequest) (*assistant.SendMessageResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, assistant.ErrEmptyMessage
	}

	us, err := s.getOrCreateSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	accepted := us.session.SendMessage(req.Text)
	if !accepted && us.session.Busy() {
		return nil, assistant.ErrSessionBusy
	}

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"user_id":    userID,
		"accepted":   accepted,
	}).Debug("Assistant message submitted")

	return &assistant.SendMessageResponse{
		Accepted: accepted,
		Busy:     us.session.Busy(),
	}, nil
}

// QuickAction feeds a suggestion keyword through the normal turn pipeline.
// A keyword with a leading slash is a clicked suggestion chip and schedules
// navigation directly, bypassing classification.
func (s *assistantService) QuickAction(ctx context.Context, userID string, req assistant.QuickActionRequest) (*assistant.SendMessageResponse, error) {
	us, err := s.getOrCreateSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(req.Keyword, "/") {
		opt, ok := nav.Catalog(us.session.Suggestions()).FindByPath(req.Keyword)
		if !ok {
			return nil, assistant.ErrPageNotFound
		}
		us.session.SuggestionClick(opt)
		return &assistant.SendMessageResponse{Accepted: true, Busy: us.session.Busy()}, nil
	}

	accepted := us.session.QuickAction(req.Keyword)
	if !accepted && us.session.Busy() {
		return nil, assistant.ErrSessionBusy
	}

	return &assistant.SendMessageResponse{
		Accepted: accepted,
		Busy:     us.session.Busy(),
	}, nil
}

// ReportPath records a host-router location change against the session,
// maintaining the history stack and refreshing suggestions.
func (s *assistantService) ReportPath(ctx context.Context, userID string, req assistant.ReportPathRequest) error {
	us, err := s.getOrCreateSession(ctx, userID)
	if err != nil {
		return err
	}

	us.session.ObservePath(req.Path)
	s.publish(userID, assistant.Event{
		Type:        assistant.EventSuggestions,
		Suggestions: us.session.Suggestions(),
	})

	return nil
}

func (s *assistantService) GetMessages(ctx context.Context, userID string) ([]nav.Message, error) {
	us, ok := s.getSession(userID)
	if !ok {
		return nil, assistant.ErrSessionNotFound
	}
	return us.session.Messages(), nil
}

func (s *assistantService) GetSuggestions(ctx context.Context, userID string) ([]nav.Option, error) {
	us, err := s.getOrCreateSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	return us.session.Suggestions(), nil
}

func (s *assistantService) GetState(ctx context.Context, userID string) (*assistant.StateResponse, error) {
	us, ok := s.getSession(userID)
	if !ok {
		return nil, assistant.ErrSessionNotFound
	}

	return &assistant.StateResponse{
		Busy:        us.session.Busy(),
		CurrentPath: us.session.CurrentPath(),
		History:     us.session.History(),
	}, nil
}
