package assistantService

import (
	"context"
	"time"

	"fineo-backend/internal/api/assistant"
	"fineo-backend/internal/entity"
	contextPkg "fineo-backend/pkg/context"
	"fineo-backend/pkg/nav"

	"github.com/sirupsen/logrus"
)

const (
	sessionIdleTTL    = 30 * time.Minute
	reapInterval      = 5 * time.Minute
	persistTimeout    = 5 * time.Second
	subscriberBacklog = 32
)

// userSession pairs one conversation state machine with the bookkeeping
// needed to persist resolved turns: the last submitted input and its
// classification, consumed when the matching bot reply arrives.
type userSession struct {
	session    *nav.Session
	classifier *nav.Classifier

	pendingInput  string
	pendingIntent nav.IntentResult
	lastActive    time.Time
}

func (s *assistantService) getOrCreateSession(ctx context.Context, userID string) (*userSession, error) {
	s.mu.Lock()
	if us, ok := s.sessions[userID]; ok {
		us.lastActive = time.Now()
		s.mu.Unlock()
		return us, nil
	}
	s.mu.Unlock()

	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	us := &userSession{
		classifier: nav.NewClassifier(catalog.Names()),
		lastActive: time.Now(),
	}

	navigator := nav.NavigatorFunc(func(path string) {
		s.publish(userID, assistant.Event{Type: assistant.EventNavigate, Path: path})
	})

	us.session = nav.NewSession(catalog, navigator,
		nav.WithMessageListener(func(msg nav.Message) {
			s.onMessage(userID, us, msg)
		}),
	)

	s.mu.Lock()
	// Another request may have raced session creation; keep the first one.
	if existing, ok := s.sessions[userID]; ok {
		s.mu.Unlock()
		us.session.Close()
		return existing, nil
	}
	s.sessions[userID] = us
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"user_id":    userID,
	}).Info("Assistant session created")

	return us, nil
}

func (s *assistantService) getSession(userID string) (*userSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	us, ok := s.sessions[userID]
	if ok {
		us.lastActive = time.Now()
	}
	return us, ok
}

// onMessage runs for every appended transcript entry. A user message is
// classified and held; the next bot message completes the pair and the
// resolved turn is written to the command log.
func (s *assistantService) onMessage(userID string, us *userSession, msg nav.Message) {
	s.publish(userID, assistant.Event{Type: assistant.EventMessage, Message: &msg})

	s.mu.Lock()
	switch msg.Sender {
	case nav.SenderUser:
		us.pendingInput = msg.Text
		us.pendingIntent = us.classifier.Classify(msg.Text)
		s.mu.Unlock()
		return
	case nav.SenderBot:
		input := us.pendingInput
		intent := us.pendingIntent
		us.pendingInput = ""
		s.mu.Unlock()

		if input == "" {
			return
		}
		s.persistCommand(userID, input, intent, msg.Text)
	default:
		s.mu.Unlock()
	}
}

func (s *assistantService) persistCommand(userID, input string, intent nav.IntentResult, response string) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	repo, err := s.assistantRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Warn("Failed to create repository client for command log")
		return
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Warn("Failed to generate command id")
		return
	}

	command := entity.AssistantCommand{
		ID:         id,
		UserID:     userID,
		Input:      input,
		Intent:     string(intent.Kind),
		Confidence: intent.Confidence,
		Target:     intent.Target,
		Year:       intent.Year,
		Response:   response,
	}

	if err := repo.Command.CreateCommand(ctx, command); err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Warn("Failed to persist assistant command")
	}
}

// Subscribe registers a websocket consumer for one user's event stream.
// The returned cancel func must be called when the consumer goes away.
func (s *assistantService) Subscribe(userID string) (<-chan assistant.Event, func()) {
	ch := make(chan assistant.Event, subscriberBacklog)

	s.mu.Lock()
	if s.subscribers[userID] == nil {
		s.subscribers[userID] = make(map[int]chan assistant.Event)
	}
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[userID][id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if subs, ok := s.subscribers[userID]; ok {
			if _, ok := subs[id]; ok {
				delete(subs, id)
				close(ch)
			}
			if len(subs) == 0 {
				delete(s.subscribers, userID)
			}
		}
		s.mu.Unlock()
	}

	return ch, cancel
}

// publish fans an event out to the user's subscribers. Slow consumers are
// skipped rather than blocking the session's timer goroutines.
func (s *assistantService) publish(userID string, event assistant.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subscribers[userID] {
		select {
		case ch <- event:
		default:
		}
	}
}

func (s *assistantService) EndSession(ctx context.Context, userID string) error {
	s.mu.Lock()
	us, ok := s.sessions[userID]
	if ok {
		delete(s.sessions, userID)
	}
	s.mu.Unlock()

	if !ok {
		return assistant.ErrSessionNotFound
	}

	us.session.Close()

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"user_id":    userID,
	}).Info("Assistant session closed")

	return nil
}

func (s *assistantService) reapIdleSessions() {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-sessionIdleTTL)

		s.mu.Lock()
		var stale []*userSession
		for userID, us := range s.sessions {
			if us.lastActive.Before(cutoff) {
				stale = append(stale, us)
				delete(s.sessions, userID)
			}
		}
		s.mu.Unlock()

		for _, us := range stale {
			us.session.Close()
		}

		if len(stale) > 0 {
			s.log.WithFields(logrus.Fields{
				"count": len(stale),
			}).Info("Reaped idle assistant sessions")
		}
	}
}
