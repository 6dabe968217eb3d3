package assistantHandler

import (
	"context"
	"strings"
	"time"

	"fineo-backend/internal/api/assistant"
	"fineo-backend/internal/entity"
	"fineo-backend/pkg/log"

	"github.com/gofiber/websocket/v2"
)

const wsWriteTimeout = 10 * time.Second

// handleEventStream pushes the user's conversation events over a
// websocket and accepts location reports and message submissions back.
func (h *AssistantHandler) handleEventStream(c *websocket.Conn) {
	userData, ok := c.Locals("user").(entity.UserLoginData)
	if !ok {
		_ = c.Close()
		return
	}

	events, cancel := h.assistantService.Subscribe(userData.ID)
	defer cancel()

	h.log.WithFields(log.Fields{
		"user_id": userData.ID,
	}).Info("Assistant event stream opened")

	done := make(chan struct{})

	go func() {
		defer close(done)
		for event := range events {
			_ = c.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := c.WriteJSON(event); err != nil {
				return
			}
		}
	}()

	for {
		var frame assistant.ClientFrame
		if err := c.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithFields(log.Fields{
					"user_id": userData.ID,
					"error":   err.Error(),
				}).Warn("Assistant event stream read error")
			}
			break
		}

		ctx, ctxCancel := context.WithTimeout(context.Background(), wsWriteTimeout)

		switch frame.Type {
		case assistant.FramePath:
			if strings.HasPrefix(frame.Path, "/") {
				_ = h.assistantService.ReportPath(ctx, userData.ID, assistant.ReportPathRequest{Path: frame.Path})
			}
		case assistant.FrameMessage:
			if strings.TrimSpace(frame.Text) != "" {
				_, _ = h.assistantService.SendMessage(ctx, userData.ID, assistant.SendMessageRequest{Text: frame.Text})
			}
		}

		ctxCancel()
	}

	cancel()
	<-done

	h.log.WithFields(log.Fields{
		"user_id": userData.ID,
	}).Info("Assistant event stream closed")
}
