package assistantHandler

import (
	assistantService "fineo-backend/internal/api/assistant/service"
	"fineo-backend/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type AssistantHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	assistantService assistantService.IAssistantService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	as assistantService.IAssistantService,
) *AssistantHandler {
	return &AssistantHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		assistantService: as,
	}
}

func (h *AssistantHandler) Start(srv fiber.Router) {
	assistant := srv.Group("/assistant")

	assistant.Use(h.middleware.NewTokenMiddleware)
	assistant.Use(h.middleware.NewRateLimiter)

	// Conversation
	assistant.Post("/message", h.SendMessage)
	assistant.Post("/quick-action", h.QuickAction)
	assistant.Post("/path", h.ReportPath)
	assistant.Get("/messages", h.GetMessages)
	assistant.Get("/suggestions", h.GetSuggestions)
	assistant.Get("/state", h.GetState)
	assistant.Delete("/session", h.EndSession)

	// Event stream
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
	assistant.Use("/ws", wsMiddleware)
	assistant.Get("/ws", websocket.New(h.handleEventStream))

	// History, debugging and catalog admin
	assistant.Get("/history", h.GetHistory)
	assistant.Post("/intent/test", h.TestIntent)
	assistant.Get("/forecast/:year", h.GetForecast)
	assistant.Get("/pages", h.GetPages)
	assistant.Post("/pages", h.CreatePage)
	assistant.Put("/pages/*", h.UpdatePage)
}
