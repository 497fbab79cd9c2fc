package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/muro-api/internal/auth"
	"github.com/gravadigital/muro-api/internal/config"
	"github.com/gravadigital/muro-api/internal/handlers"
	"github.com/gravadigital/muro-api/internal/logger"
	authmw "github.com/gravadigital/muro-api/internal/middleware/auth"
	"github.com/gravadigital/muro-api/internal/middleware/events"
	"github.com/gravadigital/muro-api/internal/relay"
	"github.com/gravadigital/muro-api/internal/storage"
	"github.com/gravadigital/muro-api/internal/transport"
	"github.com/gravadigital/muro-api/internal/upload"
	"github.com/gravadigital/muro-api/internal/wall"
)

// Deps are the collaborators the server wires into its handlers
type Deps struct {
	Store    *storage.Container
	Relay    *relay.Relay
	Conn     transport.Connection
	Ledger   *wall.Ledger
	Uploader upload.Uploader
	Auth     *auth.Service
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	config     *config.Config
	deps       Deps
}

// New creates a new server instance
func New(cfg *config.Config, deps Deps) *Server {
	return &Server{
		config: cfg,
		deps:   deps,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	router := s.setupRouter()

	s.httpServer = &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: router,

		ReadTimeout:       15 * time.Second,
		WriteTimeout:      0, // SSE streams stay open indefinitely
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Get().Info("Starting HTTP server", "port", s.config.Server.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	logger.Get().Info("Shutting down HTTP server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *gin.Engine {
	if s.config.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(events.RequestLogger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if s.config.CORS.AllowOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(s.config.CORS.AllowOrigins, ",")
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowHeaders = strings.Split(s.config.CORS.AllowHeaders, ",")
	router.Use(cors.New(corsConfig))

	moderator := wall.NewModerator(s.deps.Ledger, s.deps.Relay)

	authHandler := handlers.NewAuthHandler(s.deps.Auth)
	eventHandler := handlers.NewEventHandler(s.deps.Store.Events, s.deps.Relay)
	guestHandler := handlers.NewGuestHandler(s.deps.Store.Guests, s.deps.Store.Events)
	messageHandler := handlers.NewMessageHandler(moderator, s.deps.Ledger, s.deps.Uploader)
	moderationHandler := handlers.NewModerationHandler(moderator)
	relayHandler := handlers.NewRelayHandler(s.deps.Relay)
	streamHandler := handlers.NewStreamHandler(s.deps.Conn, s.deps.Ledger, s.deps.Store.Events)

	// Health check
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Muro API is running",
			"status":  "healthy",
		})
	})

	requireAdmin := authmw.RequireAdmin(s.deps.Auth)

	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		// The server-mediated trigger: the only cross-process write path.
		api.POST("/relay", relayHandler.Trigger)

		eventsGroup := api.Group("/events")
		{
			eventsGroup.GET("", requireAdmin, eventHandler.GetAllEvents)
			eventsGroup.POST("", requireAdmin, eventHandler.CreateEvent)
			eventsGroup.GET("/code/:code", eventHandler.GetEventByCode)
			eventsGroup.PATCH("/:event_id/effects", requireAdmin, eventHandler.UpdateEffects)
			eventsGroup.GET("/:event_id/messages", requireAdmin, messageHandler.GetEventMessages)
			eventsGroup.GET("/:event_id/stream", streamHandler.Stream)

			eventsGroup.POST("/:event_id/guests", guestHandler.RegisterGuest)
			eventsGroup.GET("/:event_id/guests/:phone", guestHandler.GetGuestByPhone)
		}

		messages := api.Group("/messages")
		{
			messages.POST("", messageHandler.SubmitMessage)
			messages.POST("/:message_id/approve", requireAdmin, moderationHandler.ApproveMessage)
			messages.POST("/:message_id/reject", requireAdmin, moderationHandler.RejectMessage)
		}
	}

	return router
}
