// Package webhook implements the inbound HTTP transport: the chat webhook,
// the collection analysis endpoint, and the WhatsApp Cloud API relay.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"hoardbot/internal/bot"
	"hoardbot/internal/config"
	"hoardbot/internal/database"
	"hoardbot/internal/whatsapp"
)

// Server is the HTTP transport in front of the message-handling service.
type Server struct {
	logger  *slog.Logger
	cfg     *config.Config
	service *bot.Service
	store   database.Store
	sender  whatsapp.Sender
	engine  *gin.Engine
}

// New builds the HTTP server and its routes. The WhatsApp relay routes are
// mounted only when the relay is fully configured; sender may be nil
// otherwise.
func New(logger *slog.Logger, cfg *config.Config, service *bot.Service, store database.Store, sender whatsapp.Sender) *Server {
	s := &Server{
		logger:  logger.With("component", "webhook"),
		cfg:     cfg,
		service: service,
		store:   store,
		sender:  sender,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(s.requestLogger(), s.recovery())

	engine.GET("/health", s.handleHealth)
	engine.POST("/webhook", s.handleWebhook)
	engine.POST("/analyze", s.handleAnalyze)

	if relayConfigured(cfg.WhatsApp) {
		engine.GET("/whatsapp/webhook", s.handleWhatsAppVerify)
		engine.POST("/whatsapp/webhook", s.handleWhatsAppMessage)
		s.logger.Info("WhatsApp relay routes mounted")
	}

	s.engine = engine
	return s
}

func relayConfigured(cfg config.WhatsAppConfig) bool {
	return cfg.AccessToken != "" && cfg.PhoneNumberID != "" && cfg.VerifyToken != ""
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully within
// the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Server.ListenAddr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	s.logger.Info("HTTP server stopped gracefully")
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
