package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"backend/internal/challenge"
	"backend/internal/config"
	"backend/internal/content"
	"backend/internal/crm"
	"backend/internal/engagement"
	api "backend/internal/http"
	"backend/internal/http/handlers"
	"backend/internal/modal"
	"backend/internal/sched"
	"backend/internal/utils"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := utils.InitLogger(cfg.GinMode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	clock := sched.Real()

	crmClient := crm.NewClient(cfg.CRM.BaseURL, cfg.CRM.APIKey, cfg.DomainName, cfg.CRM.Timeout)
	contentClient := content.NewClient(cfg.Content.BaseURL, cfg.Content.Timeout)

	challengeStore := challenge.NewStore(clock, cfg.ChallengeTTL)
	coordinator := modal.NewCoordinator(crmClient, challengeStore, clock, cfg.SuccessCloseDelay)

	manager := engagement.NewManager(
		cfg.Engagement,
		cfg.Ticker,
		cfg.TickerItems,
		engagement.NewRotation(),
		clock,
		cfg.SessionTTL,
	)
	defer manager.Shutdown()

	r := api.NewRouter(logger, cfg.CORSOrigins, api.Handlers{
		Pricing:    handlers.NewPricingHandler(contentClient),
		Challenges: handlers.NewChallengeHandler(challengeStore),
		Leads:      handlers.NewLeadsHandler(coordinator, contentClient),
		Engagement: handlers.NewEngagementHandler(manager, coordinator),
		Content:    handlers.NewContentHandler(contentClient),
	})

	srv := &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.AppAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped")
}
