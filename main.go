package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Scrimzay/plunderpunk/internal/config"
	"github.com/Scrimzay/plunderpunk/internal/lobby"
	"github.com/Scrimzay/plunderpunk/internal/profile"
	"github.com/Scrimzay/plunderpunk/internal/server"
	"github.com/Scrimzay/plunderpunk/internal/session"
	"github.com/Scrimzay/plunderpunk/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/quasilyte/gdata/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	logger.Init()
	log := logger.Component("main")
	log.Info("=== STARTING PLUNDERPUNK ===")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}
	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load rules")
	}
	gin.SetMode(cfg.GinMode)

	store, err := lobby.Open(cfg.DBPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to open lobby")
	}
	defer store.Close()

	manager, err := gdata.Open(gdata.Config{AppName: cfg.AppName})
	if err != nil {
		log.WithError(err).Fatal("Failed to open profile storage")
	}
	profiles := profile.NewStore(manager)

	registry := session.NewRegistry(store, profiles, rules, cfg.BroadcastInterval)
	registry.SetIdleTTL(cfg.SessionIdleTTL)
	defer registry.Close()

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go registry.Janitor(sweepCtx, time.Minute)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.SetupRouter(registry),
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port":   cfg.Port,
			"db":     cfg.DBPath,
			"width":  rules.Width,
			"height": rules.Height,
		}).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}
}
