package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estateClientManagement/internal/bootstrap"
	"estateClientManagement/internal/config"
	"estateClientManagement/internal/db"
	"estateClientManagement/internal/logging"
	"estateClientManagement/internal/web"
	"estateClientManagement/repository"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = io.Discard

	cfg, err := config.LoadWithDefaults()
	if err != nil {
		os.Stderr.WriteString("load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal("open db", zap.Error(err))
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Error("close db", zap.Error(err))
		}
	}()

	users := repository.NewUserRepository(d)
	clients := repository.NewClientRepository(d)
	admin := repository.NewAdminSettingsRepository(d)
	sessions := repository.NewSessionRepository(d)

	if err := bootstrap.EnsureDefaults(context.Background(), users, admin, log); err != nil {
		log.Fatal("bootstrap", zap.Error(err))
	}

	srv := web.NewServer(users, clients, admin, sessions, cfg.Session.Secret, log)
	httpServer := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: web.NewRouter(srv, cfg.HTTP.AllowedOrigins),
	}

	go func() {
		log.Info("HTTP server listening", zap.String("address", cfg.HTTP.Address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("serve", zap.Error(err))
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
