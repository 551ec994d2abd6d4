package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avolkov/userboard/internal/auth"
	"github.com/avolkov/userboard/internal/config"
	"github.com/avolkov/userboard/internal/database"
	"github.com/avolkov/userboard/internal/directory"
	"github.com/avolkov/userboard/internal/logger"
	"github.com/avolkov/userboard/internal/session"
	"github.com/avolkov/userboard/internal/web"
	"github.com/avolkov/userboard/internal/web/render"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up the directory client and session store
	dir := directory.New(cfg.APIBaseURL)
	sessions := session.NewStore(db)
	cookies := auth.NewManager(cfg.JWTSecret, sessions, cfg.Production)

	renderer, err := render.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}

	// Set up router
	router := web.NewRouter(dir, sessions, cookies, renderer)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("directory", cfg.APIBaseURL).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
