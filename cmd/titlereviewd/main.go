package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/titledesk/title-review/internal/common"
	"github.com/titledesk/title-review/internal/export"
	"github.com/titledesk/title-review/internal/extract"
	"github.com/titledesk/title-review/internal/push"
	"github.com/titledesk/title-review/internal/review"
	"github.com/titledesk/title-review/internal/server"
	"github.com/titledesk/title-review/internal/session"
	"github.com/titledesk/title-review/internal/upload"
)

const version = "0.3.0"

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	// Logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()
	svcLog := slog.Default()

	// Config
	cfg := common.LoadConfig()
	if *configPath != "" {
		if err := cfg.LoadConfigFile(*configPath); err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Storage
	uploads, err := upload.NewStore(cfg.Storage.DataDir, svcLog)
	if err != nil {
		log.Fatalf("creating upload store: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0o755); err != nil {
		log.Fatalf("creating db dir: %v", err)
	}
	reviews, err := review.OpenSQLite(cfg.Storage.DBPath, svcLog)
	if err != nil {
		log.Fatalf("opening review store: %v", err)
	}
	defer reviews.Close()

	// Downstream publisher
	var publisher push.Publisher
	if cfg.Downstream.URL != "" {
		publisher = push.NewHTTPPublisher(cfg.Downstream.URL, svcLog)
	} else {
		publisher = push.NewLogPublisher(svcLog)
	}

	// Session manager over the simulated extraction backend
	mgr := session.NewManager(session.Deps{
		Extractor: extract.NewSimulated(cfg.Pipeline.ExtractDelay, svcLog),
		Reviews:   reviews,
		Publisher: publisher,
		Logger:    svcLog,
		StepDelay: cfg.Pipeline.StepDelay,
	})

	// HTTP server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	srv := server.New(server.Dependencies{
		Session: mgr,
		Uploads: uploads,
		Export:  export.NewService(svcLog),
		Logger:  logger,
		Version: version,
	})
	server.RegisterRoutes(e, srv)

	log.Infof("HTTP serving on %s", cfg.Server.Addr)
	go func() {
		if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
	fmt.Println("stopped.")
}
