package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vladamisici/food-analyzer-sub001/internal/apiclient"
	"github.com/vladamisici/food-analyzer-sub001/internal/auth"
	"github.com/vladamisici/food-analyzer-sub001/internal/config"
	"github.com/vladamisici/food-analyzer-sub001/internal/goals"
	"github.com/vladamisici/food-analyzer-sub001/internal/history"
	"github.com/vladamisici/food-analyzer-sub001/internal/httpapi"
	"github.com/vladamisici/food-analyzer-sub001/internal/secrets"
	"github.com/vladamisici/food-analyzer-sub001/internal/store"
	"github.com/vladamisici/food-analyzer-sub001/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local facade",
	Run: func(*cobra.Command, []string) {
		serve()
	},
}

func serve() {
	const serviceName = "foodtrackd"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().Str("build_time", BuildTime).Msg("starting foodtrackd")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Env,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Enabled:        cfg.Telemetry.Enabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown telemetry")
		}
	}()

	// The store is load-bearing for everything else; without it there is
	// nothing to serve.
	manager, err := store.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer manager.Close()
	log.Info().Str("path", cfg.Store.Path).Msg("store opened")

	secretKey, err := cfg.Secrets.Key()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid secret store key")
	}
	secretStore, err := secrets.OpenFile(cfg.Secrets.Path, secretKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open secret store")
	}

	client := apiclient.NewClient(apiclient.ClientConfig{
		AuthBaseURL: cfg.API.AuthBaseURL,
		FoodBaseURL: cfg.API.FoodBaseURL,
		HTTPClient:  &http.Client{Timeout: cfg.API.Timeout},
		Secrets:     secretStore,
		Logger:      log,
	})

	// Surface committed change sets in the log so UI-side observers can be
	// correlated with store activity.
	changes, cancelChanges := manager.Subscribe()
	defer cancelChanges()
	go func() {
		for cs := range changes {
			for _, c := range cs {
				log.Debug().
					Str("entity", string(c.Kind)).
					Str("op", string(c.Op)).
					Str("id", c.ID).
					Msg("change committed")
			}
		}
	}()

	historyRepo := history.NewSQLiteRepository(manager)
	goalsRepo := goals.NewSQLiteRepository(manager)
	userRepo := auth.NewSQLiteUserRepository(manager)
	authService := auth.NewService(client, secretStore, userRepo, historyRepo, goalsRepo, log)

	metrics, err := httpapi.NewMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Version:   Version,
		Logger:    log,
		Auth:      authService,
		Food:      client,
		History:   historyRepo,
		Goals:     goalsRepo,
		Session:   authService,
		Metrics:   metrics,
		RateLimit: cfg.HTTP.RateLimit,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.HTTP.Port).Msg("facade listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
