package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/loopcard/loop_service/internal/adapters/striga"
	"github.com/loopcard/loop_service/internal/api/handlers"
	"github.com/loopcard/loop_service/internal/api/routes"
	"github.com/loopcard/loop_service/internal/infrastructure/config"
	"github.com/loopcard/loop_service/internal/infrastructure/metrics"
	"github.com/loopcard/loop_service/pkg/graceful"
	"github.com/loopcard/loop_service/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger("loop_service", cfg.LogLevel)

	env, err := striga.ParseEnvironment(cfg.Striga.Environment)
	if err != nil {
		log.Error("Invalid striga environment", "error", err)
		os.Exit(1)
	}

	log.Info("Starting loop service",
		"environment", cfg.Environment,
		"striga_environment", env.String(),
	)

	providerMetrics := metrics.NewProviderMetrics(prometheus.DefaultRegisterer)

	client := striga.NewClient(striga.Config{
		Environment: env,
		APIKeyID:    cfg.Striga.APIKeyID,
		HMACSecret:  cfg.Striga.HMACSecret,
		CardAppID:   cfg.Striga.CardAppID,
		APIBase:     cfg.Striga.APIBase,
		Timeout:     time.Duration(cfg.Striga.Timeout) * time.Second,
	}, log, providerMetrics)

	zapLog := log.Desugar()

	h := routes.Handlers{
		Core:    handlers.NewCoreHandlers(),
		Users:   handlers.NewUserHandlers(striga.NewIdentityService(client, env), zapLog),
		Iframes: handlers.NewIframeHandlers(striga.NewIframeService(client, env), zapLog),
		Wallets: handlers.NewWalletHandlers(striga.NewWalletService(client), zapLog),
		Cards:   handlers.NewCardHandlers(striga.NewCardService(client, cfg.Striga.CardAppID), zapLog),
	}

	router := routes.Setup(cfg, log, h)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	shutdown := graceful.NewShutdownManager(server, log)
	shutdown.Register(graceful.ShutdownFunc(func(time.Duration) error {
		return log.Sync()
	}))
	shutdown.WaitForShutdown()
}
