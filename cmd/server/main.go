package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fpl-proxy/internal/api"
	"github.com/jstittsworth/fpl-proxy/internal/providers"
	"github.com/jstittsworth/fpl-proxy/internal/services"
	"github.com/jstittsworth/fpl-proxy/pkg/config"
	"github.com/jstittsworth/fpl-proxy/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	log := logger.InitLoggerWithFormat(cfg.LogLevel, cfg.LogFormat, cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Upstream client, optionally behind a circuit breaker
	clientCfg := providers.FPLClientConfig{
		BaseURL:   cfg.FPLBaseURL,
		UserAgent: cfg.FPLUserAgent,
		Timeout:   cfg.ExternalAPITimeout,
		Logger:    log,
	}
	var breaker *services.CircuitBreakerService
	if cfg.CircuitBreakerEnabled {
		breaker = services.NewCircuitBreakerService(cfg.CircuitBreakerThreshold, cfg.CircuitBreakerTimeout, log)
		clientCfg.Breaker = breaker
	}
	client := providers.NewFPLClient(clientCfg)

	data := services.NewFPLDataService(client, services.DefaultCacheTTL, log)

	// Optional background warming
	var warmer *services.CacheWarmer
	if cfg.CacheWarmInterval != "" {
		interval, err := time.ParseDuration(cfg.CacheWarmInterval)
		if err != nil || interval <= 0 {
			log.Warnf("Invalid cache warm interval %q, warming disabled", cfg.CacheWarmInterval)
		} else {
			warmer = services.NewCacheWarmer(data, log, interval)
			if err := warmer.Start(); err != nil {
				log.Errorf("Failed to start cache warmer: %v", err)
				warmer = nil
			} else {
				defer warmer.Stop()
			}
		}
	}

	router := api.NewRouter(cfg, api.Dependencies{
		Data:    data,
		Breaker: breaker,
		Warmer:  warmer,
		Logger:  log,
	})

	for _, route := range router.Routes() {
		log.Debugf("%s %s", route.Method, route.Path)
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.WithFields(logrus.Fields{
			"addr":     srv.Addr,
			"env":      cfg.Env,
			"upstream": cfg.FPLBaseURL,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
