package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/afishaclub/afisha/configs"
	"github.com/afishaclub/afisha/internal/application/services"
	"github.com/afishaclub/afisha/internal/core/ports"
	"github.com/afishaclub/afisha/internal/infrastructure/health"
	"github.com/afishaclub/afisha/internal/infrastructure/httpserver"
	"github.com/afishaclub/afisha/internal/infrastructure/kudago"
	"github.com/afishaclub/afisha/internal/infrastructure/memcache"
	"github.com/afishaclub/afisha/internal/infrastructure/redis"
	"github.com/afishaclub/afisha/internal/infrastructure/repositories"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting afisha server...")

	// Initialize Redis client (favorites persistence)
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	logger.Info("Connected to Redis successfully")

	// Upstream client and the process-wide memoizer in front of it
	kudagoClient := kudago.NewClient(&cfg.KudaGo, logger)
	cache := memcache.New(cfg.Cache.TTL)

	// Repositories
	favoritesRepo := repositories.NewFavoritesRedisRepository(redisClient, cfg.Redis.FavoritesTTL, logger)

	// Wire all services with their dependencies
	catalogService := services.NewCatalogService(kudagoClient, cache, logger)
	cityService := services.NewCityService(catalogService, logger)
	favoritesService := services.NewFavoritesService(favoritesRepo, logger)

	hcSlice := []ports.HealthChecker{
		health.NewRedisHealthChecker(redisClient),
		health.NewUpstreamHealthChecker(kudagoClient),
	}

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLSCertFile:  cfg.Server.TLSCertFile,
		TLSKeyFile:   cfg.Server.TLSKeyFile,
	}

	deps := httpserver.ServerDeps{
		CatalogService:   catalogService,
		CityService:      cityService,
		FavoritesService: favoritesService,
		HealthCheckers:   hcSlice,
	}

	server := httpserver.NewServer(serverConfig, &cfg.KudaGo, logger, deps)

	// Warm the city directory; the fallback list guarantees it is populated.
	warmCtx, warmCancel := context.WithTimeout(context.Background(), cfg.KudaGo.Timeout)
	if err := cityService.LoadCities(warmCtx); err != nil {
		logger.Warn("Failed to warm city directory:", err)
	}
	warmCancel()

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
