package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"musicmanager/cache"
	"musicmanager/config"
	"musicmanager/db"
	"musicmanager/logger"
	"musicmanager/repository"
	"musicmanager/storage"
)

// Start initializes all backends and runs the HTTP server until a
// termination signal arrives.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	// The store handle exists immediately; the connection is established
	// in the background. Until then every /api request answers 503.
	store := db.NewStore(cfg)
	go func() {
		if err := store.Connect(); err != nil {
			logger.Fatal("failed to connect to database", logger.ErrorField(err))
		}
		logger.Info("database connection established")
	}()
	defer store.Close()

	var catalogCache *cache.CatalogCache
	if redisClient, err := db.ConnectRedis(cfg); err != nil {
		logger.Warn("redis unavailable, list caching disabled", logger.ErrorField(err))
	} else {
		defer redisClient.Close()
		catalogCache = cache.NewCatalogCache(redisClient, time.Duration(cfg.CacheTTL)*time.Second)
		logger.Info("connected to redis")
	}

	media, err := storage.NewMediaStore(cfg)
	if err != nil {
		logger.Warn("media storage unavailable, uploads disabled", logger.ErrorField(err))
		media = nil
	}

	projectRepo := repository.NewGormProjectRepository(store, cfg.DefaultCoverURL)
	beatRepo := repository.NewGormBeatRepository(store)

	apiHandler := NewAPIHandler(projectRepo, beatRepo, media, catalogCache, cfg, store.Ready)

	router := apiHandler.Router()
	router.Use(corsMiddleware, requestLogMiddleware)

	// Frontend UI serving; API and /static/ routes take precedence.
	router.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.WebAppDir)))

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", logger.String("addr", cfg.ServerAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("server stopped")
}
