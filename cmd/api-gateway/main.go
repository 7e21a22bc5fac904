package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/class-enrollment-api/api/swagger"
	"github.com/noah-isme/class-enrollment-api/internal/handler"
	internalmiddleware "github.com/noah-isme/class-enrollment-api/internal/middleware"
	"github.com/noah-isme/class-enrollment-api/internal/repository"
	"github.com/noah-isme/class-enrollment-api/internal/service"
	"github.com/noah-isme/class-enrollment-api/internal/validation"
	"github.com/noah-isme/class-enrollment-api/pkg/cache"
	"github.com/noah-isme/class-enrollment-api/pkg/config"
	"github.com/noah-isme/class-enrollment-api/pkg/database"
	"github.com/noah-isme/class-enrollment-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/class-enrollment-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/class-enrollment-api/pkg/middleware/requestid"
)

// @title Class Enrollment API
// @version 1.0.0
// @description Students, classes and the enrollments between them
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	cacheRepo := repository.NewCacheRepository(nil, logr)
	cacheEnabled := false
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			cacheEnabled = true
		}
	}
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cacheEnabled)

	studentRepo := repository.NewStudentRepository(db)
	classRepo := repository.NewClassRepository(db)
	entityValidator := validation.New(validator.New(), nil)

	studentSvc := service.NewStudentService(studentRepo, classRepo, entityValidator, cacheSvc, metricsSvc, logr)
	classSvc := service.NewClassService(classRepo, studentRepo, entityValidator, cacheSvc, logr)
	rosterSvc := service.NewRosterService(classSvc, logr)

	readiness := map[string]handler.Pinger{"database": db}
	if cacheSvc.Enabled() {
		readiness["cache"] = handler.PingerFunc(cacheRepo.Ping)
	}
	metricsHandler := handler.NewMetricsHandler(metricsSvc, readiness)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if metricsSvc != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	handler.NewStudentHandler(studentSvc).RegisterRoutes(api)
	handler.NewClassHandler(classSvc, rosterSvc).RegisterRoutes(api)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", httpServer.Addr, "env", cfg.Env)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logr.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logr.Error("server failed", zap.Error(err))
	}

	logr.Info("starting graceful shutdown", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logr.Error("http server shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
