package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/alerts"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/client"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/config"
	v1 "github.com/Ankursingh018as/public-pulse-ai-sub001/internal/handler/http/v1"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/observability"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/predict"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/repository"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/service"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/pkg/logger"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/pkg/postgres"
	redisclient "github.com/Ankursingh018as/public-pulse-ai-sub001/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/Ankursingh018as/public-pulse-ai-sub001/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Public Pulse Edge Node API
// @version 1.0
// @description Offline-first edge node for the Public Pulse civic incident network.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Метрики
	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	// Инициализация хранилищ
	syncStore := repository.NewSyncStore(redisClient)
	dismissalStore := repository.NewDismissalStore(redisClient, cfg.DismissalTTL)
	archive := repository.NewIncidentArchive(dbpool)

	// Клиенты внешних сервисов
	pulseClient := client.NewPulseClient(cfg.ServerBaseURL, cfg.ServerAPIKey, cfg.ServerTimeout)
	weatherClient := client.NewWeatherClient(cfg.WeatherAPIKey, cfg.WeatherLat, cfg.WeatherLon, cfg.WeatherCacheTTL)

	clock := clockwork.NewRealClock()

	// Фасад инцидентов
	incidentService := service.NewIncidentService(syncStore, pulseClient, archive, log, metrics, clock, service.Options{
		ViewLimit:       cfg.ViewLimit,
		SyncMaxAttempts: cfg.SyncMaxAttempts,
		AttemptTimeout:  cfg.ServerTimeout,
		StatsWindowMin:  cfg.StatsTimeWindowMinutes,
	})
	if err := incidentService.Restore(ctx); err != nil {
		log.Fatalf("Failed to restore sync state from queue: %v", err)
	}
	incidentService.StartBackgroundSync(cfg.SyncInterval)
	defer incidentService.StopBackgroundSync()

	// Прогнозы и оповещения
	zones := predict.Vadodara()
	engine := predict.NewEngine(zones, cfg.PredictionTTL)
	narrator := alerts.NewOpenAINarrator(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	deriver := alerts.NewDeriver(narrator, dismissalStore, predict.AreaResolver(zones), log, cfg.MaxActiveAlerts)
	forecastService := service.NewForecastService(engine, weatherClient, incidentService, deriver, log, metrics, clock)
	forecastService.Refresh(ctx)

	// Периодический пересчёт прогнозов и обновление погодного кэша
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(fmt.Sprintf("@every %s", cfg.PredictionInterval), func() {
		forecastService.Refresh(context.Background())
	}); err != nil {
		log.Fatalf("Failed to schedule forecast refresh: %v", err)
	}
	if _, err := scheduler.AddFunc(fmt.Sprintf("@every %s", cfg.WeatherCacheTTL), func() {
		if err := weatherClient.Refresh(context.Background()); err != nil {
			log.WithError(err).Warn("Weather cache refresh failed")
		}
	}); err != nil {
		log.Fatalf("Failed to schedule weather refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Инициализация хэндлеров
	handler := v1.NewHandler(incidentService, forecastService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	if len(cfg.APIKeys) > 0 {
		api.Use(v1.APIKeyAuthMiddleware(cfg, log))
	}
	handler.RegisterRoutes(api)

	// Маршрут метрик Prometheus
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
