package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	getAvailableSlotsHandler "github.com/glowdesk/GD-AvailabilityService/internal/api/handlers/get_available_slots"
	invalidateAvailabilityHandler "github.com/glowdesk/GD-AvailabilityService/internal/api/handlers/invalidate_availability"
	"github.com/glowdesk/GD-AvailabilityService/internal/api/middleware"
	"github.com/glowdesk/GD-AvailabilityService/internal/config"
	"github.com/glowdesk/GD-AvailabilityService/internal/domain"
	availabilityCache "github.com/glowdesk/GD-AvailabilityService/internal/infra/cache/availability"
	appointmentRepo "github.com/glowdesk/GD-AvailabilityService/internal/infra/storage/appointment"
	catalogRepo "github.com/glowdesk/GD-AvailabilityService/internal/infra/storage/catalog"
	scheduleRepo "github.com/glowdesk/GD-AvailabilityService/internal/infra/storage/schedule"
	slotEngineClient "github.com/glowdesk/GD-AvailabilityService/internal/integrations/slotengine"
	availabilityService "github.com/glowdesk/GD-AvailabilityService/internal/service/availability"
	resolveAvailabilityUC "github.com/glowdesk/GD-AvailabilityService/internal/usecase/resolve_availability"
	"github.com/glowdesk/GD-AvailabilityService/pkg/dbmetrics"
	"github.com/glowdesk/GD-AvailabilityService/pkg/logger"
	"github.com/glowdesk/GD-AvailabilityService/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting GD-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиент движка расчёта слотов (primary path)
	engineClient := slotEngineClient.NewClient(
		cfg.SlotEngine.URL,
		time.Duration(cfg.SlotEngine.Timeout)*time.Second,
		log,
	)
	log.Info("Slot engine client initialized (url=%s, timeout=%ds)",
		cfg.SlotEngine.URL, cfg.SlotEngine.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		scheduleRepository    *scheduleRepo.Repository
		catalogRepository     *catalogRepo.Repository
		appointmentRepository *appointmentRepo.Repository
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
	} else {
		scheduleRepository = scheduleRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
	}

	// Инициализируем кеш доступности
	var cache resolveAvailabilityUC.Cache
	var invalidator availabilityService.Cache

	switch cfg.Cache.Backend {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		redisCache := availabilityCache.NewRedisCache(redisClient)
		cache = redisCache
		invalidator = redisCache
		log.Info("Availability cache backend: redis (addr=%s)", cfg.Redis.Addr)
	default:
		memoryCache := availabilityCache.NewMemoryCache()
		cache = memoryCache
		invalidator = memoryCache
		log.Info("Availability cache backend: memory")
	}

	// Рекордер метрик резолвера: заглушка, если метрики выключены
	var recorder resolveAvailabilityUC.MetricsRecorder = metrics.NopRecorder{}
	if cfg.Metrics.Enabled {
		recorder = metricsCollector
	}

	// Инициализируем use case резолвера доступности
	resolveAvailabilityUseCase := resolveAvailabilityUC.NewUseCase(
		scheduleRepository,
		catalogRepository,
		appointmentRepository,
		engineClient,
		cache,
		recorder,
		resolveAvailabilityUC.Config{
			FreshnessWindow:  time.Duration(cfg.Cache.FreshnessWindowMinutes) * time.Minute,
			UnassignedPolicy: domain.UnassignedPolicy(cfg.Availability.UnassignedPolicy),
			MaxAdvanceDays:   cfg.Availability.MaxAdvanceDays,
		},
		log,
	)

	// Инициализируем сервис инвалидации кеша
	availabilitySvc := availabilityService.NewService(invalidator, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(resolveAvailabilityUseCase, log)
	invalidateAvailability := invalidateAvailabilityHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()

	// Получение доступных слотов
	api.HandleFunc("/businesses/{businessId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// INTERNAL ROUTES (межсервисные, требуют X-User-ID header)
	// ============================================================

	internal := r.PathPrefix("/internal/v1").Subrouter()
	internal.Use(middleware.Auth)

	// Сброс закешированной доступности при изменении записей
	internal.HandleFunc("/availability/invalidate",
		invalidateAvailability.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
