package main

import (
	"context"
	"database/sql"
	"errors"
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
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cancelAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_appointment"
	cancelWaitlistEntryHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_waitlist_entry"
	checkAvailabilityHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/check_availability"
	convertWaitlistHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/convert_waitlist"
	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	createManualAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_manual_appointment"
	createPromotionHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_promotion"
	createWaitlistEntryHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_waitlist_entry"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getFreeSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_free_slots"
	getSettingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_settings"
	getStaffAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_staff_appointments"
	getWaitlistEntryHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_waitlist_entry"
	listPromotionsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_promotions"
	listWaitlistHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_waitlist"
	markDepositPaidHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/mark_deposit_paid"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/reschedule_appointment"
	transitionAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/transition_appointment"
	updateSettingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_settings"
	validateDiscountHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/validate_discount"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	catalogCache "github.com/m04kA/SMC-AppointmentService/internal/infra/cache/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/migrations"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	promotionRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/promotion"
	settingsRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/settings"
	waitlistRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/waitlist"
	catalogServiceClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	clientServiceClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/clientservice"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/notifier"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	availabilityService "github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	discountsService "github.com/m04kA/SMC-AppointmentService/internal/service/discounts"
	settingsService "github.com/m04kA/SMC-AppointmentService/internal/service/settings"
	waitlistService "github.com/m04kA/SMC-AppointmentService/internal/service/waitlist"
	cancelAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/cancel_appointment"
	convertWaitlistUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/convert_waitlist"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	rescheduleAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/reschedule_appointment"
	transitionAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/transition_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/tracing"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
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

	log.Info("Starting SMC-AppointmentService...")

	// Трассировка (пропагаторы ставятся всегда)
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to set up tracing: %v", err)
	}

	// Метрики (если включены); nil-коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(config.Seconds(cfg.Database.ConnMaxLifetime))

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Migrations.Enabled {
		if err := migrations.Up(context.Background(), db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Интеграции
	catalogClient := catalogServiceClient.NewClient(cfg.CatalogService.URL, config.Seconds(cfg.CatalogService.Timeout), log)
	clientClient := clientServiceClient.NewClient(cfg.ClientService.URL, config.Seconds(cfg.ClientService.Timeout), log)

	var redisClient *redis.Client
	var cacheRedis catalogCache.RedisClient
	if cfg.Cache.RedisEnabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable, catalog cache works locally only: %v", err)
		} else {
			cacheRedis = redisClient
		}
		cancelPing()
	}
	catalog := catalogCache.New(catalogClient, cacheRedis, catalogCache.Config{
		LocalSize: cfg.Cache.LocalSize,
		LocalTTL:  config.Seconds(cfg.Cache.LocalTTLSeconds),
		RedisTTL:  config.Seconds(cfg.Cache.RedisTTLSeconds),
	}, log)
	log.Info("Catalog client initialized (url=%s, redis=%t)", cfg.CatalogService.URL, cacheRedis != nil)

	notify, err := notifier.New(notifier.Config{
		Driver:        cfg.Notifications.Driver,
		KafkaBrokers:  cfg.Notifications.KafkaBrokers,
		RedisAddr:     cfg.Cache.RedisAddr,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
		Queue:         cfg.Notifications.Queue,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize notifier: %v", err)
	}
	defer notify.Close()
	log.Info("Notifications driver: %s", cfg.Notifications.Driver)

	// Репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	promotionRepository := promotionRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	waitlistRepository := waitlistRepo.NewRepository(wrappedDB)

	// Сервисы
	settingsSvc := settingsService.NewService(settingsRepository, log)
	availabilitySvc := availabilityService.NewService(appointmentRepository, catalog, settingsSvc, log)
	discountsSvc := discountsService.NewService(promotionRepository, &discountsService.RealTimeProvider{}, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, txMgr, log)
	waitlistSvc := waitlistService.NewService(waitlistRepository, catalog, log)

	// Use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilitySvc,
		discountsSvc,
		catalog,
		settingsSvc,
		notify,
		txMgr,
		log,
	)
	transitionAppointmentUseCase := transitionAppointmentUC.NewUseCase(appointmentRepository, notify, txMgr, log)
	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		appointmentRepository,
		settingsSvc,
		clientClient,
		notify,
		txMgr,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilitySvc,
		catalog,
		settingsSvc,
		notify,
		txMgr,
		log,
	)
	convertWaitlistUseCase := convertWaitlistUC.NewUseCase(
		appointmentRepository,
		waitlistRepository,
		availabilitySvc,
		catalog,
		settingsSvc,
		notify,
		txMgr,
		log,
	)

	// Handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(availabilitySvc, log)
	getFreeSlots := getFreeSlotsHandler.NewHandler(availabilitySvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	createManualAppointment := createManualAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getStaffAppointments := getStaffAppointmentsHandler.NewHandler(appointmentsSvc, log)
	transitionAppointment := transitionAppointmentHandler.NewHandler(transitionAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	markDepositPaid := markDepositPaidHandler.NewHandler(appointmentsSvc, log)
	validateDiscount := validateDiscountHandler.NewHandler(discountsSvc, log)
	createPromotion := createPromotionHandler.NewHandler(discountsSvc, log)
	listPromotions := listPromotionsHandler.NewHandler(discountsSvc, log)
	createWaitlistEntry := createWaitlistEntryHandler.NewHandler(waitlistSvc, log)
	getWaitlistEntry := getWaitlistEntryHandler.NewHandler(waitlistSvc, log)
	listWaitlist := listWaitlistHandler.NewHandler(waitlistSvc, log)
	cancelWaitlistEntry := cancelWaitlistEntryHandler.NewHandler(waitlistSvc, log)
	convertWaitlist := convertWaitlistHandler.NewHandler(convertWaitlistUseCase, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	if cfg.RateLimit.Enabled {
		limiter, err := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.MaxClients, cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Fatal("Failed to create rate limiter: %v", err)
		}
		r.Use(limiter.Middleware)
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	api := r.PathPrefix("/api/v1/businesses/{businessId}").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/availability", checkAvailability.Handle).Methods(http.MethodPost)
	api.HandleFunc("/free-slots", getFreeSlots.Handle).Methods(http.MethodPost)
	api.HandleFunc("/discounts/validate", validateDiscount.Handle).Methods(http.MethodPost)
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/manual", createManualAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/actions/{action}", transitionAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}/schedule", rescheduleAppointment.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{appointmentId}/deposit", markDepositPaid.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/staff/{staffId}/appointments", getStaffAppointments.Handle).Methods(http.MethodGet)

	// --- Промоакции ---
	protected.HandleFunc("/promotions", createPromotion.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/promotions", listPromotions.Handle).Methods(http.MethodGet)

	// --- Лист ожидания ---
	protected.HandleFunc("/waitlist", createWaitlistEntry.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/waitlist", listWaitlist.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/waitlist/{entryId}", getWaitlistEntry.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/waitlist/{entryId}", cancelWaitlistEntry.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/waitlist/{entryId}/convert", convertWaitlist.Handle).Methods(http.MethodPost)

	// --- Настройки бизнеса ---
	protected.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер; otelhttp открывает серверный спан на каждый запрос
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, cfg.Metrics.ServiceName),
		ReadTimeout:  config.Seconds(cfg.Server.ReadTimeout),
		WriteTimeout: config.Seconds(cfg.Server.WriteTimeout),
		IdleTimeout:  config.Seconds(cfg.Server.IdleTimeout),
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Seconds(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
