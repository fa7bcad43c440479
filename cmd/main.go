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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getWorkshopAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_workshop_appointments"
	getWorkshopConfigHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_workshop_config"
	updateAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_appointment"
	updateWorkshopConfigHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_workshop_config"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/migrator"
	advisorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/advisor"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	configRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/config"
	workshopRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/workshop"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/events"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	configService "github.com/m04kA/SMC-AppointmentService/internal/service/config"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	updateAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-AppointmentService/migrations"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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
	log.Info("Configuration loaded from %s", configPath)

	// Метрики: при выключенных метриках используется nil коллектор, все Observe* безопасны
	var metricsCollector *metrics.Metrics
	registry := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, registry)
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
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Миграции
	if cfg.Migrations.Enabled {
		m, err := migrator.New(db, migrations.FS, cfg.Migrations.Dir, log)
		if err != nil {
			log.Fatal("Failed to init migrator: %v", err)
		}
		if err := m.Up(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	wrappedDB := dbmetrics.Wrap(db, metricsCollector)
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		go wrappedDB.CollectPoolStats(time.Duration(cfg.Metrics.PoolStatsIntervalSec)*time.Second, stopMetricsCh)
		log.Info("Database pool stats collection started")
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	workshopRepository := workshopRepo.NewRepository(wrappedDB)
	configRepository := configRepo.NewRepository(wrappedDB)
	advisorRepository := advisorRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)

	// Публикация событий
	publisher := events.NewPublisher(cfg.Events.Brokers, time.Duration(cfg.Events.Timeout)*time.Second, log)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	// Расчет доступности
	loader := availability.NewLoader(
		workshopRepository,
		configRepository,
		advisorRepository,
		catalogRepository,
		appointmentRepository,
		cfg.Scheduling.DefaultTimezone,
	)
	evaluator := availability.NewEvaluator(cfg.Scheduling.EnforceConsecutiveSlots)
	availabilitySvc := availability.NewService(loader, evaluator, metricsCollector, log)

	// Сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, workshopRepository, log)
	configSvc := configService.NewService(configRepository, workshopRepository, cfg.Scheduling.DefaultTimezone, log)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(availabilitySvc, cfg.Scheduling.LookaheadDays, log)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		availabilitySvc,
		workshopRepository,
		appointmentRepository,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		availabilitySvc,
		appointmentRepository,
		workshopRepository,
		catalogRepository,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getWorkshopAppointments := getWorkshopAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getWorkshopConfig := getWorkshopConfigHandler.NewHandler(configSvc, log)
	updateWorkshopConfig := updateWorkshopConfigHandler.NewHandler(configSvc, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Публичные маршруты
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/dealerships/{dealershipId}/workshops/{workshopId}/config",
		getWorkshopConfig.Handle).Methods(http.MethodGet)

	// Маршруты с X-User-ID
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", updateAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/workshops/{workshopId}/appointments", getWorkshopAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/dealerships/{dealershipId}/workshops/{workshopId}/config",
		updateWorkshopConfig.Handle).Methods(http.MethodPut)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	close(stopMetricsCh)

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
