package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	createBookingHandler "github.com/m04kA/SMC-RangeBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-RangeBooking/internal/api/handlers/get_available_slots"
	listCompetitionsHandler "github.com/m04kA/SMC-RangeBooking/internal/api/handlers/list_competitions"
	lockSlotHandler "github.com/m04kA/SMC-RangeBooking/internal/api/handlers/lock_slot"
	releaseSlotHandler "github.com/m04kA/SMC-RangeBooking/internal/api/handlers/release_slot"
	"github.com/m04kA/SMC-RangeBooking/internal/api/middleware"
	"github.com/m04kA/SMC-RangeBooking/internal/config"
	"github.com/m04kA/SMC-RangeBooking/internal/demo"
	"github.com/m04kA/SMC-RangeBooking/internal/infra/storage/journal"
	"github.com/m04kA/SMC-RangeBooking/internal/scheduler"
	"github.com/m04kA/SMC-RangeBooking/internal/service/booking"
	competitionsService "github.com/m04kA/SMC-RangeBooking/internal/service/competitions"
	"github.com/m04kA/SMC-RangeBooking/internal/service/holds"
	"github.com/m04kA/SMC-RangeBooking/internal/service/schedule"
	createBookingUC "github.com/m04kA/SMC-RangeBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-RangeBooking/internal/usecase/get_available_slots"
	listCompetitionsUC "github.com/m04kA/SMC-RangeBooking/internal/usecase/list_competitions"
	"github.com/m04kA/SMC-RangeBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-RangeBooking/pkg/logger"
	"github.com/m04kA/SMC-RangeBooking/pkg/metrics"
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

	log.Info("Starting SMC-RangeBooking...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		attemptObserver  createBookingUC.AttemptObserver
		writeObserver    journal.WriteObserver
		dbObserver       dbmetrics.Observer
		boardOptions     = []booking.Option{booking.WithLockTTL(cfg.Booking.LockTTL())}
	)

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		attemptObserver = metricsCollector
		writeObserver = metricsCollector
		dbObserver = metricsCollector.ObserveDBQuery
		boardOptions = append(boardOptions, booking.WithListener(booking.NewMetricsListener(metricsCollector)))
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Правило допуска по классам и генератор слотов
	rule, err := cfg.Eligibility.Rule()
	if err != nil {
		log.Fatal("Failed to build eligibility rule: %v", err)
	}

	var generatorOptions []schedule.Option
	if cfg.Booking.FitSlotsWithinWindow {
		generatorOptions = append(generatorOptions, schedule.WithFitWithinWindow())
	}
	generator := schedule.NewGenerator(rule, generatorOptions...)
	log.Info("Eligibility policy=%s, lock TTL=%s", rule.Policy(), cfg.Booking.LockTTL())

	// Подключаем журнал броней (если включен)
	var registryOptions []competitionsService.Option

	if cfg.Journal.Enabled {
		db, err := journal.Open(cfg.Journal.Driver, cfg.Journal.ConnectionString())
		if err != nil {
			log.Fatal("Failed to open journal: %v", err)
		}
		wrappedDB := dbmetrics.Wrap(db, dbObserver)
		defer wrappedDB.Close()

		journalRepository := journal.NewRepository(wrappedDB, cfg.Journal.Driver)

		migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = journalRepository.Migrate(migrateCtx)
		cancel()
		if err != nil {
			log.Fatal("Failed to migrate journal: %v", err)
		}

		recorder := journal.NewRecorder(journalRepository, writeObserver, log)
		boardOptions = append(boardOptions, booking.WithListener(recorder))
		registryOptions = append(registryOptions, competitionsService.WithBookingSource(journalRepository))
		log.Info("Booking journal connected (driver=%s)", cfg.Journal.Driver)
	}

	// Регистрируем соревнования
	registryOptions = append(registryOptions, competitionsService.WithBoardOptions(boardOptions...))
	registry := competitionsService.NewService(generator, log, registryOptions...)

	var seeder *demo.Seeder
	if cfg.Demo.Enabled {
		seeder = demo.NewSeeder(cfg.Demo.Seed, cfg.Demo.BookedPercent, log)
	}

	startupCtx := context.Background()
	for _, cc := range cfg.Competitions {
		competition, err := cc.ToDomain()
		if err != nil {
			log.Fatal("Invalid competition in config: %v", err)
		}

		entry, err := registry.Register(startupCtx, competition)
		if err != nil {
			log.Fatal("Failed to register competition id=%d: %v", competition.ID, err)
		}

		if seeder != nil {
			if _, err := seeder.Seed(startupCtx, entry.Board); err != nil {
				log.Warn("Failed to seed demo bookings for competition id=%d: %v", competition.ID, err)
			}
		}
	}
	log.Info("Registered %d competitions", len(cfg.Competitions))

	// Фоновое снятие истекших блокировок
	sweeper := scheduler.NewSweeper(func() []scheduler.Sweepable {
		boards := registry.Boards()
		result := make([]scheduler.Sweepable, 0, len(boards))
		for _, b := range boards {
			result = append(result, b)
		}
		return result
	}, cfg.Booking.SweepInterval(), log)
	if err := sweeper.Start(); err != nil {
		log.Fatal("Failed to start lock sweeper: %v", err)
	}

	// Инициализируем сервисы и use cases
	holdsSvc := holds.NewService(registry, log)
	createBookingUseCase := createBookingUC.NewUseCase(registry, attemptObserver, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(registry, log)
	listCompetitionsUseCase := listCompetitionsUC.NewUseCase(registry, log)

	// Инициализируем handlers
	listCompetitions := listCompetitionsHandler.NewHandler(listCompetitionsUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	lockSlot := lockSlotHandler.NewHandler(holdsSvc, log)
	releaseSlot := releaseSlotHandler.NewHandler(holdsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware и endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (участник определяется, если передан X-User-ID)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.Actor)

	// Список соревнований с доступностью
	public.HandleFunc("/competitions", listCompetitions.Handle).Methods(http.MethodGet)

	// Слоты соревнования по мишеням и сменам
	public.HandleFunc("/competitions/{competitionId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Бронирование одного или нескольких слотов
	protected.HandleFunc("/competitions/{competitionId}/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Удержание слота на время оформления
	protected.HandleFunc("/competitions/{competitionId}/slots/{slotId}/lock", lockSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/competitions/{competitionId}/slots/{slotId}/lock", releaseSlot.Handle).Methods(http.MethodDelete)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	sweeper.Stop()
	log.Info("Lock sweeper stopped")

	log.Info("Server stopped gracefully")
}
