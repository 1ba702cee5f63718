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
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	addBlackoutHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/add_blackout"
	cancelBookingHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/cancel_booking"
	checkConflictsHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/check_conflicts"
	createBookingHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/get_booking"
	getCaptainBookingsHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/get_captain_bookings"
	getCaptainSettingsHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/get_captain_settings"
	getDateRangeHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/get_date_range_availability"
	getForecastHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/get_forecast"
	getGuestBookingsHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/get_guest_bookings"
	removeBlackoutHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/remove_blackout"
	rescheduleBookingHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/update_booking_status"
	updateCaptainSettingsHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/update_captain_settings"
	"github.com/m04kA/SMC-CharterService/internal/api/middleware"
	"github.com/m04kA/SMC-CharterService/internal/config"
	availabilityRepo "github.com/m04kA/SMC-CharterService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-CharterService/internal/infra/storage/booking"
	captainRepo "github.com/m04kA/SMC-CharterService/internal/infra/storage/captain"
	"github.com/m04kA/SMC-CharterService/internal/integrations/events"
	"github.com/m04kA/SMC-CharterService/internal/integrations/weather"
	availabilityService "github.com/m04kA/SMC-CharterService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-CharterService/internal/service/bookings"
	checkConflictsUC "github.com/m04kA/SMC-CharterService/internal/usecase/check_conflicts"
	createBookingUC "github.com/m04kA/SMC-CharterService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-CharterService/internal/usecase/get_available_slots"
	getDateRangeUC "github.com/m04kA/SMC-CharterService/internal/usecase/get_date_range_availability"
	rescheduleBookingUC "github.com/m04kA/SMC-CharterService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-CharterService/migrations"
	"github.com/m04kA/SMC-CharterService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CharterService/pkg/logger"
	"github.com/m04kA/SMC-CharterService/pkg/metrics"
	"github.com/m04kA/SMC-CharterService/pkg/txmanager"
)

const rateLimitCleanupInterval = 5 * time.Minute

// database источник запросов и транзакций для репозиториев и transaction manager
type database interface {
	dbmetrics.DBExecutor
	dbmetrics.TxBeginner
}

func newServeCommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP сервер",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, log, path, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Close()

			log.Info("Starting charter service...")
			log.Info("Configuration loaded from %s", path)

			return serve(cfg, log, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "применить миграции перед запуском")

	return cmd
}

func serve(cfg *config.Config, log *logger.Logger, migrate bool) error {
	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})
	defer close(stopCh)

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if migrate {
		applied, err := migrations.Apply(context.Background(), db, log)
		if err != nil {
			return err
		}
		log.Info("Migrations applied: %d", applied)
	}

	var store database
	if cfg.Metrics.Enabled {
		store = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopCh)
		log.Info("Database metrics collection started")
	} else {
		store = &dbmetrics.SqlDBWrapper{DB: db}
	}

	// Публикация событий бронирований
	var publisher createBookingUC.EventPublisher = events.NopPublisher{}
	if cfg.NATS.Enabled {
		nc, err := events.Connect(cfg.NATS.URL, log)
		if err != nil {
			return err
		}
		defer drainNATS(nc, log)
		publisher = events.NewPublisher(nc, cfg.NATS.SubjectPrefix, log)
		log.Info("Booking events are published to NATS %s (prefix=%s)", cfg.NATS.URL, cfg.NATS.SubjectPrefix)
	}

	// Прогноз погоды: клиент и кеш
	weatherClient := weather.NewClient(cfg.Weather.URL, time.Duration(cfg.Weather.Timeout)*time.Second, log)
	var weatherStore weather.Store = weather.NopStore{}
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable at %s, forecasts will be served uncached until it recovers: %v", cfg.Redis.Addr, err)
		}
		cancel()
		weatherStore = weather.NewRedisStore(rdb)
	}
	weatherCache := weather.NewCache(weatherStore, weatherClient,
		cfg.Weather.FreshTTLDuration(), cfg.Weather.StaleTTLDuration(), log)
	defer weatherCache.Wait()

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(store)
	captainRepository := captainRepo.NewRepository(store)
	availabilityRepository := availabilityRepo.NewRepository(store)
	txMgr := txmanager.NewTransactionManager(store)

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, publisher, log)
	availabilitySvc := availabilityService.NewService(captainRepository, availabilityRepository, txMgr, log)

	// Use cases
	checkConflictsUseCase := checkConflictsUC.NewUseCase(bookingRepository, captainRepository, metricsCollector, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		captainRepository,
		availabilityRepository,
		metricsCollector,
		log,
	)
	getDateRangeUseCase := getDateRangeUC.NewUseCase(captainRepository, availabilityRepository, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		captainRepository,
		availabilityRepository,
		checkConflictsUseCase,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		captainRepository,
		availabilityRepository,
		checkConflictsUseCase,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getDateRange := getDateRangeHandler.NewHandler(getDateRangeUseCase, log)
	checkConflicts := checkConflictsHandler.NewHandler(checkConflictsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getGuestBookings := getGuestBookingsHandler.NewHandler(bookingSvc, log)
	getCaptainBookings := getCaptainBookingsHandler.NewHandler(bookingSvc, log)
	getCaptainSettings := getCaptainSettingsHandler.NewHandler(availabilitySvc, log)
	updateCaptainSettings := updateCaptainSettingsHandler.NewHandler(availabilitySvc, log)
	addBlackout := addBlackoutHandler.NewHandler(availabilitySvc, log)
	removeBlackout := removeBlackoutHandler.NewHandler(availabilitySvc, log)
	getForecast := getForecastHandler.NewHandler(weatherCache, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.Metrics(metricsCollector))

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации, с ограничением частоты)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		trustedProxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			return fmt.Errorf("failed to parse rate_limit.trusted_proxies: %w", err)
		}
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, trustedProxies)
		go limiter.RunCleanup(rateLimitCleanupInterval, stopCh)
		public.Use(limiter.Middleware)
		log.Info("Rate limit on public routes: rps=%.1f, burst=%d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Доступные слоты на дату
	public.HandleFunc("/captains/{captainId}/trip-types/{tripTypeId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Обзор доступности по датам
	public.HandleFunc("/captains/{captainId}/availability", getDateRange.Handle).Methods(http.MethodGet)

	// Предварительная проверка конфликтов
	public.HandleFunc("/captains/{captainId}/conflicts/check", checkConflicts.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/guests/{guestId}/bookings", getGuestBookings.Handle).Methods(http.MethodGet)

	// --- Управление для капитана ---
	protected.HandleFunc("/captains/{captainId}/bookings", getCaptainBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/captains/{captainId}/settings", getCaptainSettings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/captains/{captainId}/settings", updateCaptainSettings.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/captains/{captainId}/blackouts", addBlackout.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/captains/{captainId}/blackouts/{date}", removeBlackout.Handle).Methods(http.MethodDelete)

	// --- Погода ---
	protected.HandleFunc("/forecast", getForecast.Handle).Methods(http.MethodGet)

	// HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения или падение сервера
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

func drainNATS(nc *nats.Conn, log *logger.Logger) {
	if err := nc.Drain(); err != nil {
		log.Warn("NATS drain failed: %v", err)
	}
}
