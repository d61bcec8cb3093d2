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

	approveBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/approve_booking"
	calculateDiscountHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/calculate_discount"
	cancelBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/cancel_booking"
	checkExtensionHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/check_extension"
	completePaymentHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/complete_payment"
	createBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_booking"
	executeExtensionHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/execute_extension"
	extensionHistoryHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/extension_history"
	getBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_user_bookings"
	jobsStatusHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/jobs_status"
	monthlyPayoutsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/monthly_payouts"
	searchParkingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/search_parkings"
	validateCouponHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/validate_coupon"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	couponRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/coupon"
	ledgerRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/ledger"
	parkingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parking"
	notifierClient "github.com/m04kA/SMC-ParkingService/internal/integrations/notifier"
	bookingsService "github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	couponsService "github.com/m04kA/SMC-ParkingService/internal/service/coupons"
	payoutsService "github.com/m04kA/SMC-ParkingService/internal/service/payouts"
	checkExtensionUC "github.com/m04kA/SMC-ParkingService/internal/usecase/check_extension"
	completePaymentUC "github.com/m04kA/SMC-ParkingService/internal/usecase/complete_payment"
	createBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
	executeExtensionUC "github.com/m04kA/SMC-ParkingService/internal/usecase/extend_booking"
	expireApprovalsUC "github.com/m04kA/SMC-ParkingService/internal/usecase/expire_approvals"
	searchParkingsUC "github.com/m04kA/SMC-ParkingService/internal/usecase/search_parkings"
	"github.com/m04kA/SMC-ParkingService/internal/worker"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
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

	log.Info("Starting SMC-ParkingService...")

	// Гражданская таймзона расписаний владельцев
	location, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Booking.Timezone, err)
	}
	log.Info("Owner schedules interpreted in timezone %s", cfg.Booking.Timezone)

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

	// Клиент сервиса уведомлений
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Notifier client initialized (url=%s, timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		parkingRepository *parkingRepo.Repository
		ledgerRepository  *ledgerRepo.Repository
		couponRepository  *couponRepo.Repository
		txMgr             TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		parkingRepository = parkingRepo.NewRepository(wrappedDB)
		ledgerRepository = ledgerRepo.NewRepository(wrappedDB)
		couponRepository = couponRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		parkingRepository = parkingRepo.NewRepository(db)
		ledgerRepository = ledgerRepo.NewRepository(db)
		couponRepository = couponRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, parkingRepository, notifier, log)
	couponSvc := couponsService.NewService(couponRepository, log)
	payoutSvc := payoutsService.NewService(ledgerRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		parkingRepository,
		ledgerRepository,
		notifier,
		txMgr,
		log,
		location,
		cfg.Booking.ApprovalTimeout(),
	)
	searchParkingsUseCase := searchParkingsUC.NewUseCase(
		parkingRepository,
		bookingRepository,
		log,
		location,
	)
	checkExtensionUseCase := checkExtensionUC.NewUseCase(
		bookingRepository,
		parkingRepository,
		log,
		location,
		cfg.Booking.Extension(),
		cfg.Booking.ExtensionBuffer(),
	)
	executeExtensionUseCase := executeExtensionUC.NewUseCase(
		bookingRepository,
		parkingRepository,
		ledgerRepository,
		notifier,
		txMgr,
		log,
		location,
		cfg.Booking.Extension(),
		cfg.Booking.ExtensionBuffer(),
	)
	completePaymentUseCase := completePaymentUC.NewUseCase(
		bookingRepository,
		ledgerRepository,
		couponRepository,
		txMgr,
		log,
	)
	expireApprovalsUseCase := expireApprovalsUC.NewUseCase(
		bookingRepository,
		notifier,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log, metricsCollector)
	searchParkings := searchParkingsHandler.NewHandler(searchParkingsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	approveBooking := approveBookingHandler.NewHandler(bookingSvc, log)
	checkExtension := checkExtensionHandler.NewHandler(checkExtensionUseCase, log)
	executeExtension := executeExtensionHandler.NewHandler(executeExtensionUseCase, log)
	extensionHistory := extensionHistoryHandler.NewHandler(log)
	completePayment := completePaymentHandler.NewHandler(completePaymentUseCase, log)
	validateCoupon := validateCouponHandler.NewHandler(couponSvc, log)
	calculateDiscount := calculateDiscountHandler.NewHandler(couponSvc, log)
	jobsStatus := jobsStatusHandler.NewHandler(payoutSvc, log)
	monthlyPayouts := monthlyPayoutsHandler.NewHandler(payoutSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Поиск свободных парковок вокруг точки
	api.HandleFunc("/parkings/search", searchParkings.Handle).Methods(http.MethodGet)

	// Купоны: проверка и предварительный расчет скидки
	api.HandleFunc("/coupons/validate", validateCoupon.Handle).Methods(http.MethodPost)
	api.HandleFunc("/coupons/calculate-discount", calculateDiscount.Handle).Methods(http.MethodPost)

	// Служебные эндпоинты выплат (дергает внутренний планировщик)
	api.HandleFunc("/jobs/status", jobsStatus.Handle).Methods(http.MethodGet)
	api.HandleFunc("/jobs/monthly-payouts", monthlyPayouts.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/approve", approveBooking.HandleApprove).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reject", approveBooking.HandleReject).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Продления ---
	protected.HandleFunc("/extensions/check/{bookingId}", checkExtension.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/extensions/execute", executeExtension.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/extensions/history/{bookingId}", extensionHistory.Handle).Methods(http.MethodGet)

	// --- Оплата ---
	protected.HandleFunc("/payments/complete", completePayment.Handle).Methods(http.MethodPost)

	// Фоновый обход просроченных подтверждений
	sweeper := worker.NewApprovalSweeper(expireApprovalsUseCase, log, cfg.Sweeper.Interval(), metricsCollector)
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	go sweeper.Run(sweeperCtx)

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

	stopSweeper()

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
