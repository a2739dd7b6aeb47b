package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"

	"github.com/m04kA/GameRoom-ReservationService/internal/allocation"
	ackReservationHandler "github.com/m04kA/GameRoom-ReservationService/internal/api/handlers/ack_reservation"
	bookingSessionHandler "github.com/m04kA/GameRoom-ReservationService/internal/api/handlers/booking_session"
	cancelReservationHandler "github.com/m04kA/GameRoom-ReservationService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/GameRoom-ReservationService/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/m04kA/GameRoom-ReservationService/internal/api/handlers/get_availability"
	getLabInfoHandler "github.com/m04kA/GameRoom-ReservationService/internal/api/handlers/get_lab_info"
	getMyReservationsHandler "github.com/m04kA/GameRoom-ReservationService/internal/api/handlers/get_my_reservations"
	getPCsHandler "github.com/m04kA/GameRoom-ReservationService/internal/api/handlers/get_pcs"
	getReservationHandler "github.com/m04kA/GameRoom-ReservationService/internal/api/handlers/get_reservation"
	getTeamQuotaHandler "github.com/m04kA/GameRoom-ReservationService/internal/api/handlers/get_team_quota"
	"github.com/m04kA/GameRoom-ReservationService/internal/api/middleware"
	"github.com/m04kA/GameRoom-ReservationService/internal/config"
	"github.com/m04kA/GameRoom-ReservationService/internal/infra/cache"
	ackRepo "github.com/m04kA/GameRoom-ReservationService/internal/infra/storage/acknowledgement"
	reservationRepo "github.com/m04kA/GameRoom-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/GameRoom-ReservationService/internal/integrations/notifier"
	"github.com/m04kA/GameRoom-ReservationService/internal/integrations/reservationfeed"
	"github.com/m04kA/GameRoom-ReservationService/internal/policy/primetime"
	"github.com/m04kA/GameRoom-ReservationService/internal/policy/timerange"
	"github.com/m04kA/GameRoom-ReservationService/internal/reconcile"
	labService "github.com/m04kA/GameRoom-ReservationService/internal/service/lab"
	reservationsService "github.com/m04kA/GameRoom-ReservationService/internal/service/reservations"
	"github.com/m04kA/GameRoom-ReservationService/internal/session"
	createReservationUC "github.com/m04kA/GameRoom-ReservationService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/GameRoom-ReservationService/internal/usecase/get_availability"
	getPCStatusesUC "github.com/m04kA/GameRoom-ReservationService/internal/usecase/get_pc_statuses"
	"github.com/m04kA/GameRoom-ReservationService/internal/worker"
	"github.com/m04kA/GameRoom-ReservationService/pkg/database"
	"github.com/m04kA/GameRoom-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/GameRoom-ReservationService/pkg/logger"
	"github.com/m04kA/GameRoom-ReservationService/pkg/metrics"
	"github.com/m04kA/GameRoom-ReservationService/pkg/telemetry"
	"github.com/m04kA/GameRoom-ReservationService/pkg/txmanager"
)

const sessionSweepInterval = time.Minute

// pendingNotifier получатель напоминаний операторам (Kafka или лог)
type pendingNotifier interface {
	worker.Notifier
	Close() error
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	lab, err := cfg.BuildLab()
	if err != nil {
		fmt.Printf("Failed to build lab: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting GameRoom-ReservationService...")
	log.Info("Configuration loaded from %s (timezone=%s, pcs=%d, teams=%d)",
		configPath, lab.Location, len(lab.Pool.Resources()), len(lab.Teams.All()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbRecorder       dbmetrics.Recorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Трассировка
	tel, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:       cfg.Tracing.Enabled,
		ServiceName:   cfg.Metrics.ServiceName,
		Environment:   cfg.Tracing.Environment,
		CollectorAddr: cfg.Tracing.CollectorAddr,
		SampleRatio:   cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to initialize tracing: %v", err)
	}

	// Подключаемся к базе данных
	db, err := database.Open(ctx, cfg.Database.DSN(), database.PoolSettings{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer database.Close(db)
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, dbRecorder, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithMaxAttempts(cfg.Database.TxMaxAttempts))

	// Репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB, lab.Location)
	ackRepository := ackRepo.NewRepository(wrappedDB, lab.Location)

	// Кэш фида (если включен)
	var (
		feedCache      reservationfeed.Cache
		feedCacheClose func() error
	)
	if cfg.Redis.Enabled {
		redisCache, err := cache.New(ctx, cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      time.Duration(cfg.Redis.CacheTTL) * time.Second,
		})
		if err != nil {
			log.Warn("Redis unavailable, feed cache disabled: %v", err)
		} else {
			feedCache = redisCache
			feedCacheClose = redisCache.Close
			log.Info("Feed cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CacheTTL)
		}
	}

	// Клиент системы учёта
	var feedMetrics reservationfeed.MetricsRecorder
	if metricsCollector != nil {
		feedMetrics = metricsCollector
	}
	feedClient := reservationfeed.NewClient(reservationfeed.Options{
		ReservationsURL: cfg.Feed.ReservationsURL,
		StatusURL:       cfg.Feed.StatusURL,
		Timeout:         time.Duration(cfg.Feed.Timeout) * time.Second,
		MaxRetries:      cfg.Feed.MaxRetries,
		Location:        lab.Location,
	}, feedCache, feedMetrics, log)
	log.Info("Feed client initialized (reservations=%s, status=%s, timeout=%ds)",
		cfg.Feed.ReservationsURL, cfg.Feed.StatusURL, cfg.Feed.Timeout)

	// Уведомления операторам
	var pendingPublisher pendingNotifier = notifier.NewLogNotifier(log)
	if cfg.Kafka.Enabled {
		pendingPublisher = notifier.NewPublisher(notifier.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic), lab.Pool)
		log.Info("Kafka notifier enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	// Политики и подбор ПК
	timePolicy := timerange.NewPolicy(lab.Location, lab.Hours, lab.AdvanceNoticeDays)
	primePolicy := primetime.NewPolicy(lab.PrimeTime, lab.Pool, lab.Teams, reservationRepository, lab.Location)
	checker := allocation.NewChecker(lab.Pool)
	allocator := allocation.NewAllocator(lab.Pool)
	reconciler := reconcile.NewReconciler(lab.Pool, lab.MatchTolerance)

	// Инициализируем use cases
	var ucMetrics createReservationUC.MetricsRecorder
	if metricsCollector != nil {
		ucMetrics = metricsCollector
	}
	createReservationUseCase := createReservationUC.NewUseCase(createReservationUC.Deps{
		ReservationRepo: reservationRepository,
		Teams:           lab.Teams,
		Pool:            lab.Pool,
		TimePolicy:      timePolicy,
		PrimePolicy:     primePolicy,
		Checker:         checker,
		Allocator:       allocator,
		Access:          cfg.Access,
		TxManager:       txMgr,
		Metrics:         ucMetrics,
		Logger:          log,
	})
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		reservationRepository,
		ackRepository,
		feedClient,
		reconciler,
		timePolicy,
		lab.SlotDuration,
		log,
	)
	getPCStatusesUseCase := getPCStatusesUC.NewUseCase(feedClient, lab.Pool, log)

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		ackRepository,
		primePolicy,
		lab.Teams,
		lab.Pool,
		cfg.Access,
		log,
	)
	labSvc := labService.NewService(
		lab.Pool,
		lab.Teams,
		lab.Hours,
		lab.PrimeTime,
		lab.AdvanceNoticeDays,
		lab.Games,
		lab.Location,
		log,
	)

	// Черновики пошагового бронирования
	drafts := session.NewStore(time.Duration(cfg.Sessions.TTL) * time.Second)
	drafts.Start(sessionSweepInterval)

	// Фоновые задачи
	var workerMetrics worker.MetricsRecorder = noopWorkerMetrics{}
	if metricsCollector != nil {
		workerMetrics = metricsCollector
	}

	var pendingSync *worker.PendingSync
	if cfg.Workers.SyncEnabled {
		pendingSync = worker.NewPendingSync(worker.PendingSyncConfig{
			Interval:      time.Duration(cfg.Workers.SyncInterval) * time.Second,
			LookaheadDays: cfg.Workers.LookaheadDays,
			StaleAfter:    time.Duration(cfg.Workers.StaleAfter) * time.Second,
		}, getAvailabilityUseCase, pendingPublisher, workerMetrics, log)
		if err := pendingSync.Start(ctx); err != nil {
			log.Fatal("Failed to start pending sync: %v", err)
		}
	}

	var quotaSweep *worker.QuotaSweep
	if cfg.Workers.QuotaSweepEnabled {
		quotaSweep = worker.NewQuotaSweep(
			time.Duration(cfg.Workers.AggregationInterval)*time.Second,
			lab.Location,
			reservationRepository,
			lab.Teams,
			workerMetrics,
			log,
		)
		if err := quotaSweep.Start(ctx); err != nil {
			log.Fatal("Failed to start quota sweep: %v", err)
		}
	}

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getMyReservations := getMyReservationsHandler.NewHandler(reservationsSvc, log)
	ackReservation := ackReservationHandler.NewHandler(reservationsSvc, log)
	getTeamQuota := getTeamQuotaHandler.NewHandler(reservationsSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, lab.Pool, cfg.Access, log)
	getPCs := getPCsHandler.NewHandler(getPCStatusesUseCase, log)
	getLabInfo := getLabInfoHandler.NewHandler(labSvc, log)
	bookingSession := bookingSessionHandler.NewHandler(drafts, createReservationUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Metrics middleware и endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Описание зала, часы работы и правила
	api.HandleFunc("/lab", getLabInfo.Handle).Methods(http.MethodGet)

	// Живые статусы ПК
	api.HandleFunc("/pcs", getPCs.Handle).Methods(http.MethodGet)
	api.HandleFunc("/pcs/{pc}", getPCs.HandleOne).Methods(http.MethodGet)

	// Квота прайм-тайма команды
	api.HandleFunc("/teams/{team}/quota", getTeamQuota.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Сетка занятости на дату; список ожидающих броней только для операторов
	protected.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// --- Брони ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", getMyReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", cancelReservation.Handle).Methods(http.MethodDelete)

	// Подтверждение оператором
	protected.HandleFunc("/reservations/{reservationId}/ack", ackReservation.Handle).Methods(http.MethodPost)

	// --- Пошаговое бронирование ---
	protected.HandleFunc("/sessions", bookingSession.Create).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}", bookingSession.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/sessions/{sessionId}/submit", bookingSession.Submit).Methods(http.MethodPost)

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем фоновые задачи до закрытия зависимостей
	if pendingSync != nil {
		pendingSync.Stop()
	}
	if quotaSweep != nil {
		quotaSweep.Stop()
	}
	drafts.Stop()
	cancel()
	close(stopMetricsCh)

	if err := pendingPublisher.Close(); err != nil {
		log.Error("Failed to close notifier: %v", err)
	}
	if feedCacheClose != nil {
		if err := feedCacheClose(); err != nil {
			log.Error("Failed to close feed cache: %v", err)
		}
	}
	if err := tel.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shutdown tracing: %v", err)
	}

	log.Info("Server exited")
}

// noopWorkerMetrics метрики фоновых задач при выключенном Prometheus
type noopWorkerMetrics struct{}

func (noopWorkerMetrics) SetPendingReservations(int)   {}
func (noopWorkerMetrics) NotificationSent()            {}
func (noopWorkerMetrics) SetPrimeTimeUsed(string, int) {}
