package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/go-playground/validator/v10"
	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxstd "github.com/jackc/pgx/v5/stdlib"
	"github.com/metinatakli/cinema-booking-engine/internal/config"
	"github.com/metinatakli/cinema-booking-engine/internal/domain"
	"github.com/metinatakli/cinema-booking-engine/internal/middleware"
	"github.com/metinatakli/cinema-booking-engine/internal/notify"
	"github.com/metinatakli/cinema-booking-engine/internal/repository"
	"github.com/metinatakli/cinema-booking-engine/internal/service"
	appvalidator "github.com/metinatakli/cinema-booking-engine/internal/validator"
	"github.com/metinatakli/cinema-booking-engine/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

var (
	version = vcs.Version()
)

type holdService interface {
	TryHold(ctx context.Context, showtimeID int, seatIDs []int, userID int, ttl time.Duration) (*domain.HoldSet, error)
	ReleaseHold(ctx context.Context, showtimeID int, seatIDs []int, userID int) error
}

type bookingService interface {
	ConfirmBooking(ctx context.Context, userID, showtimeID int, seatIDs []int, couponCode string) (*service.BookingResult, error)
	CancelBooking(ctx context.Context, userID, bookingID int) (*service.BookingResult, error)
}

type walletService interface {
	GetBalance(ctx context.Context, userID int) (int64, error)
	Credit(ctx context.Context, userID int, amount int64, reason string) (int64, error)
	History(ctx context.Context, userID int, pagination domain.Pagination) ([]domain.LedgerEntry, *domain.Metadata, error)
}

type Application struct {
	config      config.Config
	logger      *slog.Logger
	db          *pgxpool.Pool
	redis       redis.UniversalClient
	validator   *validator.Validate
	rateLimiter *middleware.RateLimiter

	holds    holdService
	bookings bookingService
	wallet   walletService
	reaper   *service.HoldReaper
}

func Run(cfg config.Config) error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	shutdownTelemetry, err := InitTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		logger = slog.New(newFanoutHandler(
			slog.NewTextHandler(os.Stdout, nil),
			otelslog.NewHandler("github.com/metinatakli/cinema-booking-engine"),
		))
	}

	if cfg.JWTSecret == "" {
		return errors.New("a JWT secret is required, set -jwt-secret or JWT_SECRET")
	}

	if cfg.DB.Migrate {
		err = RunMigrations(cfg.DB.DSN, cfg.DB.MigrationsPath)
		if err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	notifier, closeNotifier, err := newNotifier(cfg, logger)
	if err != nil {
		return err
	}
	defer closeNotifier()

	app := NewApp(cfg, logger, db, redisClient, notifier, domain.SystemClock{})

	return app.run()
}

// NewApp wires the repositories and services of the booking engine.
func NewApp(
	cfg config.Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	notifier domain.Notifier,
	clock domain.Clock) *Application {

	transactor := repository.NewPostgresTransactor(db)
	showtimeRepo := repository.NewPostgresShowtimeRepository(db)
	seatRepo := repository.NewPostgresSeatRepository(db)
	holdRepo := repository.NewPostgresHoldRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)
	walletRepo := repository.NewPostgresWalletRepository(db)
	couponRepo := repository.NewPostgresCouponRepository(db)

	holdManager := service.NewHoldManager(transactor, showtimeRepo, seatRepo, holdRepo, clock, service.WithHoldTTL(cfg.HoldTTL))
	walletLedger := service.NewWalletLedger(transactor, walletRepo)

	bookingEngine := service.NewBookingEngine(service.BookingEngineDeps{
		Transactor: transactor,
		Showtimes:  showtimeRepo,
		Seats:      seatRepo,
		Holds:      holdRepo,
		Bookings:   bookingRepo,
		Wallet:     walletLedger,
		Coupons:    service.NewCouponValidator(couponRepo, clock),
		Notifier:   notifier,
		Clock:      clock,
		Logger:     logger,
	})

	return &Application{
		config:    cfg,
		logger:    logger,
		db:        db,
		redis:     redisClient,
		validator: appvalidator.NewValidator(),
		rateLimiter: middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Enabled:        cfg.RateLimit.Enabled,
			Capacity:       cfg.RateLimit.Capacity,
			RefillTokens:   cfg.RateLimit.RefillTokens,
			RefillInterval: cfg.RateLimit.RefillInterval,
			Prefix:         "booking:rl",
		}, logger),
		holds:    holdManager,
		bookings: bookingEngine,
		wallet:   walletLedger,
		reaper:   service.NewHoldReaper(holdRepo, clock, cfg.ReaperInterval, logger),
	}
}

func NewRedisClient(cfg config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := redisotel.InstrumentTracing(rdb)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConnIdleTime = cfg.DB.MaxIdleTime
	poolConfig.MaxConns = int32(cfg.DB.MaxOpenConns)
	poolConfig.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func RunMigrations(dsn string, migrationsPath string) error {
	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	db := pgxstd.OpenDB(*connConfig)
	defer db.Close()

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("pgx migration driver error: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "pgx", driver)
	if err != nil {
		return fmt.Errorf("migrate.New error: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

func newNotifier(cfg config.Config, logger *slog.Logger) (domain.Notifier, func(), error) {
	if cfg.AMQPURL == "" {
		logger.Info("AMQP URL not set, booking events will only be logged")
		return notify.NewLogNotifier(logger), func() {}, nil
	}

	notifier, err := notify.NewAMQPNotifier(cfg.AMQPURL)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		err := notifier.Close()
		if err != nil {
			logger.Error("failed to close AMQP connection", "error", err)
		}
	}

	return notifier, closeFn, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	reaperCtx, stopReaper := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.reaper.Run(reaperCtx)
	}()

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)

		stopReaper()
		wg.Wait()

		shutdownError <- err
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		stopReaper()
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
