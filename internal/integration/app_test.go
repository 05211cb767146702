package integration_test

import (
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-booking-engine/internal/app"
	"github.com/metinatakli/cinema-booking-engine/internal/config"
	"github.com/metinatakli/cinema-booking-engine/internal/mocks"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App         *app.Application
	DB          *pgxpool.Pool
	RedisClient *redis.Client
	Clock       *mocks.MockClock
	Notifier    *mocks.MockNotifier
}

func newTestApp(cfg config.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	clock := mocks.NewMockClock(time.Now())
	notifier := &mocks.MockNotifier{}

	application := app.NewApp(cfg, logger, db, redisClient, notifier, clock)

	return &TestApp{
		App:         application,
		DB:          db,
		RedisClient: redisClient,
		Clock:       clock,
		Notifier:    notifier,
	}, nil
}

func (a *TestApp) Close() {
	a.RedisClient.Close()
	a.DB.Close()
}
