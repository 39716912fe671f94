package app

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"chore-coin-go/internal/auth"
	"chore-coin-go/internal/config"
	"chore-coin-go/internal/db"
	accountdomain "chore-coin-go/internal/domain/account"
	choresdomain "chore-coin-go/internal/domain/chores"
	ledgerdomain "chore-coin-go/internal/domain/ledger"
	rewardsdomain "chore-coin-go/internal/domain/rewards"
	"chore-coin-go/internal/repository/inmemory"
	accountrepo "chore-coin-go/internal/repository/postgres/account"
	choresrepo "chore-coin-go/internal/repository/postgres/chores"
	ledgerrepo "chore-coin-go/internal/repository/postgres/ledger"
	rewardsrepo "chore-coin-go/internal/repository/postgres/rewards"
	"chore-coin-go/internal/repository/redis/attempts"
	"chore-coin-go/internal/transport/httpserver"
	"chore-coin-go/internal/transport/httpserver/handler"
	"chore-coin-go/pkg/logger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	closers    []io.Closer
}

func New(ctx context.Context, log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, db: dbConn}

	limiter, err := a.attemptLimiter(ctx, log)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	accounts := accountdomain.NewService(
		accountrepo.NewPostgres(dbConn),
		accountdomain.WithAttemptLimiter(limiter),
		accountdomain.WithPasscodeIterations(cfg.Passcode.Iterations),
	)
	chores := choresdomain.NewService(choresrepo.NewPostgres(dbConn, cfg.DB.TxMaxRetries))
	rewards := rewardsdomain.NewService(rewardsrepo.NewPostgres(dbConn, cfg.DB.TxMaxRetries))
	ledger := ledgerdomain.NewService(ledgerrepo.NewPostgres(dbConn))

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if cfg.Auth.GoogleClientID == "" {
		log.Warn("app: GOOGLE_CLIENT_ID not set, logins will be rejected")
	}
	identity := auth.NewGoogleVerifier(cfg.Auth.GoogleCertsURL, cfg.Auth.GoogleClientID, cfg.Auth.GoogleHTTPTimeout)

	handlers := handler.New(handler.Deps{
		Accounts: accounts,
		Chores:   chores,
		Rewards:  rewards,
		Ledger:   ledger,
		Identity: identity,
		Tokens:   tokens,
	}, log, cfg.IsDevelopment())

	log.Info("app: initializing http server")
	a.httpServer = httpserver.New(cfg, httpserver.NewRouter(cfg, handlers, tokens, log))
	return a, nil
}

// attemptLimiter shares passcode attempt counts through Redis when it is
// configured and falls back to per-process counts otherwise.
func (a *App) attemptLimiter(ctx context.Context, log logger.Logger) (accountdomain.AttemptLimiter, error) {
	if a.cfg.Redis.Addr == "" {
		log.Info("app: REDIS_ADDR not set, passcode attempts tracked in memory")
		return inmemory.NewAttemptLimiter(a.cfg.Passcode.MaxAttempts, a.cfg.Passcode.AttemptWindow), nil
	}

	limiter, err := attempts.New(ctx, &redis.Options{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	}, attempts.Config{
		MaxAttempts: a.cfg.Passcode.MaxAttempts,
		Window:      a.cfg.Passcode.AttemptWindow,
	})
	if err != nil {
		return nil, fmt.Errorf("init attempt limiter: %w", err)
	}
	a.closers = append(a.closers, limiter)
	log.Info("app: passcode attempts tracked in redis", "addr", a.cfg.Redis.Addr)
	return limiter, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	for _, closer := range a.closers {
		_ = closer.Close()
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate runs a goose command against the configured database and closes
// the connection afterwards.
func Migrate(ctx context.Context, log logger.Logger, command string) error {
	cfg, err := config.Load(log)
	if err != nil {
		return err
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := dbConn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	return db.Migrate(ctx, dbConn, command)
}
