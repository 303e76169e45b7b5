package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	authrepo "github.com/WooodHead/everpost-backend/internal/auth/repository"
	authservice "github.com/WooodHead/everpost-backend/internal/auth/service"
	"github.com/WooodHead/everpost-backend/internal/common/clock"
	"github.com/WooodHead/everpost-backend/internal/common/config"
	"github.com/WooodHead/everpost-backend/internal/common/constants"
	commoncrypto "github.com/WooodHead/everpost-backend/internal/common/crypto"
	"github.com/WooodHead/everpost-backend/internal/common/db"
	"github.com/WooodHead/everpost-backend/internal/common/logger"
	"github.com/WooodHead/everpost-backend/internal/common/migrations"
	postrepo "github.com/WooodHead/everpost-backend/internal/post/repository"
	postservice "github.com/WooodHead/everpost-backend/internal/post/service"
	userrepo "github.com/WooodHead/everpost-backend/internal/user/repository"
	userservice "github.com/WooodHead/everpost-backend/internal/user/service"
)

// App holds everything below the HTTP layer.
type App struct {
	Config   config.APIConfig
	Log      *logger.Logger
	Pool     *pgxpool.Pool
	Clock    clock.Clock
	UserRepo userrepo.Repository
	Accounts *authservice.AccountService
	Profiles *userservice.Service
	Posts    *postservice.Service
}

// NewAPIApp migrates the schema, opens the pool and builds the services. The
// pool metrics ticker stops when ctx is cancelled.
func NewAPIApp(ctx context.Context, cfg config.APIConfig, log *logger.Logger) (*App, error) {
	if err := migrations.Up(ctx, log, cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	pool, err := db.NewPool(ctx, log, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}

	db.StartPoolMetrics(ctx, pool, constants.DBPoolMetricsInterval)

	clk := clock.NewRealClock()

	tokens, err := authservice.NewTokenIssuer(cfg.JWTSecret, constants.AccessTokenTTL, clk)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize token issuer: %w", err)
	}

	userRepo := userrepo.NewPgRepository(pool)
	credentialRepo := authrepo.NewPgCredentialRepository(pool)
	txManager := authrepo.NewPgAccountTxManager(pool)
	postRepo := postrepo.NewPgRepository(pool)

	accounts := authservice.NewAccountService(
		userRepo,
		credentialRepo,
		txManager,
		commoncrypto.NewBcryptHasher(cfg.PasswordHashCost),
		tokens,
		log,
	)

	return &App{
		Config:   cfg,
		Log:      log,
		Pool:     pool,
		Clock:    clk,
		UserRepo: userRepo,
		Accounts: accounts,
		Profiles: userservice.NewService(userRepo, log),
		Posts:    postservice.NewService(postRepo, log),
	}, nil
}

func (a *App) Close() {
	a.Pool.Close()
}
