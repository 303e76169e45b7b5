package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authcleanup "github.com/WooodHead/everpost-backend/internal/auth/cleanup"
	authhttp "github.com/WooodHead/everpost-backend/internal/auth/http"
	"github.com/WooodHead/everpost-backend/internal/common/bootstrap"
	"github.com/WooodHead/everpost-backend/internal/common/config"
	commonhttp "github.com/WooodHead/everpost-backend/internal/common/http"
	"github.com/WooodHead/everpost-backend/internal/common/jwtverify"
	"github.com/WooodHead/everpost-backend/internal/common/logger"
	srv "github.com/WooodHead/everpost-backend/internal/common/server"
	posthttp "github.com/WooodHead/everpost-backend/internal/post/http"
	userhttp "github.com/WooodHead/everpost-backend/internal/user/http"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "api", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.LoadAPIConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bgCtx, cancelBackground := context.WithCancel(context.Background())
	defer cancelBackground()

	app, err := bootstrap.NewAPIApp(bgCtx, cfg, log)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	defer app.Close()

	go authcleanup.StartOrphanSweep(bgCtx, app.UserRepo, cfg.OrphanSweepEvery, cfg.OrphanGracePeriod, app.Clock, log)

	requireAuth := jwtverify.Middleware(cfg.JWTSecret, log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /hello", commonhttp.HelloHandler)
	mux.HandleFunc("GET /health", commonhttp.HealthHandler(app.Pool, log))
	mux.Handle("GET /metrics", promhttp.Handler())

	authhttp.NewHandler(app.Accounts, cfg.RequestTimeout, log).Routes(mux)
	userhttp.NewHandler(app.Profiles, cfg.RequestTimeout, log).Routes(mux, requireAuth)
	posthttp.NewHandler(app.Posts, cfg.RequestTimeout, log).Routes(mux, requireAuth)

	rateLimiter := commonhttp.NewStrictRateLimiter()
	handler := commonhttp.BuildBaseHandler(log, cfg.CORSOrigin, rateLimiter.Middleware(mux))

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, handler)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Infof("api service: stopping background workers")
			cancelBackground()
			rateLimiter.Stop()
			return nil
		},
	}

	if err := srv.Run(ctx, server, serverConfig, log, "api", shutdownHooks); err != nil {
		log.Errorf("server error: %v", err)
	}
}
