package server

import (
	"net"
	"net/http"
	"time"

	"github.com/WooodHead/everpost-backend/internal/common/constants"
)

// ServerConfig holds the listener timeouts and the two shutdown budgets used
// by Run: DrainTimeout bounds the shutdown hooks, ShutdownTimeout bounds the
// whole shutdown.
type ServerConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	DrainTimeout      time.Duration
}

// DefaultServerConfig listens on every interface. WriteTimeout stays above
// the per-request handler timeout so a timed out handler can still answer.
func DefaultServerConfig(port string) ServerConfig {
	return ServerConfig{
		Addr:              net.JoinHostPort("", port),
		ReadHeaderTimeout: constants.ServerReadHeaderTimeout,
		ReadTimeout:       constants.ServerReadTimeout,
		WriteTimeout:      constants.ServerWriteTimeout,
		IdleTimeout:       constants.ServerIdleTimeout,
		ShutdownTimeout:   constants.ShutdownTimeout,
		DrainTimeout:      constants.DrainTimeout,
	}
}

func NewServer(cfg ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    constants.ServerMaxHeaderBytes,
	}
}
