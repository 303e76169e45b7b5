package server

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WooodHead/everpost-backend/internal/common/logger"
)

func testConfig(addr string) ServerConfig {
	cfg := DefaultServerConfig("0")
	cfg.Addr = addr
	cfg.ShutdownTimeout = 2 * time.Second
	cfg.DrainTimeout = time.Second
	return cfg
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	log := logger.NewWithWriter(&bytes.Buffer{}, "test", "info")
	cfg := testConfig("127.0.0.1:0")
	srv := NewServer(cfg, http.NotFoundHandler())

	ctx, cancel := context.WithCancel(context.Background())
	hookCalled := make(chan struct{}, 1)
	hooks := []ShutdownHook{
		func(ctx context.Context) error {
			hookCalled <- struct{}{}
			return errors.New("hook errors are logged, not returned")
		},
	}

	done := make(chan error, 1)
	go func() { done <- Run(ctx, srv, cfg, log, "test", hooks) }()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	select {
	case <-hookCalled:
	default:
		t.Fatal("shutdown hook was not called")
	}
}

func TestRun_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	log := logger.NewWithWriter(&bytes.Buffer{}, "test", "info")
	cfg := testConfig(ln.Addr().String())
	srv := NewServer(cfg, http.NotFoundHandler())

	err = Run(context.Background(), srv, cfg, log, "test", nil)
	assert.Error(t, err)
}
