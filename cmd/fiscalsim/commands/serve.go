package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/deluair/BD-publicfinance-simulation/internal/api"
)

const defaultAddr = ":8090"

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides daemon.addr)"`
	DB   string `help:"Run database (overrides storage.sqlite_path)" type:"path"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	addr := s.Addr
	if addr == "" {
		if cfg, err := root.loadConfig(g); err == nil {
			addr = cfg.Daemon.Addr
		}
	}
	if addr == "" {
		addr = defaultAddr
	}

	store, err := root.openStore(g, s.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return serveUntilDone(ctx, api.NewServer(addr, store, prom.NewRegistry(), g.Logger))
}

// serveUntilDone runs srv until ctx ends, then shuts it down gracefully.
func serveUntilDone(ctx context.Context, srv *api.Server) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
