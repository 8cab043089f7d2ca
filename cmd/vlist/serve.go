package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vlist/pkg/mount"
	"github.com/vango-dev/vlist/pkg/server"
)

func serveCmd(g *globals) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendering over HTTP and WebSocket",
		Long: `Start the vlist server.

Routes:
  GET  /healthz           liveness probe
  GET  /metrics           Prometheus metrics
  POST /render            run a patch script (?snapshot=name stores the result)
  GET  /snapshots         list stored snapshots
  GET  /snapshots/{name}  fetch a stored snapshot
  GET  /ws                live mount, one step per message

Examples:
  vlist serve
  vlist serve --port=9000
  vlist serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				g.cfg.Server.Port = port
			}
			if host != "" {
				g.cfg.Server.Host = host
			}
			if err := g.cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, g)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from vlist.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from vlist.json)")

	return cmd
}

// newServerConfig translates vlist.json into a server configuration.
func newServerConfig(g *globals) (*server.Config, error) {
	cfg := g.cfg
	sc := &server.Config{
		Address:         cfg.Address(),
		ShutdownTimeout: cfg.ShutdownTimeout(),
		TracerName:      cfg.Tracing.TracerName,
		Logger:          g.logger,
	}

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		sc.Metrics = mount.NewMetrics(
			mount.WithRegistry(reg),
			mount.WithNamespace(cfg.Metrics.Namespace),
		)
		sc.Gatherer = reg
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	sc.Store = store
	return sc, nil
}

func runServe(ctx context.Context, g *globals) error {
	sc, err := newServerConfig(g)
	if err != nil {
		return err
	}
	g.logger.Info("starting", "address", sc.Address, "metrics", g.cfg.Metrics.Enabled, "s3", g.cfg.UsesS3(), "redis", g.cfg.UsesRedis())
	return server.New(sc).ListenAndServe(ctx)
}
