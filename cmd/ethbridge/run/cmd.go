// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/luxfi/database"
	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/ethbridge/api"
	"github.com/luxfi/ethbridge/api/server"
	"github.com/luxfi/ethbridge/bridge"
	"github.com/luxfi/ethbridge/config"
	"github.com/luxfi/ethbridge/utils/wrappers"
)

const (
	RPCEndpoint     = "/rpc"
	MetricsEndpoint = "/metrics"
	HealthEndpoint  = "/health"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "run",
		Short: "Runs a bridge coordinator",
		RunE:  runFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func runFunc(c *cobra.Command, args []string) error {
	cfg, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}
	logger := log.NewLogger("ethbridge")
	return Run(c.Context(), logger, cfg)
}

// Run serves a ledger until [ctx] is done. The database is closed before
// returning.
func Run(ctx context.Context, logger log.Logger, cfg config.Config) error {
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	logger.Info("opened ledger database",
		log.String("type", cfg.DBType),
		log.String("path", cfg.DBPath),
	)

	errs := wrappers.Errs{}
	errs.Add(
		serve(ctx, logger, cfg, db),
		db.Close(),
	)
	logger.Info("bridge coordinator stopped")
	return errs.Err
}

func serve(ctx context.Context, logger log.Logger, cfg config.Config, db database.Database) error {
	registry := prometheus.NewRegistry()
	err := errors.Join(
		registry.Register(collectors.NewGoCollector()),
		registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})),
	)
	if err != nil {
		return err
	}

	b, err := newBridge(logger, cfg, db, bridge.NewCredits(), registry)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", cfg.HTTPAddress())
	if err != nil {
		return err
	}
	srv, err := server.New(logger, listener, cfg.ServerConfig(registry))
	if err != nil {
		_ = listener.Close()
		return err
	}

	rpcHandler, err := api.NewHandler(logger, b)
	if err != nil {
		_ = listener.Close()
		return err
	}
	errs := wrappers.Errs{}
	errs.Add(
		srv.AddRoute(rpcHandler, RPCEndpoint),
		srv.AddRoute(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), MetricsEndpoint),
		srv.AddRoute(api.NewHealthHandler(b), HealthEndpoint),
	)
	if errs.Errored() {
		_ = listener.Close()
		return errs.Err
	}

	logger.Info("serving bridge API",
		log.String("address", listener.Addr().String()),
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		err := srv.Dispatch()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	eg.Go(func() error {
		<-egCtx.Done()
		return srv.Shutdown()
	})
	eg.Go(func() error {
		logEvents(egCtx, logger, b.Queue())
		return nil
	})

	return eg.Wait()
}

// logEvents reports every committed ledger event until [ctx] is done.
func logEvents(ctx context.Context, logger log.Logger, queue *bridge.Queue) {
	for {
		event, err := queue.Next(ctx)
		if err != nil {
			return
		}
		logger.Info("ledger event",
			log.Uint64("sequence", event.Sequence),
			log.Stringer("type", event.Type),
			log.Stringer("recipient", event.Recipient),
			log.String("value", event.Value.Dec()),
		)
	}
}
