package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/finance-calculators/internal/cache"
	"github.com/iwvelando/finance-calculators/internal/metrics"
	"github.com/iwvelando/finance-calculators/internal/server"
	"github.com/iwvelando/finance-calculators/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) serveCmd() *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, address)
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "listen address override, e.g. :8080")
	return cmd
}

func (a *app) serve(ctx context.Context, address string) error {
	cfg := a.conf.Server
	if address != "" {
		cfg.Address = address
	}

	c, err := cache.New(ctx, a.conf.Cache.Options(), a.logger)
	if err != nil {
		return fmt.Errorf("failed to create cache: %w", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			a.logger.Warn("failed to close cache",
				zap.String("op", "main.serve"),
				zap.Error(err),
			)
		}
	}()

	m := metrics.New("fincalc")
	svc := service.New(a.reg, a.logger,
		service.WithCache(c),
		service.WithMetrics(m),
		service.WithClock(a.clock),
		service.WithBatchLimits(cfg.MaxBatchSize, 0),
	)
	return server.New(svc, cfg, a.logger, m, version).Run(ctx)
}
