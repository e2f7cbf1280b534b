package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assetgraph/cmd"
	"assetgraph/internal/app"
	"assetgraph/internal/logger"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the http api with the price feed and reconciler beside it",
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		apiHandler, cfg, err := cmd.InitializeDependencies()
		if err != nil {
			return err
		}
		defer cmd.CloseDependencies(apiHandler)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		feed, err := cmd.InitializeFeed(apiHandler.ValuationService, cfg)
		if err != nil {
			return err
		}
		go func() {
			err := feed.Run(ctx, time.Duration(cfg.Feed.IntervalMs)*time.Millisecond)
			if err != nil {
				logger.Error(err)
			}
		}()

		if cfg.Reconcile.Enabled {
			scheduler, err := app.StartReconcileScheduler(ctx, cfg.Reconcile.Schedule, apiHandler.ReconcilerHandler)
			if err != nil {
				return err
			}
			defer scheduler.Stop()
		}

		return apiHandler.StartApi(cfg.Port)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
