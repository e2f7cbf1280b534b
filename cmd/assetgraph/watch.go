package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assetgraph/cmd"
	"assetgraph/internal/config"
	"assetgraph/internal/domain"
	"assetgraph/internal/service"

	"github.com/spf13/cobra"
)

var watchIntervalMs int

var watchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Poll the configured price source and print recomputes as they land",
	Example: "assetgraph watch --interval-ms 500",
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		g, strategy, strategyName, err := cmd.InitializeGraph(cfg)
		if err != nil {
			return err
		}
		valuationService := service.NewValuationService(nil, g, strategy, strategyName, nil, nil, nil)

		feed, err := cmd.InitializeFeed(valuationService, cfg)
		if err != nil {
			return err
		}
		feed.Sink = func(ctx context.Context, update domain.PriceUpdate) error {
			receipt, err := valuationService.ApplyUpdate(ctx, update)
			if err != nil {
				return err
			}
			for _, nv := range receipt {
				fmt.Printf("%s,%s\n", nv.ID, nv.Value.String())
			}
			return nil
		}

		interval := time.Duration(cfg.Feed.IntervalMs) * time.Millisecond
		if watchIntervalMs > 0 {
			interval = time.Duration(watchIntervalMs) * time.Millisecond
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return feed.Run(ctx, interval)
	},
}

func init() {
	watchCmd.Flags().IntVar(&watchIntervalMs, "interval-ms", 0, "poll interval, overrides config")
	rootCmd.AddCommand(watchCmd)
}
