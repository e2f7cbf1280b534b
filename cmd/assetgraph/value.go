package main

import (
	"context"
	"fmt"

	"assetgraph/cmd"
	"assetgraph/internal/config"
	"assetgraph/internal/domain"
	"assetgraph/internal/loader"
	"assetgraph/internal/service"

	"github.com/spf13/cobra"
)

var valueUpdatesFile string

var valueCmd = &cobra.Command{
	Use:     "value",
	Short:   "Value every node from the csv files and print id,value lines",
	Example: "assetgraph value --updates updates.csv",
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

		ctx := context.Background()
		snapshot, err := valuationService.Snapshot(ctx)
		if err != nil {
			return err
		}
		for _, nv := range snapshot {
			fmt.Printf("%s,%s\n", nv.ID, nv.Value.String())
		}

		if valueUpdatesFile == "" {
			return nil
		}

		// updates apply in file order; every recomputed node prints again
		updates, err := loader.LoadPrices(valueUpdatesFile)
		if err != nil {
			return err
		}
		for _, row := range updates {
			receipt, err := valuationService.ApplyUpdate(ctx, domain.NewPriceUpdate(row.ID, row.Price, "csv"))
			if err != nil {
				return err
			}
			for _, nv := range receipt {
				fmt.Printf("%s,%s\n", nv.ID, nv.Value.String())
			}
		}
		return nil
	},
}

func init() {
	valueCmd.Flags().StringVar(&valueUpdatesFile, "updates", "", "csv of symbol,price updates to apply in order")
	rootCmd.AddCommand(valueCmd)
}
