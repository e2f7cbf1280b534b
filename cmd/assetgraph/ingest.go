package main

import (
	"fmt"
	"time"

	"assetgraph/cmd"
	"assetgraph/internal/data"
	"assetgraph/internal/loader"
	"assetgraph/internal/repository"

	"github.com/spf13/cobra"
)

var ingestStartDate string

var ingestCmd = &cobra.Command{
	Use:     "ingest",
	Short:   "Backfill daily leaf price history from yahoo into postgres",
	Example: "assetgraph ingest --start 2024-01-01",
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		apiHandler, cfg, err := cmd.InitializeDependencies()
		if err != nil {
			return err
		}
		defer cmd.CloseDependencies(apiHandler)

		start := time.Now().AddDate(-1, 0, 0)
		if ingestStartDate != "" {
			parsed, err := time.Parse("2006-01-02", ingestStartDate)
			if err != nil {
				return fmt.Errorf("invalid --start date %q: %w", ingestStartDate, err)
			}
			start = parsed
		}

		tx, err := apiHandler.Db.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		err = data.IngestLeafHistory(tx, apiHandler.ValuationService.LeafIDs(), start, apiHandler.PriceEventRepository)
		if err != nil {
			return err
		}

		// snapshot the definitions that produced this history. full
		// replace, the csv is the source of truth
		edges, err := loader.LoadHoldings(cfg.DefinitionsFile)
		if err != nil {
			return err
		}
		err = apiHandler.HoldingRepository.DeleteAll(tx)
		if err != nil {
			return err
		}
		err = apiHandler.HoldingRepository.Add(tx, repository.HoldingsFromEdges(edges))
		if err != nil {
			return err
		}

		return tx.Commit()
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestStartDate, "start", "", "backfill from this date (2006-01-02), default one year back")
	rootCmd.AddCommand(ingestCmd)
}
