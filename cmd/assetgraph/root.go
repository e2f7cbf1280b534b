package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "assetgraph",
	Short: "Value portfolios over a dependency graph of instruments",
	Long: `assetgraph builds a valuation graph from csv holdings and prices,
then values it offline, watches a live feed, or serves the whole thing
over http.`,
	SilenceUsage: true,
}
