package main

import (
	"context"

	"assetgraph/cmd"
	"assetgraph/internal"
	"assetgraph/internal/domain"

	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Recompute every node from scratch and report drift against the cache",
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		apiHandler, _, err := cmd.InitializeDependencies()
		if err != nil {
			return err
		}
		defer cmd.CloseDependencies(apiHandler)

		profile, endProfile := domain.NewProfile()
		ctx := context.WithValue(context.Background(), domain.ContextProfileKey, profile)

		result, err := apiHandler.ReconcilerHandler.Reconcile(ctx)
		if err != nil {
			return err
		}
		endProfile()

		internal.Pprint(result)
		internal.Pprint(profile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}
