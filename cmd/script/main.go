package main

import (
	"log"
	"time"

	"assetgraph/cmd"
	"assetgraph/internal/data"

	_ "github.com/lib/pq"
)

// scratch entrypoint for one off maintenance jobs. swap the body for
// whatever needs running this week.
func main() {
	handler, _, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(handler)

	tx, err := handler.Db.Begin()
	if err != nil {
		log.Fatal(err)
	}
	defer tx.Rollback()

	err = data.IngestLeafHistory(
		tx,
		handler.ValuationService.LeafIDs(),
		time.Now().AddDate(-1, 0, 0),
		handler.PriceEventRepository,
	)
	if err != nil {
		log.Fatal(err)
	}

	err = tx.Commit()
	if err != nil {
		log.Fatal(err)
	}

	// profile, endProfile := domain.NewProfile()
	// ctx := context.WithValue(context.Background(), domain.ContextProfileKey, profile)
	// result, err := handler.ReconcilerHandler.Reconcile(ctx)
	// if err != nil {
	// 	log.Fatal(err)
	// }
	// endProfile()
	// internal.Pprint(result)
	// internal.Pprint(profile)
}
