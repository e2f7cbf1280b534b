package main

import (
	"os"

	_ "github.com/lib/pq"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
