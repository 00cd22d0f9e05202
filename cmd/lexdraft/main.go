// Command lexdraft drafts court petitions from case facts and reference samples.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/lexdraft/internal/adapters/driving/cli"
)

func main() {
	// API keys may come from a local .env file.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
