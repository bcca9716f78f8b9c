package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/sazyar/sazyar/internal/infrastructure/cli"
)

func main() {
	// A .env file is optional; environment variables win either way.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
