// Package main is the leapscope entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/leapstack-labs/leapscope/internal/cli"
)

func main() {
	// MOTHERDUCK_TOKEN and friends can live in a project-local .env.
	// Variables already set in the environment win.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
