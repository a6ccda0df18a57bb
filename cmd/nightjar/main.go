package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/simonhull/firebird-suite/nightjar/internal/commands"
)

func main() {
	// NIGHTJAR_* overrides may live in a local .env
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
