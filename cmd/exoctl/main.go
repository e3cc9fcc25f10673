package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/exoarchive/internal/cli"
)

func main() {
	// The CLI shares the server's .env but never overrides the shell.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
