package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/summarizeai/sai-cli/cmd"
)

func main() {
	// A .env in the working directory seeds SAI_* variables for local
	// development; a missing file is fine.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
