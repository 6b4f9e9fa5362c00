package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"martinaai/cmd"
)

func main() {
	// .env is optional; real environment variables take precedence anyway
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
