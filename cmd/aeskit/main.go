// Package main is the entry point for the aeskit command-line tool.
package main

import (
	"log"
	"os"

	"aeskit/cmd/aeskit/internal/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}
