// Package main is the entry point for the attacksim CLI.
package main

import (
	"attackSimBackend/internal/cli"
	"os"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
