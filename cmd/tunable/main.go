// Package main is the entry point for the tunable CLI.
package main

import (
	"os"

	"github.com/dshills/tunable/cmd/tunable/commands"
)

func main() {
	os.Exit(commands.Execute())
}
