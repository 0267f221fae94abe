package main

import (
	"os"

	"github.com/payra-dev/payra/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
