package main

import (
	"os"

	"github.com/tempora/tempora/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
