package main

import (
	"os"

	"github.com/rustyeddy/bwmfi/cmd/bwmfi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
