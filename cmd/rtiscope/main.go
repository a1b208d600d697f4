package main

import (
	"os"

	"github.com/rtiscope/rtiscope/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
