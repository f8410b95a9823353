package main

import (
	"os"

	"github.com/digital-fluid/fluidspec/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
