package main

import (
	"os"

	"github.com/firefly-engineering/portman/cmd"
	"github.com/firefly-engineering/portman/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
