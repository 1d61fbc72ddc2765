package main

import (
	"os"

	"github.com/wcsim/macgen/cmd/macgen/cmd"
	"github.com/wcsim/macgen/internal/common"
)

func main() {
	common.ConfigureCommandLineLogging()
	if err := cmd.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
