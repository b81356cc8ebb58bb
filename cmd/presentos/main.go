package main

import (
	"os"

	"github.com/presentos/present-cli/internal/logging"
)

func main() {
	if err := Execute(); err != nil {
		logging.Logger().Error("startup failed", "err", err)
		os.Exit(1)
	}
}
