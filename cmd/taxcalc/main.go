package main

import (
	"os"

	"github.com/cyphera/cyphera-tax/libs/go/logger"
)

func main() {
	defer func() {
		_ = logger.Sync()
	}()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
