package main

import (
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/sealjuli/Library/pkg/config"
	"github.com/sealjuli/Library/pkg/database"
	"github.com/sealjuli/Library/pkg/logging"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	a := &app{
		out:    os.Stdout,
		logger: logger,
		open: func() (*gorm.DB, error) {
			if err := cfg.Validate(); err != nil {
				return nil, err
			}
			dialector, err := database.Dialector(cfg)
			if err != nil {
				return nil, err
			}
			return database.Open(dialector, logger)
		},
	}

	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}
