package main

import (
	"os"

	"hotelops/config"
	"hotelops/helper"
	"hotelops/shared/logger"
)

const (
	argLength = 2
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	migrateLog := logger.For("migrate")

	if len(os.Args) < argLength {
		migrateLog.Fatal().Msg("Migration action is required: up, down, drop or step-up")
	}

	if err := helper.Runner(cfg, os.Args[1]); err != nil {
		migrateLog.Fatal().Err(err).Str("action", os.Args[1]).Msg("Migration failed")
	}
}
