package main

import (
	"github.com/rs/zerolog/log"

	"hotelops/config"
	"hotelops/di"
	"hotelops/helper"
	"hotelops/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate && cfg.Store.Driver == config.StoreDriverPostgres {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
