package repository

import (
	"github.com/rs/zerolog/log"

	"hotelops/config"
	"hotelops/infras/otel"
	"hotelops/infras/postgres"
	"hotelops/infras/recordapi"
	"hotelops/internal/domains/guest/model"
	gRepo "hotelops/shared/repository"
)

type Guest = gRepo.Store[model.Guest]

// New picks the guest store. Guests are the only entity that may live in the hosted record
// store, selected with STORE_GUEST_DRIVER=remote.
func New(cfg *config.Config, db *postgres.Connection, client recordapi.Client, otel otel.Otel) Guest {
	driver := cfg.GuestStoreDriver()
	if driver == config.StoreDriverRemote {
		log.Info().Str("entity", model.EntityName).Str("table", model.RemoteTableName).Msg("Using remote record store")

		return NewRemote(client, otel)
	}

	return gRepo.New[model.Guest](cfg, driver, model.EntityName, model.TableName, db, otel)
}
