package repository

import (
	"hotelops/config"
	"hotelops/infras/otel"
	"hotelops/infras/postgres"
	"hotelops/internal/domains/reservation/model"
	gRepo "hotelops/shared/repository"
)

type Reservation = gRepo.Store[model.Reservation]

func New(cfg *config.Config, db *postgres.Connection, otel otel.Otel) Reservation {
	return gRepo.New[model.Reservation](cfg, cfg.Store.Driver, model.EntityName, model.TableName, db, otel)
}
