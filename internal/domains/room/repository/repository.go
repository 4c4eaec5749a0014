package repository

import (
	"hotelops/config"
	"hotelops/infras/otel"
	"hotelops/infras/postgres"
	"hotelops/internal/domains/room/model"
	gRepo "hotelops/shared/repository"
)

type Room = gRepo.Store[model.Room]

func New(cfg *config.Config, db *postgres.Connection, otel otel.Otel) Room {
	return gRepo.New[model.Room](cfg, cfg.Store.Driver, model.EntityName, model.TableName, db, otel)
}
