package repository

import (
	"hotelops/config"
	"hotelops/infras/otel"
	"hotelops/infras/postgres"
	"hotelops/internal/domains/billing/model"
	gRepo "hotelops/shared/repository"
)

type Bill = gRepo.Store[model.Bill]

func New(cfg *config.Config, db *postgres.Connection, otel otel.Otel) Bill {
	return gRepo.New[model.Bill](cfg, cfg.Store.Driver, model.EntityName, model.TableName, db, otel)
}
