package repository

import (
	"hotelops/config"
	"hotelops/infras/otel"
	"hotelops/infras/postgres"
	"hotelops/internal/domains/task/model"
	gRepo "hotelops/shared/repository"
)

type Task = gRepo.Store[model.Task]

func New(cfg *config.Config, db *postgres.Connection, otel otel.Otel) Task {
	return gRepo.New[model.Task](cfg, cfg.Store.Driver, model.EntityName, model.TableName, db, otel)
}
