//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"hotelops/config"
	"hotelops/infras/kafka"
	"hotelops/infras/otel"
	"hotelops/infras/postgres"
	"hotelops/infras/recordapi"
	"hotelops/infras/redis"
	"hotelops/infras/s3"
	billingRepository "hotelops/internal/domains/billing/repository"
	billingService "hotelops/internal/domains/billing/service"
	guestRepository "hotelops/internal/domains/guest/repository"
	guestService "hotelops/internal/domains/guest/service"
	reportService "hotelops/internal/domains/report/service"
	reservationRepository "hotelops/internal/domains/reservation/repository"
	reservationService "hotelops/internal/domains/reservation/service"
	roomRepository "hotelops/internal/domains/room/repository"
	roomService "hotelops/internal/domains/room/service"
	taskRepository "hotelops/internal/domains/task/repository"
	taskService "hotelops/internal/domains/task/service"
	billingHandler "hotelops/internal/handlers/billing"
	guestHandler "hotelops/internal/handlers/guest"
	reportHandler "hotelops/internal/handlers/report"
	reservationHandler "hotelops/internal/handlers/reservation"
	roomHandler "hotelops/internal/handlers/room"
	taskHandler "hotelops/internal/handlers/task"
	"hotelops/shared/cache"
	"hotelops/transport/http"
	"hotelops/transport/http/middleware"
	"hotelops/transport/http/router"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
	recordapi.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var guestDomain = wire.NewSet(
	guestRepository.New,
	guestService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var billingDomain = wire.NewSet(
	billingRepository.New,
	billingService.New,
)

var taskDomain = wire.NewSet(
	taskRepository.New,
	taskService.New,
)

var reportDomain = wire.NewSet(
	reportService.New,
)

var domains = wire.NewSet(
	guestDomain,
	roomDomain,
	reservationDomain,
	billingDomain,
	taskDomain,
	reportDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	guestHandler.New,
	roomHandler.New,
	reservationHandler.New,
	billingHandler.New,
	taskHandler.New,
	reportHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
