package router

import (
	"github.com/go-chi/chi/v5"

	"hotelops/internal/handlers/billing"
	"hotelops/internal/handlers/guest"
	"hotelops/internal/handlers/report"
	"hotelops/internal/handlers/reservation"
	"hotelops/internal/handlers/room"
	"hotelops/internal/handlers/task"
)

type DomainHandlers struct {
	Guest       guest.Handler
	Room        room.Handler
	Reservation reservation.Handler
	Billing     billing.Handler
	Task        task.Handler
	Report      report.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Guest.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Billing.Router(routerGroup)
		r.DomainHandlers.Task.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
