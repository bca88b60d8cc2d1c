package router

import (
	"velvet/internal/handlers/availability"
	"velvet/internal/handlers/block"
	"velvet/internal/handlers/customer"
	"velvet/internal/handlers/health"
	"velvet/internal/handlers/reservation"
	"velvet/internal/handlers/schedule"
	"velvet/internal/handlers/table"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Health       health.Handler
	Schedule     schedule.Handler
	Availability availability.Handler
	Table        table.Handler
	Block        block.Handler
	Customer     customer.Handler
	Reservation  reservation.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Schedule.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Table.Router(routerGroup)
		r.DomainHandlers.Block.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
