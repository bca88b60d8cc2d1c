//go:build wireinject
// +build wireinject

package di

import (
	"velvet/config"
	"velvet/infras/jwt"
	"velvet/infras/kafka"
	"velvet/infras/otel"
	"velvet/infras/postgres"
	"velvet/infras/redis"
	"velvet/infras/s3"
	"velvet/permissions"
	"velvet/shared/cache"
	"velvet/shared/keylock"
	"velvet/transport/http"
	"velvet/transport/http/middleware"
	"velvet/transport/http/router"

	"github.com/google/wire"

	availabilityService "velvet/internal/domains/availability/service"
	blockRepository "velvet/internal/domains/block/repository"
	blockService "velvet/internal/domains/block/service"
	customerRepository "velvet/internal/domains/customer/repository"
	customerService "velvet/internal/domains/customer/service"
	reservationRepository "velvet/internal/domains/reservation/repository"
	reservationService "velvet/internal/domains/reservation/service"
	scheduleService "velvet/internal/domains/schedule/service"
	tableRepository "velvet/internal/domains/table/repository"
	tableService "velvet/internal/domains/table/service"
	"velvet/internal/external/notifier"
	"velvet/internal/external/payment"

	availabilityHandler "velvet/internal/handlers/availability"
	blockHandler "velvet/internal/handlers/block"
	customerHandler "velvet/internal/handlers/customer"
	healthHandler "velvet/internal/handlers/health"
	reservationHandler "velvet/internal/handlers/reservation"
	scheduleHandler "velvet/internal/handlers/schedule"
	tableHandler "velvet/internal/handlers/table"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	keylock.New,
)

var scheduleDomain = wire.NewSet(
	scheduleService.New,
)

var tableDomain = wire.NewSet(
	tableRepository.New,
	tableService.New,
)

var blockDomain = wire.NewSet(
	blockRepository.New,
	blockService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
)

var availabilityDomain = wire.NewSet(
	availabilityService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationRepository.NewModification,
	reservationService.New,
)

var externals = wire.NewSet(
	payment.New,
	notifier.New,
)

var domains = wire.NewSet(
	scheduleDomain,
	tableDomain,
	blockDomain,
	customerDomain,
	availabilityDomain,
	reservationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	scheduleHandler.New,
	availabilityHandler.New,
	tableHandler.New,
	blockHandler.New,
	customerHandler.New,
	reservationHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		externals,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
