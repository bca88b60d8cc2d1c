// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"github.com/google/wire"
	"velvet/config"
	"velvet/infras/jwt"
	"velvet/infras/kafka"
	"velvet/infras/otel"
	"velvet/infras/postgres"
	"velvet/infras/redis"
	"velvet/infras/s3"
	service2 "velvet/internal/domains/availability/service"
	repository3 "velvet/internal/domains/block/repository"
	service4 "velvet/internal/domains/block/service"
	repository4 "velvet/internal/domains/customer/repository"
	service5 "velvet/internal/domains/customer/service"
	repository2 "velvet/internal/domains/reservation/repository"
	service6 "velvet/internal/domains/reservation/service"
	"velvet/internal/domains/schedule/service"
	"velvet/internal/domains/table/repository"
	service3 "velvet/internal/domains/table/service"
	"velvet/internal/external/notifier"
	"velvet/internal/external/payment"
	"velvet/internal/handlers/availability"
	"velvet/internal/handlers/block"
	"velvet/internal/handlers/customer"
	"velvet/internal/handlers/health"
	"velvet/internal/handlers/reservation"
	"velvet/internal/handlers/schedule"
	"velvet/internal/handlers/table"
	"velvet/permissions"
	"velvet/shared/cache"
	"velvet/shared/keylock"
	"velvet/transport/http"
	"velvet/transport/http/middleware"
	"velvet/transport/http/router"
)

// Injectors from wire.go:

func InitializeService() *http.HTTP {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	client := redis.New(configConfig)
	handler := health.New(connection, client)
	otelOtel := otel.New(configConfig)
	serviceSchedule := service.New(configConfig, otelOtel)
	scheduleHandler := schedule.New(serviceSchedule, otelOtel)
	repositoryTable := repository.New(connection, otelOtel)
	repositoryReservation := repository2.New(connection, otelOtel)
	repositoryBlock := repository3.New(connection, otelOtel)
	serviceAvailability := service2.New(repositoryTable, repositoryReservation, repositoryBlock, configConfig, otelOtel)
	availabilityHandler := availability.New(serviceAvailability, otelOtel)
	redisCache := cache.NewRedisCache(client, otelOtel)
	serviceTable := service3.New(repositoryTable, configConfig, redisCache, otelOtel)
	tableHandler := table.New(serviceTable, otelOtel)
	serviceBlock := service4.New(repositoryBlock, configConfig, redisCache, otelOtel)
	blockHandler := block.New(serviceBlock, otelOtel)
	repositoryCustomer := repository4.New(connection, otelOtel)
	serviceCustomer := service5.New(repositoryCustomer, configConfig, otelOtel)
	customerHandler := customer.New(serviceCustomer, otelOtel)
	modification := repository2.NewModification(connection, otelOtel)
	paymentPayment := payment.New(configConfig, otelOtel)
	kafkaClient := kafka.New(configConfig)
	notifierNotifier := notifier.New(configConfig, kafkaClient, otelOtel)
	keyLock := keylock.New()
	s3S3 := s3.New(configConfig, otelOtel)
	serviceReservation := service6.New(repositoryReservation, modification, repositoryTable, serviceCustomer, serviceSchedule, serviceAvailability, paymentPayment, notifierNotifier, keyLock, configConfig, redisCache, otelOtel, s3S3)
	reservationHandler := reservation.New(serviceReservation, otelOtel)
	domainHandlers := router.DomainHandlers{
		Health:       handler,
		Schedule:     scheduleHandler,
		Availability: availabilityHandler,
		Table:        tableHandler,
		Block:        blockHandler,
		Customer:     customerHandler,
		Reservation:  reservationHandler,
	}
	routerRouter := router.New(domainHandlers)
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	jwtJWT := jwt.New(configConfig)
	permissionData := permissions.Get()
	authRole := middleware.NewAuthRoleMiddleware(jwtJWT, otelOtel, permissionData, configConfig)
	httpHTTP := http.New(configConfig, routerRouter, appMiddleware, authRole)
	return httpHTTP
}

// wire.go:

var configurations = wire.NewSet(config.Get, permissions.Get)

var infrastructures = wire.NewSet(postgres.New, otel.New, redis.New, jwt.New, kafka.New, s3.New)

var middlewares = wire.NewSet(middleware.NewAppMiddleware, middleware.NewAuthRoleMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache, keylock.New)

var scheduleDomain = wire.NewSet(service.New)

var tableDomain = wire.NewSet(repository.New, service3.New)

var blockDomain = wire.NewSet(repository3.New, service4.New)

var customerDomain = wire.NewSet(repository4.New, service5.New)

var availabilityDomain = wire.NewSet(service2.New)

var reservationDomain = wire.NewSet(repository2.New, repository2.NewModification, service6.New)

var externals = wire.NewSet(payment.New, notifier.New)

var domains = wire.NewSet(
	scheduleDomain,
	tableDomain,
	blockDomain,
	customerDomain,
	availabilityDomain,
	reservationDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), health.New, schedule.New, availability.New, table.New, block.New, customer.New, reservation.New, router.New)
