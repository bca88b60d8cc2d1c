package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Customer=MockCustomerService

import (
	"context"
	"fmt"

	"velvet/config"
	"velvet/infras/otel"
	"velvet/internal/domains/customer/model"
	"velvet/internal/domains/customer/model/dto"
	"velvet/internal/domains/customer/repository"
	"velvet/shared"
	"velvet/shared/constant"
	gDto "velvet/shared/dto"
	"velvet/shared/failure"
	"velvet/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Customer interface {
	FindOrCreate(ctx context.Context, payload dto.CustomerPayload) (model.Customer, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCustomersResponse, error)
	Get(ctx context.Context, id string) (dto.CustomerResponse, error)
}

type serviceImpl struct {
	repo repository.Customer
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Customer, cfg *config.Config, otel otel.Otel) Customer {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

// FindOrCreate resolves the guest record for a reservation. An existing record
// matched by email is refreshed with the latest name and phone; otherwise a new
// record is inserted.
func (s *serviceImpl) FindOrCreate(ctx context.Context, payload dto.CustomerPayload) (res model.Customer, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FindOrCreate")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyStaffID).(string)

	existing, err := s.repo.Get(ctx, repository.FilterByEmail(payload.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to look up customer by email")

		return res, fmt.Errorf("failed to look up customer by email: %w", err)
	}

	if existing.ID != constant.Empty {
		if existing.Name != payload.Name || existing.Phone != payload.Phone {
			fields := map[string]any{
				model.FieldName:          payload.Name,
				model.FieldPhone:         payload.Phone,
				constant.FieldModifiedBy: user,
				constant.FieldModifiedAt: timezone.Now(),
			}

			if err = s.repo.Update(ctx, fields, shared.FilterByID(existing.ID, model.FieldID, model.TableName)); err != nil {
				log.Error().Err(err).Msg("failed to refresh customer contact details")

				return res, fmt.Errorf("failed to refresh customer contact details: %w", err)
			}

			existing.Name = payload.Name
			existing.Phone = payload.Phone
		}

		return existing, nil
	}

	created := payload.ToModel(user)
	if err = s.repo.Insert(ctx, created); err != nil {
		return res, err
	}

	return created, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCustomersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count customers")

		return res, fmt.Errorf("failed to count customers: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get customers")

		return res, fmt.Errorf("failed to get customers: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(nil)

	customer, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return res, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == constant.Empty {
		return res, failure.NotFound("customer not found") // nolint:wrapcheck
	}

	res.FromModel(customer)

	return res, nil
}
