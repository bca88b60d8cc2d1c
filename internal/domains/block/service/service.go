package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Block=MockBlockService

import (
	"context"
	"fmt"

	"velvet/config"
	"velvet/infras/otel"
	"velvet/internal/domains/block/model"
	"velvet/internal/domains/block/model/dto"
	"velvet/internal/domains/block/repository"
	"velvet/shared"
	"velvet/shared/cache"
	"velvet/shared/constant"
	gDto "velvet/shared/dto"
	"velvet/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllBlock = "block:gets"
	cacheCountBlock  = "block:count"
)

type Block interface {
	Create(ctx context.Context, req dto.CreateBlockRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBlocksResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, id string) error
	IsBlocked(ctx context.Context, tableID, date string) (bool, error)
}

type serviceImpl struct {
	repo  repository.Block
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Block, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Block {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBlockRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.EndDate < req.StartDate {
		return failure.BadRequestFromString("end_date must not precede start_date") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyStaffID).(string)

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBlock)
		shared.InvalidateCaches(c, s.cache, cacheCountBlock)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBlocksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBlock, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for blocks")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count blocks")

		return res, fmt.Errorf("failed to count blocks: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get blocks")

		return res, fmt.Errorf("failed to get blocks: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save blocks to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count blocks")

		return res, fmt.Errorf("failed to count blocks: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if block exists")

		return fmt.Errorf("failed to check if block exists: %w", err)
	}

	if !exist {
		log.Error().Msg("block not found")

		return failure.NotFound("block not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete block")

		return fmt.Errorf("failed to delete block: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBlock)
		shared.InvalidateCaches(c, s.cache, cacheCountBlock)
	}()

	return nil
}

// IsBlocked reports whether any block covers the table on the given date.
// Boundary dates count as blocked.
func (s *serviceImpl) IsBlocked(ctx context.Context, tableID, date string) (res bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsBlocked")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.repo.Exist(ctx, repository.FilterCovering(tableID, date))
	if err != nil {
		log.Error().Err(err).Msg("failed to check table block")

		return false, fmt.Errorf("failed to check table block: %w", err)
	}

	return res, nil
}
