package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"velvet/config"
	"velvet/infras/otel/mocks"
	"velvet/internal/domains/block/model"
	"velvet/internal/domains/block/model/dto"
	blockMocks "velvet/internal/domains/block/mocks"
	"velvet/internal/domains/block/service"
	cacheMocks "velvet/shared/cache/mocks"
	"velvet/shared/failure"
)

func newBlockService(ctrl *gomock.Controller) (service.Block, *blockMocks.MockBlock, *cacheMocks.MockRedisCache) {
	repo := blockMocks.NewMockBlock(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(repo, cfg, cache, mocks.NewOtel()), repo, cache
}

func TestBlockService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _ := newBlockService(ctrl)

	t.Run("success", func(t *testing.T) {
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Create(context.Background(), dto.CreateBlockRequest{
			TableID:   "table-1",
			StartDate: "2026-09-10",
			EndDate:   "2026-09-15",
			Reason:    "floor repair",
		})

		assert.NoError(t, err)
	})

	t.Run("an inverted range is rejected", func(t *testing.T) {
		err := svc.Create(context.Background(), dto.CreateBlockRequest{
			TableID:   "table-1",
			StartDate: "2026-09-15",
			EndDate:   "2026-09-10",
			Reason:    "floor repair",
		})

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("a single-day block is valid", func(t *testing.T) {
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Create(context.Background(), dto.CreateBlockRequest{
			TableID:   "table-1",
			StartDate: "2026-09-10",
			EndDate:   "2026-09-10",
			Reason:    "private event",
		})

		assert.NoError(t, err)
	})

	t.Run("insert fails", func(t *testing.T) {
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		err := svc.Create(context.Background(), dto.CreateBlockRequest{
			TableID:   "table-1",
			StartDate: "2026-09-10",
			EndDate:   "2026-09-15",
			Reason:    "floor repair",
		})

		assert.Error(t, err)
	})
}

func TestBlockService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _ := newBlockService(ctrl)

	t.Run("success", func(t *testing.T) {
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), "block-1"))
	})

	t.Run("unknown block", func(t *testing.T) {
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(context.Background(), "block-404")

		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestBlockService_IsBlocked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _ := newBlockService(ctrl)

	t.Run("covered date reports blocked", func(t *testing.T) {
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		blocked, err := svc.IsBlocked(context.Background(), "table-1", "2026-09-12")

		require.NoError(t, err)
		assert.True(t, blocked)
	})

	t.Run("uncovered date reports free", func(t *testing.T) {
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		blocked, err := svc.IsBlocked(context.Background(), "table-1", "2026-10-01")

		require.NoError(t, err)
		assert.False(t, blocked)
	})
}

func TestBlock_Covers(t *testing.T) {
	block := model.Block{StartDate: "2026-09-10", EndDate: "2026-09-15"}

	assert.True(t, block.Covers("2026-09-10"), "start boundary is inclusive")
	assert.True(t, block.Covers("2026-09-15"), "end boundary is inclusive")
	assert.True(t, block.Covers("2026-09-12"))
	assert.False(t, block.Covers("2026-09-09"))
	assert.False(t, block.Covers("2026-09-16"))
}
