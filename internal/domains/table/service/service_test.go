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
	"velvet/internal/domains/table/model"
	"velvet/internal/domains/table/model/dto"
	tableMocks "velvet/internal/domains/table/mocks"
	"velvet/internal/domains/table/service"
	cacheMocks "velvet/shared/cache/mocks"
	"velvet/shared/failure"
)

func newTableService(ctrl *gomock.Controller) (service.Table, *tableMocks.MockTable, *cacheMocks.MockRedisCache) {
	repo := tableMocks.NewMockTable(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(repo, cfg, cache, mocks.NewOtel()), repo, cache
}

func validCreateRequest() dto.CreateTableRequest {
	return dto.CreateTableRequest{
		TableNumber:  7,
		Floor:        "main",
		CapacityMin:  2,
		CapacityMax:  6,
		CombinesWith: []int{8},
	}
}

func TestTableService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _ := newTableService(ctrl)

	t.Run("success", func(t *testing.T) {
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, table model.Table) error {
				assert.Equal(t, 7, table.TableNumber)
				assert.True(t, table.Active, "new tables join the floor active")
				require.Len(t, table.CombinesWith, 1)
				assert.Equal(t, int64(8), table.CombinesWith[0])

				return nil
			})

		assert.NoError(t, svc.Create(context.Background(), validCreateRequest()))
	})

	t.Run("a duplicate table number conflicts", func(t *testing.T) {
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := svc.Create(context.Background(), validCreateRequest())

		require.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("an inverted capacity range is rejected", func(t *testing.T) {
		req := validCreateRequest()
		req.CapacityMin = 6
		req.CapacityMax = 2

		err := svc.Create(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("uniqueness check fails", func(t *testing.T) {
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("connection refused"))

		assert.Error(t, svc.Create(context.Background(), validCreateRequest()))
	})
}

func TestTableService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, cache := newTableService(ctrl)

	t.Run("success", func(t *testing.T) {
		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.Table{ID: "table-1", TableNumber: 1, Floor: "main", CapacityMin: 2, CapacityMax: 4, Active: true}, nil)
		cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.Get(context.Background(), "table-1")

		require.NoError(t, err)
		assert.Equal(t, 1, res.TableNumber)
	})

	t.Run("unknown table", func(t *testing.T) {
		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Table{}, nil)

		_, err := svc.Get(context.Background(), "table-404")

		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestTableService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _ := newTableService(ctrl)

	current := model.Table{ID: "table-1", TableNumber: 1, Floor: "main", CapacityMin: 2, CapacityMax: 4, Active: true}

	t.Run("success", func(t *testing.T) {
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Update(context.Background(), dto.UpdateTableRequest{CapacityMax: 6}, "table-1")

		assert.NoError(t, err)
	})

	t.Run("a partial update may not invert the merged range", func(t *testing.T) {
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

		err := svc.Update(context.Background(), dto.UpdateTableRequest{CapacityMin: 5}, "table-1")

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("unknown table", func(t *testing.T) {
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Table{}, nil)

		err := svc.Update(context.Background(), dto.UpdateTableRequest{Floor: "terrace"}, "table-404")

		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestTableService_Deactivate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _ := newTableService(ctrl)

	t.Run("success", func(t *testing.T) {
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, false, fields[model.FieldActive])

				return nil
			})

		assert.NoError(t, svc.Deactivate(context.Background(), "table-1"))
	})

	t.Run("unknown table", func(t *testing.T) {
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Deactivate(context.Background(), "table-404")

		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestTable_Fits(t *testing.T) {
	table := model.Table{CapacityMin: 2, CapacityMax: 4}

	assert.False(t, table.Fits(1))
	assert.True(t, table.Fits(2))
	assert.True(t, table.Fits(4))
	assert.False(t, table.Fits(5))
}

func TestTable_CombinableWith(t *testing.T) {
	one := model.Table{TableNumber: 1, CombinesWith: []int64{2}}
	two := model.Table{TableNumber: 2, CombinesWith: []int64{1}}
	three := model.Table{TableNumber: 3, CombinesWith: []int64{1}}

	assert.True(t, one.CombinableWith(two), "both sides list each other")
	assert.False(t, one.CombinableWith(three), "one-sided listing is not enough")
	assert.False(t, three.CombinableWith(one))
}
