package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"velvet/infras/otel"
	"velvet/infras/postgres"
	"velvet/internal/domains/block/model"
	gDto "velvet/shared/dto"
	gRepo "velvet/shared/repository"
)

type Block interface {
	Insert(ctx context.Context, model model.Block) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Block, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Block, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Block]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Block {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Block](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// FilterCoveringDate matches every block whose inclusive range contains date.
func FilterCoveringDate(date string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Table:    model.TableName,
				Field:    model.FieldStartDate,
				Operator: gDto.FilterOperatorLessEq,
				Value:    date,
			},
			gDto.Filter{
				Table:    model.TableName,
				Field:    model.FieldEndDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    date,
			},
		},
	}
}

// FilterCovering matches blocks whose inclusive range contains date for the given table.
func FilterCovering(tableID, date string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Table:    model.TableName,
				Field:    model.FieldTableID,
				Operator: gDto.FilterOperatorEq,
				Value:    tableID,
			},
			gDto.Filter{
				Table:    model.TableName,
				Field:    model.FieldStartDate,
				Operator: gDto.FilterOperatorLessEq,
				Value:    date,
			},
			gDto.Filter{
				Table:    model.TableName,
				Field:    model.FieldEndDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    date,
			},
		},
	}
}
