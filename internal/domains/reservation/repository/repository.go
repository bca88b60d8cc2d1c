package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"velvet/infras/otel"
	"velvet/infras/postgres"
	"velvet/internal/domains/reservation/model"
	gDto "velvet/shared/dto"
	gRepo "velvet/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// FilterActiveOnTable matches the reservation holding tableID on date, whether the
// table is the primary or the companion of a combined booking. excludeID lets a
// modification ignore its own row.
func FilterActiveOnTable(tableID, date, excludeID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Table:    model.TableName,
			Field:    model.FieldReservationDate,
			Operator: gDto.FilterOperatorEq,
			Value:    date,
		},
		gDto.Filter{
			Table:    model.TableName,
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorIn,
			Value:    model.ActiveStatuses,
		},
		gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{
					ArgName:  "primary_table_id",
					Table:    model.TableName,
					Field:    model.FieldTableID,
					Operator: gDto.FilterOperatorEq,
					Value:    tableID,
				},
				gDto.Filter{
					ArgName:  "companion_table_id",
					Table:    model.TableName,
					Field:    model.FieldCompanionTableID,
					Operator: gDto.FilterOperatorEq,
					Value:    tableID,
				},
			},
		},
	}

	if excludeID != "" {
		filters = append(filters, gDto.Filter{
			Table:    model.TableName,
			Field:    model.FieldID,
			Operator: gDto.FilterOperatorNotEq,
			Value:    excludeID,
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

// FilterByReference matches a reservation by its human-facing booking code.
func FilterByReference(reference string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Table:    model.TableName,
				Field:    model.FieldReference,
				Operator: gDto.FilterOperatorEq,
				Value:    reference,
			},
		},
	}
}
