package repository

//go:generate go run go.uber.org/mock/mockgen -source=./modification.go -destination=../mocks/modification_mock.go -package=mocks

import (
	"context"
	"velvet/infras/otel"
	"velvet/infras/postgres"
	"velvet/internal/domains/reservation/model"
	gDto "velvet/shared/dto"
	gRepo "velvet/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Modification interface {
	Insert(ctx context.Context, model model.Modification) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Modification) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Modification, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type modificationImpl struct {
	gRepo.Repository[model.Modification]
	db   *postgres.Connection
	otel otel.Otel
}

func NewModification(db *postgres.Connection, otel otel.Otel) Modification {
	return &modificationImpl{
		Repository: gRepo.NewRepository[model.Modification](model.ModificationEntityName, model.ModificationTableName, model.FieldModificationID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// FilterByReservation scopes audit records to one reservation.
func FilterByReservation(reservationID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Table:    model.ModificationTableName,
				Field:    model.FieldModificationReservationID,
				Operator: gDto.FilterOperatorEq,
				Value:    reservationID,
			},
		},
	}
}

// FilterByCreatedRange matches audit records created within [from, to] for exports.
func FilterByCreatedRange(from, to string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  "created_from",
				Table:    model.ModificationTableName,
				Field:    model.FieldModificationCreatedAt,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    from,
			},
			gDto.Filter{
				ArgName:  "created_to",
				Table:    model.ModificationTableName,
				Field:    model.FieldModificationCreatedAt,
				Operator: gDto.FilterOperatorLessEq,
				Value:    to,
			},
		},
	}
}
