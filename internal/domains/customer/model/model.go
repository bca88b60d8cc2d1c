package model

import (
	"velvet/shared/model"
)

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID    = "id"
	FieldName  = "name"
	FieldEmail = "email"
	FieldPhone = "phone"
	FieldNotes = "notes"
)

// Customer is a guest on the books. Records are deduplicated by email so a
// returning guest keeps a single history across reservations.
type Customer struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
	Phone string `db:"phone"`
	Notes string `db:"notes"`
	model.Metadata
}
