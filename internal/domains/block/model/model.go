package model

import (
	"velvet/shared/model"
)

const (
	TableName  = "table_blocks"
	EntityName = "block"

	FieldID        = "id"
	FieldTableID   = "table_id"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldReason    = "reason"
)

// Block removes a table from the bookable pool for an inclusive date range,
// typically for maintenance or a private event. Existing reservations are
// untouched; staff resolve those by hand.
type Block struct {
	ID        string `db:"id"`
	TableID   string `db:"table_id"`
	StartDate string `db:"start_date"`
	EndDate   string `db:"end_date"`
	Reason    string `db:"reason"`
	model.Metadata
}

// Covers reports whether date falls inside the block's inclusive range.
// Dates are ISO strings so lexicographic comparison is chronological.
func (b *Block) Covers(date string) bool {
	return date >= b.StartDate && date <= b.EndDate
}
