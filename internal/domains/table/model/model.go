package model

import (
	"slices"
	"velvet/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "venue_tables"
	EntityName = "table"

	FieldID           = "id"
	FieldTableNumber  = "table_number"
	FieldFloor        = "floor"
	FieldCapacityMin  = "capacity_min"
	FieldCapacityMax  = "capacity_max"
	FieldVIP          = "vip"
	FieldActive       = "active"
	FieldCombinesWith = "combines_with"
)

const (
	FloorMain    = "main"
	FloorTerrace = "terrace"
)

// Table is a physical table on the venue floor. Reservations hold a table for the whole
// operating session, so exclusivity is per (table, date), never per time window.
type Table struct {
	ID           string        `db:"id"`
	TableNumber  int           `db:"table_number"`
	Floor        string        `db:"floor"`
	CapacityMin  int           `db:"capacity_min"`
	CapacityMax  int           `db:"capacity_max"`
	VIP          bool          `db:"vip"`
	Active       bool          `db:"active"`
	CombinesWith pq.Int64Array `db:"combines_with"`
	model.Metadata
}

// Fits reports whether partySize lies within the table's capacity range.
func (t *Table) Fits(partySize int) bool {
	return partySize >= t.CapacityMin && partySize <= t.CapacityMax
}

// CombinableWith reports whether both tables designate each other as joinable.
func (t *Table) CombinableWith(other Table) bool {
	return slices.Contains(t.CombinesWith, int64(other.TableNumber)) &&
		slices.Contains(other.CombinesWith, int64(t.TableNumber))
}

// Features describes the table for availability answers.
func (t *Table) Features() []string {
	features := []string{"floor:" + t.Floor}
	if t.VIP {
		features = append(features, "vip")
	}

	return features
}
