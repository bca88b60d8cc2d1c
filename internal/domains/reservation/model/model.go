package model

import (
	"database/sql"
	"velvet/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID               = "id"
	FieldReference        = "reference"
	FieldCustomerID       = "customer_id"
	FieldTableID          = "table_id"
	FieldCompanionTableID = "companion_table_id"
	FieldReservationDate  = "reservation_date"
	FieldArrivalSlot      = "arrival_slot"
	FieldPartySize        = "party_size"
	FieldStatus           = "status"
	FieldSpecialRequests  = "special_requests"
	FieldInternalNotes    = "internal_notes"
	FieldDepositAmount    = "deposit_amount"
	FieldDepositPaid      = "deposit_paid"
	FieldDepositRefunded  = "deposit_refunded"
	FieldPaymentRef       = "payment_ref"
	FieldRefundRef        = "refund_ref"
	FieldRefundAmount     = "refund_amount"
	FieldRefundDate       = "refund_date"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
	StatusNoShow    = "no_show"
)

// ActiveStatuses are the statuses that hold a table. Terminal reservations
// release their tables back to the pool.
var ActiveStatuses = []string{StatusPending, StatusConfirmed}

var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted, StatusNoShow},
}

// CanTransition reports whether a reservation may move from one status to another.
// Terminal statuses have no outgoing transitions.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}

	return false
}

// IsTerminal reports whether the status ends the reservation's lifecycle.
func IsTerminal(status string) bool {
	return len(transitions[status]) == 0
}

// Reservation holds one table (optionally joined with a companion table for
// larger parties) for the whole operating session of a single date. The date
// is the session's opening date even when the arrival slot falls past midnight.
type Reservation struct {
	ID               string         `db:"id"`
	Reference        string         `db:"reference"`
	CustomerID       string         `db:"customer_id"`
	TableID          string         `db:"table_id"`
	CompanionTableID sql.NullString `db:"companion_table_id"`
	ReservationDate  string         `db:"reservation_date"`
	ArrivalSlot      string         `db:"arrival_slot"`
	PartySize        int            `db:"party_size"`
	Status           string         `db:"status"`
	SpecialRequests  string         `db:"special_requests"`
	InternalNotes    string         `db:"internal_notes"`
	DepositAmount    int64          `db:"deposit_amount"`
	DepositPaid      bool           `db:"deposit_paid"`
	DepositRefunded  bool           `db:"deposit_refunded"`
	PaymentRef       sql.NullString `db:"payment_ref"`
	RefundRef        sql.NullString `db:"refund_ref"`
	RefundAmount     sql.NullInt64  `db:"refund_amount"`
	RefundDate       sql.NullTime   `db:"refund_date"`
	model.Metadata
}

// IsActive reports whether the reservation still holds its table(s).
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsCombined reports whether the reservation spans a joined pair of tables.
func (r *Reservation) IsCombined() bool {
	return r.CompanionTableID.Valid && r.CompanionTableID.String != ""
}

// TableIDs returns every table the reservation occupies.
func (r *Reservation) TableIDs() []string {
	ids := []string{r.TableID}
	if r.IsCombined() {
		ids = append(ids, r.CompanionTableID.String)
	}

	return ids
}

// Refundable reports whether the deposit can still be returned. The refunded
// flag only ever moves false to true, which is what makes retried refund calls
// safe.
func (r *Reservation) Refundable() bool {
	return r.DepositPaid && !r.DepositRefunded && r.PaymentRef.Valid && r.Status != StatusCompleted
}
