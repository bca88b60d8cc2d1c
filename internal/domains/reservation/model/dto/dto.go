package dto

import (
	"strings"
	"time"

	customerDto "velvet/internal/domains/customer/model/dto"
	"velvet/internal/domains/reservation/model"
	"velvet/shared"
	gDto "velvet/shared/dto"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	TableID         string                      `json:"table_id"         validate:"required,uuid"`
	Date            string                      `json:"date"             validate:"required,dateonly"`
	TimeSlot        string                      `json:"time_slot"        validate:"required,timeslot"`
	PartySize       int                         `json:"party_size"       validate:"required,gte=1"`
	Customer        customerDto.CustomerPayload `json:"customer"         validate:"required"`
	SpecialRequests string                      `json:"special_requests" validate:"omitempty,max=500"`
	InternalNotes   string                      `json:"internal_notes"   validate:"omitempty,max=500"`
	DepositAmount   int64                       `json:"deposit_amount"   validate:"omitempty,gte=0"`
	DepositPaid     bool                        `json:"deposit_paid"`
	PaymentRef      string                      `json:"payment_ref"      validate:"required_if=DepositPaid true"`
}

// ModifyReservationRequest carries a partial change set. Zero values mean
// "leave unchanged"; party size uses a pointer so it can be told apart from
// an absent field.
type ModifyReservationRequest struct {
	TableID   string `json:"table_id"   validate:"omitempty,uuid"`
	Date      string `json:"date"       validate:"omitempty,dateonly"`
	TimeSlot  string `json:"time_slot"  validate:"omitempty,timeslot"`
	PartySize *int   `json:"party_size" validate:"omitempty,gte=1"`
	Reason    string `json:"reason"     validate:"required,max=255"`
	Notify    bool   `json:"notify"`
}

func (m *ModifyReservationRequest) IsEmpty() bool {
	return m.TableID == "" && m.Date == "" && m.TimeSlot == "" && m.PartySize == nil
}

type CancelReservationRequest struct {
	Reason string `json:"reason" validate:"required,max=255"`
}

type RefundReservationRequest struct {
	Amount int64  `json:"amount" validate:"omitempty,gte=1"`
	Reason string `json:"reason" validate:"required,max=255"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled completed no_show"`
	Reason string `json:"reason" validate:"required,max=255"`
}

// NewReference derives a short human-facing booking code.
func NewReference() string {
	return "RSV-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

type ReservationResponse struct {
	ID               string     `json:"id"`
	Reference        string     `json:"reference"`
	CustomerID       string     `json:"customer_id"`
	TableID          string     `json:"table_id"`
	CompanionTableID string     `json:"companion_table_id,omitempty"`
	Date             string     `json:"date"`
	TimeSlot         string     `json:"time_slot"`
	PartySize        int        `json:"party_size"`
	Status           string     `json:"status"`
	SpecialRequests  string     `json:"special_requests,omitempty"`
	DepositAmount    int64      `json:"deposit_amount"`
	DepositPaid      bool       `json:"deposit_paid"`
	DepositRefunded  bool       `json:"deposit_refunded"`
	RefundAmount     int64      `json:"refund_amount,omitempty"`
	RefundDate       *time.Time `json:"refund_date,omitempty"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(mod model.Reservation) {
	r.ID = mod.ID
	r.Reference = mod.Reference
	r.CustomerID = mod.CustomerID
	r.TableID = mod.TableID
	r.Date = mod.ReservationDate
	r.TimeSlot = mod.ArrivalSlot
	r.PartySize = mod.PartySize
	r.Status = mod.Status
	r.SpecialRequests = mod.SpecialRequests
	r.DepositAmount = mod.DepositAmount
	r.DepositPaid = mod.DepositPaid
	r.DepositRefunded = mod.DepositRefunded

	if mod.CompanionTableID.Valid {
		r.CompanionTableID = mod.CompanionTableID.String
	}
	if mod.RefundAmount.Valid {
		r.RefundAmount = mod.RefundAmount.Int64
	}
	if mod.RefundDate.Valid {
		refundDate := mod.RefundDate.Time
		r.RefundDate = &refundDate
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

// RefundOutcome is what the caller sees after a successful refund.
type RefundOutcome struct {
	Reference  string    `json:"reference"`
	RefundRef  string    `json:"refund_ref"`
	Amount     int64     `json:"amount"`
	Status     string    `json:"status"`
	RefundDate time.Time `json:"refund_date"`
}

// ConflictDetails names the reservation already holding the table so callers
// can render a useful message instead of a bare conflict.
type ConflictDetails struct {
	Reference    string `json:"reference"`
	CustomerName string `json:"customer_name"`
	PartySize    int    `json:"party_size"`
}

type ModificationResponse struct {
	ID               string          `json:"id"`
	ReservationID    string          `json:"reservation_id"`
	Actor            string          `json:"actor"`
	Action           string          `json:"action"`
	PreviousValues   model.ChangeSet `json:"previous_values"`
	NewValues        model.ChangeSet `json:"new_values"`
	Reason           string          `json:"reason"`
	NotificationSent bool            `json:"notification_sent"`
	CreatedAt        time.Time       `json:"created_at"`
}

func (r *ModificationResponse) FromModel(mod model.Modification) {
	r.ID = mod.ID
	r.ReservationID = mod.ReservationID
	r.Actor = mod.Actor
	r.Action = mod.Action
	r.PreviousValues = mod.PreviousValues
	r.NewValues = mod.NewValues
	r.Reason = mod.Reason
	r.NotificationSent = mod.NotificationSent
	r.CreatedAt = mod.CreatedAt
}

type GetModificationsResponse struct {
	Modifications []ModificationResponse `json:"modifications"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetModificationsResponse) FromModels(models []model.Modification, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Modifications = make([]ModificationResponse, len(models))
	for i, mod := range models {
		r.Modifications[i].FromModel(mod)
	}
}

// ExportModificationsResponse reports where an audit export landed.
type ExportModificationsResponse struct {
	URL     string `json:"url"`
	Records int    `json:"records"`
}

// ReservationEvent is the payload published to the notification topic.
type ReservationEvent struct {
	Type       string              `json:"type"`
	OccurredAt time.Time           `json:"occurred_at"`
	Payload    ReservationResponse `json:"payload"`
}

const (
	EventReservationCreated   = "reservation.created"
	EventReservationModified  = "reservation.modified"
	EventReservationCancelled = "reservation.cancelled"
	EventReservationRefunded  = "reservation.refunded"
)
