package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

const (
	ModificationTableName  = "reservation_modifications"
	ModificationEntityName = "reservation_modification"

	FieldModificationID               = "id"
	FieldModificationReservationID    = "reservation_id"
	FieldModificationActor            = "actor"
	FieldModificationAction           = "action"
	FieldModificationPreviousValues   = "previous_values"
	FieldModificationNewValues        = "new_values"
	FieldModificationReason           = "reason"
	FieldModificationNotificationSent = "notification_sent"
	FieldModificationCreatedAt        = "created_at"
)

const (
	ActionCreate = "create"
	ActionModify = "modify"
	ActionCancel = "cancel"
	ActionRefund = "refund"
	ActionStatus = "status"
)

// ChangeSet is a jsonb column holding the pre- or post-image of changed fields.
type ChangeSet map[string]any

func (c ChangeSet) Value() (driver.Value, error) {
	if c == nil {
		c = ChangeSet{}
	}

	encoded, err := json.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal change set")
	}

	return encoded, nil
}

func (c *ChangeSet) Scan(src any) error {
	if src == nil {
		*c = ChangeSet{}

		return nil
	}

	raw, ok := src.([]byte)
	if !ok {
		return errors.New("change set column is not a byte slice")
	}

	return errors.Wrap(json.Unmarshal(raw, c), "failed to unmarshal change set")
}

// Modification is one append-only audit record. Rows are never updated after
// insert except for the notification flag, which flips once the outbound event
// is acknowledged.
type Modification struct {
	ID               string    `db:"id"`
	ReservationID    string    `db:"reservation_id"`
	Actor            string    `db:"actor"`
	Action           string    `db:"action"`
	PreviousValues   ChangeSet `db:"previous_values"`
	NewValues        ChangeSet `db:"new_values"`
	Reason           string    `db:"reason"`
	NotificationSent bool      `db:"notification_sent"`
	CreatedAt        time.Time `db:"created_at"`
}
