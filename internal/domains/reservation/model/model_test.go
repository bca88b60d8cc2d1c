package model_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velvet/internal/domains/reservation/model"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"pending can be confirmed", model.StatusPending, model.StatusConfirmed, true},
		{"pending can be cancelled", model.StatusPending, model.StatusCancelled, true},
		{"pending cannot complete without confirmation", model.StatusPending, model.StatusCompleted, false},
		{"pending cannot be marked no-show", model.StatusPending, model.StatusNoShow, false},
		{"confirmed can be cancelled", model.StatusConfirmed, model.StatusCancelled, true},
		{"confirmed can complete", model.StatusConfirmed, model.StatusCompleted, true},
		{"confirmed can be marked no-show", model.StatusConfirmed, model.StatusNoShow, true},
		{"confirmed cannot revert to pending", model.StatusConfirmed, model.StatusPending, false},
		{"cancelled is terminal", model.StatusCancelled, model.StatusConfirmed, false},
		{"cancelled cannot revert to pending", model.StatusCancelled, model.StatusPending, false},
		{"completed is terminal", model.StatusCompleted, model.StatusCancelled, false},
		{"no-show is terminal", model.StatusNoShow, model.StatusConfirmed, false},
		{"no self transition", model.StatusConfirmed, model.StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, model.CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, model.IsTerminal(model.StatusPending))
	assert.False(t, model.IsTerminal(model.StatusConfirmed))
	assert.True(t, model.IsTerminal(model.StatusCancelled))
	assert.True(t, model.IsTerminal(model.StatusCompleted))
	assert.True(t, model.IsTerminal(model.StatusNoShow))
}

func TestReservation_TableIDs(t *testing.T) {
	t.Run("single table", func(t *testing.T) {
		reservation := model.Reservation{TableID: "table-1"}

		assert.Equal(t, []string{"table-1"}, reservation.TableIDs())
		assert.False(t, reservation.IsCombined())
	})

	t.Run("joined pair occupies both tables", func(t *testing.T) {
		reservation := model.Reservation{
			TableID:          "table-1",
			CompanionTableID: sql.NullString{String: "table-2", Valid: true},
		}

		assert.Equal(t, []string{"table-1", "table-2"}, reservation.TableIDs())
		assert.True(t, reservation.IsCombined())
	})
}

func TestReservation_Refundable(t *testing.T) {
	base := func() model.Reservation {
		return model.Reservation{
			Status:      model.StatusCancelled,
			DepositPaid: true,
			PaymentRef:  sql.NullString{String: "pay_123", Valid: true},
		}
	}

	t.Run("paid deposit on a non-completed reservation is refundable", func(t *testing.T) {
		reservation := base()
		assert.True(t, reservation.Refundable())
	})

	t.Run("an already refunded deposit stays refunded", func(t *testing.T) {
		reservation := base()
		reservation.DepositRefunded = true
		assert.False(t, reservation.Refundable())
	})

	t.Run("no deposit means nothing to refund", func(t *testing.T) {
		reservation := base()
		reservation.DepositPaid = false
		assert.False(t, reservation.Refundable())
	})

	t.Run("no payment reference means no provider call", func(t *testing.T) {
		reservation := base()
		reservation.PaymentRef = sql.NullString{}
		assert.False(t, reservation.Refundable())
	})

	t.Run("a completed visit keeps its deposit", func(t *testing.T) {
		reservation := base()
		reservation.Status = model.StatusCompleted
		assert.False(t, reservation.Refundable())
	})
}

func TestChangeSet_Roundtrip(t *testing.T) {
	original := model.ChangeSet{
		"table_id":   "table-2",
		"party_size": float64(6),
	}

	value, err := original.Value()
	require.NoError(t, err)

	var restored model.ChangeSet
	require.NoError(t, restored.Scan(value))

	assert.Equal(t, original, restored)
}

func TestChangeSet_ScanNil(t *testing.T) {
	var changes model.ChangeSet

	require.NoError(t, changes.Scan(nil))
	assert.NotNil(t, changes)
	assert.Empty(t, changes)
}
