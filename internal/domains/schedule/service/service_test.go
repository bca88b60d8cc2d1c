package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velvet/infras/otel/mocks"
	"velvet/internal/domains/schedule/model"
	"velvet/internal/domains/schedule/service"
)

func newSchedule(t *testing.T, overrides ...model.Override) service.Schedule {
	t.Helper()

	calendar := model.Calendar{
		Default: model.Window{
			Open:        "23:00",
			Close:       "06:00",
			LastArrival: "02:00",
		},
		SlotIntervalMinutes: 30,
		Overrides:           map[string]model.Override{},
	}

	for _, override := range overrides {
		calendar.Overrides[override.Date] = override
	}

	return service.FromCalendar(calendar, mocks.NewOtel())
}

func TestScheduleService_ResolveWindow(t *testing.T) {
	svc := newSchedule(t, model.Override{
		Date:        "2026-12-31",
		Name:        "New Year's Eve",
		Open:        "21:00",
		Close:       "07:00",
		LastArrival: "03:00",
	})

	ctx := context.Background()

	t.Run("regular day falls back to the default window", func(t *testing.T) {
		window, err := svc.ResolveWindow(ctx, "2026-06-15")
		require.NoError(t, err)

		assert.Equal(t, "23:00", window.Open)
		assert.Equal(t, "02:00", window.LastArrival)
		assert.False(t, window.Special)
		assert.Empty(t, window.Label)
	})

	t.Run("override date resolves to special hours", func(t *testing.T) {
		window, err := svc.ResolveWindow(ctx, "2026-12-31")
		require.NoError(t, err)

		assert.Equal(t, "21:00", window.Open)
		assert.Equal(t, "03:00", window.LastArrival)
		assert.True(t, window.Special)
		assert.Equal(t, "New Year's Eve", window.Label)
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		_, err := svc.ResolveWindow(ctx, "31-12-2026")
		assert.Error(t, err)
	})
}

func TestScheduleService_GenerateSlots(t *testing.T) {
	svc := newSchedule(t, model.Override{
		Date:        "2026-12-31",
		Name:        "New Year's Eve",
		Open:        "21:00",
		Close:       "07:00",
		LastArrival: "03:00",
	})

	ctx := context.Background()

	t.Run("midnight-crossing default window", func(t *testing.T) {
		res, err := svc.GenerateSlots(ctx, "2026-06-15")
		require.NoError(t, err)

		assert.Equal(t, []string{"23:00", "23:30", "00:00", "00:30", "01:00", "01:30", "02:00"}, res.Slots)
	})

	t.Run("special-event window includes both boundaries", func(t *testing.T) {
		res, err := svc.GenerateSlots(ctx, "2026-12-31")
		require.NoError(t, err)

		assert.Contains(t, res.Slots, "21:00")
		assert.Contains(t, res.Slots, "03:00")
		assert.NotContains(t, res.Slots, "20:30")
		assert.NotContains(t, res.Slots, "03:30")
	})

	t.Run("same-day window does not wrap", func(t *testing.T) {
		daytime := service.FromCalendar(model.Calendar{
			Default: model.Window{
				Open:        "11:00",
				Close:       "15:00",
				LastArrival: "14:00",
			},
			SlotIntervalMinutes: 30,
		}, mocks.NewOtel())

		res, err := daytime.GenerateSlots(ctx, "2026-06-15")
		require.NoError(t, err)

		assert.Equal(t, "11:00", res.Slots[0])
		assert.Equal(t, "14:00", res.Slots[len(res.Slots)-1])
		assert.Len(t, res.Slots, 7)
	})
}

func TestScheduleService_IsValidSlot(t *testing.T) {
	svc := newSchedule(t)
	ctx := context.Background()

	t.Run("every generated slot round-trips", func(t *testing.T) {
		res, err := svc.GenerateSlots(ctx, "2026-06-15")
		require.NoError(t, err)

		for _, slot := range res.Slots {
			valid, err := svc.IsValidSlot(ctx, "2026-06-15", slot)
			require.NoError(t, err)
			assert.True(t, valid, "slot %s should be valid", slot)
		}
	})

	tests := []struct {
		name  string
		slot  string
		valid bool
	}{
		{name: "before opening", slot: "22:00", valid: false},
		{name: "after last arrival", slot: "03:00", valid: false},
		{name: "off the half-hour grid", slot: "23:15", valid: false},
		{name: "opening slot", slot: "23:00", valid: true},
		{name: "last arrival slot", slot: "02:00", valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, err := svc.IsValidSlot(ctx, "2026-06-15", tt.slot)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, valid)
		})
	}
}
