package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Schedule=MockScheduleService

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"velvet/config"
	"velvet/infras/otel"
	"velvet/internal/domains/schedule/model"
	"velvet/internal/domains/schedule/model/dto"
	"velvet/shared/constant"
	"velvet/shared/failure"

	"github.com/rs/zerolog/log"
)

// Schedule resolves operating windows and generates the discrete arrival slots for a
// date. IsValidSlot is the sole gate for accepting a client-submitted arrival time.
type Schedule interface {
	ResolveWindow(ctx context.Context, date string) (dto.WindowResponse, error)
	GenerateSlots(ctx context.Context, date string) (dto.SlotsResponse, error)
	IsValidSlot(ctx context.Context, date, slot string) (bool, error)
}

type serviceImpl struct {
	calendar model.Calendar
	otel     otel.Otel
}

// New builds the Schedule service from the venue configuration. Special-hours overrides
// come in as a JSON array so operations can adjust them without a deploy.
func New(cfg *config.Config, otl otel.Otel) Schedule {
	calendar := model.Calendar{
		Default: model.Window{
			Open:        cfg.Venue.Hours.Open,
			Close:       cfg.Venue.Hours.Close,
			LastArrival: cfg.Venue.Hours.LastArrival,
		},
		SlotIntervalMinutes: cfg.Venue.SlotIntervalMinutes,
		Overrides:           map[string]model.Override{},
	}

	if cfg.Venue.SpecialHours != "" {
		var overrides []model.Override

		if err := json.Unmarshal([]byte(cfg.Venue.SpecialHours), &overrides); err != nil {
			log.Error().Err(err).Msg("failed to parse special hours overrides, continuing with defaults only")
		} else {
			for _, override := range overrides {
				calendar.Overrides[override.Date] = override
			}
		}
	}

	return FromCalendar(calendar, otl)
}

// FromCalendar builds the Schedule service from an explicit calendar value. Tests use it
// to substitute alternate calendars without touching process-wide configuration.
func FromCalendar(calendar model.Calendar, otl otel.Otel) Schedule {
	if calendar.SlotIntervalMinutes <= 0 {
		calendar.SlotIntervalMinutes = 30
	}

	return &serviceImpl{
		calendar: calendar,
		otel:     otl,
	}
}

func (s *serviceImpl) ResolveWindow(ctx context.Context, date string) (res dto.WindowResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResolveWindow")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = time.Parse(constant.DateOnlyFormat, date); err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date)) // nolint:wrapcheck
	}

	window := s.calendar.Resolve(date)

	return dto.WindowResponse{
		Date:        date,
		Open:        window.Open,
		Close:       window.Close,
		LastArrival: window.LastArrival,
		Special:     window.Special,
		Label:       window.Label,
	}, nil
}

func (s *serviceImpl) GenerateSlots(ctx context.Context, date string) (res dto.SlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GenerateSlots")
	defer scope.End()
	defer scope.TraceIfError(err)

	window, err := s.ResolveWindow(ctx, date)
	if err != nil {
		return res, err
	}

	slots, err := slotsForWindow(window.Open, window.LastArrival, s.calendar.SlotIntervalMinutes)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("failed to generate slots from operating window")

		return res, fmt.Errorf("failed to generate slots: %w", err)
	}

	res.WindowResponse = window
	res.Slots = slots

	return res, nil
}

func (s *serviceImpl) IsValidSlot(ctx context.Context, date, slot string) (bool, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsValidSlot")
	defer scope.End()

	slots, err := s.GenerateSlots(ctx, date)
	if err != nil {
		return false, err
	}

	for _, candidate := range slots.Slots {
		if candidate == slot {
			return true, nil
		}
	}

	return false, nil
}

// slotsForWindow produces arrival slots from open up to and including lastArrival at the
// given interval. Sessions cross midnight, so when the last-arrival clock hour is
// numerically below the opening hour the end boundary is shifted by 24 hours before
// stepping, and produced values wrap back into the 0-23 range.
func slotsForWindow(open, lastArrival string, intervalMinutes int) ([]string, error) {
	start, err := parseClock(open)
	if err != nil {
		return nil, err
	}

	end, err := parseClock(lastArrival)
	if err != nil {
		return nil, err
	}

	if end/60 < start/60 {
		end += constant.MinutesPerDay
	}

	slots := []string{}
	for minutes := start; minutes <= end; minutes += intervalMinutes {
		wrapped := minutes % constant.MinutesPerDay
		slots = append(slots, fmt.Sprintf("%02d:%02d", wrapped/60, wrapped%60))
	}

	return slots, nil
}

func parseClock(value string) (int, error) {
	parsed, err := time.Parse(constant.TimeSlotFormat, value)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", value, err)
	}

	return parsed.Hour()*60 + parsed.Minute(), nil
}
