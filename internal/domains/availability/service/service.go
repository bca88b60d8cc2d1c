package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Availability=MockAvailabilityService

import (
	"context"
	"fmt"
	"sort"

	"velvet/config"
	"velvet/infras/otel"
	"velvet/internal/domains/availability/model/dto"
	blockRepository "velvet/internal/domains/block/repository"
	reservationModel "velvet/internal/domains/reservation/model"
	reservationRepository "velvet/internal/domains/reservation/repository"
	tableModel "velvet/internal/domains/table/model"
	tableRepository "velvet/internal/domains/table/repository"
	"velvet/shared/constant"
	gDto "velvet/shared/dto"

	"github.com/rs/zerolog/log"
)

type Availability interface {
	FindFreeTables(ctx context.Context, date string, partySize int) (dto.FindFreeTablesResponse, error)
	CheckTableAvailability(ctx context.Context, tableID, date, excludeReservationID string) (bool, error)
}

type serviceImpl struct {
	tables       tableRepository.Table
	reservations reservationRepository.Reservation
	blocks       blockRepository.Block
	cfg          *config.Config
	otel         otel.Otel
}

func New(
	tables tableRepository.Table,
	reservations reservationRepository.Reservation,
	blocks blockRepository.Block,
	cfg *config.Config,
	otel otel.Otel,
) Availability {
	return &serviceImpl{
		tables:       tables,
		reservations: reservations,
		blocks:       blocks,
		cfg:          cfg,
		otel:         otel,
	}
}

// FindFreeTables answers which tables can seat a party on a date. Free means
// active, not held by a pending or confirmed reservation for that date, and not
// inside a blackout range. For larger parties a combined candidate is synthesized
// from a free joinable pair; it lives only in the answer, never in storage.
func (s *serviceImpl) FindFreeTables(ctx context.Context, date string, partySize int) (res dto.FindFreeTablesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FindFreeTables")
	defer scope.End()
	defer scope.TraceIfError(err)

	res.Date = date
	res.PartySize = partySize
	res.Candidates = []dto.TableCandidate{}

	free, err := s.freeTables(ctx, date)
	if err != nil {
		return res, err
	}

	for _, table := range free {
		if table.Fits(partySize) {
			res.Candidates = append(res.Candidates, dto.SingleCandidate(table))
		}
	}

	combine := s.cfg.Venue.Combine
	if partySize >= combine.MinParty && partySize <= combine.MaxParty {
		res.Candidates = append(res.Candidates, s.combinedCandidates(free, partySize)...)
	}

	return res, nil
}

// CheckTableAvailability re-runs the reservation and blackout filters for a single
// table. The ledger calls it inside its locked revalidation path, with the
// reservation's own row excluded when modifying.
func (s *serviceImpl) CheckTableAvailability(ctx context.Context, tableID, date, excludeReservationID string) (res bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckTableAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	reserved, err := s.reservations.Exist(ctx, reservationRepository.FilterActiveOnTable(tableID, date, excludeReservationID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check table reservations")

		return false, fmt.Errorf("failed to check table reservations: %w", err)
	}

	if reserved {
		return false, nil
	}

	blocked, err := s.blocks.Exist(ctx, blockRepository.FilterCovering(tableID, date))
	if err != nil {
		log.Error().Err(err).Msg("failed to check table blocks")

		return false, fmt.Errorf("failed to check table blocks: %w", err)
	}

	return !blocked, nil
}

// freeTables returns every active table that is neither reserved nor blocked on
// date, ordered by table number ascending.
func (s *serviceImpl) freeTables(ctx context.Context, date string) ([]tableModel.Table, error) {
	tables, err := s.tables.GetAll(ctx, tableNumberOrdering(), filterActiveTables())
	if err != nil {
		log.Error().Err(err).Msg("failed to list active tables")

		return nil, fmt.Errorf("failed to list active tables: %w", err)
	}

	occupied, err := s.occupiedTableIDs(ctx, date)
	if err != nil {
		return nil, err
	}

	blockedRows, err := s.blocks.GetAll(ctx, gDto.QueryParams{}, blockRepository.FilterCoveringDate(date))
	if err != nil {
		log.Error().Err(err).Msg("failed to list table blocks")

		return nil, fmt.Errorf("failed to list table blocks: %w", err)
	}

	blocked := map[string]bool{}
	for _, block := range blockedRows {
		blocked[block.TableID] = true
	}

	free := []tableModel.Table{}
	for _, table := range tables {
		if !occupied[table.ID] && !blocked[table.ID] {
			free = append(free, table)
		}
	}

	return free, nil
}

func (s *serviceImpl) occupiedTableIDs(ctx context.Context, date string) (map[string]bool, error) {
	reservations, err := s.reservations.GetAll(ctx, gDto.QueryParams{}, filterActiveOnDate(date))
	if err != nil {
		log.Error().Err(err).Msg("failed to list reservations for date")

		return nil, fmt.Errorf("failed to list reservations for date: %w", err)
	}

	occupied := map[string]bool{}
	for _, reservation := range reservations {
		for _, id := range reservation.TableIDs() {
			occupied[id] = true
		}
	}

	return occupied, nil
}

// combinedCandidates synthesizes one candidate per mutually joinable free pair
// whose union capacity range contains partySize. The lower-numbered table is the
// primary. Input is already sorted by table number, so output order follows.
func (s *serviceImpl) combinedCandidates(free []tableModel.Table, partySize int) []dto.TableCandidate {
	candidates := []dto.TableCandidate{}

	for i := range free {
		for j := i + 1; j < len(free); j++ {
			if !free[i].CombinableWith(free[j]) {
				continue
			}

			candidate := dto.CombinedCandidate(free[i], free[j])
			if candidate.Fits(partySize) {
				candidates = append(candidates, candidate)
			}
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].TableNumber < candidates[b].TableNumber
	})

	return candidates
}

func tableNumberOrdering() gDto.QueryParams {
	return gDto.QueryParams{
		SortBy:  tableModel.TableName + "." + tableModel.FieldTableNumber,
		SortDir: "ASC",
	}
}

func filterActiveTables() gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Table:    tableModel.TableName,
				Field:    tableModel.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
			},
		},
	}
}

func filterActiveOnDate(date string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Table:    reservationModel.TableName,
				Field:    reservationModel.FieldReservationDate,
				Operator: gDto.FilterOperatorEq,
				Value:    date,
			},
			gDto.Filter{
				Table:    reservationModel.TableName,
				Field:    reservationModel.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    reservationModel.ActiveStatuses,
			},
		},
	}
}
