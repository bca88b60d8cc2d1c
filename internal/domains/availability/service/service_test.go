package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"velvet/config"
	"velvet/infras/otel/mocks"
	"velvet/internal/domains/availability/model/dto"
	"velvet/internal/domains/availability/service"
	blockModel "velvet/internal/domains/block/model"
	blockMocks "velvet/internal/domains/block/mocks"
	reservationModel "velvet/internal/domains/reservation/model"
	reservationMocks "velvet/internal/domains/reservation/mocks"
	tableModel "velvet/internal/domains/table/model"
	tableMocks "velvet/internal/domains/table/mocks"
)

type availabilityMocks struct {
	tables       *tableMocks.MockTable
	reservations *reservationMocks.MockReservation
	blocks       *blockMocks.MockBlock
}

func newAvailability(ctrl *gomock.Controller) (service.Availability, *availabilityMocks) {
	m := &availabilityMocks{
		tables:       tableMocks.NewMockTable(ctrl),
		reservations: reservationMocks.NewMockReservation(ctrl),
		blocks:       blockMocks.NewMockBlock(ctrl),
	}

	cfg := &config.Config{}
	cfg.Venue.Combine.MinParty = 7
	cfg.Venue.Combine.MaxParty = 12

	return service.New(m.tables, m.reservations, m.blocks, cfg, mocks.NewOtel()), m
}

// floorTables is the standing fixture: tables 1 and 2 join with each other,
// table 3 joins with no one, table 4 seats large parties on its own.
func floorTables() []tableModel.Table {
	return []tableModel.Table{
		{ID: "table-1", TableNumber: 1, Floor: "main", CapacityMin: 2, CapacityMax: 4, Active: true, CombinesWith: pq.Int64Array{2}},
		{ID: "table-2", TableNumber: 2, Floor: "main", CapacityMin: 2, CapacityMax: 4, Active: true, CombinesWith: pq.Int64Array{1}},
		{ID: "table-3", TableNumber: 3, Floor: "terrace", CapacityMin: 2, CapacityMax: 6, Active: true},
		{ID: "table-4", TableNumber: 4, Floor: "main", CapacityMin: 6, CapacityMax: 10, VIP: true, Active: true},
	}
}

func activeReservationOn(tableID string) reservationModel.Reservation {
	return reservationModel.Reservation{
		ID:      "res-" + tableID,
		TableID: tableID,
		Status:  reservationModel.StatusConfirmed,
	}
}

func TestAvailabilityService_FindFreeTables(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newAvailability(ctrl)

	expectFloor := func(tables []tableModel.Table, reservations []reservationModel.Reservation, blocks []blockModel.Block) {
		m.tables.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(tables, nil)
		m.reservations.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(reservations, nil)
		m.blocks.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(blocks, nil)
	}

	t.Run("a small party only sees single tables that fit", func(t *testing.T) {
		expectFloor(floorTables(), nil, nil)

		res, err := svc.FindFreeTables(context.Background(), "2026-09-12", 3)

		require.NoError(t, err)
		require.Len(t, res.Candidates, 3)
		for _, candidate := range res.Candidates {
			assert.Equal(t, dto.CandidateKindSingle, candidate.Kind)
		}
		assert.Equal(t, 1, res.Candidates[0].TableNumber)
		assert.Equal(t, 2, res.Candidates[1].TableNumber)
		assert.Equal(t, 3, res.Candidates[2].TableNumber)
	})

	t.Run("a party of eight gets the joined pair alongside the big single", func(t *testing.T) {
		expectFloor(floorTables(), nil, nil)

		res, err := svc.FindFreeTables(context.Background(), "2026-09-12", 8)

		require.NoError(t, err)
		require.Len(t, res.Candidates, 2)

		assert.Equal(t, dto.CandidateKindSingle, res.Candidates[0].Kind)
		assert.Equal(t, 4, res.Candidates[0].TableNumber)

		combined := res.Candidates[1]
		assert.Equal(t, dto.CandidateKindCombined, combined.Kind)
		assert.Equal(t, 1, combined.TableNumber, "lower table number is the primary")
		assert.Equal(t, 2, combined.CompanionNumber)
		assert.Equal(t, 2, combined.CapacityMin, "union minimum is the smaller minimum")
		assert.Equal(t, 8, combined.CapacityMax, "union maximum is the summed maximum")
	})

	t.Run("a reserved constituent removes the combined candidate", func(t *testing.T) {
		expectFloor(floorTables(), []reservationModel.Reservation{activeReservationOn("table-2")}, nil)

		res, err := svc.FindFreeTables(context.Background(), "2026-09-12", 8)

		require.NoError(t, err)
		require.Len(t, res.Candidates, 1)
		assert.Equal(t, 4, res.Candidates[0].TableNumber)
	})

	t.Run("a blackout on a constituent removes the combined candidate", func(t *testing.T) {
		blocks := []blockModel.Block{{TableID: "table-1", StartDate: "2026-09-10", EndDate: "2026-09-15", Reason: "floor repair"}}
		expectFloor(floorTables(), nil, blocks)

		res, err := svc.FindFreeTables(context.Background(), "2026-09-12", 8)

		require.NoError(t, err)
		require.Len(t, res.Candidates, 1)
		assert.Equal(t, 4, res.Candidates[0].TableNumber)
	})

	t.Run("a held companion table blocks both seats of the pair", func(t *testing.T) {
		combined := activeReservationOn("table-4")
		combined.CompanionTableID = sql.NullString{String: "table-1", Valid: true}
		expectFloor(floorTables(), []reservationModel.Reservation{combined}, nil)

		res, err := svc.FindFreeTables(context.Background(), "2026-09-12", 8)

		require.NoError(t, err)
		assert.Empty(t, res.Candidates, "table-1 is held as a companion and table-4 as primary")
	})

	t.Run("parties beyond the combine ceiling get no synthesized pairs", func(t *testing.T) {
		expectFloor(floorTables(), nil, nil)

		res, err := svc.FindFreeTables(context.Background(), "2026-09-12", 13)

		require.NoError(t, err)
		assert.Empty(t, res.Candidates)
	})

	t.Run("listing tables fails", func(t *testing.T) {
		m.tables.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection refused"))

		_, err := svc.FindFreeTables(context.Background(), "2026-09-12", 4)

		assert.Error(t, err)
	})
}

func TestAvailabilityService_CheckTableAvailability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newAvailability(ctrl)

	t.Run("free when nothing holds the table", func(t *testing.T) {
		m.reservations.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.blocks.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		available, err := svc.CheckTableAvailability(context.Background(), "table-1", "2026-09-12", "")

		require.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("an active reservation holds the table for the whole evening", func(t *testing.T) {
		m.reservations.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		available, err := svc.CheckTableAvailability(context.Background(), "table-1", "2026-09-12", "")

		require.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("a blackout range holds the table", func(t *testing.T) {
		m.reservations.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.blocks.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		available, err := svc.CheckTableAvailability(context.Background(), "table-1", "2026-09-12", "")

		require.NoError(t, err)
		assert.False(t, available)
	})
}
