package availability

import (
	"net/http"
	"strconv"
	"velvet/infras/otel"
	"velvet/internal/domains/availability/model/dto"
	"velvet/internal/domains/availability/service"
	"velvet/shared/constant"
	"velvet/shared/failure"
	"velvet/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.FindFreeTables)
		routerGroup.Get("/tables/{id}", handler.CheckTable)
	})
}

// FindFreeTables answers which tables can seat a party on a date.
// @Summary Find free tables
// @Description List every single table and combined pair that can seat the party on the date.
// @Tags Availability
// @Accept json
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param party_size query int true "Party size"
// @Success 200 {object} response.Data[dto.FindFreeTablesResponse] "Seating candidates"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
// @Security BearerAuth
func (handler *Handler) FindFreeTables(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FindFreeTables")
	defer scope.End()

	date := r.URL.Query().Get(constant.RequestParamDate)
	if date == "" {
		err := failure.BadRequestFromString("date query parameter is required")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	partySize, err := strconv.Atoi(r.URL.Query().Get(constant.RequestParamPartySize))
	if err != nil || partySize < 1 {
		err := failure.BadRequestFromString("party_size query parameter must be a positive integer")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	candidates, err := handler.service.FindFreeTables(ctx, date, partySize)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to find free tables")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, candidates)
}

// CheckTable reports whether one table is free on a date.
// @Summary Check a single table
// @Description Report whether a table is free for a date, optionally excluding one reservation.
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param exclude query string false "Reservation ID to exclude"
// @Success 200 {object} response.Data[dto.CheckAvailabilityResponse] "Availability"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/tables/{id} [get]
// @Security BearerAuth
func (handler *Handler) CheckTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckTable")
	defer scope.End()

	tableID := chi.URLParam(r, constant.RequestParamID)

	date := r.URL.Query().Get(constant.RequestParamDate)
	if date == "" {
		err := failure.BadRequestFromString("date query parameter is required")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	exclude := r.URL.Query().Get(constant.RequestParamExclude)

	available, err := handler.service.CheckTableAvailability(ctx, tableID, date, exclude)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check table availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dto.CheckAvailabilityResponse{
		TableID:   tableID,
		Date:      date,
		Available: available,
	})
}
