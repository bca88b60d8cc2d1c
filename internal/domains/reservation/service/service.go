package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Reservation=MockReservationService

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"velvet/config"
	"velvet/infras/otel"
	"velvet/infras/s3"
	availabilityService "velvet/internal/domains/availability/service"
	customerService "velvet/internal/domains/customer/service"
	"velvet/internal/domains/reservation/model"
	"velvet/internal/domains/reservation/model/dto"
	"velvet/internal/domains/reservation/repository"
	scheduleService "velvet/internal/domains/schedule/service"
	tableModel "velvet/internal/domains/table/model"
	tableRepository "velvet/internal/domains/table/repository"
	"velvet/internal/external/notifier"
	"velvet/internal/external/payment"
	"velvet/shared"
	"velvet/shared/cache"
	"velvet/shared/constant"
	gDto "velvet/shared/dto"
	"velvet/shared/failure"
	"velvet/shared/keylock"
	"velvet/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	Modify(ctx context.Context, id string, req dto.ModifyReservationRequest) (dto.ReservationResponse, error)
	Cancel(ctx context.Context, id string, req dto.CancelReservationRequest) (dto.ReservationResponse, error)
	Refund(ctx context.Context, id string, req dto.RefundReservationRequest) (dto.RefundOutcome, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (dto.ReservationResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	GetModifications(ctx context.Context, id string, req gDto.QueryParams) (dto.GetModificationsResponse, error)
	ExportModifications(ctx context.Context, from, to string) (dto.ExportModificationsResponse, error)
}

type serviceImpl struct {
	repo         repository.Reservation
	modRepo      repository.Modification
	tables       tableRepository.Table
	customers    customerService.Customer
	schedule     scheduleService.Schedule
	availability availabilityService.Availability
	payment      payment.Payment
	notifier     notifier.Notifier
	locks        *keylock.KeyLock
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	s3           s3.S3
}

func New(
	repo repository.Reservation,
	modRepo repository.Modification,
	tables tableRepository.Table,
	customers customerService.Customer,
	schedule scheduleService.Schedule,
	availability availabilityService.Availability,
	paymentClient payment.Payment,
	notifierClient notifier.Notifier,
	locks *keylock.KeyLock,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Reservation {
	return &serviceImpl{
		repo:         repo,
		modRepo:      modRepo,
		tables:       tables,
		customers:    customers,
		schedule:     schedule,
		availability: availability,
		payment:      paymentClient,
		notifier:     notifierClient,
		locks:        locks,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		s3:           s3,
	}
}

// Create books a table for the whole operating session of one date. The
// availability re-check and the insert run under per-(table,date) keyed locks so
// two concurrent calls for the same table and date cannot both succeed; the
// loser gets a conflict naming the reservation that beat it.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyStaffID).(string)
	actor, _ := ctx.Value(constant.ContextKeyStaffEmail).(string)

	validSlot, err := s.schedule.IsValidSlot(ctx, req.Date, req.TimeSlot)
	if err != nil {
		return res, err
	}

	if !validSlot {
		return res, failure.BadRequestFromString(fmt.Sprintf("%s is not a bookable arrival time on %s", req.TimeSlot, req.Date)) // nolint:wrapcheck
	}

	primary, companion, err := s.resolveSeating(ctx, req.TableID, req.PartySize)
	if err != nil {
		return res, err
	}

	customer, err := s.customers.FindOrCreate(ctx, req.Customer)
	if err != nil {
		return res, err
	}

	status := model.StatusPending
	if req.DepositPaid {
		status = model.StatusConfirmed
	}

	reservation := model.Reservation{
		ID:              uuid.NewString(),
		Reference:       dto.NewReference(),
		CustomerID:      customer.ID,
		TableID:         primary.ID,
		ReservationDate: req.Date,
		ArrivalSlot:     req.TimeSlot,
		PartySize:       req.PartySize,
		Status:          status,
		SpecialRequests: req.SpecialRequests,
		InternalNotes:   req.InternalNotes,
		DepositAmount:   req.DepositAmount,
		DepositPaid:     req.DepositPaid,
	}
	reservation.CreatedAt = timezone.Now()
	reservation.ModifiedAt = timezone.Now()
	reservation.CreatedBy = user
	reservation.ModifiedBy = user

	if companion != nil {
		reservation.CompanionTableID = sql.NullString{String: companion.ID, Valid: true}
	}
	if req.PaymentRef != constant.Empty {
		reservation.PaymentRef = sql.NullString{String: req.PaymentRef, Valid: true}
	}

	keys := lockKeys(req.Date, reservation.TableIDs())
	s.locks.Lock(keys...)
	defer s.locks.Unlock(keys...)

	for _, tableID := range reservation.TableIDs() {
		if err = s.ensureFree(ctx, tableID, req.Date, constant.Empty); err != nil {
			return res, err
		}
	}

	modification := s.newModification(reservation.ID, actor, model.ActionCreate, model.ChangeSet{}, model.ChangeSet{
		model.FieldTableID:         reservation.TableID,
		model.FieldReservationDate: reservation.ReservationDate,
		model.FieldArrivalSlot:     reservation.ArrivalSlot,
		model.FieldPartySize:       reservation.PartySize,
		model.FieldStatus:          reservation.Status,
	}, "reservation created")

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, reservation); err != nil {
			return err
		}

		return s.modRepo.InsertTx(ctx, tx, modification)
	})
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)
	s.notify(ctx, dto.EventReservationCreated, res, modification.ID)
	s.evict(ctx, reservation.ID)

	return res, nil
}

// Modify applies a partial change set over date, time slot, party size, and
// table. Availability is re-validated for the proposed seating with the
// reservation's own row excluded, and exactly one audit record capturing the
// pre- and post-image of the changed fields is appended atomically with the
// update.
func (s *serviceImpl) Modify(ctx context.Context, id string, req dto.ModifyReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Modify")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("modification carries no changes") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyStaffID).(string)
	actor, _ := ctx.Value(constant.ContextKeyStaffEmail).(string)

	current, err := s.getReservation(ctx, id)
	if err != nil {
		return res, err
	}

	if !current.IsActive() {
		return res, failure.UnprocessableEntity(fmt.Sprintf("reservation %s is %s and can no longer change", current.Reference, current.Status)) // nolint:wrapcheck
	}

	proposedDate := current.ReservationDate
	if req.Date != constant.Empty {
		proposedDate = req.Date
	}

	proposedSlot := current.ArrivalSlot
	if req.TimeSlot != constant.Empty {
		proposedSlot = req.TimeSlot
	}

	proposedSize := current.PartySize
	if req.PartySize != nil {
		proposedSize = *req.PartySize
	}

	proposedTableID := current.TableID
	if req.TableID != constant.Empty {
		proposedTableID = req.TableID
	}

	validSlot, err := s.schedule.IsValidSlot(ctx, proposedDate, proposedSlot)
	if err != nil {
		return res, err
	}

	if !validSlot {
		return res, failure.BadRequestFromString(fmt.Sprintf("%s is not a bookable arrival time on %s", proposedSlot, proposedDate)) // nolint:wrapcheck
	}

	primary, companion, err := s.resolveSeating(ctx, proposedTableID, proposedSize)
	if err != nil {
		return res, err
	}

	proposed := current
	proposed.TableID = primary.ID
	proposed.CompanionTableID = sql.NullString{}
	proposed.ReservationDate = proposedDate
	proposed.ArrivalSlot = proposedSlot
	proposed.PartySize = proposedSize

	if companion != nil {
		proposed.CompanionTableID = sql.NullString{String: companion.ID, Valid: true}
	}

	// Lock the old seating alongside the new one; sortedUnique acquisition
	// inside the keylock prevents lock-order inversion between concurrent
	// modifications swapping tables.
	keys := append(lockKeys(current.ReservationDate, current.TableIDs()), lockKeys(proposedDate, proposed.TableIDs())...)
	s.locks.Lock(keys...)
	defer s.locks.Unlock(keys...)

	for _, tableID := range proposed.TableIDs() {
		if err = s.ensureFree(ctx, tableID, proposedDate, current.ID); err != nil {
			return res, err
		}
	}

	previous, updated := changedFields(current, proposed)
	if len(updated) == 0 {
		return res, failure.BadRequestFromString("modification carries no changes") // nolint:wrapcheck
	}

	fields := map[string]any{}
	for field, value := range updated {
		fields[field] = value
	}
	fields[model.FieldCompanionTableID] = proposed.CompanionTableID
	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = user

	modification := s.newModification(current.ID, actor, model.ActionModify, previous, updated, req.Reason)

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(current.ID, model.FieldID, model.TableName)); err != nil {
			return err
		}

		return s.modRepo.InsertTx(ctx, tx, modification)
	})
	if err != nil {
		return res, err
	}

	proposed.ModifiedAt = timezone.Now()
	proposed.ModifiedBy = user

	res.FromModel(proposed)

	if req.Notify {
		s.notify(ctx, dto.EventReservationModified, res, modification.ID)
	}

	s.evict(ctx, current.ID)

	return res, nil
}

// Cancel releases the table back to the pool. Deposit and refund fields are
// untouched; money moves only through Refund.
func (s *serviceImpl) Cancel(ctx context.Context, id string, req dto.CancelReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyStaffID).(string)
	actor, _ := ctx.Value(constant.ContextKeyStaffEmail).(string)

	current, err := s.getReservation(ctx, id)
	if err != nil {
		return res, err
	}

	if !model.CanTransition(current.Status, model.StatusCancelled) {
		return res, failure.UnprocessableEntity(fmt.Sprintf("reservation %s is %s and cannot be cancelled", current.Reference, current.Status)) // nolint:wrapcheck
	}

	modification := s.newModification(current.ID, actor, model.ActionCancel,
		model.ChangeSet{model.FieldStatus: current.Status},
		model.ChangeSet{model.FieldStatus: model.StatusCancelled},
		req.Reason)

	fields := map[string]any{
		model.FieldStatus:        model.StatusCancelled,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(current.ID, model.FieldID, model.TableName)); err != nil {
			return err
		}

		return s.modRepo.InsertTx(ctx, tx, modification)
	})
	if err != nil {
		return res, err
	}

	current.Status = model.StatusCancelled
	current.ModifiedBy = user
	current.ModifiedAt = timezone.Now()

	res.FromModel(current)
	s.notify(ctx, dto.EventReservationCancelled, res, modification.ID)
	s.evict(ctx, current.ID)

	return res, nil
}

// Refund returns deposit money through the payment collaborator. The refunded
// flag makes the operation idempotent: a retry after a crash either sees the
// flag already set and stops, or repeats the provider call, which the provider
// dedupes by payment reference. No table lock is held across the provider call;
// a per-reservation key serializes concurrent refund attempts instead. A
// refunded PENDING reservation auto-cancels; a CONFIRMED one keeps its status.
func (s *serviceImpl) Refund(ctx context.Context, id string, req dto.RefundReservationRequest) (res dto.RefundOutcome, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Refund")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyStaffID).(string)
	actor, _ := ctx.Value(constant.ContextKeyStaffEmail).(string)

	refundKey := "refund|" + id
	s.locks.Lock(refundKey)
	defer s.locks.Unlock(refundKey)

	current, err := s.getReservation(ctx, id)
	if err != nil {
		return res, err
	}

	if current.DepositRefunded {
		return res, failure.Conflict(fmt.Sprintf("deposit for reservation %s has already been refunded", current.Reference)) // nolint:wrapcheck
	}

	if !current.DepositPaid {
		return res, failure.UnprocessableEntity(fmt.Sprintf("reservation %s has no captured deposit", current.Reference)) // nolint:wrapcheck
	}

	if !current.PaymentRef.Valid || current.PaymentRef.String == constant.Empty {
		return res, failure.UnprocessableEntity(fmt.Sprintf("reservation %s has no payment reference on file", current.Reference)) // nolint:wrapcheck
	}

	if current.Status == model.StatusCompleted {
		return res, failure.UnprocessableEntity(fmt.Sprintf("reservation %s is completed and no longer refundable", current.Reference)) // nolint:wrapcheck
	}

	amount := req.Amount
	if amount == 0 {
		amount = current.DepositAmount
	}

	if amount > current.DepositAmount {
		return res, failure.BadRequestFromString("refund amount exceeds the captured deposit") // nolint:wrapcheck
	}

	outcome, err := s.payment.Refund(ctx, payment.RefundRequest{
		PaymentRef: current.PaymentRef.String,
		Amount:     amount,
		ReasonCode: payment.MapReasonCode(req.Reason),
	})
	if err != nil {
		// The provider said no: leave every ledger field untouched and hand
		// the reason to the caller. The log line is the operational trace.
		log.Error().Err(err).Str("reference", current.Reference).Msg("refund rejected by payment provider")

		return res, err
	}

	refundDate := timezone.Now()
	finalStatus := current.Status

	previous := model.ChangeSet{
		model.FieldDepositRefunded: false,
	}
	updated := model.ChangeSet{
		model.FieldDepositRefunded: true,
		model.FieldRefundRef:       outcome.RefundRef,
		model.FieldRefundAmount:    outcome.Amount,
	}

	fields := map[string]any{
		model.FieldDepositRefunded: true,
		model.FieldRefundRef:       outcome.RefundRef,
		model.FieldRefundAmount:    outcome.Amount,
		model.FieldRefundDate:      refundDate,
		constant.FieldModifiedAt:   refundDate,
		constant.FieldModifiedBy:   user,
	}

	if current.Status == model.StatusPending {
		finalStatus = model.StatusCancelled
		fields[model.FieldStatus] = finalStatus
		previous[model.FieldStatus] = model.StatusPending
		updated[model.FieldStatus] = finalStatus
	}

	modification := s.newModification(current.ID, actor, model.ActionRefund, previous, updated, req.Reason)

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(current.ID, model.FieldID, model.TableName)); err != nil {
			return err
		}

		return s.modRepo.InsertTx(ctx, tx, modification)
	})
	if err != nil {
		return res, err
	}

	current.Status = finalStatus
	current.DepositRefunded = true
	current.RefundRef = sql.NullString{String: outcome.RefundRef, Valid: true}
	current.RefundAmount = sql.NullInt64{Int64: outcome.Amount, Valid: true}
	current.RefundDate = sql.NullTime{Time: refundDate, Valid: true}

	var response dto.ReservationResponse
	response.FromModel(current)
	s.notify(ctx, dto.EventReservationRefunded, response, modification.ID)
	s.evict(ctx, current.ID)

	return dto.RefundOutcome{
		Reference:  current.Reference,
		RefundRef:  outcome.RefundRef,
		Amount:     outcome.Amount,
		Status:     finalStatus,
		RefundDate: refundDate,
	}, nil
}

// UpdateStatus walks the reservation state machine: confirming a deposit,
// seating the guest, or marking a no-show. Terminal statuses reject every
// transition.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyStaffID).(string)
	actor, _ := ctx.Value(constant.ContextKeyStaffEmail).(string)

	current, err := s.getReservation(ctx, id)
	if err != nil {
		return res, err
	}

	if !model.CanTransition(current.Status, req.Status) {
		return res, failure.UnprocessableEntity(fmt.Sprintf("reservation %s cannot move from %s to %s", current.Reference, current.Status, req.Status)) // nolint:wrapcheck
	}

	modification := s.newModification(current.ID, actor, model.ActionStatus,
		model.ChangeSet{model.FieldStatus: current.Status},
		model.ChangeSet{model.FieldStatus: req.Status},
		req.Reason)

	fields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(current.ID, model.FieldID, model.TableName)); err != nil {
			return err
		}

		return s.modRepo.InsertTx(ctx, tx, modification)
	})
	if err != nil {
		return res, err
	}

	current.Status = req.Status
	current.ModifiedBy = user
	current.ModifiedAt = timezone.Now()

	res.FromModel(current)

	event := dto.EventReservationModified
	if req.Status == model.StatusCancelled {
		event = dto.EventReservationCancelled
	}

	s.notify(ctx, event, res, modification.ID)
	s.evict(ctx, current.ID)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(nil)

	cacheKey := shared.BuildCacheKey(cacheGetReservation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	reservation, err := s.getReservation(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetModifications(ctx context.Context, id string, req gDto.QueryParams) (res dto.GetModificationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetModifications")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.getReservation(ctx, id); err != nil {
		return res, err
	}

	filter := repository.FilterByReservation(id)

	total, err := s.modRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservation modifications")

		return res, fmt.Errorf("failed to count reservation modifications: %w", err)
	}

	models, err := s.modRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation modifications")

		return res, fmt.Errorf("failed to get reservation modifications: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

// ExportModifications writes every audit record created within [from, to] to the
// archive bucket as one JSON object and returns its location.
func (s *serviceImpl) ExportModifications(ctx context.Context, from, to string) (res dto.ExportModificationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExportModifications")
	defer scope.End()
	defer scope.TraceIfError(err)

	if to < from {
		return res, failure.BadRequestFromString("export range end precedes its start") // nolint:wrapcheck
	}

	models, err := s.modRepo.GetAll(ctx, gDto.QueryParams{
		SortBy:  model.ModificationTableName + "." + model.FieldModificationCreatedAt,
		SortDir: "ASC",
	}, repository.FilterByCreatedRange(from, to))
	if err != nil {
		log.Error().Err(err).Msg("failed to collect modifications for export")

		return res, fmt.Errorf("failed to collect modifications for export: %w", err)
	}

	encoded, err := json.Marshal(models)
	if err != nil {
		return res, fmt.Errorf("failed to encode modifications for export: %w", err)
	}

	objectName := fmt.Sprintf("reservation-modifications_%s_%s.json", from, to)

	url, err := s.s3.UploadObject(ctx, s.cfg.External.S3.ArchivePrefix, objectName, constant.ContentTypeJSON, encoded)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload audit export")

		return res, fmt.Errorf("failed to upload audit export: %w", err)
	}

	return dto.ExportModificationsResponse{URL: url, Records: len(models)}, nil
}

// resolveSeating picks the stored seating for a party: the requested table alone
// when its capacity range contains the party, otherwise a joined pair when the
// party falls in the combinable range and the table has a mutual partner whose
// union range fits. The lower-numbered table of a pair becomes the primary row.
func (s *serviceImpl) resolveSeating(ctx context.Context, tableID string, partySize int) (primary tableModel.Table, companion *tableModel.Table, err error) {
	table, err := s.tables.Get(ctx, shared.FilterByID(tableID, tableModel.FieldID, tableModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return primary, nil, fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty {
		return primary, nil, failure.NotFound("table not found") // nolint:wrapcheck
	}

	if !table.Active {
		return primary, nil, failure.UnprocessableEntity(fmt.Sprintf("table %d is not in service", table.TableNumber)) // nolint:wrapcheck
	}

	if table.Fits(partySize) {
		return table, nil, nil
	}

	combine := s.cfg.Venue.Combine
	if partySize < combine.MinParty || partySize > combine.MaxParty {
		return primary, nil, failure.UnprocessableEntity(fmt.Sprintf("party of %d is outside table %d capacity %d-%d", partySize, table.TableNumber, table.CapacityMin, table.CapacityMax)) // nolint:wrapcheck
	}

	partner, err := s.findCombinePartner(ctx, table, partySize)
	if err != nil {
		return primary, nil, err
	}

	if partner.TableNumber < table.TableNumber {
		return partner, &table, nil
	}

	return table, &partner, nil
}

func (s *serviceImpl) findCombinePartner(ctx context.Context, table tableModel.Table, partySize int) (partner tableModel.Table, err error) {
	candidates, err := s.tables.GetAll(ctx, gDto.QueryParams{
		SortBy:  tableModel.TableName + "." + tableModel.FieldTableNumber,
		SortDir: "ASC",
	}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Table:    tableModel.TableName,
				Field:    tableModel.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to list tables for combination")

		return partner, fmt.Errorf("failed to list tables for combination: %w", err)
	}

	for _, candidate := range candidates {
		if candidate.ID == table.ID || !table.CombinableWith(candidate) {
			continue
		}

		unionMin := table.CapacityMin
		if candidate.CapacityMin < unionMin {
			unionMin = candidate.CapacityMin
		}

		if partySize >= unionMin && partySize <= table.CapacityMax+candidate.CapacityMax {
			return candidate, nil
		}
	}

	return partner, failure.UnprocessableEntity(fmt.Sprintf("party of %d does not fit table %d and no joinable partner can absorb it", partySize, table.TableNumber)) // nolint:wrapcheck
}

// ensureFree re-checks exclusivity for one table under the held lock and, when
// the table is taken, loads the colliding reservation so the caller can name it.
func (s *serviceImpl) ensureFree(ctx context.Context, tableID, date, excludeID string) error {
	available, err := s.availability.CheckTableAvailability(ctx, tableID, date, excludeID)
	if err != nil {
		return err
	}

	if available {
		return nil
	}

	colliding, err := s.repo.Get(ctx, repository.FilterActiveOnTable(tableID, date, excludeID))
	if err != nil || colliding.ID == constant.Empty {
		// Blocked by a blackout rather than another booking.
		return failure.ConflictWithDetails("table is not available on the requested date", nil) // nolint:wrapcheck
	}

	details := dto.ConflictDetails{
		Reference: colliding.Reference,
		PartySize: colliding.PartySize,
	}

	if customer, err := s.customers.Get(ctx, colliding.CustomerID); err == nil {
		details.CustomerName = customer.Name
	}

	return failure.ConflictWithDetails("table is no longer available", details) // nolint:wrapcheck
}

// notify publishes the lifecycle event and flips the audit record's notification
// flag on success. A failed publish is logged and the flag stays false; the
// ledger mutation already committed and is never rolled back for this.
func (s *serviceImpl) notify(ctx context.Context, eventType string, payload dto.ReservationResponse, modificationID string) {
	if err := s.notifier.PublishReservationEvent(ctx, eventType, payload); err != nil {
		log.Error().Err(err).Str("event", eventType).Str("reference", payload.Reference).Msg("failed to publish reservation event")

		return
	}

	fields := map[string]any{
		model.FieldModificationNotificationSent: true,
	}

	filter := shared.FilterByID(modificationID, model.FieldModificationID, model.ModificationTableName)
	if err := s.modRepo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Str("modificationID", modificationID).Msg("failed to flag audit record as notified")
	}
}

func (s *serviceImpl) getReservation(ctx context.Context, id string) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	return reservation, nil
}

func (s *serviceImpl) newModification(reservationID, actor, action string, previous, updated model.ChangeSet, reason string) model.Modification {
	return model.Modification{
		ID:             uuid.NewString(),
		ReservationID:  reservationID,
		Actor:          actor,
		Action:         action,
		PreviousValues: previous,
		NewValues:      updated,
		Reason:         reason,
		CreatedAt:      timezone.Now(),
	}
}

func (s *serviceImpl) evict(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()
}

// changedFields diffs the bookable fields of two reservation images, returning
// matching pre/post change sets holding only what differs.
func changedFields(before, after model.Reservation) (previous, updated model.ChangeSet) {
	previous = model.ChangeSet{}
	updated = model.ChangeSet{}

	if before.TableID != after.TableID {
		previous[model.FieldTableID] = before.TableID
		updated[model.FieldTableID] = after.TableID
	}

	if before.CompanionTableID.String != after.CompanionTableID.String {
		previous[model.FieldCompanionTableID] = before.CompanionTableID.String
		updated[model.FieldCompanionTableID] = after.CompanionTableID.String
	}

	if before.ReservationDate != after.ReservationDate {
		previous[model.FieldReservationDate] = before.ReservationDate
		updated[model.FieldReservationDate] = after.ReservationDate
	}

	if before.ArrivalSlot != after.ArrivalSlot {
		previous[model.FieldArrivalSlot] = before.ArrivalSlot
		updated[model.FieldArrivalSlot] = after.ArrivalSlot
	}

	if before.PartySize != after.PartySize {
		previous[model.FieldPartySize] = before.PartySize
		updated[model.FieldPartySize] = after.PartySize
	}

	return previous, updated
}

func lockKeys(date string, tableIDs []string) []string {
	keys := make([]string, len(tableIDs))
	for i, id := range tableIDs {
		keys[i] = id + "|" + date
	}

	return keys
}
