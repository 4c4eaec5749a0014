package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"hotelops/config"
	"hotelops/infras/kafka"
	"hotelops/infras/otel"
	guestModel "hotelops/internal/domains/guest/model"
	guestService "hotelops/internal/domains/guest/service"
	"hotelops/internal/domains/reservation/model"
	"hotelops/internal/domains/reservation/model/dto"
	"hotelops/internal/domains/reservation/repository"
	roomModel "hotelops/internal/domains/room/model"
	roomService "hotelops/internal/domains/room/service"
	"hotelops/shared"
	"hotelops/shared/cache"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
	"hotelops/shared/timezone"
)

const (
	EventCreated      = "reservation.created"
	EventGroupCreated = "reservation.group_created"
	EventUpdated      = "reservation.updated"
	EventCheckedIn    = "reservation.checked_in"
	EventCheckedOut   = "reservation.checked_out"
	EventCancelled    = "reservation.cancelled"
	EventDeleted      = "reservation.deleted"
)

var hundred = decimal.NewFromInt(100)

type Reservation interface {
	GetAll(ctx context.Context, filter dto.ReservationFilter) ([]model.Reservation, error)
	Get(ctx context.Context, id int64) (model.Reservation, error)
	Create(ctx context.Context, req dto.CreateReservationRequest) (model.Reservation, error)
	CreateGroup(ctx context.Context, req dto.CreateGroupReservationRequest) ([]model.Reservation, error)
	Update(ctx context.Context, id int64, req dto.UpdateReservationRequest) (model.Reservation, error)
	Delete(ctx context.Context, id int64) (model.Reservation, error)
	Confirm(ctx context.Context, id int64, req dto.TransitionRequest) (model.Reservation, error)
	CheckIn(ctx context.Context, id int64, req dto.TransitionRequest) (model.Reservation, error)
	CheckOut(ctx context.Context, id int64, req dto.TransitionRequest) (model.Reservation, error)
	CancelWithRefund(ctx context.Context, id int64, req dto.CancelRequest) (model.Reservation, error)
	GetGroupReservations(ctx context.Context, groupID string) ([]model.Reservation, error)
	GetGroupSummary(ctx context.Context, groupID string) (model.GroupSummary, error)
}

type serviceImpl struct {
	repo   repository.Reservation
	guests guestService.Guest
	rooms  roomService.Room
	events kafka.Client
	cache  cache.RedisCache
	cfg    *config.Config
	otel   otel.Otel
}

func New(
	repo repository.Reservation,
	guests guestService.Guest,
	rooms roomService.Room,
	events kafka.Client,
	cache cache.RedisCache,
	cfg *config.Config,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:   repo,
		guests: guests,
		rooms:  rooms,
		events: events,
		cache:  cache,
		cfg:    cfg,
		otel:   otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, filter dto.ReservationFilter) (res []model.Reservation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservations, err := s.repo.All(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return nil, fmt.Errorf("failed to get reservations: %w", err)
	}

	res = make([]model.Reservation, 0, len(reservations))

	for _, reservation := range reservations {
		if filter.Match(reservation) {
			res = append(res, reservation)
		}
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res model.Reservation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res model.Reservation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.build(ctx, req)
	if err != nil {
		return res, err
	}

	res, err = s.repo.Insert(ctx, reservation)
	if err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	s.afterWrite(ctx, EventCreated, res)

	return res, nil
}

// CreateGroup resolves every member before writing anything, then stores the whole group in
// one batch so a failure leaves no partial group behind.
func (s *serviceImpl) CreateGroup(ctx context.Context, req dto.CreateGroupReservationRequest) (res []model.Reservation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.CreateGroup")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if len(req.GroupRooms) == 0 {
		return nil, failure.BadRequestFromString("groupRooms must contain at least one room")
	}

	now := timezone.Now()
	groupID := fmt.Sprintf("GRP-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
	seenRooms := make(map[int64]struct{}, len(req.GroupRooms))
	members := make([]model.Reservation, 0, len(req.GroupRooms))

	for _, room := range req.GroupRooms {
		if _, dup := seenRooms[room.RoomID]; dup {
			return nil, failure.BadRequestFromString(fmt.Sprintf("room %d appears twice in the group", room.RoomID))
		}

		seenRooms[room.RoomID] = struct{}{}

		member, err := s.build(ctx, req.Member(room))
		if err != nil {
			return nil, err
		}

		member.IsGroupBooking = true
		member.GroupID = groupID
		member.GroupSize = len(req.GroupRooms)
		members = append(members, member)
	}

	scope.SetAttribute("reservation.group_id", groupID)

	res, err = s.repo.InsertBatch(ctx, members)
	if err != nil {
		log.Error().Err(err).Str("groupId", groupID).Msg("failed to create group reservations")

		return nil, fmt.Errorf("failed to create group reservations: %w", err)
	}

	kafka.Publish(ctx, s.events, kafka.StreamReservations, EventGroupCreated, groupID, model.NewGroupSummary(groupID, res))
	s.invalidateReports(ctx)

	return res, nil
}

// Update edits booking details. Status only moves through the confirm, check-in, check-out
// and cancel actions, which carry their own side effects.
func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateReservationRequest) (res model.Reservation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.EmptyUpdateRequest
	}

	res, err = s.update(ctx, id, req, func(current model.Reservation, _ *model.Reservation) error {
		if req.Status != nil && *req.Status != current.Status {
			return failure.Conflict(fmt.Sprintf(
				"reservation %d cannot change status to %s by update; use confirm, check-in, check-out or cancel",
				id, *req.Status,
			))
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	s.afterWrite(ctx, EventUpdated, res)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (res model.Reservation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete reservation")

		return res, fmt.Errorf("failed to delete reservation: %w", err)
	}

	s.afterWrite(ctx, EventDeleted, res)

	return res, nil
}

func (s *serviceImpl) Confirm(ctx context.Context, id int64, req dto.TransitionRequest) (res model.Reservation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Confirm")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.transition(ctx, id, model.StatusConfirmed, req)
	if err != nil {
		return res, err
	}

	s.afterWrite(ctx, EventUpdated, res)

	return res, nil
}

// CheckIn marks the stay as started and the room as occupied.
func (s *serviceImpl) CheckIn(ctx context.Context, id int64, req dto.TransitionRequest) (res model.Reservation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.CheckIn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.transition(ctx, id, model.StatusCheckedIn, req)
	if err != nil {
		return res, err
	}

	if _, err := s.rooms.UpdateStatus(ctx, res.RoomID, roomModel.StatusOccupied); err != nil {
		log.Warn().Err(err).Int64("id", id).Int64("roomId", res.RoomID).Msg("checked in but failed to mark room occupied")
	}

	s.afterWrite(ctx, EventCheckedIn, res)

	return res, nil
}

// CheckOut closes the stay, sends the room to housekeeping and records the visit on the guest.
func (s *serviceImpl) CheckOut(ctx context.Context, id int64, req dto.TransitionRequest) (res model.Reservation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.CheckOut")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.transition(ctx, id, model.StatusCheckedOut, req)
	if err != nil {
		return res, err
	}

	if _, err := s.rooms.UpdateStatus(ctx, res.RoomID, roomModel.StatusDirty); err != nil {
		log.Warn().Err(err).Int64("id", id).Int64("roomId", res.RoomID).Msg("checked out but failed to mark room dirty")
	}

	stay := guestModel.Stay{
		ReservationID: res.ID,
		RoomNumber:    res.RoomNumber,
		CheckIn:       res.CheckIn,
		CheckOut:      res.CheckOut,
		TotalAmount:   res.TotalAmount,
	}

	if _, err := s.guests.AddStay(ctx, res.GuestID, stay); err != nil {
		log.Warn().Err(err).Int64("id", id).Int64("guestId", res.GuestID).Msg("checked out but failed to record guest stay")
	}

	s.afterWrite(ctx, EventCheckedOut, res)

	return res, nil
}

// CancelWithRefund cancels through the regular update path so the cancellation is also
// recorded in the modification history.
func (s *serviceImpl) CancelWithRefund(ctx context.Context, id int64, req dto.CancelRequest) (res model.Reservation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.CancelWithRefund")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cancelled := model.StatusCancelled
	patch := dto.UpdateReservationRequest{
		Status:             &cancelled,
		ModifiedBy:         req.ModifiedBy,
		ModificationReason: req.Reason,
	}

	res, err = s.update(ctx, id, patch, func(current model.Reservation, next *model.Reservation) error {
		if current.Status.Terminal() {
			return failure.Conflict(fmt.Sprintf("reservation %d is already %s", id, current.Status))
		}

		cancellation, err := s.cancellation(current, req, timezone.Now())
		if err != nil {
			return err
		}

		next.Cancellation = &cancellation

		return nil
	})
	if err != nil {
		return res, err
	}

	scope.SetAttribute("reservation.refund", res.Cancellation.RefundAmount)

	s.afterWrite(ctx, EventCancelled, res)

	return res, nil
}

func (s *serviceImpl) GetGroupReservations(ctx context.Context, groupID string) (res []model.Reservation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.GetGroupReservations")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservations, err := s.repo.All(ctx)
	if err != nil {
		log.Error().Err(err).Str("groupId", groupID).Msg("failed to get group reservations")

		return nil, fmt.Errorf("failed to get group reservations: %w", err)
	}

	res = []model.Reservation{}

	for _, reservation := range reservations {
		if groupID != "" && reservation.GroupID == groupID {
			res = append(res, reservation)
		}
	}

	return res, nil
}

func (s *serviceImpl) GetGroupSummary(ctx context.Context, groupID string) (res model.GroupSummary, err error) {
	members, err := s.GetGroupReservations(ctx, groupID)
	if err != nil {
		return res, err
	}

	if len(members) == 0 {
		return res, failure.NotFound(fmt.Sprintf("group %s not found", groupID))
	}

	return model.NewGroupSummary(groupID, members), nil
}

// build turns a request into an unsaved reservation, snapshotting guest and room details.
func (s *serviceImpl) build(ctx context.Context, req dto.CreateReservationRequest) (model.Reservation, error) {
	if !req.CheckOut.After(req.CheckIn) {
		return model.Reservation{}, failure.BadRequestFromString("checkOut must be after checkIn")
	}

	guest, err := s.guests.Get(ctx, req.GuestID)
	if err != nil {
		return model.Reservation{}, referenceError(err, "guest", req.GuestID)
	}

	room, err := s.rooms.Get(ctx, req.RoomID)
	if err != nil {
		return model.Reservation{}, referenceError(err, "room", req.RoomID)
	}

	now := timezone.Now()
	reservation := model.Reservation{
		GuestID:             guest.ID,
		RoomID:              room.ID,
		GuestName:           guest.Name(),
		RoomNumber:          room.Number,
		CheckIn:             req.CheckIn,
		CheckOut:            req.CheckOut,
		Status:              req.Status,
		GuestCount:          req.GuestCount,
		SpecialRequests:     req.SpecialRequests,
		CancellationPolicy:  req.CancellationPolicy,
		ModificationHistory: []model.Modification{},
		CreatedAt:           now,
	}

	if reservation.Status == "" {
		reservation.Status = model.StatusConfirmed
	}

	if reservation.GuestCount <= 0 {
		reservation.GuestCount = 1
	}

	if reservation.CancellationPolicy == "" {
		reservation.CancellationPolicy = s.defaultPolicyName()
	}

	if req.TotalAmount != nil {
		reservation.TotalAmount = *req.TotalAmount
	} else {
		reservation.TotalAmount = room.Rate.Mul(decimal.NewFromInt(int64(reservation.Nights())))
	}

	if req.CorporateAccountID > 0 {
		account, err := s.guests.GetCorporateAccount(ctx, req.CorporateAccountID)
		if err != nil {
			return model.Reservation{}, referenceError(err, "corporate account", req.CorporateAccountID)
		}

		reservation.CorporateAccount = &model.CorporateAccount{
			GuestID:           account.ID,
			CompanyName:       account.CompanyName,
			PaymentTerms:      account.PaymentTerms,
			CreditLimit:       account.CreditLimit,
			CorporateDiscount: account.CorporateDiscount,
		}
	}

	return reservation, nil
}

// transition moves a reservation to status, rejecting moves the lifecycle does not allow.
func (s *serviceImpl) transition(ctx context.Context, id int64, status model.Status, req dto.TransitionRequest) (model.Reservation, error) {
	patch := dto.UpdateReservationRequest{
		Status:             &status,
		ModifiedBy:         req.ModifiedBy,
		ModificationReason: req.Reason,
	}

	return s.update(ctx, id, patch, func(current model.Reservation, _ *model.Reservation) error {
		if current.Status == status {
			return failure.Conflict(fmt.Sprintf("reservation %d is already %s", id, status))
		}

		return nil
	})
}

// update merges req into the stored reservation, checks the result and appends one history
// entry describing the fields that changed. extra may adjust the merged record or veto it.
func (s *serviceImpl) update(
	ctx context.Context,
	id int64,
	req dto.UpdateReservationRequest,
	extra func(current model.Reservation, next *model.Reservation) error,
) (model.Reservation, error) {
	var room *roomModel.Room

	if req.RoomID != nil {
		found, err := s.rooms.Get(ctx, *req.RoomID)
		if err != nil {
			return model.Reservation{}, referenceError(err, "room", *req.RoomID)
		}

		room = &found
	}

	modifiedBy := req.ModifiedBy
	if modifiedBy == "" {
		modifiedBy = shared.Operator(ctx)
	}

	res, err := s.repo.Modify(ctx, id, func(current model.Reservation) (model.Reservation, error) {
		next, changes, err := shared.DiffPatch(current, req)
		if err != nil {
			return current, err //nolint:wrapcheck
		}

		if !current.Status.CanTransition(next.Status) {
			return current, failure.Conflict(fmt.Sprintf("reservation %d cannot move from %s to %s", id, current.Status, next.Status))
		}

		if !next.CheckOut.After(next.CheckIn) {
			return current, failure.BadRequestFromString("checkOut must be after checkIn")
		}

		if current.GroupID != "" && (!next.CheckIn.Equal(current.CheckIn) || !next.CheckOut.Equal(current.CheckOut)) {
			return current, failure.Conflict(fmt.Sprintf("reservation %d belongs to group %s and shares its stay dates", id, current.GroupID))
		}

		if room != nil {
			next.RoomNumber = room.Number
		}

		if extra != nil {
			if err := extra(current, &next); err != nil {
				return current, err
			}
		}

		now := timezone.Now()
		next.ModificationHistory = append(next.ModificationHistory, model.Modification{
			Timestamp:  now,
			Changes:    changes,
			ModifiedBy: modifiedBy,
			Reason:     req.ModificationReason,
		})
		next.LastModified = &now

		return next, nil
	})
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update reservation")

		return res, fmt.Errorf("failed to update reservation: %w", err)
	}

	return res, nil
}

// cancellation derives the refund. A positive manual amount wins over the policy but may
// not exceed the booking total.
func (s *serviceImpl) cancellation(current model.Reservation, req dto.CancelRequest, now time.Time) (model.Cancellation, error) {
	days := max(timezone.CeilDays(now, current.CheckIn), 0)
	policy := s.refundPolicy(current.CancellationPolicy)

	cancellation := model.Cancellation{
		CancelledAt:       now,
		Reason:            req.Reason,
		Policy:            policy.Name,
		DaysBeforeCheckIn: days,
	}

	if req.RefundAmount != nil && !req.RefundAmount.IsZero() {
		amount := *req.RefundAmount
		if amount.IsNegative() || amount.GreaterThan(current.TotalAmount) {
			return cancellation, failure.BadRequestFromString(fmt.Sprintf("refundAmount must be between 0 and %s", current.TotalAmount))
		}

		cancellation.RefundAmount = amount
		cancellation.RefundPercentage = decimal.Zero

		if current.TotalAmount.IsPositive() {
			cancellation.RefundPercentage = amount.Mul(hundred).Div(current.TotalAmount)
		}

		return cancellation, nil
	}

	cancellation.RefundPercentage = policy.Percentage(days)
	cancellation.RefundAmount = policy.Refund(current.TotalAmount, days)

	return cancellation, nil
}

// refundPolicy resolves the reservation's policy, falling back to the configured default.
func (s *serviceImpl) refundPolicy(name string) model.RefundPolicy {
	if policy, ok := model.LookupRefundPolicy(name); ok {
		return policy
	}

	policy, _ := model.LookupRefundPolicy(s.defaultPolicyName())

	return policy
}

// defaultPolicyName is RESERVATION_REFUND_POLICY when it names a registered table.
func (s *serviceImpl) defaultPolicyName() string {
	if _, ok := model.LookupRefundPolicy(s.cfg.Reservation.RefundPolicy); ok {
		return s.cfg.Reservation.RefundPolicy
	}

	return model.PolicyStandard
}

func (s *serviceImpl) afterWrite(ctx context.Context, event string, reservation model.Reservation) {
	kafka.Publish(ctx, s.events, kafka.StreamReservations, event, fmt.Sprintf("reservation:%d", reservation.ID), reservation)
	s.invalidateReports(ctx)
}

func (s *serviceImpl) invalidateReports(ctx context.Context) {
	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, constant.CacheKeyReportPrefix)
}

// referenceError reports a missing referenced record as a bad request, since the caller
// supplied the id.
func referenceError(err error, entity string, id int64) error {
	if failure.IsNotFound(err) {
		return failure.BadRequestFromString(fmt.Sprintf("%s %d does not exist", entity, id))
	}

	return fmt.Errorf("failed to resolve %s %d: %w", entity, id, err)
}
