package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelops/config"
	"hotelops/infras/kafka"
	kafkaMocks "hotelops/infras/kafka/mocks"
	"hotelops/infras/otel/mocks"
	guestModel "hotelops/internal/domains/guest/model"
	guestService "hotelops/internal/domains/guest/service"
	"hotelops/internal/domains/reservation/model"
	"hotelops/internal/domains/reservation/model/dto"
	"hotelops/internal/domains/reservation/service"
	roomModel "hotelops/internal/domains/room/model"
	roomService "hotelops/internal/domains/room/service"
	"hotelops/shared/cache"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
	gRepo "hotelops/shared/repository"
)

type fixture struct {
	svc    service.Reservation
	guests guestService.Guest
	rooms  roomService.Room
}

func newFixture(t *testing.T, events kafka.Client) fixture {
	t.Helper()

	return newFixtureWithPolicy(t, events, model.PolicyStandard)
}

func newFixtureWithPolicy(t *testing.T, events kafka.Client, refundPolicy string) fixture {
	t.Helper()

	otl := mocks.NewOtel()
	noCache := cache.NewRedisCache(nil, otl)

	cfg := &config.Config{}
	cfg.Reservation.RefundPolicy = refundPolicy

	if events == nil {
		events = kafka.New(cfg)
	}

	guests := guestService.New(gRepo.NewMemory[guestModel.Guest](guestModel.EntityName, 0, otl,
		guestModel.Guest{FirstName: "Ana", LastName: "Souza", AccountType: guestModel.AccountTypeIndividual},
		guestModel.Guest{FirstName: "Bruno", LastName: "Lima", AccountType: guestModel.AccountTypeIndividual},
		guestModel.Guest{FirstName: "Acme", AccountType: guestModel.AccountTypeCorporate, CompanyName: "Acme Ltd", PaymentTerms: "net45"},
	), cfg, otl)

	rooms := roomService.New(gRepo.NewMemory[roomModel.Room](roomModel.EntityName, 0, otl,
		roomModel.Room{Number: "101", Type: "Standard", Status: roomModel.StatusAvailable, Rate: decimal.NewFromInt(100)},
		roomModel.Room{Number: "102", Type: "Deluxe", Status: roomModel.StatusAvailable, Rate: decimal.NewFromInt(180)},
	), cfg, noCache, otl)

	repo := gRepo.NewMemory[model.Reservation](model.EntityName, 0, otl)
	svc := service.New(repo, guests, rooms, events, noCache, cfg, otl)

	return fixture{svc: svc, guests: guests, rooms: rooms}
}

func stay(daysAhead int, nights int) (time.Time, time.Time) {
	checkIn := time.Now().Add(time.Duration(daysAhead)*24*time.Hour + time.Hour)

	return checkIn, checkIn.Add(time.Duration(nights) * 24 * time.Hour)
}

func book(t *testing.T, f fixture, daysAhead int) model.Reservation {
	t.Helper()

	checkIn, checkOut := stay(daysAhead, 2)

	reservation, err := f.svc.Create(context.Background(), dto.CreateReservationRequest{
		GuestID:  1,
		RoomID:   1,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	require.NoError(t, err)

	return reservation
}

func TestReservationService_CreateSnapshotsAndPrices(t *testing.T) {
	f := newFixture(t, nil)

	reservation := book(t, f, 10)

	assert.Equal(t, int64(1), reservation.ID)
	assert.Equal(t, "Ana Souza", reservation.GuestName)
	assert.Equal(t, "101", reservation.RoomNumber)
	assert.True(t, reservation.TotalAmount.Equal(decimal.NewFromInt(200)), reservation.TotalAmount.String())
	assert.Equal(t, model.StatusConfirmed, reservation.Status)
	assert.Equal(t, model.PolicyStandard, reservation.CancellationPolicy)
	assert.Empty(t, reservation.GroupID)
	assert.False(t, reservation.IsGroupBooking)
	assert.Empty(t, reservation.ModificationHistory)

	got, err := f.svc.Get(context.Background(), reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, reservation.GuestName, got.GuestName)
	assert.True(t, reservation.CheckIn.Equal(got.CheckIn))
}

func TestReservationService_CreateRejectsBadInput(t *testing.T) {
	f := newFixture(t, nil)
	checkIn, checkOut := stay(3, 1)

	tests := []struct {
		name string
		req  dto.CreateReservationRequest
		code int
	}{
		{
			name: "unknown guest",
			req:  dto.CreateReservationRequest{GuestID: 40, RoomID: 1, CheckIn: checkIn, CheckOut: checkOut},
			code: http.StatusBadRequest,
		},
		{
			name: "unknown room",
			req:  dto.CreateReservationRequest{GuestID: 1, RoomID: 40, CheckIn: checkIn, CheckOut: checkOut},
			code: http.StatusBadRequest,
		},
		{
			name: "check-out not after check-in",
			req:  dto.CreateReservationRequest{GuestID: 1, RoomID: 1, CheckIn: checkIn, CheckOut: checkIn},
			code: http.StatusBadRequest,
		},
		{
			name: "individual guest used as corporate account",
			req:  dto.CreateReservationRequest{GuestID: 1, RoomID: 1, CheckIn: checkIn, CheckOut: checkOut, CorporateAccountID: 2},
			code: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.code, failure.GetCode(err))
		})
	}
}

func TestReservationService_CreateGroup(t *testing.T) {
	f := newFixture(t, nil)
	checkIn, checkOut := stay(20, 3)

	members, err := f.svc.CreateGroup(context.Background(), dto.CreateGroupReservationRequest{
		CheckIn:            checkIn,
		CheckOut:           checkOut,
		CorporateAccountID: 3,
		GroupRooms: []dto.GroupRoom{
			{GuestID: 1, RoomID: 1, GuestCount: 2},
			{GuestID: 2, RoomID: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, members, 2)

	groupID := members[0].GroupID
	assert.NotEmpty(t, groupID)

	for _, member := range members {
		assert.Equal(t, groupID, member.GroupID)
		assert.Equal(t, 2, member.GroupSize)
		assert.True(t, member.IsGroupBooking)
		assert.True(t, checkIn.Equal(member.CheckIn))
		require.NotNil(t, member.CorporateAccount)
		assert.Equal(t, "Acme Ltd", member.CorporateAccount.CompanyName)
	}

	assert.Equal(t, "Bruno Lima", members[1].GuestName)
	assert.True(t, members[1].TotalAmount.Equal(decimal.NewFromInt(540)))

	group, err := f.svc.GetGroupReservations(context.Background(), groupID)
	require.NoError(t, err)
	assert.Len(t, group, 2)

	summary, err := f.svc.GetGroupSummary(context.Background(), groupID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalRooms)
	assert.Equal(t, 3, summary.TotalGuests)
	assert.True(t, summary.TotalAmount.Equal(decimal.NewFromInt(840)))

	_, err = f.svc.GetGroupSummary(context.Background(), "GRP-0")
	assert.True(t, failure.IsNotFound(err))
}

func TestReservationService_CreateGroupBackToBack(t *testing.T) {
	f := newFixture(t, nil)
	checkIn, checkOut := stay(20, 2)
	req := dto.CreateGroupReservationRequest{
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GroupRooms: []dto.GroupRoom{{GuestID: 1, RoomID: 1}, {GuestID: 2, RoomID: 2}},
	}

	first, err := f.svc.CreateGroup(context.Background(), req)
	require.NoError(t, err)

	second, err := f.svc.CreateGroup(context.Background(), req)
	require.NoError(t, err)

	require.NotEqual(t, first[0].GroupID, second[0].GroupID)

	for _, groupID := range []string{first[0].GroupID, second[0].GroupID} {
		members, err := f.svc.GetGroupReservations(context.Background(), groupID)
		require.NoError(t, err)
		assert.Len(t, members, 2, groupID)

		for _, member := range members {
			assert.Equal(t, len(members), member.GroupSize)
		}
	}
}

func TestReservationService_CreateGroupIsAllOrNothing(t *testing.T) {
	f := newFixture(t, nil)
	checkIn, checkOut := stay(20, 3)

	_, err := f.svc.CreateGroup(context.Background(), dto.CreateGroupReservationRequest{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		GroupRooms: []dto.GroupRoom{
			{GuestID: 1, RoomID: 1},
			{GuestID: 2, RoomID: 99},
		},
	})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	_, err = f.svc.CreateGroup(context.Background(), dto.CreateGroupReservationRequest{
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GroupRooms: []dto.GroupRoom{{GuestID: 1, RoomID: 1}, {GuestID: 2, RoomID: 1}},
	})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	all, err := f.svc.GetAll(context.Background(), dto.ReservationFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestReservationService_UpdateRecordsHistory(t *testing.T) {
	f := newFixture(t, nil)
	reservation := book(t, f, 10)

	ctx := context.WithValue(context.Background(), constant.ContextKeyOperator, "front-desk")
	requests := "Extra pillow"

	updated, err := f.svc.Update(ctx, reservation.ID, dto.UpdateReservationRequest{
		SpecialRequests:    &requests,
		ModificationReason: "guest call",
	})
	require.NoError(t, err)

	assert.Equal(t, "Extra pillow", updated.SpecialRequests)
	assert.Equal(t, reservation.GuestName, updated.GuestName)
	assert.True(t, reservation.TotalAmount.Equal(updated.TotalAmount))
	require.NotNil(t, updated.LastModified)
	require.Len(t, updated.ModificationHistory, 1)

	entry := updated.ModificationHistory[0]
	assert.Equal(t, "front-desk", entry.ModifiedBy)
	assert.Equal(t, "guest call", entry.Reason)
	require.Contains(t, entry.Changes, "specialRequests")
	assert.Equal(t, "", entry.Changes["specialRequests"].From)
	assert.Equal(t, "Extra pillow", entry.Changes["specialRequests"].To)
	assert.NotContains(t, entry.Changes, "modificationReason")

	room := int64(2)

	moved, err := f.svc.Update(ctx, reservation.ID, dto.UpdateReservationRequest{RoomID: &room, ModifiedBy: "manager"})
	require.NoError(t, err)
	assert.Equal(t, "102", moved.RoomNumber)
	require.Len(t, moved.ModificationHistory, 2)
	assert.Equal(t, "manager", moved.ModificationHistory[1].ModifiedBy)

	_, err = f.svc.Update(ctx, reservation.ID, dto.UpdateReservationRequest{ModifiedBy: "x"})
	assert.ErrorIs(t, err, failure.EmptyUpdateRequest)

	_, err = f.svc.Update(ctx, 99, dto.UpdateReservationRequest{SpecialRequests: &requests})
	assert.True(t, failure.IsNotFound(err))

	early := reservation.CheckOut.Add(time.Hour)
	_, err = f.svc.Update(ctx, reservation.ID, dto.UpdateReservationRequest{CheckIn: &early})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestReservationService_UpdateLeavesStatusToActions(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	reservation := book(t, f, 10)

	for _, status := range []model.Status{model.StatusCancelled, model.StatusCheckedIn, model.StatusCheckedOut} {
		_, err := f.svc.Update(ctx, reservation.ID, dto.UpdateReservationRequest{Status: &status})
		assert.Equal(t, http.StatusConflict, failure.GetCode(err), status)
	}

	got, err := f.svc.Get(ctx, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, got.Status)
	assert.Nil(t, got.Cancellation)
	assert.Empty(t, got.ModificationHistory)

	room, err := f.rooms.Get(ctx, reservation.RoomID)
	require.NoError(t, err)
	assert.Equal(t, roomModel.StatusAvailable, room.Status)

	same := model.StatusConfirmed
	requests := "Late arrival"
	updated, err := f.svc.Update(ctx, reservation.ID, dto.UpdateReservationRequest{Status: &same, SpecialRequests: &requests})
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, updated.Status)
	assert.Equal(t, "Late arrival", updated.SpecialRequests)
}

func TestReservationService_ConfiguredDefaultPolicy(t *testing.T) {
	f := newFixtureWithPolicy(t, nil, model.PolicyGraduated)
	checkIn, checkOut := stay(10, 2)

	reservation, err := f.svc.Create(context.Background(), dto.CreateReservationRequest{
		GuestID: 1, RoomID: 1, CheckIn: checkIn, CheckOut: checkOut,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PolicyGraduated, reservation.CancellationPolicy)

	cancelled, err := f.svc.CancelWithRefund(context.Background(), reservation.ID, dto.CancelRequest{Reason: "plans changed"})
	require.NoError(t, err)
	assert.Equal(t, model.PolicyGraduated, cancelled.Cancellation.Policy)
	assert.True(t, cancelled.Cancellation.RefundAmount.Equal(decimal.NewFromInt(180)))

	f = newFixtureWithPolicy(t, nil, "lenient")
	reservation, err = f.svc.Create(context.Background(), dto.CreateReservationRequest{
		GuestID: 1, RoomID: 1, CheckIn: checkIn, CheckOut: checkOut,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PolicyStandard, reservation.CancellationPolicy)
}

func TestReservationService_CancelWithPolicyRefund(t *testing.T) {
	tests := []struct {
		name      string
		daysAhead int
		refund    int64
	}{
		{name: "a week or more ahead refunds everything", daysAhead: 10, refund: 200},
		{name: "three to six days ahead refunds half", daysAhead: 4, refund: 100},
		{name: "less than three days ahead refunds nothing", daysAhead: 1, refund: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			reservation := book(t, f, tt.daysAhead)

			cancelled, err := f.svc.CancelWithRefund(context.Background(), reservation.ID, dto.CancelRequest{Reason: "plans changed"})
			require.NoError(t, err)

			assert.Equal(t, model.StatusCancelled, cancelled.Status)
			require.NotNil(t, cancelled.Cancellation)
			assert.True(t, cancelled.Cancellation.RefundAmount.Equal(decimal.NewFromInt(tt.refund)), cancelled.Cancellation.RefundAmount.String())
			assert.Equal(t, model.PolicyStandard, cancelled.Cancellation.Policy)
			assert.False(t, cancelled.Cancellation.RefundProcessed)
			assert.Equal(t, "plans changed", cancelled.Cancellation.Reason)

			require.Len(t, cancelled.ModificationHistory, 1)
			assert.Equal(t, model.StatusCancelled, cancelled.ModificationHistory[0].Changes["status"].To)
		})
	}
}

func TestReservationService_CancelGraduatedPolicy(t *testing.T) {
	f := newFixture(t, nil)
	checkIn, checkOut := stay(10, 2)

	reservation, err := f.svc.Create(context.Background(), dto.CreateReservationRequest{
		GuestID: 1, RoomID: 1, CheckIn: checkIn, CheckOut: checkOut, CancellationPolicy: model.PolicyGraduated,
	})
	require.NoError(t, err)

	cancelled, err := f.svc.CancelWithRefund(context.Background(), reservation.ID, dto.CancelRequest{Reason: "flight cancelled"})
	require.NoError(t, err)

	assert.Equal(t, model.PolicyGraduated, cancelled.Cancellation.Policy)
	assert.True(t, cancelled.Cancellation.RefundAmount.Equal(decimal.NewFromInt(180)))
}

func TestReservationService_CancelManualRefund(t *testing.T) {
	f := newFixture(t, nil)
	reservation := book(t, f, 1)

	tooMuch := decimal.NewFromInt(500)
	_, err := f.svc.CancelWithRefund(context.Background(), reservation.ID, dto.CancelRequest{Reason: "x", RefundAmount: &tooMuch})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	manual := decimal.NewFromInt(50)
	cancelled, err := f.svc.CancelWithRefund(context.Background(), reservation.ID, dto.CancelRequest{Reason: "goodwill", RefundAmount: &manual})
	require.NoError(t, err)
	assert.True(t, cancelled.Cancellation.RefundAmount.Equal(manual))
	assert.True(t, cancelled.Cancellation.RefundPercentage.Equal(decimal.NewFromInt(25)))

	_, err = f.svc.CancelWithRefund(context.Background(), reservation.ID, dto.CancelRequest{Reason: "again"})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	_, err = f.svc.CancelWithRefund(context.Background(), 77, dto.CancelRequest{Reason: "x"})
	assert.True(t, failure.IsNotFound(err))
}

func TestReservationService_StayLifecycle(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	reservation := book(t, f, 0)

	_, err := f.svc.CheckOut(ctx, reservation.ID, dto.TransitionRequest{})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	checkedIn, err := f.svc.CheckIn(ctx, reservation.ID, dto.TransitionRequest{ModifiedBy: "desk"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusCheckedIn, checkedIn.Status)

	room, err := f.rooms.Get(ctx, reservation.RoomID)
	require.NoError(t, err)
	assert.Equal(t, roomModel.StatusOccupied, room.Status)

	_, err = f.svc.Confirm(ctx, reservation.ID, dto.TransitionRequest{})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	checkedOut, err := f.svc.CheckOut(ctx, reservation.ID, dto.TransitionRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.StatusCheckedOut, checkedOut.Status)
	assert.Len(t, checkedOut.ModificationHistory, 2)

	room, err = f.rooms.Get(ctx, reservation.RoomID)
	require.NoError(t, err)
	assert.Equal(t, roomModel.StatusDirty, room.Status)

	guest, err := f.guests.Get(ctx, reservation.GuestID)
	require.NoError(t, err)
	require.Len(t, guest.StayHistory, 1)
	assert.Equal(t, reservation.ID, guest.StayHistory[0].ReservationID)

	_, err = f.svc.CancelWithRefund(ctx, reservation.ID, dto.CancelRequest{Reason: "late"})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestReservationService_PublishesEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	events := kafkaMocks.NewMockClient(ctrl)
	events.EXPECT().Topic(kafka.StreamReservations).Return("hotelops.reservations").Times(2)

	var published []string

	events.EXPECT().
		SendMessages(gomock.Any(), "hotelops.reservations", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			event, _ := messages[0].Value.(kafka.Event)
			published = append(published, event.Type)

			return nil
		}).
		Times(2)

	f := newFixture(t, events)
	reservation := book(t, f, 10)

	_, err := f.svc.Delete(context.Background(), reservation.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{service.EventCreated, service.EventDeleted}, published)
}
