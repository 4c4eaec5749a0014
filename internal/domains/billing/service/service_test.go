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
	"hotelops/internal/domains/billing/model"
	"hotelops/internal/domains/billing/model/dto"
	"hotelops/internal/domains/billing/service"
	reservationModel "hotelops/internal/domains/reservation/model"
	reservationService "hotelops/internal/domains/reservation/service"
	"hotelops/shared/cache"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
	gRepo "hotelops/shared/repository"
	repoMocks "hotelops/shared/repository/mocks"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func ptr[T any](v T) *T {
	return &v
}

func newService(t *testing.T, events kafka.Client, seed ...model.Bill) service.Billing {
	t.Helper()

	otl := mocks.NewOtel()
	noCache := cache.NewRedisCache(nil, otl)

	cfg := &config.Config{}
	cfg.Billing.DefaultTaxRate = "10"
	cfg.Billing.PaymentTermDays = 30

	if events == nil {
		events = kafka.New(cfg)
	}

	reservations := reservationService.New(
		gRepo.NewMemory[reservationModel.Reservation](reservationModel.EntityName, 0, otl, reservationModel.Reservation{
			GuestName:   "Ana Souza",
			RoomNumber:  "101",
			Status:      reservationModel.StatusConfirmed,
			TotalAmount: dec("200"),
		}),
		nil, nil, events, noCache, cfg, otl,
	)

	repo := gRepo.NewMemory[model.Bill](model.EntityName, 0, otl, seed...)

	return service.New(repo, reservations, events, noCache, cfg, otl)
}

func createBill(t *testing.T, svc service.Billing) model.Bill {
	t.Helper()

	bill, err := svc.Create(context.Background(), dto.CreateBillRequest{
		ReservationID:     1,
		AdditionalCharges: []model.AdditionalCharge{{Amount: dec("15")}, {Amount: dec("5")}},
	})
	require.NoError(t, err)

	return bill
}

func TestBillingService_Create(t *testing.T) {
	svc := newService(t, nil)

	bill := createBill(t, svc)

	assert.Equal(t, int64(1), bill.ID)
	assert.Equal(t, "Ana Souza", bill.GuestName)
	assert.Equal(t, "101", bill.RoomNumber)
	assert.True(t, bill.RoomCharges.Equal(dec("200")), "room charges default to the reservation total")
	assert.True(t, bill.TaxRate.Equal(dec("10")))
	assert.True(t, bill.Subtotal.Equal(dec("220")))
	assert.True(t, bill.TaxAmount.Equal(dec("22")))
	assert.True(t, bill.TotalAmount.Equal(dec("242")))
	assert.Equal(t, model.PaymentStatusPending, bill.PaymentStatus)
	assert.Equal(t, model.InvoiceNumber(bill.CreatedAt, 1), bill.InvoiceNumber)
	assert.Equal(t, bill.CreatedAt.AddDate(0, 0, 30), bill.DueDate)
	assert.Empty(t, bill.PaymentHistory)
	assert.Empty(t, bill.Refunds)
	assert.Empty(t, bill.Adjustments)
}

func TestBillingService_CreateExplicitChargesAndRate(t *testing.T) {
	svc := newService(t, nil)

	bill, err := svc.Create(context.Background(), dto.CreateBillRequest{
		ReservationID: 1,
		RoomCharges:   ptr(dec("150")),
		TaxRate:       ptr(dec("12.5")),
	})

	require.NoError(t, err)
	assert.True(t, bill.TaxAmount.Equal(dec("18.75")))
	assert.True(t, bill.TotalAmount.Equal(dec("168.75")))
}

func TestBillingService_CreateUnknownReservation(t *testing.T) {
	svc := newService(t, nil)

	_, err := svc.Create(context.Background(), dto.CreateBillRequest{ReservationID: 9})

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestBillingService_PaymentThenRefund(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()
	bill := createBill(t, svc)

	paid, err := svc.ProcessPayment(ctx, bill.ID, dto.PaymentRequest{Amount: dec("242"), Method: "Cash"})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, paid.PaymentStatus)
	require.Len(t, paid.PaymentHistory, 1)
	assert.NotEmpty(t, paid.PaymentHistory[0].TransactionID)
	assert.True(t, paid.Balance.IsZero())

	refunded, err := svc.ProcessRefund(ctx, bill.ID, dto.RefundRequest{Amount: dec("50"), Reason: "late checkout waived"})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPartial, refunded.PaymentStatus)
	assert.True(t, refunded.NetPaid().Equal(dec("192")))
	assert.Equal(t, "Cash", refunded.Refunds[0].Method, "refund method falls back to the last payment method")

	all, err := svc.ProcessRefund(ctx, bill.ID, dto.RefundRequest{Amount: dec("192"), Reason: "stay cancelled"})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusRefunded, all.PaymentStatus)
}

func TestBillingService_PaymentsProgress(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()
	bill := createBill(t, svc)

	partial, err := svc.ProcessPayment(ctx, bill.ID, dto.PaymentRequest{Amount: dec("100"), Method: "Card"})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPartial, partial.PaymentStatus)

	over, err := svc.ProcessPayment(ctx, bill.ID, dto.PaymentRequest{Amount: dec("200"), Method: "Card"})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, over.PaymentStatus)
	assert.True(t, over.Balance.Equal(dec("-58")))
}

func TestBillingService_RejectsBadAmounts(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()
	bill := createBill(t, svc)

	_, err := svc.ProcessPayment(ctx, bill.ID, dto.PaymentRequest{Amount: dec("-1"), Method: "Cash"})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	_, err = svc.ProcessRefund(ctx, bill.ID, dto.RefundRequest{Amount: dec("0"), Reason: "x"})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	_, err = svc.ProcessRefund(ctx, bill.ID, dto.RefundRequest{Amount: dec("1"), Reason: "nothing paid yet"})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	_, err = svc.AddAdjustment(ctx, bill.ID, dto.AdjustmentRequest{Type: model.AdjustmentDiscount, Amount: dec("-5"), Reason: "x"})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	_, err = svc.AddAdjustment(ctx, bill.ID, dto.AdjustmentRequest{Type: model.AdjustmentCorrection, Amount: dec("0"), Reason: "x"})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	_, err = svc.ProcessPayment(ctx, 42, dto.PaymentRequest{Amount: dec("1"), Method: "Cash"})
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBillingService_AdjustmentsAreCumulative(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.WithValue(context.Background(), constant.ContextKeyOperator, "maria")
	bill := createBill(t, svc)

	_, err := svc.AddAdjustment(ctx, bill.ID, dto.AdjustmentRequest{Type: model.AdjustmentDiscount, Amount: dec("20"), Reason: "loyalty"})
	require.NoError(t, err)

	adjusted, err := svc.AddAdjustment(ctx, bill.ID, dto.AdjustmentRequest{Type: model.AdjustmentCorrection, Amount: dec("-10"), Reason: "minibar miscount"})
	require.NoError(t, err)

	assert.True(t, adjusted.OriginalSubtotal.Equal(dec("220")))
	assert.True(t, adjusted.Subtotal.Equal(dec("190")))
	assert.True(t, adjusted.TaxAmount.Equal(dec("19")))
	assert.True(t, adjusted.TotalAmount.Equal(dec("209")))
	require.Len(t, adjusted.Adjustments, 2)
	assert.Equal(t, "maria", adjusted.Adjustments[0].AppliedBy)
}

func TestBillingService_UpdateReprices(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()
	bill := createBill(t, svc)

	_, err := svc.ProcessPayment(ctx, bill.ID, dto.PaymentRequest{Amount: dec("242"), Method: "Cash"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, bill.ID, dto.UpdateBillRequest{
		AdditionalCharges: &[]model.AdditionalCharge{{Description: "spa", Amount: dec("80")}},
	})
	require.NoError(t, err)

	assert.True(t, updated.Subtotal.Equal(dec("280")))
	assert.True(t, updated.TotalAmount.Equal(dec("308")))
	assert.Equal(t, model.PaymentStatusPartial, updated.PaymentStatus)

	noted, err := svc.Update(ctx, bill.ID, dto.UpdateBillRequest{Notes: ptr("corporate invoice")})
	require.NoError(t, err)
	assert.Equal(t, "corporate invoice", noted.Notes)
	assert.True(t, noted.TotalAmount.Equal(dec("308")))

	_, err = svc.Update(ctx, bill.ID, dto.UpdateBillRequest{})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestBillingService_MarkOverdue(t *testing.T) {
	now := time.Now()
	svc := newService(t, nil,
		model.Bill{PaymentStatus: model.PaymentStatusPending, DueDate: now.Add(-48 * time.Hour), CreatedAt: now.AddDate(0, -1, 0)},
		model.Bill{PaymentStatus: model.PaymentStatusPaid, DueDate: now.Add(-48 * time.Hour), CreatedAt: now.AddDate(0, -1, 0)},
		model.Bill{PaymentStatus: model.PaymentStatusPartial, DueDate: now.Add(48 * time.Hour), CreatedAt: now},
	)

	overdue, err := svc.MarkOverdue(context.Background(), now)

	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, int64(1), overdue[0].ID)
	assert.Equal(t, model.PaymentStatusOverdue, overdue[0].PaymentStatus)

	again, err := svc.MarkOverdue(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestBillingService_GetTaxReport(t *testing.T) {
	now := time.Now()
	svc := newService(t, nil,
		model.Bill{PaymentStatus: model.PaymentStatusPaid, TaxRate: dec("10"), Subtotal: dec("200"), TaxAmount: dec("20"), CreatedAt: now.Add(-time.Hour)},
		model.Bill{PaymentStatus: model.PaymentStatusPending, TaxRate: dec("10"), Subtotal: dec("100"), TaxAmount: dec("10"), CreatedAt: now.Add(-time.Hour)},
	)

	report, err := svc.GetTaxReport(context.Background(), now.AddDate(0, 0, -7), now)

	require.NoError(t, err)
	assert.Equal(t, 1, report.BillCount)
	assert.True(t, report.TotalTaxCollected.Equal(dec("20")))

	_, err = svc.GetTaxReport(context.Background(), now, now.AddDate(0, 0, -7))
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestBillingService_PublishesEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	events := kafkaMocks.NewMockClient(ctrl)
	events.EXPECT().Topic(kafka.StreamBilling).Return("hotelops.billing").Times(2)

	var published []string

	events.EXPECT().
		SendMessages(gomock.Any(), "hotelops.billing", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			event, _ := messages[0].Value.(kafka.Event)
			published = append(published, event.Type)

			return nil
		}).
		Times(2)

	svc := newService(t, events)
	bill := createBill(t, svc)

	_, err := svc.ProcessPayment(context.Background(), bill.ID, dto.PaymentRequest{Amount: dec("10"), Method: "Card"})
	require.NoError(t, err)

	assert.Equal(t, []string{service.EventCreated, service.EventPaymentProcessed}, published)
}

func TestBillingService_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repoMocks.NewMockStore[model.Bill](ctrl)
	otl := mocks.NewOtel()
	cfg := &config.Config{}

	repo.EXPECT().All(gomock.Any()).Return(nil, assert.AnError)

	svc := service.New(repo, nil, kafka.New(cfg), cache.NewRedisCache(nil, otl), cfg, otl)

	_, err := svc.GetAll(context.Background(), dto.BillFilter{})

	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
