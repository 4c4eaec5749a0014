package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"hotelops/config"
	"hotelops/infras/kafka"
	"hotelops/infras/otel"
	"hotelops/internal/domains/billing/model"
	"hotelops/internal/domains/billing/model/dto"
	"hotelops/internal/domains/billing/repository"
	reservationService "hotelops/internal/domains/reservation/service"
	"hotelops/shared"
	"hotelops/shared/cache"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
	"hotelops/shared/timezone"
)

const (
	EventCreated           = "bill.created"
	EventUpdated           = "bill.updated"
	EventDeleted           = "bill.deleted"
	EventPaymentProcessed  = "bill.payment_processed"
	EventRefundProcessed   = "bill.refund_processed"
	EventAdjustmentApplied = "bill.adjustment_applied"
	EventOverdue           = "bill.overdue"
)

var fallbackTaxRate = decimal.NewFromInt(10)

type Billing interface {
	GetAll(ctx context.Context, filter dto.BillFilter) ([]model.Bill, error)
	Get(ctx context.Context, id int64) (model.Bill, error)
	Create(ctx context.Context, req dto.CreateBillRequest) (model.Bill, error)
	Update(ctx context.Context, id int64, req dto.UpdateBillRequest) (model.Bill, error)
	Delete(ctx context.Context, id int64) (model.Bill, error)
	ProcessPayment(ctx context.Context, id int64, req dto.PaymentRequest) (model.Bill, error)
	ProcessRefund(ctx context.Context, id int64, req dto.RefundRequest) (model.Bill, error)
	AddAdjustment(ctx context.Context, id int64, req dto.AdjustmentRequest) (model.Bill, error)
	GetTaxReport(ctx context.Context, start, end time.Time) (model.TaxReport, error)
	MarkOverdue(ctx context.Context, asOf time.Time) ([]model.Bill, error)
}

type serviceImpl struct {
	repo         repository.Bill
	reservations reservationService.Reservation
	events       kafka.Client
	cache        cache.RedisCache
	cfg          *config.Config
	otel         otel.Otel
}

func New(
	repo repository.Bill,
	reservations reservationService.Reservation,
	events kafka.Client,
	cache cache.RedisCache,
	cfg *config.Config,
	otel otel.Otel,
) Billing {
	return &serviceImpl{
		repo:         repo,
		reservations: reservations,
		events:       events,
		cache:        cache,
		cfg:          cfg,
		otel:         otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, filter dto.BillFilter) (res []model.Bill, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".billing.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bills, err := s.repo.All(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bills")

		return nil, fmt.Errorf("failed to get bills: %w", err)
	}

	res = make([]model.Bill, 0, len(bills))

	for _, bill := range bills {
		if filter.Match(bill) {
			res = append(res, bill)
		}
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res model.Bill, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".billing.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get bill")

		return res, fmt.Errorf("failed to get bill: %w", err)
	}

	return res, nil
}

// Create snapshots the reservation's guest and room. The invoice number is issued by the
// store together with the identity.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBillRequest) (res model.Bill, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".billing.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.reservations.Get(ctx, req.ReservationID)
	if err != nil {
		if failure.IsNotFound(err) {
			return res, failure.BadRequestFromString(fmt.Sprintf("reservation %d does not exist", req.ReservationID))
		}

		return res, err
	}

	now := timezone.Now()
	bill := model.Bill{
		ReservationID:     reservation.ID,
		GuestName:         reservation.GuestName,
		RoomNumber:        reservation.RoomNumber,
		RoomCharges:       reservation.TotalAmount,
		AdditionalCharges: slices.Clone(req.AdditionalCharges),
		TaxRate:           s.defaultTaxRate(),
		PaymentStatus:     model.PaymentStatusPending,
		PaymentHistory:    []model.Payment{},
		Refunds:           []model.Refund{},
		Adjustments:       []model.Adjustment{},
		Notes:             req.Notes,
		DueDate:           now.AddDate(0, 0, s.cfg.Billing.PaymentTermDays),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if bill.AdditionalCharges == nil {
		bill.AdditionalCharges = []model.AdditionalCharge{}
	}

	if req.RoomCharges != nil {
		bill.RoomCharges = *req.RoomCharges
	}

	if req.TaxRate != nil {
		bill.TaxRate = *req.TaxRate
	}

	bill.Recalculate()

	res, err = s.repo.Insert(ctx, bill)
	if err != nil {
		log.Error().Err(err).Int64("reservationId", req.ReservationID).Msg("failed to create bill")

		return res, fmt.Errorf("failed to create bill: %w", err)
	}

	s.afterWrite(ctx, EventCreated, res)

	return res, nil
}

// Update recalculates totals when charges or the tax rate change. The payment status is
// re-derived since a new total can settle or unsettle the bill.
func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateBillRequest) (res model.Bill, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".billing.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.EmptyUpdateRequest
	}

	res, err = s.modify(ctx, id, func(bill *model.Bill) error {
		if _, err := shared.ApplyPatch(bill, req); err != nil {
			return err //nolint:wrapcheck
		}

		if req.Reprices() {
			bill.Recalculate()
			bill.DeriveStatus()
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	s.afterWrite(ctx, EventUpdated, res)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (res model.Bill, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".billing.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete bill")

		return res, fmt.Errorf("failed to delete bill: %w", err)
	}

	s.afterWrite(ctx, EventDeleted, res)

	return res, nil
}

// ProcessPayment records a payment. Overpayment is accepted and leaves a negative balance.
func (s *serviceImpl) ProcessPayment(ctx context.Context, id int64, req dto.PaymentRequest) (res model.Bill, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".billing.ProcessPayment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !req.Amount.IsPositive() {
		return res, nonPositiveAmount("payment")
	}

	payment := model.Payment{
		Amount:        req.Amount,
		Method:        req.Method,
		TransactionID: uuid.NewString(),
		ProcessedAt:   timezone.Now(),
	}

	res, err = s.modify(ctx, id, func(bill *model.Bill) error {
		bill.PaymentHistory = append(bill.PaymentHistory, payment)
		bill.Recalculate()
		bill.DeriveStatus()

		return nil
	})
	if err != nil {
		return res, err
	}

	scope.SetAttribute("bill.transaction_id", payment.TransactionID)

	s.afterWrite(ctx, EventPaymentProcessed, res)

	return res, nil
}

// ProcessRefund records a refund, which may not exceed what is currently net paid.
func (s *serviceImpl) ProcessRefund(ctx context.Context, id int64, req dto.RefundRequest) (res model.Bill, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".billing.ProcessRefund")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !req.Amount.IsPositive() {
		return res, nonPositiveAmount("refund")
	}

	refund := model.Refund{
		Amount:      req.Amount,
		Reason:      req.Reason,
		Method:      req.Method,
		ProcessedAt: timezone.Now(),
	}

	res, err = s.modify(ctx, id, func(bill *model.Bill) error {
		if net := bill.NetPaid(); refund.Amount.GreaterThan(net) {
			return failure.Conflict(fmt.Sprintf("refund of %s exceeds the %s paid on bill %d", refund.Amount, net, id))
		}

		if refund.Method == "" {
			refund.Method = lastPaymentMethod(bill.PaymentHistory)
		}

		bill.Refunds = append(bill.Refunds, refund)
		bill.Recalculate()
		bill.DeriveStatus()

		return nil
	})
	if err != nil {
		return res, err
	}

	s.afterWrite(ctx, EventRefundProcessed, res)

	return res, nil
}

// AddAdjustment applies a discount, fee or correction on top of the original charges.
// Corrections may be negative but never zero.
func (s *serviceImpl) AddAdjustment(ctx context.Context, id int64, req dto.AdjustmentRequest) (res model.Bill, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".billing.AddAdjustment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	switch {
	case req.Type == model.AdjustmentCorrection && req.Amount.IsZero():
		return res, failure.BadRequestFromString("correction amount must not be zero")
	case req.Type != model.AdjustmentCorrection && !req.Amount.IsPositive():
		return res, nonPositiveAmount(string(req.Type))
	}

	appliedBy := req.AppliedBy
	if appliedBy == "" {
		appliedBy = shared.Operator(ctx)
	}

	adjustment := model.Adjustment{
		Type:      req.Type,
		Amount:    req.Amount,
		Reason:    req.Reason,
		AppliedBy: appliedBy,
		AppliedAt: timezone.Now(),
	}

	res, err = s.modify(ctx, id, func(bill *model.Bill) error {
		bill.Adjustments = append(bill.Adjustments, adjustment)
		bill.Recalculate()
		bill.DeriveStatus()

		return nil
	})
	if err != nil {
		return res, err
	}

	s.afterWrite(ctx, EventAdjustmentApplied, res)

	return res, nil
}

func (s *serviceImpl) GetTaxReport(ctx context.Context, start, end time.Time) (res model.TaxReport, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".billing.GetTaxReport")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if end.Before(start) {
		return res, failure.BadRequestFromString("end_date must not be before start_date")
	}

	bills, err := s.repo.All(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bills for tax report")

		return res, fmt.Errorf("failed to get bills for tax report: %w", err)
	}

	return model.NewTaxReport(bills, start, end), nil
}

// MarkOverdue flags every unsettled bill whose due date passed before asOf and returns the
// bills it changed.
func (s *serviceImpl) MarkOverdue(ctx context.Context, asOf time.Time) (res []model.Bill, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".billing.MarkOverdue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bills, err := s.repo.All(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bills")

		return nil, fmt.Errorf("failed to get bills: %w", err)
	}

	res = []model.Bill{}

	for _, bill := range bills {
		if !bill.IsOverdue(asOf) {
			continue
		}

		updated, err := s.modify(ctx, bill.ID, func(current *model.Bill) error {
			if current.IsOverdue(asOf) {
				current.PaymentStatus = model.PaymentStatusOverdue
			}

			return nil
		})
		if err != nil {
			return res, err
		}

		kafka.Publish(ctx, s.events, kafka.StreamBilling, EventOverdue, billKey(updated), updated)

		res = append(res, updated)
	}

	if len(res) > 0 {
		s.invalidateReports(ctx)
	}

	return res, nil
}

// modify runs fn against the stored bill and stamps UpdatedAt.
func (s *serviceImpl) modify(ctx context.Context, id int64, fn func(bill *model.Bill) error) (model.Bill, error) {
	res, err := s.repo.Modify(ctx, id, func(current model.Bill) (model.Bill, error) {
		next := current.Clone()
		if err := fn(&next); err != nil {
			return current, err
		}

		next.UpdatedAt = timezone.Now()

		return next, nil
	})
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update bill")

		return res, fmt.Errorf("failed to update bill: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) defaultTaxRate() decimal.Decimal {
	rate, err := decimal.NewFromString(s.cfg.Billing.DefaultTaxRate)
	if err != nil || rate.IsNegative() {
		return fallbackTaxRate
	}

	return rate
}

func (s *serviceImpl) afterWrite(ctx context.Context, event string, bill model.Bill) {
	kafka.Publish(ctx, s.events, kafka.StreamBilling, event, billKey(bill), bill)
	s.invalidateReports(ctx)
}

func (s *serviceImpl) invalidateReports(ctx context.Context) {
	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, constant.CacheKeyReportPrefix)
}

func billKey(bill model.Bill) string {
	return fmt.Sprintf("bill:%d", bill.ID)
}

func lastPaymentMethod(payments []model.Payment) string {
	if len(payments) == 0 {
		return ""
	}

	return payments[len(payments)-1].Method
}

func nonPositiveAmount(kind string) error {
	return failure.BadRequestFromString(kind + " amount must be greater than 0")
}
