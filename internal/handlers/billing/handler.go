package billing

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotelops/infras/otel"
	"hotelops/internal/domains/billing/model/dto"
	"hotelops/internal/domains/billing/service"
	"hotelops/shared"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/failure"
	"hotelops/shared/timezone"
	"hotelops/shared/validator"
	"hotelops/transport/http/response"
)

type Handler struct {
	service service.Billing
	otel    otel.Otel
}

func New(service service.Billing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bills", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBill)
		routerGroup.Get("/", handler.GetBills)
		routerGroup.Get("/tax-report", handler.GetTaxReport)
		routerGroup.Post("/overdue", handler.MarkOverdue)
		routerGroup.Get("/{id}", handler.GetBillByID)
		routerGroup.Patch("/{id}", handler.UpdateBill)
		routerGroup.Delete("/{id}", handler.DeleteBill)
		routerGroup.Post("/{id}/payments", handler.ProcessPayment)
		routerGroup.Post("/{id}/refunds", handler.ProcessRefund)
		routerGroup.Post("/{id}/adjustments", handler.AddAdjustment)
	})
}

// CreateBill opens the bill of a reservation.
// @Summary Create a new bill
// @Tags Billing
// @Accept json
// @Produce json
// @Param request body dto.CreateBillRequest true "Create Bill Request"
// @Success 201 {object} response.Data[model.Bill]
// @Failure 400 {object} response.Error
// @Router /v1/bills [post]
func (handler *Handler) CreateBill(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBill")
	defer scope.End()

	req := dto.CreateBillRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	bill, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create bill")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Bill " + bill.InvoiceNumber + " created by " + shared.Operator(ctx))

	response.WithJSON(writer, http.StatusCreated, bill)
}

// @Summary Get all bills
// @Tags Billing
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param reservation_id query int false "Filter by reservation"
// @Param status query string false "Filter by payment status"
// @Success 200 {object} response.Data[gDto.List[model.Bill]]
// @Failure 400 {object} response.Error
// @Router /v1/bills [get]
func (handler *Handler) GetBills(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBills")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	query := r.URL.Query()
	filter := dto.BillFilter{PaymentStatus: query.Get(constant.RequestParamStatus)}

	if reservationID := query.Get(constant.RequestParamReservationID); reservationID != "" {
		id, err := shared.ParseID(reservationID)
		if err != nil {
			response.WithError(w, err)

			return
		}

		filter.ReservationID = id
	}

	if err := filter.Validate(); err != nil {
		response.WithError(w, err)

		return
	}

	bills, err := handler.service.GetAll(ctx, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bills")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, gDto.NewList(bills, queryParams))
}

// GetTaxReport aggregates paid bills created between start_date and end_date. Both default
// to the current month to date; a bare date covers the whole day.
// @Summary Tax report
// @Tags Billing
// @Produce json
// @Param start_date query string false "Window start (YYYY-MM-DD or RFC3339)"
// @Param end_date query string false "Window end (YYYY-MM-DD or RFC3339)"
// @Success 200 {object} response.Data[model.TaxReport]
// @Failure 400 {object} response.Error
// @Router /v1/bills/tax-report [get]
func (handler *Handler) GetTaxReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTaxReport")
	defer scope.End()

	now := timezone.Now()
	query := r.URL.Query()

	start, err := parseDate(query.Get(constant.RequestParamStart), timezone.StartOfMonth(now), false)
	if err != nil {
		response.WithError(w, err)

		return
	}

	end, err := parseDate(query.Get(constant.RequestParamEnd), now, true)
	if err != nil {
		response.WithError(w, err)

		return
	}

	report, err := handler.service.GetTaxReport(ctx, start, end)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tax report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, report)
}

// MarkOverdue flags unsettled bills past their due date and returns the ones it changed.
// @Summary Mark overdue bills
// @Tags Billing
// @Produce json
// @Param as_of query string false "Reference time (YYYY-MM-DD or RFC3339), defaults to now"
// @Success 200 {object} response.Data[gDto.List[model.Bill]]
// @Failure 400 {object} response.Error
// @Router /v1/bills/overdue [post]
func (handler *Handler) MarkOverdue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkOverdue")
	defer scope.End()

	asOf, err := parseDate(r.URL.Query().Get(constant.RequestParamAsOf), timezone.Now(), false)
	if err != nil {
		response.WithError(w, err)

		return
	}

	bills, err := handler.service.MarkOverdue(ctx, asOf)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark overdue bills")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, gDto.NewList(bills, gDto.QueryParams{}))
}

// @Summary Get a bill by ID
// @Tags Billing
// @Produce json
// @Param id path int true "Bill ID"
// @Success 200 {object} response.Data[model.Bill]
// @Failure 404 {object} response.Error
// @Router /v1/bills/{id} [get]
func (handler *Handler) GetBillByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBillByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	bill, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to get bill by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bill)
}

// @Summary Update a bill by ID
// @Tags Billing
// @Accept json
// @Produce json
// @Param id path int true "Bill ID"
// @Param request body dto.UpdateBillRequest true "Update Bill Request"
// @Success 200 {object} response.Data[model.Bill]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bills/{id} [patch]
func (handler *Handler) UpdateBill(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBill")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateBillRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	bill, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to update bill")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bill)
}

// @Summary Delete a bill by ID
// @Tags Billing
// @Produce json
// @Param id path int true "Bill ID"
// @Success 200 {object} response.Data[model.Bill]
// @Failure 404 {object} response.Error
// @Router /v1/bills/{id} [delete]
func (handler *Handler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBill")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	bill, err := handler.service.Delete(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to delete bill")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bill)
}

// @Summary Record a payment
// @Tags Billing
// @Accept json
// @Produce json
// @Param id path int true "Bill ID"
// @Param request body dto.PaymentRequest true "Payment Request"
// @Success 200 {object} response.Data[model.Bill]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bills/{id}/payments [post]
func (handler *Handler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ProcessPayment")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.PaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	bill, err := handler.service.ProcessPayment(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to process payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bill)
}

// @Summary Record a refund
// @Tags Billing
// @Accept json
// @Produce json
// @Param id path int true "Bill ID"
// @Param request body dto.RefundRequest true "Refund Request"
// @Success 200 {object} response.Data[model.Bill]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bills/{id}/refunds [post]
func (handler *Handler) ProcessRefund(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ProcessRefund")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.RefundRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	bill, err := handler.service.ProcessRefund(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to process refund")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bill)
}

// @Summary Apply a discount, fee or correction
// @Tags Billing
// @Accept json
// @Produce json
// @Param id path int true "Bill ID"
// @Param request body dto.AdjustmentRequest true "Adjustment Request"
// @Success 200 {object} response.Data[model.Bill]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bills/{id}/adjustments [post]
func (handler *Handler) AddAdjustment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddAdjustment")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.AdjustmentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	bill, err := handler.service.AddAdjustment(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to add adjustment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bill)
}

// parseDate accepts a calendar day or an RFC3339 timestamp. With endOfDay a calendar day
// resolves to its last instant.
func parseDate(value string, fallback time.Time, endOfDay bool) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}

	if day, err := timezone.Parse(constant.DayFormat, value); err == nil {
		if endOfDay {
			return day.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
		}

		return day, nil
	}

	parsed, err := time.Parse(constant.DateFormat, value)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString("dates must be YYYY-MM-DD or RFC3339: " + value)
	}

	return parsed, nil
}
