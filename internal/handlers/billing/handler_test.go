package billing_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelops/config"
	"hotelops/infras/kafka"
	"hotelops/infras/otel/mocks"
	"hotelops/internal/domains/billing/model"
	"hotelops/internal/domains/billing/service"
	reservationModel "hotelops/internal/domains/reservation/model"
	reservationService "hotelops/internal/domains/reservation/service"
	"hotelops/internal/handlers/billing"
	"hotelops/shared/cache"
	gDto "hotelops/shared/dto"
	gRepo "hotelops/shared/repository"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	otl := mocks.NewOtel()
	noCache := cache.NewRedisCache(nil, otl)

	cfg := &config.Config{}
	cfg.Billing.DefaultTaxRate = "10"
	cfg.Billing.PaymentTermDays = 30

	events := kafka.New(cfg)

	reservations := reservationService.New(
		gRepo.NewMemory[reservationModel.Reservation](reservationModel.EntityName, 0, otl, reservationModel.Reservation{
			GuestName:   "Ana Souza",
			RoomNumber:  "101",
			Status:      reservationModel.StatusConfirmed,
			TotalAmount: decimal.NewFromInt(200),
		}),
		nil, nil, events, noCache, cfg, otl,
	)

	svc := service.New(gRepo.NewMemory[model.Bill](model.EntityName, 0, otl), reservations, events, noCache, cfg, otl)

	handler := billing.New(svc, otl)
	router := chi.NewRouter()
	handler.Router(router)

	return router
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var envelope struct {
		Data T `json:"data"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return envelope.Data
}

func TestBillingHandler_PaymentFlow(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, http.MethodPost, "/bills", `{"reservationId":1,"additionalCharges":[15,5],"taxRate":10}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	bill := decode[model.Bill](t, rec)
	assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(242)))
	assert.Regexp(t, `^INV-\d{8}-0001$`, bill.InvoiceNumber)

	rec = do(t, router, http.MethodPost, "/bills/1/payments", `{"amount":242,"method":"Cash"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, model.PaymentStatusPaid, decode[model.Bill](t, rec).PaymentStatus)

	rec = do(t, router, http.MethodPost, "/bills/1/refunds", `{"amount":50,"reason":"late checkout waived"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, model.PaymentStatusPartial, decode[model.Bill](t, rec).PaymentStatus)

	rec = do(t, router, http.MethodPost, "/bills/1/refunds", `{"amount":500,"reason":"goodwill"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, router, http.MethodGet, "/bills?status=partial", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[gDto.List[model.Bill]](t, rec).TotalData)

	rec = do(t, router, http.MethodGet, "/bills?reservation_id=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[gDto.List[model.Bill]](t, rec).TotalData)
}

func TestBillingHandler_Adjustment(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, http.MethodPost, "/bills", `{"reservationId":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/bills/1/adjustments", `{"type":"discount","amount":20,"reason":"loyalty"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	bill := decode[model.Bill](t, rec)
	assert.True(t, bill.Subtotal.Equal(decimal.NewFromInt(180)))
	assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(198)))
}

func TestBillingHandler_Errors(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		code   int
	}{
		{name: "malformed body", method: http.MethodPost, target: "/bills", body: `{`, code: http.StatusBadRequest},
		{name: "missing reservation", method: http.MethodPost, target: "/bills", body: `{}`, code: http.StatusBadRequest},
		{name: "unknown reservation", method: http.MethodPost, target: "/bills", body: `{"reservationId":9}`, code: http.StatusBadRequest},
		{name: "invalid id", method: http.MethodGet, target: "/bills/abc", code: http.StatusBadRequest},
		{name: "unknown bill", method: http.MethodGet, target: "/bills/9", code: http.StatusNotFound},
		{name: "payment without method", method: http.MethodPost, target: "/bills/9/payments", body: `{"amount":10}`, code: http.StatusBadRequest},
		{name: "bad adjustment type", method: http.MethodPost, target: "/bills/9/adjustments", body: `{"type":"bonus","amount":1,"reason":"x"}`, code: http.StatusBadRequest},
		{name: "bad report date", method: http.MethodGet, target: "/bills/tax-report?start_date=yesterday", code: http.StatusBadRequest},
		{name: "reversed report window", method: http.MethodGet, target: "/bills/tax-report?start_date=2026-03-10&end_date=2026-03-01", code: http.StatusBadRequest},
		{name: "bad as_of", method: http.MethodPost, target: "/bills/overdue?as_of=soon", code: http.StatusBadRequest},
		{name: "unknown status filter", method: http.MethodGet, target: "/bills?status=settled", code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, tt.method, tt.target, tt.body)

			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}

func TestBillingHandler_TaxReport(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, http.MethodPost, "/bills", `{"reservationId":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodPost, "/bills/1/payments", `{"amount":220,"method":"Card"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/bills/tax-report", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	report := decode[model.TaxReport](t, rec)
	assert.Equal(t, 1, report.BillCount)
	assert.True(t, report.TotalTaxCollected.Equal(decimal.NewFromInt(20)))
}
