package model_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingModel "hotelops/internal/domains/billing/model"
	"hotelops/internal/domains/report/model"
	reservationModel "hotelops/internal/domains/reservation/model"
	roomModel "hotelops/internal/domains/room/model"
	"hotelops/shared/failure"
)

var now = time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func daysAgo(n int) time.Time {
	return now.AddDate(0, 0, -n)
}

func rooms() []roomModel.Room {
	return []roomModel.Room{
		{ID: 1, Status: roomModel.StatusOccupied},
		{ID: 2, Status: roomModel.StatusOccupied},
		{ID: 3, Status: roomModel.StatusAvailable},
		{ID: 4, Status: roomModel.StatusDirty},
		{ID: 5, Status: roomModel.StatusOutOfOrder},
		{ID: 6, Status: roomModel.StatusAvailable},
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		value    string
		expected model.Range
	}{
		{value: "", expected: model.Range30Days},
		{value: "7days", expected: model.Range7Days},
		{value: "90DAYS", expected: model.Range90Days},
		{value: "thismonth", expected: model.RangeThisMonth},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			rng, err := model.ParseRange(tt.value)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, rng)
		})
	}

	_, err := model.ParseRange("yesterday")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestRangeStart(t *testing.T) {
	assert.Equal(t, daysAgo(7), model.Range7Days.Start(now))
	assert.Equal(t, daysAgo(30), model.Range30Days.Start(now))
	assert.Equal(t, daysAgo(90), model.Range90Days.Start(now))
	assert.Equal(t, 1, model.RangeThisMonth.Start(now).Day())
}

func TestCompute(t *testing.T) {
	reservations := []reservationModel.Reservation{
		{CheckIn: daysAgo(2), CheckOut: daysAgo(-1), Status: reservationModel.StatusCheckedIn},
		{CheckIn: daysAgo(3), CheckOut: daysAgo(1), Status: reservationModel.StatusCheckedOut},
		{CheckIn: daysAgo(5), CheckOut: daysAgo(4), Status: reservationModel.StatusCancelled},
		{CheckIn: daysAgo(1), CheckOut: daysAgo(-2), Status: reservationModel.StatusConfirmed},
		{CheckIn: daysAgo(40), CheckOut: daysAgo(38), Status: reservationModel.StatusCheckedOut},
	}

	bills := []billingModel.Bill{
		{PaymentStatus: billingModel.PaymentStatusPaid, Subtotal: dec("200"), TaxAmount: dec("20"), CreatedAt: daysAgo(3)},
		{PaymentStatus: billingModel.PaymentStatusPaid, Subtotal: dec("100"), TaxAmount: dec("10"), CreatedAt: daysAgo(3).Add(time.Hour)},
		{PaymentStatus: billingModel.PaymentStatusPaid, Subtotal: dec("300"), TaxAmount: dec("30"), CreatedAt: daysAgo(1)},
		{PaymentStatus: billingModel.PaymentStatusPaid, Subtotal: dec("999"), TaxAmount: dec("99"), CreatedAt: daysAgo(45)},
		{PaymentStatus: billingModel.PaymentStatusPending, Subtotal: dec("50"), CreatedAt: daysAgo(45)},
		{PaymentStatus: billingModel.PaymentStatusPartial, Subtotal: dec("80"), CreatedAt: daysAgo(2),
			Refunds: []billingModel.Refund{{Amount: dec("15"), ProcessedAt: daysAgo(1)}, {Amount: dec("40"), ProcessedAt: daysAgo(50)}}},
	}

	report := model.Compute(model.Range30Days, now, reservations, rooms(), bills)

	assert.True(t, report.TotalRevenue.Equal(dec("600")), report.TotalRevenue.String())
	assert.True(t, report.TotalTaxCollected.Equal(dec("60")))
	assert.True(t, report.AverageTaxRate.Equal(dec("10")), report.AverageTaxRate.String())
	assert.True(t, report.TotalRefunds.Equal(dec("15")), "refunds outside the window are excluded")
	assert.True(t, report.NetRevenue.Equal(dec("585")))
	assert.Equal(t, 33, report.OccupancyRate)
	assert.Equal(t, 4, report.TotalBookings)
	assert.Equal(t, 1, report.CancelledBookings)
	assert.Equal(t, 25, report.CancellationRate)
	assert.True(t, report.AverageDailyRate.Equal(dec("150")))
	assert.Equal(t, 1, report.OutstandingPayments, "backlog counts are not window filtered")
	assert.Equal(t, 1, report.PartialPayments)

	require.Len(t, report.Charts.Revenue, 2)
	assert.Equal(t, "Mar 17", report.Charts.Revenue[0].Label)
	assert.True(t, report.Charts.Revenue[0].Value.Equal(dec("300")))
	assert.Equal(t, "Mar 19", report.Charts.Revenue[1].Label)

	require.Len(t, report.Charts.RoomStatus, len(roomModel.Statuses))
	assert.Equal(t, model.StatusCount{Status: string(roomModel.StatusAvailable), Count: 2}, report.Charts.RoomStatus[0])
	assert.Equal(t, model.StatusCount{Status: string(roomModel.StatusOutOfOrder), Count: 1}, report.Charts.RoomStatus[len(roomModel.Statuses)-1])

	require.Len(t, report.Charts.Occupancy, 7)
	assert.Equal(t, "Mar 14", report.Charts.Occupancy[0].Label)
	assert.Equal(t, "Mar 20", report.Charts.Occupancy[6].Label)
	// today: the checked-in stay and the stay that arrived yesterday
	assert.Equal(t, 33, report.Charts.Occupancy[6].Rate)
	// two days ago: the checked-in and the checked-out stay
	assert.Equal(t, 33, report.Charts.Occupancy[4].Rate)
	// the cancelled stay never counts
	assert.Equal(t, 0, report.Charts.Occupancy[1].Rate)
}

func TestComputeEmpty(t *testing.T) {
	report := model.Compute(model.Range7Days, now, nil, nil, nil)

	assert.Zero(t, report.OccupancyRate)
	assert.Zero(t, report.CancellationRate)
	assert.True(t, report.AverageDailyRate.IsZero())
	assert.True(t, report.AverageTaxRate.IsZero())
	assert.Empty(t, report.Charts.Revenue)
	assert.Len(t, report.Charts.Occupancy, 7)
}

func TestNewDashboard(t *testing.T) {
	reservations := []reservationModel.Reservation{
		{CheckIn: now.Add(-2 * time.Hour), Status: reservationModel.StatusConfirmed, TotalAmount: dec("200")},
		{CheckIn: daysAgo(5), Status: reservationModel.StatusCheckedIn, TotalAmount: dec("300")},
		{CheckIn: daysAgo(6), Status: reservationModel.StatusCancelled, TotalAmount: dec("900")},
		{CheckIn: daysAgo(-3), Status: reservationModel.StatusPending, TotalAmount: dec("150")},
		{CheckIn: daysAgo(30), Status: reservationModel.StatusCheckedOut, TotalAmount: dec("500")},
	}

	dashboard := model.NewDashboard(now, reservations, rooms())

	assert.Equal(t, 6, dashboard.TotalRooms)
	assert.Equal(t, 2, dashboard.OccupiedRooms)
	assert.Equal(t, 33, dashboard.OccupancyRate)
	assert.Equal(t, 1, dashboard.OutOfOrderRooms)
	assert.Equal(t, 1, dashboard.DirtyRooms)
	assert.Equal(t, 1, dashboard.TodayArrivals)
	assert.Equal(t, 1, dashboard.PendingReservations)
	assert.True(t, dashboard.MonthlyRevenue.Equal(dec("650")), dashboard.MonthlyRevenue.String())
}
