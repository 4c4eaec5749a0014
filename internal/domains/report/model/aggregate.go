package model

import (
	"math"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	billingModel "hotelops/internal/domains/billing/model"
	reservationModel "hotelops/internal/domains/reservation/model"
	roomModel "hotelops/internal/domains/room/model"
	"hotelops/shared/constant"
	"hotelops/shared/timezone"
)

const trendDays = 7

var hundred = decimal.NewFromInt(100)

// Compute folds the three collections into the report for rng as seen at now.
func Compute(
	rng Range,
	now time.Time,
	reservations []reservationModel.Reservation,
	rooms []roomModel.Room,
	bills []billingModel.Bill,
) Report {
	start := rng.Start(now)
	report := Report{
		Range:             rng,
		StartDate:         start,
		GeneratedAt:       now,
		TotalRevenue:      decimal.Zero,
		TotalTaxCollected: decimal.Zero,
		AverageTaxRate:    decimal.Zero,
		TotalRefunds:      decimal.Zero,
		AverageDailyRate:  decimal.Zero,
	}

	paid := []billingModel.Bill{}

	for _, bill := range bills {
		switch bill.PaymentStatus {
		case billingModel.PaymentStatusPending:
			report.OutstandingPayments++
		case billingModel.PaymentStatusPartial:
			report.PartialPayments++
		case billingModel.PaymentStatusPaid:
			if !bill.CreatedAt.Before(start) {
				paid = append(paid, bill)
				report.TotalRevenue = report.TotalRevenue.Add(bill.Subtotal)
				report.TotalTaxCollected = report.TotalTaxCollected.Add(bill.TaxAmount)
			}
		}

		for _, refund := range bill.Refunds {
			if !refund.ProcessedAt.Before(start) {
				report.TotalRefunds = report.TotalRefunds.Add(refund.Amount)
			}
		}
	}

	report.NetRevenue = report.TotalRevenue.Sub(report.TotalRefunds)

	if report.TotalRevenue.IsPositive() {
		report.AverageTaxRate = report.TotalTaxCollected.Mul(hundred).Div(report.TotalRevenue).Round(2)
	}

	for _, reservation := range reservations {
		if reservation.CheckIn.Before(start) {
			continue
		}

		report.TotalBookings++

		if reservation.Status == reservationModel.StatusCancelled {
			report.CancelledBookings++
		}
	}

	report.CancellationRate = percent(report.CancelledBookings, report.TotalBookings)

	if report.TotalBookings > 0 {
		report.AverageDailyRate = report.TotalRevenue.Div(decimal.NewFromInt(int64(report.TotalBookings))).Round(2)
	}

	report.OccupancyRate = percent(countRooms(rooms, roomModel.StatusOccupied), len(rooms))
	report.Charts = Charts{
		Revenue:    revenueSeries(paid),
		RoomStatus: roomStatusDistribution(rooms),
		Occupancy:  occupancyTrend(now, reservations, len(rooms)),
	}

	return report
}

// NewDashboard summarizes the front desk's day at now.
func NewDashboard(now time.Time, reservations []reservationModel.Reservation, rooms []roomModel.Room) Dashboard {
	dashboard := Dashboard{
		GeneratedAt:     now,
		TotalRooms:      len(rooms),
		OccupiedRooms:   countRooms(rooms, roomModel.StatusOccupied),
		OutOfOrderRooms: countRooms(rooms, roomModel.StatusOutOfOrder),
		DirtyRooms:      countRooms(rooms, roomModel.StatusDirty),
		MonthlyRevenue:  decimal.Zero,
	}

	dashboard.OccupancyRate = percent(dashboard.OccupiedRooms, dashboard.TotalRooms)

	today := timezone.StartOfDay(now)
	month := timezone.StartOfMonth(now)
	nextMonth := month.AddDate(0, 1, 0)

	for _, reservation := range reservations {
		if timezone.StartOfDay(reservation.CheckIn).Equal(today) {
			dashboard.TodayArrivals++
		}

		if reservation.Status == reservationModel.StatusPending {
			dashboard.PendingReservations++
		}

		if reservation.Status != reservationModel.StatusCancelled &&
			!reservation.CheckIn.Before(month) && reservation.CheckIn.Before(nextMonth) {
			dashboard.MonthlyRevenue = dashboard.MonthlyRevenue.Add(reservation.TotalAmount)
		}
	}

	return dashboard
}

// revenueSeries buckets paid bills by creation day in chronological order.
func revenueSeries(paid []billingModel.Bill) []SeriesPoint {
	totals := map[time.Time]decimal.Decimal{}
	days := []time.Time{}

	for _, bill := range paid {
		day := timezone.StartOfDay(bill.CreatedAt)
		if _, seen := totals[day]; !seen {
			days = append(days, day)
			totals[day] = decimal.Zero
		}

		totals[day] = totals[day].Add(bill.Subtotal)
	}

	slices.SortFunc(days, time.Time.Compare)

	series := make([]SeriesPoint, 0, len(days))
	for _, day := range days {
		series = append(series, SeriesPoint{Label: timezone.Format(day, constant.ChartDayLabel), Value: totals[day]})
	}

	return series
}

func roomStatusDistribution(rooms []roomModel.Room) []StatusCount {
	distribution := make([]StatusCount, 0, len(roomModel.Statuses))
	for _, status := range roomModel.Statuses {
		distribution = append(distribution, StatusCount{Status: string(status), Count: countRooms(rooms, status)})
	}

	return distribution
}

// occupancyTrend samples each of the trailing days, today last, at the time of day of now.
func occupancyTrend(now time.Time, reservations []reservationModel.Reservation, totalRooms int) []OccupancyPoint {
	trend := make([]OccupancyPoint, 0, trendDays)

	for i := trendDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		occupied := 0

		for _, reservation := range reservations {
			if reservation.Occupies(day) {
				occupied++
			}
		}

		trend = append(trend, OccupancyPoint{
			Label: timezone.Format(day, constant.ChartDayLabel),
			Day:   day,
			Rate:  percent(occupied, totalRooms),
		})
	}

	return trend
}

func countRooms(rooms []roomModel.Room, status roomModel.Status) int {
	count := 0

	for _, room := range rooms {
		if room.Status == status {
			count++
		}
	}

	return count
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}

	return int(math.Round(float64(part) * 100 / float64(whole)))
}
