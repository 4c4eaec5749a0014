package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hotelops/shared/failure"
	"hotelops/shared/timezone"
)

type Range string

const (
	Range7Days     Range = "7days"
	Range30Days    Range = "30days"
	Range90Days    Range = "90days"
	RangeThisMonth Range = "thismonth"

	DefaultRange = Range30Days
)

// ParseRange reads a caller-selected window, defaulting to the last 30 days.
func ParseRange(value string) (Range, error) {
	switch rng := Range(strings.ToLower(strings.TrimSpace(value))); rng {
	case "":
		return DefaultRange, nil
	case Range7Days, Range30Days, Range90Days, RangeThisMonth:
		return rng, nil
	default:
		return "", failure.BadRequestFromString(fmt.Sprintf("range must be one of %s %s %s %s", Range7Days, Range30Days, Range90Days, RangeThisMonth))
	}
}

// Start is the inclusive lower bound of the window ending at now.
func (r Range) Start(now time.Time) time.Time {
	switch r {
	case Range7Days:
		return now.AddDate(0, 0, -7)
	case Range90Days:
		return now.AddDate(0, 0, -90)
	case RangeThisMonth:
		return timezone.StartOfMonth(now)
	default:
		return now.AddDate(0, 0, -30)
	}
}

type SeriesPoint struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type OccupancyPoint struct {
	Label string    `json:"label"`
	Day   time.Time `json:"day"`
	Rate  int       `json:"rate"`
}

type Charts struct {
	Revenue    []SeriesPoint    `json:"revenue"`
	RoomStatus []StatusCount    `json:"roomStatus"`
	Occupancy  []OccupancyPoint `json:"occupancy"`
}

// Report summarizes one window. Outstanding and partial payment counts cover every bill
// since they describe the current backlog, not the window.
type Report struct {
	Range               Range           `json:"range"`
	StartDate           time.Time       `json:"startDate"`
	GeneratedAt         time.Time       `json:"generatedAt"`
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
	TotalTaxCollected   decimal.Decimal `json:"totalTaxCollected"`
	AverageTaxRate      decimal.Decimal `json:"averageTaxRate"`
	TotalRefunds        decimal.Decimal `json:"totalRefunds"`
	NetRevenue          decimal.Decimal `json:"netRevenue"`
	OccupancyRate       int             `json:"occupancyRate"`
	AverageDailyRate    decimal.Decimal `json:"averageDailyRate"`
	TotalBookings       int             `json:"totalBookings"`
	CancelledBookings   int             `json:"cancelledBookings"`
	CancellationRate    int             `json:"cancellationRate"`
	OutstandingPayments int             `json:"outstandingPayments"`
	PartialPayments     int             `json:"partialPayments"`
	Charts              Charts          `json:"charts"`
}

type Dashboard struct {
	GeneratedAt         time.Time       `json:"generatedAt"`
	TotalRooms          int             `json:"totalRooms"`
	OccupiedRooms       int             `json:"occupiedRooms"`
	OccupancyRate       int             `json:"occupancyRate"`
	OutOfOrderRooms     int             `json:"outOfOrderRooms"`
	DirtyRooms          int             `json:"dirtyRooms"`
	TodayArrivals       int             `json:"todayArrivals"`
	MonthlyRevenue      decimal.Decimal `json:"monthlyRevenue"`
	PendingReservations int             `json:"pendingReservations"`
}
