package model

import (
	"maps"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	gModel "hotelops/shared/model"
	"hotelops/shared/timezone"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusConfirmed  Status = "Confirmed"
	StatusCheckedIn  Status = "Checked In"
	StatusCheckedOut Status = "Checked Out"
	StatusCancelled  Status = "Cancelled"
)

// rank orders the forward progression; Cancelled sits outside it.
var rank = map[Status]int{
	StatusPending:    0,
	StatusConfirmed:  1,
	StatusCheckedIn:  2,
	StatusCheckedOut: 3,
}

func (s Status) Terminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

// CanTransition reports whether a reservation may move from s to next. Progress only moves
// forward, a stay can only end after check-in, and Cancelled is reachable from any
// non-terminal state.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}

	if s.Terminal() {
		return false
	}

	if next == StatusCancelled {
		return true
	}

	from, ok := rank[s]
	if !ok {
		return false
	}

	to, ok := rank[next]
	if !ok || to <= from {
		return false
	}

	return next != StatusCheckedOut || s == StatusCheckedIn
}

type CorporateAccount struct {
	GuestID           int64           `json:"guestId"`
	CompanyName       string          `json:"companyName"`
	PaymentTerms      string          `json:"paymentTerms"`
	CreditLimit       decimal.Decimal `json:"creditLimit"`
	CorporateDiscount decimal.Decimal `json:"corporateDiscount"`
}

type Modification struct {
	Timestamp  time.Time      `json:"timestamp"`
	Changes    gModel.Changes `json:"changes"`
	ModifiedBy string         `json:"modifiedBy"`
	Reason     string         `json:"reason"`
}

type Cancellation struct {
	CancelledAt       time.Time       `json:"cancelledAt"`
	Reason            string          `json:"reason"`
	RefundAmount      decimal.Decimal `json:"refundAmount"`
	RefundPercentage  decimal.Decimal `json:"refundPercentage"`
	RefundProcessed   bool            `json:"refundProcessed"`
	Policy            string          `json:"policy"`
	DaysBeforeCheckIn int             `json:"daysBeforeCheckIn"`
}

type Reservation struct {
	ID                  int64             `json:"id"`
	GuestID             int64             `json:"guestId"`
	RoomID              int64             `json:"roomId"`
	GuestName           string            `json:"guestName"`
	RoomNumber          string            `json:"roomNumber"`
	CheckIn             time.Time         `json:"checkIn"`
	CheckOut            time.Time         `json:"checkOut"`
	Status              Status            `json:"status"`
	TotalAmount         decimal.Decimal   `json:"totalAmount"`
	GuestCount          int               `json:"guestCount"`
	SpecialRequests     string            `json:"specialRequests"`
	IsGroupBooking      bool              `json:"isGroupBooking"`
	GroupID             string            `json:"groupId,omitempty"`
	GroupSize           int               `json:"groupSize,omitempty"`
	CorporateAccount    *CorporateAccount `json:"corporateAccount,omitempty"`
	CancellationPolicy  string            `json:"cancellationPolicy"`
	ModificationHistory []Modification    `json:"modificationHistory"`
	Cancellation        *Cancellation     `json:"cancellation,omitempty"`
	CreatedAt           time.Time         `json:"createdAt"`
	LastModified        *time.Time        `json:"lastModified,omitempty"`
}

// Nights counts billable nights; any part of a day is a night.
func (r Reservation) Nights() int {
	return timezone.CeilDays(r.CheckIn, r.CheckOut)
}

// Occupies reports whether the reservation holds its room during day.
func (r Reservation) Occupies(day time.Time) bool {
	return r.Status != StatusCancelled && !r.CheckIn.After(day) && day.Before(r.CheckOut)
}

func (r Reservation) Identity() int64 {
	return r.ID
}

func (r Reservation) WithIdentity(id int64) Reservation {
	r.ID = id

	return r
}

func (r Reservation) Clone() Reservation {
	if r.CorporateAccount != nil {
		account := *r.CorporateAccount
		r.CorporateAccount = &account
	}

	if r.Cancellation != nil {
		cancellation := *r.Cancellation
		r.Cancellation = &cancellation
	}

	if r.LastModified != nil {
		lastModified := *r.LastModified
		r.LastModified = &lastModified
	}

	if r.ModificationHistory != nil {
		history := slices.Clone(r.ModificationHistory)
		for i := range history {
			history[i].Changes = maps.Clone(history[i].Changes)
		}

		r.ModificationHistory = history
	}

	return r
}

// GroupSummary describes every reservation booked under one group id.
type GroupSummary struct {
	GroupID      string          `json:"groupId"`
	TotalRooms   int             `json:"totalRooms"`
	TotalGuests  int             `json:"totalGuests"`
	CheckIn      time.Time       `json:"checkIn"`
	CheckOut     time.Time       `json:"checkOut"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Reservations []Reservation   `json:"reservations"`
}

func NewGroupSummary(groupID string, members []Reservation) GroupSummary {
	summary := GroupSummary{
		GroupID:      groupID,
		TotalRooms:   len(members),
		TotalAmount:  decimal.Zero,
		Reservations: members,
	}

	for _, member := range members {
		guests := member.GuestCount
		if guests <= 0 {
			guests = 1
		}

		summary.TotalGuests += guests
		summary.TotalAmount = summary.TotalAmount.Add(member.TotalAmount)
	}

	if len(members) > 0 {
		summary.CheckIn = members[0].CheckIn
		summary.CheckOut = members[0].CheckOut
	}

	return summary
}
