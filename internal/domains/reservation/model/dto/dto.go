package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"hotelops/internal/domains/reservation/model"
)

type CreateReservationRequest struct {
	GuestID            int64            `json:"guestId"            validate:"required,gt=0"`
	RoomID             int64            `json:"roomId"             validate:"required,gt=0"`
	CheckIn            time.Time        `json:"checkIn"            validate:"required"`
	CheckOut           time.Time        `json:"checkOut"           validate:"required,gtfield=CheckIn"`
	Status             model.Status     `json:"status"             validate:"omitempty,oneof=Pending Confirmed"`
	TotalAmount        *decimal.Decimal `json:"totalAmount"        validate:"omitempty,gte=0"`
	GuestCount         int              `json:"guestCount"         validate:"omitempty,gte=1"`
	SpecialRequests    string           `json:"specialRequests"    validate:"omitempty,max=1000"`
	CancellationPolicy string           `json:"cancellationPolicy" validate:"omitempty,oneof=standard graduated"`
	CorporateAccountID int64            `json:"corporateAccountId" validate:"omitempty,gt=0"`
}

type GroupRoom struct {
	GuestID         int64            `json:"guestId"         validate:"required,gt=0"`
	RoomID          int64            `json:"roomId"          validate:"required,gt=0"`
	TotalAmount     *decimal.Decimal `json:"totalAmount"     validate:"omitempty,gte=0"`
	GuestCount      int              `json:"guestCount"      validate:"omitempty,gte=1"`
	SpecialRequests string           `json:"specialRequests" validate:"omitempty,max=1000"`
}

// CreateGroupReservationRequest books several rooms together. Every member shares the stay
// dates, policy and corporate account.
type CreateGroupReservationRequest struct {
	CheckIn            time.Time    `json:"checkIn"            validate:"required"`
	CheckOut           time.Time    `json:"checkOut"           validate:"required,gtfield=CheckIn"`
	Status             model.Status `json:"status"             validate:"omitempty,oneof=Pending Confirmed"`
	SpecialRequests    string       `json:"specialRequests"    validate:"omitempty,max=1000"`
	CancellationPolicy string       `json:"cancellationPolicy" validate:"omitempty,oneof=standard graduated"`
	CorporateAccountID int64        `json:"corporateAccountId" validate:"omitempty,gt=0"`
	GroupRooms         []GroupRoom  `json:"groupRooms"         validate:"required,min=1,dive"`
}

// Member expands one group room into a single reservation request.
func (c *CreateGroupReservationRequest) Member(room GroupRoom) CreateReservationRequest {
	specialRequests := room.SpecialRequests
	if specialRequests == "" {
		specialRequests = c.SpecialRequests
	}

	return CreateReservationRequest{
		GuestID:            room.GuestID,
		RoomID:             room.RoomID,
		CheckIn:            c.CheckIn,
		CheckOut:           c.CheckOut,
		Status:             c.Status,
		TotalAmount:        room.TotalAmount,
		GuestCount:         room.GuestCount,
		SpecialRequests:    specialRequests,
		CancellationPolicy: c.CancellationPolicy,
		CorporateAccountID: c.CorporateAccountID,
	}
}

// UpdateReservationRequest is a partial edit. ModifiedBy and ModificationReason describe the
// edit itself and are recorded in the history, never merged into the reservation.
type UpdateReservationRequest struct {
	RoomID             *int64           `json:"roomId"             validate:"omitempty,gt=0"`
	CheckIn            *time.Time       `json:"checkIn"`
	CheckOut           *time.Time       `json:"checkOut"`
	Status             *model.Status    `json:"status"             validate:"omitempty,oneof=Pending Confirmed 'Checked In' 'Checked Out' Cancelled"`
	TotalAmount        *decimal.Decimal `json:"totalAmount"        validate:"omitempty,gte=0"`
	GuestCount         *int             `json:"guestCount"         validate:"omitempty,gte=1"`
	SpecialRequests    *string          `json:"specialRequests"    validate:"omitempty,max=1000"`
	CancellationPolicy *string          `json:"cancellationPolicy" validate:"omitempty,oneof=standard graduated"`

	ModifiedBy         string `json:"modifiedBy"         validate:"omitempty,max=100"`
	ModificationReason string `json:"modificationReason" validate:"omitempty,max=500"`
}

func (u *UpdateReservationRequest) IsEmpty() bool {
	return u.RoomID == nil && u.CheckIn == nil && u.CheckOut == nil && u.Status == nil &&
		u.TotalAmount == nil && u.GuestCount == nil && u.SpecialRequests == nil && u.CancellationPolicy == nil
}

type TransitionRequest struct {
	ModifiedBy string `json:"modifiedBy" validate:"omitempty,max=100"`
	Reason     string `json:"reason"     validate:"omitempty,max=500"`
}

// CancelRequest cancels a reservation. A missing or zero refund amount lets the
// reservation's refund policy decide.
type CancelRequest struct {
	Reason       string           `json:"reason"       validate:"required,max=500"`
	RefundAmount *decimal.Decimal `json:"refundAmount" validate:"omitempty,gte=0"`
	ModifiedBy   string           `json:"modifiedBy"   validate:"omitempty,max=100"`
}

type ReservationFilter struct {
	Status  string
	GuestID int64
	RoomID  int64
}

func (f ReservationFilter) Match(r model.Reservation) bool {
	if f.Status != "" && string(r.Status) != f.Status {
		return false
	}

	if f.GuestID > 0 && r.GuestID != f.GuestID {
		return false
	}

	if f.RoomID > 0 && r.RoomID != f.RoomID {
		return false
	}

	return true
}
