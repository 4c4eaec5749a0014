package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hotelops/internal/domains/billing/model"
	"hotelops/shared/validator"
)

// CreateBillRequest opens a bill for a reservation. Room charges default to the
// reservation's total and the tax rate to the configured default.
type CreateBillRequest struct {
	ReservationID     int64                    `json:"reservationId"     validate:"required,gt=0"`
	RoomCharges       *decimal.Decimal         `json:"roomCharges"       validate:"omitempty,gte=0"`
	AdditionalCharges []model.AdditionalCharge `json:"additionalCharges"`
	TaxRate           *decimal.Decimal         `json:"taxRate"           validate:"omitempty,gte=0,lte=100"`
	Notes             string                   `json:"notes"             validate:"omitempty,max=1000"`
}

type UpdateBillRequest struct {
	RoomCharges       *decimal.Decimal          `json:"roomCharges"       validate:"omitempty,gte=0"`
	AdditionalCharges *[]model.AdditionalCharge `json:"additionalCharges"`
	TaxRate           *decimal.Decimal          `json:"taxRate"           validate:"omitempty,gte=0,lte=100"`
	Notes             *string                   `json:"notes"             validate:"omitempty,max=1000"`
	DueDate           *time.Time                `json:"dueDate"`
}

func (u *UpdateBillRequest) IsEmpty() bool {
	return u.RoomCharges == nil && u.AdditionalCharges == nil && u.TaxRate == nil && u.Notes == nil && u.DueDate == nil
}

// Reprices reports whether the update touches anything that feeds the totals.
func (u *UpdateBillRequest) Reprices() bool {
	return u.RoomCharges != nil || u.AdditionalCharges != nil || u.TaxRate != nil
}

type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Method string          `json:"method" validate:"required,max=50"`
}

type RefundRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Reason string          `json:"reason" validate:"required,max=500"`
	Method string          `json:"method" validate:"omitempty,max=50"`
}

type AdjustmentRequest struct {
	Type      model.AdjustmentType `json:"type"      validate:"required,oneof=discount fee correction"`
	Amount    decimal.Decimal      `json:"amount"    validate:"required"`
	Reason    string               `json:"reason"    validate:"required,max=500"`
	AppliedBy string               `json:"appliedBy" validate:"omitempty,max=100"`
}

type BillFilter struct {
	ReservationID int64
	PaymentStatus string
}

// Validate checks the status filter. Matching is case-insensitive so the check is too.
func (f BillFilter) Validate() error {
	return validator.ValidateParam("status", strings.ToLower(f.PaymentStatus), "omitempty,oneof=pending partial paid overdue refunded") //nolint:wrapcheck
}

func (f BillFilter) Match(b model.Bill) bool {
	if f.ReservationID > 0 && b.ReservationID != f.ReservationID {
		return false
	}

	if f.PaymentStatus != "" && !strings.EqualFold(string(b.PaymentStatus), f.PaymentStatus) {
		return false
	}

	return true
}
