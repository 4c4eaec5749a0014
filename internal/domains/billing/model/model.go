package model

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"hotelops/shared/constant"
	"hotelops/shared/timezone"
)

const (
	TableName  = "bills"
	EntityName = "bill"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusPartial  PaymentStatus = "Partial"
	PaymentStatusPaid     PaymentStatus = "Paid"
	PaymentStatusOverdue  PaymentStatus = "Overdue"
	PaymentStatusRefunded PaymentStatus = "Refunded"
)

type AdjustmentType string

const (
	AdjustmentDiscount   AdjustmentType = "discount"
	AdjustmentFee        AdjustmentType = "fee"
	AdjustmentCorrection AdjustmentType = "correction"
)

var hundred = decimal.NewFromInt(100)

// AdditionalCharge is one itemized extra. It decodes from a bare amount as well as from an
// object.
type AdditionalCharge struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

func (c *AdditionalCharge) UnmarshalJSON(data []byte) error {
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(data); err == nil {
		*c = AdditionalCharge{Amount: amount}

		return nil
	}

	type plain AdditionalCharge

	var charge plain
	if err := json.Unmarshal(data, &charge); err != nil {
		return fmt.Errorf("invalid additional charge: %w", err)
	}

	*c = AdditionalCharge(charge)

	return nil
}

type Payment struct {
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	TransactionID string          `json:"transactionId"`
	ProcessedAt   time.Time       `json:"processedAt"`
}

type Refund struct {
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason"`
	Method      string          `json:"method"`
	ProcessedAt time.Time       `json:"processedAt"`
}

type Adjustment struct {
	Type      AdjustmentType  `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	AppliedBy string          `json:"appliedBy"`
	AppliedAt time.Time       `json:"appliedAt"`
}

// Signed is the adjustment's effect on the subtotal: discounts subtract, fees and
// corrections add.
func (a Adjustment) Signed() decimal.Decimal {
	if a.Type == AdjustmentDiscount {
		return a.Amount.Neg()
	}

	return a.Amount
}

type Bill struct {
	ID                int64              `json:"id"`
	ReservationID     int64              `json:"reservationId"`
	GuestName         string             `json:"guestName"`
	RoomNumber        string             `json:"roomNumber"`
	RoomCharges       decimal.Decimal    `json:"roomCharges"`
	AdditionalCharges []AdditionalCharge `json:"additionalCharges"`
	TaxRate           decimal.Decimal    `json:"taxRate"`
	OriginalSubtotal  decimal.Decimal    `json:"originalSubtotal"`
	Subtotal          decimal.Decimal    `json:"subtotal"`
	TaxAmount         decimal.Decimal    `json:"taxAmount"`
	TotalAmount       decimal.Decimal    `json:"totalAmount"`
	TotalPaid         decimal.Decimal    `json:"totalPaid"`
	TotalRefunded     decimal.Decimal    `json:"totalRefunded"`
	Balance           decimal.Decimal    `json:"balance"`
	PaymentStatus     PaymentStatus      `json:"paymentStatus"`
	PaymentHistory    []Payment          `json:"paymentHistory"`
	Refunds           []Refund           `json:"refunds"`
	Adjustments       []Adjustment       `json:"adjustments"`
	InvoiceNumber     string             `json:"invoiceNumber"`
	Notes             string             `json:"notes"`
	DueDate           time.Time          `json:"dueDate"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// Recalculate derives every computed amount from charges, adjustments, payments and refunds.
// totalAmount = subtotal + taxAmount holds afterwards.
func (b *Bill) Recalculate() {
	charges := b.RoomCharges
	for _, charge := range b.AdditionalCharges {
		charges = charges.Add(charge.Amount)
	}

	adjustments := decimal.Zero
	for _, adjustment := range b.Adjustments {
		adjustments = adjustments.Add(adjustment.Signed())
	}

	b.OriginalSubtotal = charges
	b.Subtotal = charges.Add(adjustments)
	b.TaxAmount = b.Subtotal.Mul(b.TaxRate).Div(hundred)
	b.TotalAmount = b.Subtotal.Add(b.TaxAmount)

	b.TotalPaid = decimal.Zero
	for _, payment := range b.PaymentHistory {
		b.TotalPaid = b.TotalPaid.Add(payment.Amount)
	}

	b.TotalRefunded = decimal.Zero
	for _, refund := range b.Refunds {
		b.TotalRefunded = b.TotalRefunded.Add(refund.Amount)
	}

	b.Balance = b.TotalAmount.Sub(b.NetPaid())
}

// NetPaid is what the guest has paid minus what was refunded.
func (b *Bill) NetPaid() decimal.Decimal {
	return b.TotalPaid.Sub(b.TotalRefunded)
}

// DeriveStatus sets the payment status from net paid. An overdue bill stays overdue until it
// is settled or refunded.
func (b *Bill) DeriveStatus() {
	net := b.NetPaid()

	var status PaymentStatus

	switch {
	case len(b.Refunds) > 0 && !net.IsPositive():
		status = PaymentStatusRefunded
	case net.GreaterThanOrEqual(b.TotalAmount):
		status = PaymentStatusPaid
	case net.IsPositive():
		status = PaymentStatusPartial
	default:
		status = PaymentStatusPending
	}

	if b.PaymentStatus == PaymentStatusOverdue && (status == PaymentStatusPending || status == PaymentStatusPartial) {
		return
	}

	b.PaymentStatus = status
}

// IsOverdue reports whether an unsettled bill is past its due date at asOf.
func (b *Bill) IsOverdue(asOf time.Time) bool {
	unsettled := b.PaymentStatus == PaymentStatusPending || b.PaymentStatus == PaymentStatusPartial

	return unsettled && !b.DueDate.IsZero() && b.DueDate.Before(asOf)
}

func InvoiceNumber(createdAt time.Time, id int64) string {
	return fmt.Sprintf("INV-%s-%04d", timezone.Format(createdAt, constant.InvoiceDay), id)
}

func (b Bill) Identity() int64 {
	return b.ID
}

// WithIdentity also issues the invoice number, which is derived from the identity.
func (b Bill) WithIdentity(id int64) Bill {
	b.ID = id
	if b.InvoiceNumber == "" {
		b.InvoiceNumber = InvoiceNumber(b.CreatedAt, id)
	}

	return b
}

func (b Bill) Clone() Bill {
	b.AdditionalCharges = slices.Clone(b.AdditionalCharges)
	b.PaymentHistory = slices.Clone(b.PaymentHistory)
	b.Refunds = slices.Clone(b.Refunds)
	b.Adjustments = slices.Clone(b.Adjustments)

	return b
}

// TaxReport aggregates paid bills created inside a window. AverageTaxRate is the plain mean
// of per-bill rates; EffectiveTaxRate weights each rate by the bill's subtotal.
type TaxReport struct {
	StartDate         time.Time       `json:"startDate"`
	EndDate           time.Time       `json:"endDate"`
	TotalTaxCollected decimal.Decimal `json:"totalTaxCollected"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	BillCount         int             `json:"billCount"`
	AverageTaxRate    decimal.Decimal `json:"averageTaxRate"`
	EffectiveTaxRate  decimal.Decimal `json:"effectiveTaxRate"`
}

func NewTaxReport(bills []Bill, start, end time.Time) TaxReport {
	report := TaxReport{
		StartDate:         start,
		EndDate:           end,
		TotalTaxCollected: decimal.Zero,
		TotalRevenue:      decimal.Zero,
		AverageTaxRate:    decimal.Zero,
		EffectiveTaxRate:  decimal.Zero,
	}

	rates := decimal.Zero

	for _, bill := range bills {
		if bill.PaymentStatus != PaymentStatusPaid || bill.CreatedAt.Before(start) || bill.CreatedAt.After(end) {
			continue
		}

		report.BillCount++
		report.TotalTaxCollected = report.TotalTaxCollected.Add(bill.TaxAmount)
		report.TotalRevenue = report.TotalRevenue.Add(bill.Subtotal)
		rates = rates.Add(bill.TaxRate)
	}

	if report.BillCount > 0 {
		report.AverageTaxRate = rates.Div(decimal.NewFromInt(int64(report.BillCount)))
	}

	if report.TotalRevenue.IsPositive() {
		report.EffectiveTaxRate = report.TotalTaxCollected.Mul(hundred).Div(report.TotalRevenue)
	}

	return report
}
