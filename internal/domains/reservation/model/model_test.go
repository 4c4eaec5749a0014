package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelops/internal/domains/reservation/model"
	gModel "hotelops/shared/model"
)

func TestRefundPolicy_Standard(t *testing.T) {
	policy, ok := model.LookupRefundPolicy(model.PolicyStandard)
	require.True(t, ok)

	total := decimal.NewFromInt(400)

	tests := []struct {
		days int
		want string
	}{
		{days: 30, want: "400"},
		{days: 7, want: "400"},
		{days: 6, want: "200"},
		{days: 3, want: "200"},
		{days: 2, want: "0"},
		{days: 0, want: "0"},
		{days: -4, want: "0"},
	}

	for _, tt := range tests {
		got := policy.Refund(total, tt.days)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "days=%d got=%s", tt.days, got)
	}
}

func TestRefundPolicy_Graduated(t *testing.T) {
	policy, ok := model.LookupRefundPolicy(model.PolicyGraduated)
	require.True(t, ok)

	total := decimal.NewFromInt(200)

	tests := []struct {
		days int
		want string
	}{
		{days: 8, want: "180"},
		{days: 7, want: "100"},
		{days: 4, want: "100"},
		{days: 3, want: "50"},
		{days: 1, want: "50"},
		{days: 0, want: "0"},
	}

	for _, tt := range tests {
		got := policy.Refund(total, tt.days)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "days=%d got=%s", tt.days, got)
	}
}

func TestRefundPolicy_NeverNegative(t *testing.T) {
	policy, _ := model.LookupRefundPolicy(model.PolicyStandard)

	assert.True(t, policy.Refund(decimal.NewFromInt(-50), 10).IsZero())

	_, ok := model.LookupRefundPolicy("flexible")
	assert.False(t, ok)
}

func TestStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from model.Status
		to   model.Status
		want bool
	}{
		{model.StatusPending, model.StatusConfirmed, true},
		{model.StatusPending, model.StatusCheckedIn, true},
		{model.StatusConfirmed, model.StatusCheckedIn, true},
		{model.StatusCheckedIn, model.StatusCheckedOut, true},
		{model.StatusConfirmed, model.StatusCheckedOut, false},
		{model.StatusConfirmed, model.StatusCancelled, true},
		{model.StatusCheckedIn, model.StatusCancelled, true},
		{model.StatusCheckedIn, model.StatusConfirmed, false},
		{model.StatusCheckedOut, model.StatusCancelled, false},
		{model.StatusCancelled, model.StatusConfirmed, false},
		{model.StatusCancelled, model.StatusCancelled, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestReservation_NightsAndOccupancy(t *testing.T) {
	checkIn := time.Date(2025, 7, 1, 15, 0, 0, 0, time.UTC)
	r := model.Reservation{CheckIn: checkIn, CheckOut: checkIn.Add(44 * time.Hour), Status: model.StatusConfirmed}

	assert.Equal(t, 2, r.Nights())
	assert.True(t, r.Occupies(checkIn))
	assert.False(t, r.Occupies(checkIn.Add(-time.Minute)))
	assert.False(t, r.Occupies(r.CheckOut))

	r.Status = model.StatusCancelled
	assert.False(t, r.Occupies(checkIn.Add(time.Hour)))
}

func TestReservation_CloneDoesNotAlias(t *testing.T) {
	r := model.Reservation{
		CorporateAccount: &model.CorporateAccount{CompanyName: "Acme"},
		ModificationHistory: []model.Modification{
			{Changes: gModel.Changes{"status": {From: "Pending", To: "Confirmed"}}},
		},
	}

	clone := r.Clone()
	clone.CorporateAccount.CompanyName = "Other"
	clone.ModificationHistory[0].Changes["notes"] = gModel.Change{To: "x"}

	assert.Equal(t, "Acme", r.CorporateAccount.CompanyName)
	assert.Len(t, r.ModificationHistory[0].Changes, 1)
}

func TestNewGroupSummary(t *testing.T) {
	checkIn := time.Date(2025, 9, 10, 14, 0, 0, 0, time.UTC)

	summary := model.NewGroupSummary("GRP-1", []model.Reservation{
		{GuestCount: 2, TotalAmount: decimal.NewFromInt(300), CheckIn: checkIn},
		{GuestCount: 0, TotalAmount: decimal.NewFromInt(150), CheckIn: checkIn},
	})

	assert.Equal(t, 2, summary.TotalRooms)
	assert.Equal(t, 3, summary.TotalGuests)
	assert.True(t, summary.TotalAmount.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, checkIn, summary.CheckIn)
}
