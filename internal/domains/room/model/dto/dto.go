package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hotelops/internal/domains/room/model"
)

type CreateRoomRequest struct {
	Number    string          `json:"number"    validate:"required,max=20"`
	Type      string          `json:"type"      validate:"required,oneof=Standard Deluxe Suite 'Executive Suite' 'Presidential Suite'"`
	Status    model.Status    `json:"status"    validate:"omitempty,oneof=Available Occupied Cleaning Dirty Maintenance 'Out of Order'"`
	Rate      decimal.Decimal `json:"rate"      validate:"gt=0"`
	Amenities []string        `json:"amenities" validate:"omitempty,dive,required"`
	Notes     string          `json:"notes"     validate:"omitempty,max=500"`
}

func (c *CreateRoomRequest) ToModel(now time.Time) model.Room {
	status := c.Status
	if status == "" {
		status = model.StatusAvailable
	}

	amenities := c.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	return model.Room{
		Number:      strings.TrimSpace(c.Number),
		Type:        c.Type,
		Status:      status,
		Rate:        c.Rate,
		Amenities:   amenities,
		Notes:       strings.TrimSpace(c.Notes),
		LastCleaned: now,
		CreatedAt:   now,
	}
}

type UpdateRoomRequest struct {
	Number    *string          `json:"number"    validate:"omitempty,min=1,max=20"`
	Type      *string          `json:"type"      validate:"omitempty,oneof=Standard Deluxe Suite 'Executive Suite' 'Presidential Suite'"`
	Status    *model.Status    `json:"status"    validate:"omitempty,oneof=Available Occupied Cleaning Dirty Maintenance 'Out of Order'"`
	Rate      *decimal.Decimal `json:"rate"      validate:"omitempty,gt=0"`
	Amenities *[]string        `json:"amenities"`
	Notes     *string          `json:"notes"     validate:"omitempty,max=500"`
}

type UpdateStatusRequest struct {
	Status model.Status `json:"status" validate:"required,oneof=Available Occupied Cleaning Dirty Maintenance 'Out of Order'"`
}

type RoomFilter struct {
	Status model.Status
	Type   string
}

func (f RoomFilter) Match(room model.Room) bool {
	if f.Status != "" && room.Status != f.Status {
		return false
	}

	if f.Type != "" && !strings.EqualFold(room.Type, f.Type) {
		return false
	}

	return true
}
