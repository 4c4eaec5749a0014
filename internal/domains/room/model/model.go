package model

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"
)

type Status string

const (
	StatusAvailable   Status = "Available"
	StatusOccupied    Status = "Occupied"
	StatusCleaning    Status = "Cleaning"
	StatusDirty       Status = "Dirty"
	StatusMaintenance Status = "Maintenance"
	StatusOutOfOrder  Status = "Out of Order"
)

// Statuses lists every room status in display order.
var Statuses = []Status{
	StatusAvailable,
	StatusOccupied,
	StatusCleaning,
	StatusDirty,
	StatusMaintenance,
	StatusOutOfOrder,
}

type Room struct {
	ID          int64           `json:"id"`
	Number      string          `json:"number"`
	Type        string          `json:"type"`
	Status      Status          `json:"status"`
	Rate        decimal.Decimal `json:"rate"`
	Amenities   []string        `json:"amenities"`
	Notes       string          `json:"notes"`
	LastCleaned time.Time       `json:"lastCleaned"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (r Room) Identity() int64 {
	return r.ID
}

func (r Room) WithIdentity(id int64) Room {
	r.ID = id

	return r
}

func (r Room) Clone() Room {
	r.Amenities = slices.Clone(r.Amenities)

	return r
}
