package repository_test

import (
	"slices"
)

type guestCard struct {
	ID   int64    `json:"id"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

func (g guestCard) Identity() int64 {
	return g.ID
}

func (g guestCard) WithIdentity(id int64) guestCard {
	g.ID = id

	return g
}

func (g guestCard) Clone() guestCard {
	g.Tags = slices.Clone(g.Tags)

	return g
}
