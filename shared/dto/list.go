package dto

import "math"

// List is the envelope every collection endpoint responds with.
type List[T any] struct {
	Items     []T `json:"items"`
	TotalData int `json:"total_data"`
	TotalPage int `json:"total_page"`
	Page      int `json:"page,omitempty"`
	Limit     int `json:"limit,omitempty"`
}

// NewList slices items according to the query parameters. When no page was requested the
// whole collection is returned as a single page.
func NewList[T any](items []T, params QueryParams) List[T] {
	list := List[T]{
		TotalData: len(items),
		Page:      params.Page,
		Limit:     params.Limit,
	}

	if !params.Paginated() {
		list.Items = items
		list.TotalPage = 1

		return list
	}

	list.TotalPage = totalPage(len(items), params.Limit)

	start := (params.Page - 1) * params.Limit
	if start >= len(items) {
		list.Items = []T{}

		return list
	}

	end := min(start+params.Limit, len(items))
	list.Items = items[start:end]

	return list
}

func totalPage(total, limit int) int {
	if total == 0 || limit <= 0 {
		return 1
	}

	return int(math.Ceil(float64(total) / float64(limit)))
}
