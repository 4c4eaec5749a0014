package dto

import (
	"net/http"
	"strconv"

	"hotelops/shared/constant"
)

// QueryParams carries the paging window of a list request.
type QueryParams struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// FromRequest reads page and limit from the query string. Malformed or non-positive values
// are ignored and limit is capped at constant.MaxValueLimit. With defaultRequest an absent
// value falls back to the defaults, otherwise the list stays unpaginated.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	query := r.URL.Query()

	q.Page = positiveInt(query.Get(constant.RequestParamPage))
	q.Limit = min(positiveInt(query.Get(constant.RequestParamLimit)), constant.MaxValueLimit)

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}

// Paginated reports whether a page window was requested.
func (q QueryParams) Paginated() bool {
	return q.Page > 0 && q.Limit > 0
}

func positiveInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0
	}

	return n
}
