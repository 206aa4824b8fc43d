package dto

import (
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"tickoff/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest populates QueryParams from the HTTP request.
// With defaultRequest the page and limit fall back to the package defaults
// when absent; otherwise missing values stay zero, meaning no pagination.
//
//	q := &dto.QueryParams{}
//	q.FromRequest(req, false)
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = limitInt
		}
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := strings.ToUpper(queryParams.Get(constant.RequestParamSortDir)); sortDir == SortDirAsc || sortDir == SortDirDesc {
		q.SortDir = sortDir
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}

// Restrict drops a sort column that is not in allowed, since SortBy ends up
// verbatim in an ORDER BY clause. A kept column without direction sorts ASC.
func (q *QueryParams) Restrict(allowed ...string) {
	if !slices.Contains(allowed, q.SortBy) {
		q.SortBy = ""
		q.SortDir = ""

		return
	}

	if q.SortDir == "" {
		q.SortDir = SortDirAsc
	}
}

// Offset is the number of rows that precede Page. It saturates instead of
// overflowing, so a page beyond any real data yields an empty result.
func (q *QueryParams) Offset() int64 {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}

	pages, limit := int64(q.Page-1), int64(q.Limit)
	if pages > math.MaxInt64/limit {
		return math.MaxInt64
	}

	return pages * limit
}
