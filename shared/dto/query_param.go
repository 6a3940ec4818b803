package dto

import (
	"net/http"
	"strconv"
	"strings"

	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	SortBy  string `json:"sort_by"`
	SortDir string `json:"sort_dir"`
}

// FromRequest reads page and limit from the query string. Missing values fall
// back to the defaults; present but malformed values are rejected.
func (q *QueryParams) FromRequest(r *http.Request) error {
	queryParams := r.URL.Query()

	q.Page = constant.DefaultValuePage
	q.Limit = constant.DefaultValueLimit

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		pageInt, err := strconv.Atoi(page)
		if err != nil || pageInt < 1 {
			return failure.InvalidPageParam
		}

		q.Page = pageInt
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		limitInt, err := strconv.Atoi(limit)
		if err != nil || limitInt < 1 {
			return failure.InvalidLimitParam
		}

		q.Limit = limitInt
	}

	return nil
}

// Ordering renders the ORDER BY clause, empty when no column is set.
func (q *QueryParams) Ordering() string {
	if q.SortBy == "" {
		return ""
	}

	dir := strings.ToUpper(q.SortDir)
	if dir != SortDirAsc && dir != SortDirDesc {
		dir = SortDirAsc
	}

	return "ORDER BY " + q.SortBy + " " + dir
}
