package query

import (
	"strconv"

	"vidtube/pkg/response"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// PageRequest is a validated page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

// ParsePageRequest coerces textual page/limit input. Missing values fall
// back to page=1, limit=10; non-numeric or non-positive input is rejected
// as a client error rather than coerced to zero.
func ParsePageRequest(page, limit string) (PageRequest, error) {
	req := PageRequest{Page: defaultPage, Limit: defaultLimit}
	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			return PageRequest{}, response.InvalidArgument("invalid page")
		}
		req.Page = n
	}
	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			return PageRequest{}, response.InvalidArgument("invalid limit")
		}
		req.Limit = n
	}
	return req, nil
}

func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// Page is the envelope a paginated query returns. The total count and the
// window are two separate store round trips, so under concurrent writes they
// can disagree; accepted limitation.
type Page struct {
	Docs        interface{} `json:"docs"`
	TotalDocs   int64       `json:"totalDocs"`
	Limit       int         `json:"limit"`
	Page        int         `json:"page"`
	TotalPages  int         `json:"totalPages"`
	HasPrevPage bool        `json:"hasPrevPage"`
	HasNextPage bool        `json:"hasNextPage"`
}

func NewPage(docs interface{}, totalDocs int64, req PageRequest) Page {
	totalPages := int((totalDocs + int64(req.Limit) - 1) / int64(req.Limit))
	return Page{
		Docs:        docs,
		TotalDocs:   totalDocs,
		Limit:       req.Limit,
		Page:        req.Page,
		TotalPages:  totalPages,
		HasPrevPage: req.Page > 1,
		HasNextPage: req.Page < totalPages,
	}
}
