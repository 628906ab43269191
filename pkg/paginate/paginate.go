// Package paginate holds the page-window arithmetic shared by every listing
// endpoint. It is pure: no I/O, no state, safe to call concurrently.
package paginate

import "strconv"

// Window is the computed slice of a listed collection. Skip/PageSize feed the
// store query; Page/TotalPages feed the pagination UI.
type Window struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Skip       int `json:"-"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Compute maps a total item count, page size and requested page to a clamped
// window. A requested page below 1 or beyond the last page is silently
// clamped rather than rejected, so a stale link to a page that shrank below
// bounds still renders something sensible. An empty collection yields
// TotalPages 0 with Page pinned to 1 and Skip 0.
func Compute(totalItems, pageSize, requestedPage int) Window {
	if pageSize <= 0 {
		pageSize = 1
	}
	if totalItems < 0 {
		totalItems = 0
	}

	totalPages := (totalItems + pageSize - 1) / pageSize

	page := requestedPage
	if page < 1 {
		page = 1
	}
	if last := max(totalPages, 1); page > last {
		page = last
	}

	return Window{
		Page:       page,
		PageSize:   pageSize,
		Skip:       (page - 1) * pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// ParsePage interprets a query-string page value. Anything that is not a
// parseable integer is treated as page 1; range clamping happens in Compute.
func ParsePage(raw string) int {
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}
