package pagination

import (
	"errors"
	"net/http"
	"strconv"
)

// ErrInvalidPage is returned for a page query parameter that is not a
// positive integer.
var ErrInvalidPage = errors.New("page must be a positive integer")

// Params selects one page of a listing.
type Params struct {
	Page  int // 1-based
	Limit int
}

// Offset returns the SQL OFFSET of the page.
func (p Params) Offset() int {
	return CalculateOffset(p.Page, p.Limit)
}

// ParsePage reads the 1-based page query parameter. A missing parameter
// means the first page.
func ParsePage(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, ErrInvalidPage
	}
	return page, nil
}
