// Package pagination parses the page query parameter and describes one
// page of a listing.
package pagination

import "math"

// CalculateOffset returns the SQL OFFSET for a 1-based page. Offsets that
// would overflow int saturate at math.MaxInt, which lies past the end of
// any listing.
func CalculateOffset(page, limit int) int {
	if page <= 1 || limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// CalculateTotalPages returns ceil(total/limit), with a minimum of 1 so an
// empty listing still has a first page.
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
