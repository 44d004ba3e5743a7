package pagination_test

import (
	"math"
	"testing"

	"newsnotes/internal/common/pagination"
)

func TestCalculateOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, limit, want int
	}{
		{page: 1, limit: 10, want: 0},
		{page: 2, limit: 10, want: 10},
		{page: 3, limit: 10, want: 20},
		{page: 10, limit: 50, want: 450},
		{page: 1, limit: 1, want: 0},
		{page: math.MaxInt, limit: 10, want: math.MaxInt},
		{page: math.MaxInt/10 + 2, limit: 10, want: math.MaxInt},
		{page: math.MaxInt/10 + 1, limit: 10, want: math.MaxInt / 10 * 10},
	}

	for _, tt := range tests {
		if got := pagination.CalculateOffset(tt.page, tt.limit); got != tt.want {
			t.Errorf("CalculateOffset(%d, %d) = %d, want %d", tt.page, tt.limit, got, tt.want)
		}
	}
}

func TestCalculateTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		total int64
		limit int
		want  int
	}{
		{name: "no news still renders one page", total: 0, limit: 10, want: 1},
		{name: "fewer than a page", total: 3, limit: 10, want: 1},
		{name: "exactly one page", total: 10, limit: 10, want: 1},
		{name: "one over", total: 11, limit: 10, want: 2},
		{name: "several pages", total: 95, limit: 10, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pagination.CalculateTotalPages(tt.total, tt.limit); got != tt.want {
				t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
			}
		})
	}
}
