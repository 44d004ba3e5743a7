package pagination

// Metadata describes the current page of a listing.
type Metadata struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_previous"`
}

// NewMetadata builds Metadata for params over total items.
func NewMetadata(params Params, total int64) Metadata {
	pages := CalculateTotalPages(total, params.Limit)
	return Metadata{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: pages,
		HasNext:    params.Page < pages,
		HasPrev:    params.Page > 1,
	}
}
