package query

// Page is one window of a list result plus navigation metadata
type Page[T any] struct {
	Items       []T   `json:"items"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	PageSize    int   `json:"pageSize"`
	HasNext     bool  `json:"hasNextPage"`
	HasPrev     bool  `json:"hasPrevPage"`
}

// NewPage assembles a page from a fetched window and the matching total.
// A page beyond the last one yields empty items with HasNext=false;
// callers may legitimately ask for a stale page after concurrent deletes.
func NewPage[T any](items []T, totalCount int64, page, pageSize int) Page[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := 0
	if totalCount > 0 {
		totalPages = int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	}

	return Page[T]{
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		PageSize:    pageSize,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
