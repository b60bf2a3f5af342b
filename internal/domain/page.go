package domain

// Page is one page of a paginated listing. Page numbers are 1-based.
type Page[T any] struct {
	Items        []T
	TotalRecords int
	CurrentPage  int
	Limit        int
	TotalPages   int
	HasNext      bool
	HasPrev      bool
	NextPage     *int
	PrevPage     *int
}

// PageInfo describes position within a paginated listing.
type PageInfo struct {
	TotalRecords int
	CurrentPage  int
	Limit        int
	TotalPages   int
	HasNext      bool
	HasPrev      bool
	NextPage     *int
	PrevPage     *int
}

// NewPageInfo derives all pagination fields from a single total count so
// HasNext/HasPrev can never drift from CurrentPage vs TotalPages.
func NewPageInfo(totalRecords, currentPage, limit int) PageInfo {
	if limit <= 0 {
		limit = 1
	}
	if currentPage < 1 {
		currentPage = 1
	}
	totalPages := (totalRecords + limit - 1) / limit

	info := PageInfo{
		TotalRecords: totalRecords,
		CurrentPage:  currentPage,
		Limit:        limit,
		TotalPages:   totalPages,
		HasNext:      currentPage < totalPages,
		HasPrev:      currentPage > 1,
	}
	if info.HasNext {
		next := currentPage + 1
		info.NextPage = &next
	}
	if info.HasPrev {
		prev := currentPage - 1
		info.PrevPage = &prev
	}
	return info
}

// NewPage builds a page of items with pagination fields derived from the
// total count.
func NewPage[T any](items []T, totalRecords, currentPage, limit int) Page[T] {
	info := NewPageInfo(totalRecords, currentPage, limit)
	return Page[T]{
		Items:        items,
		TotalRecords: info.TotalRecords,
		CurrentPage:  info.CurrentPage,
		Limit:        info.Limit,
		TotalPages:   info.TotalPages,
		HasNext:      info.HasNext,
		HasPrev:      info.HasPrev,
		NextPage:     info.NextPage,
		PrevPage:     info.PrevPage,
	}
}
