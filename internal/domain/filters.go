package domain

import "math"

// CategoryAll is the sentinel that disables the category filter. An empty
// string behaves the same way.
const CategoryAll = "all"

// ProductFilters is the active filter criteria for the catalog. A nil price
// bound means unbounded on that side.
type ProductFilters struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// DefaultProductFilters returns the criteria with every filter disabled.
func DefaultProductFilters() ProductFilters {
	return ProductFilters{Category: CategoryAll}
}

// UserFilters is the active filter criteria for the user directory.
type UserFilters struct {
	Search string
	Status string
}

// DefaultUserFilters returns the criteria with every filter disabled.
func DefaultUserFilters() UserFilters {
	return UserFilters{Status: StatusAll}
}

// Pagination describes the current page window over a filtered collection.
// TotalPages is 0 when the collection is empty; CurrentPage is still clamped
// to 1 in that case.
type Pagination struct {
	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`
	TotalItems   int `json:"total_items"`
	TotalPages   int `json:"total_pages"`
}

// DefaultPagination returns the initial page state.
func DefaultPagination() Pagination {
	return Pagination{CurrentPage: 1, ItemsPerPage: 10}
}

// Recalc recomputes TotalPages from totalItems and clamps CurrentPage into
// [1, max(TotalPages, 1)].
func (p Pagination) Recalc(totalItems int) Pagination {
	p.TotalItems = totalItems
	p.TotalPages = int(math.Ceil(float64(totalItems) / float64(p.ItemsPerPage)))
	p.CurrentPage = clampPage(p.CurrentPage, p.TotalPages)
	return p
}

func clampPage(page, totalPages int) int {
	upper := totalPages
	if upper < 1 {
		upper = 1
	}
	if page > upper {
		page = upper
	}
	if page < 1 {
		page = 1
	}
	return page
}
