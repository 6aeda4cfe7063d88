package store

import "storedesk/internal/domain"

// paginate slices one page out of the filtered collection. The returned
// pagination carries the recomputed totals and the clamped current page;
// the stored (unclamped) page is left to the caller. TotalPages may be 0
// for an empty collection, in which case the page clamps to 1 and the
// slice is empty.
func paginate[T any](filtered []T, p domain.Pagination) ([]T, domain.Pagination) {
	p = p.Recalc(len(filtered))

	start := (p.CurrentPage - 1) * p.ItemsPerPage
	if start >= len(filtered) {
		return []T{}, p
	}
	end := start + p.ItemsPerPage
	if end > len(filtered) {
		end = len(filtered)
	}

	page := make([]T, end-start)
	copy(page, filtered[start:end])
	return page, p
}
