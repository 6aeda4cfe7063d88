package store

import (
	"strings"

	"storedesk/internal/domain"
)

// FilterProducts returns the subsequence of products matching every active
// filter, preserving the original relative order. It is a total function:
// it never fails and never mutates its input.
func FilterProducts(products []domain.Product, f domain.ProductFilters) []domain.Product {
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matchProduct(p, f) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func matchProduct(p domain.Product, f domain.ProductFilters) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) &&
			!strings.Contains(strings.ToLower(p.Category), needle) {
			return false
		}
	}
	if f.Category != "" && f.Category != domain.CategoryAll && p.Category != f.Category {
		return false
	}
	// Inclusive bounds; a nil bound is unbounded on that side.
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}

// FilterUsers returns the subsequence of users matching every active filter,
// preserving the original relative order.
func FilterUsers(users []domain.User, f domain.UserFilters) []domain.User {
	filtered := make([]domain.User, 0, len(users))
	for _, u := range users {
		if matchUser(u, f) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

func matchUser(u domain.User, f domain.UserFilters) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(u.Name.First), needle) &&
			!strings.Contains(strings.ToLower(u.Name.Last), needle) &&
			!strings.Contains(strings.ToLower(u.Email), needle) &&
			!strings.Contains(strings.ToLower(u.Username), needle) &&
			!strings.Contains(strings.ToLower(u.Phone), needle) &&
			!strings.Contains(strings.ToLower(u.Address.City), needle) {
			return false
		}
	}
	switch f.Status {
	case domain.StatusActive:
		return u.Active()
	case domain.StatusInactive:
		return !u.Active()
	default:
		// "all" or anything unrecognized disables the status filter.
		return true
	}
}
