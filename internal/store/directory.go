package store

import (
	"context"
	"fmt"
	"sync"

	"storedesk/internal/domain"
	"storedesk/internal/fakestore"

	"go.uber.org/zap"
)

// DirectoryPage is the read-only derived view over the user directory.
type DirectoryPage struct {
	Items      []domain.User      `json:"items"`
	Filters    domain.UserFilters `json:"-"`
	Pagination domain.Pagination  `json:"pagination"`
}

// Directory is the user store. Users are read-only, so unlike the catalog it
// carries no mutation coordinator, just filtering and pagination.
type Directory struct {
	mu     sync.Mutex
	client fakestore.Client
	logger *zap.Logger

	loaded     bool
	users      []domain.User // authoritative collection
	filtered   []domain.User // derived, disposable view
	filters    domain.UserFilters
	pagination domain.Pagination
}

// NewDirectory creates an empty directory store backed by the given client.
func NewDirectory(client fakestore.Client, logger *zap.Logger) *Directory {
	return &Directory{
		client:     client,
		logger:     logger,
		filters:    domain.DefaultUserFilters(),
		pagination: domain.DefaultPagination(),
	}
}

// Load fetches the full user collection from the directory service and
// replaces the authoritative state. On failure the previous state is kept.
func (d *Directory) Load(ctx context.Context) error {
	users, err := d.client.ListUsers(ctx)
	if err != nil {
		d.logger.Error("Failed to load user directory", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.users = users
	d.loaded = true
	d.recompute()
	d.logger.Info("User directory loaded", zap.Int("count", len(users)))
	return nil
}

// recompute rebuilds the derived view; same no-op-before-first-load quirk as
// the catalog. Callers must hold the mutex.
func (d *Directory) recompute() {
	if !d.loaded {
		return
	}
	d.filtered = FilterUsers(d.users, d.filters)
	d.pagination = d.pagination.Recalc(len(d.filtered))
}

// SetSearch updates the search term and resets to the first page.
func (d *Directory) SetSearch(search string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filters.Search = search
	d.pagination.CurrentPage = 1
	d.recompute()
}

// SetStatus updates the status filter ("all", "active", "inactive") and
// resets to the first page.
func (d *Directory) SetStatus(status string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filters.Status = status
	d.pagination.CurrentPage = 1
	d.recompute()
}

// SetPage moves to the given page; clamping happens when the view is read.
func (d *Directory) SetPage(page int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pagination.CurrentPage = page
}

// SetItemsPerPage changes the page size, resets to the first page, and
// recomputes the page count from the previous total without refiltering.
func (d *Directory) SetItemsPerPage(n int) {
	if n <= 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pagination.ItemsPerPage = n
	d.pagination.CurrentPage = 1
	d.pagination = d.pagination.Recalc(d.pagination.TotalItems)
}

// ResetFilters restores the default criteria and page state.
func (d *Directory) ResetFilters() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filters = domain.DefaultUserFilters()
	d.pagination = domain.DefaultPagination()
	d.recompute()
}

// Filters returns a copy of the active criteria.
func (d *Directory) Filters() domain.UserFilters {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.filters
}

// Page returns the current page of the derived view.
func (d *Directory) Page() DirectoryPage {
	d.mu.Lock()
	defer d.mu.Unlock()
	items, pagination := paginate(d.filtered, d.pagination)
	return DirectoryPage{Items: items, Filters: d.filters, Pagination: pagination}
}

// Users returns a copy of the authoritative collection.
func (d *Directory) Users() []domain.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.User, len(d.users))
	copy(out, d.users)
	return out
}
