// Package store holds the two in-memory state containers backing the
// storefront: the product catalog and the user directory. Each owns an
// authoritative collection fetched from the directory service plus a derived
// filtered view recomputed synchronously after every state change.
//
// A store is safe to share across handler goroutines: a mutex guards each
// state transition. Nothing serializes two in-flight network mutations
// against the same identifier, though: the last write to authoritative state
// wins (single-operator admin tool assumption).
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"storedesk/internal/domain"
	"storedesk/internal/fakestore"

	"go.uber.org/zap"
)

// CatalogPage is the read-only derived view handed to callers.
type CatalogPage struct {
	Items      []domain.Product      `json:"items"`
	Filters    domain.ProductFilters `json:"-"`
	Pagination domain.Pagination     `json:"pagination"`
}

// Catalog is the product store. Construct one per application lifetime with
// NewCatalog; there are no package-level singletons.
type Catalog struct {
	mu     sync.Mutex
	client fakestore.Client
	logger *zap.Logger

	loaded     bool
	products   []domain.Product // authoritative collection
	filtered   []domain.Product // derived, disposable view
	filters    domain.ProductFilters
	pagination domain.Pagination
}

// NewCatalog creates an empty catalog store backed by the given client.
func NewCatalog(client fakestore.Client, logger *zap.Logger) *Catalog {
	return &Catalog{
		client:     client,
		logger:     logger,
		filters:    domain.DefaultProductFilters(),
		pagination: domain.DefaultPagination(),
	}
}

// Load fetches the full product collection from the directory service and
// replaces the authoritative state. On failure the previous state is kept.
func (c *Catalog) Load(ctx context.Context) error {
	products, err := c.client.ListProducts(ctx)
	if err != nil {
		c.logger.Error("Failed to load product catalog", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = products
	c.loaded = true
	c.recompute()
	c.logger.Info("Product catalog loaded", zap.Int("count", len(products)))
	return nil
}

// recompute rebuilds the derived view: filter, then repaginate. Callers must
// hold the mutex.
//
// Quirk, kept on purpose: when the authoritative collection has never been
// populated (fetch pending or failed) this is a no-op, leaving the prior
// derived state in place instead of treating absence as an empty result.
func (c *Catalog) recompute() {
	if !c.loaded {
		return
	}
	c.filtered = FilterProducts(c.products, c.filters)
	c.pagination = c.pagination.Recalc(len(c.filtered))
}

// SetSearch updates the search term and resets to the first page.
func (c *Catalog) SetSearch(search string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters.Search = search
	c.pagination.CurrentPage = 1
	c.recompute()
}

// SetCategory updates the category filter ("all" or "" disables it) and
// resets to the first page.
func (c *Catalog) SetCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters.Category = category
	c.pagination.CurrentPage = 1
	c.recompute()
}

// SetPriceRange updates the inclusive price bounds (nil = unbounded) and
// resets to the first page.
func (c *Catalog) SetPriceRange(min, max *float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters.MinPrice = min
	c.filters.MaxPrice = max
	c.pagination.CurrentPage = 1
	c.recompute()
}

// SetPage moves to the given page. The stored page is clamped into
// [1, max(totalPages, 1)] when the view is read.
func (c *Catalog) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pagination.CurrentPage = page
}

// SetItemsPerPage changes the page size, resets to the first page, and
// recomputes the page count from the previous total. It deliberately does
// not refilter.
func (c *Catalog) SetItemsPerPage(n int) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pagination.ItemsPerPage = n
	c.pagination.CurrentPage = 1
	c.pagination = c.pagination.Recalc(c.pagination.TotalItems)
}

// ResetFilters restores the default criteria and page state.
func (c *Catalog) ResetFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = domain.DefaultProductFilters()
	c.pagination = domain.DefaultPagination()
	c.recompute()
}

// Filters returns a copy of the active criteria.
func (c *Catalog) Filters() domain.ProductFilters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// Page returns the current page of the derived view.
func (c *Catalog) Page() CatalogPage {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, pagination := paginate(c.filtered, c.pagination)
	return CatalogPage{Items: items, Filters: c.filters, Pagination: pagination}
}

// Products returns a copy of the authoritative collection.
func (c *Catalog) Products() []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// validateDraft enforces the structural constraints a candidate product must
// meet before it is allowed near the network.
func validateDraft(d domain.ProductDraft) error {
	switch {
	case len(d.Title) < 3:
		return fmt.Errorf("%w: title too short", ErrValidationFailed)
	case d.Price <= 0:
		return fmt.Errorf("%w: price must be positive", ErrValidationFailed)
	case !domain.ValidCategory(d.Category):
		return fmt.Errorf("%w: unknown category %q", ErrValidationFailed, d.Category)
	}
	return nil
}

func validatePatch(p domain.ProductPatch) error {
	switch {
	case p.Title != nil && len(*p.Title) < 3:
		return fmt.Errorf("%w: title too short", ErrValidationFailed)
	case p.Price != nil && *p.Price <= 0:
		return fmt.Errorf("%w: price must be positive", ErrValidationFailed)
	case p.Category != nil && !domain.ValidCategory(*p.Category):
		return fmt.Errorf("%w: unknown category %q", ErrValidationFailed, *p.Category)
	}
	return nil
}

// Add submits a candidate product and appends the server-assigned record to
// the authoritative collection. Not optimistic: on failure nothing was
// applied and the state is unchanged.
func (c *Catalog) Add(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	created, err := c.client.CreateProduct(ctx, draft)
	if err != nil {
		c.logger.Warn("Product create rejected", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrMutationRejected, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = append(c.products, *created)
	c.recompute()
	c.logger.Info("Product added", zap.Int("id", created.ID))
	return created, nil
}

// Update submits a partial update and replaces the matching record with the
// merged canonical record returned by the service. Not optimistic: no state
// change is attempted before confirmation.
func (c *Catalog) Update(ctx context.Context, id int, patch domain.ProductPatch) (*domain.Product, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	updated, err := c.client.UpdateProduct(ctx, id, patch)
	if err != nil {
		c.logger.Warn("Product update rejected", zap.Int("id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrMutationRejected, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.products {
		if c.products[i].ID == id {
			c.products[i] = *updated
			break
		}
	}
	c.recompute()
	c.logger.Info("Product updated", zap.Int("id", id))
	return updated, nil
}

// Delete removes a product optimistically: the record leaves the
// authoritative collection and the derived view before the network call
// resolves. On failure the snapshot is reinserted, the collection re-sorted
// by ID ascending, and the view recomputed; after rollback the store is
// indistinguishable from a no-op.
func (c *Catalog) Delete(ctx context.Context, id int) error {
	// Phase 1: apply tentative state, keeping the pre-mutation snapshot.
	c.mu.Lock()
	var snapshot *domain.Product
	for i := range c.products {
		if c.products[i].ID == id {
			p := c.products[i]
			snapshot = &p
			c.products = append(c.products[:i], c.products[i+1:]...)
			break
		}
	}
	if snapshot == nil {
		c.mu.Unlock()
		return fakestore.ErrNotFound
	}
	c.recompute()
	c.mu.Unlock()

	// Phase 2: await confirmation.
	if err := c.client.DeleteProduct(ctx, id); err != nil {
		// Phase 3: compensate from the snapshot.
		c.mu.Lock()
		c.products = append(c.products, *snapshot)
		sort.Slice(c.products, func(i, j int) bool { return c.products[i].ID < c.products[j].ID })
		c.recompute()
		c.mu.Unlock()
		c.logger.Warn("Product delete rolled back", zap.Int("id", id), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrDeleteRejected, err)
	}

	c.logger.Info("Product deleted", zap.Int("id", id))
	return nil
}
