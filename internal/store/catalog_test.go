package store

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"storedesk/internal/domain"
	"storedesk/internal/fakestore"

	"go.uber.org/zap"
)

// stubClient is a hand-rolled fakestore.Client for driving the catalog
// through exact success and failure sequences.
type stubClient struct {
	products   []domain.Product
	listErr    error
	createErr  error
	updateErr  error
	deleteErr  error
	deleteHook func(id int) error
	nextID     int
}

func (s *stubClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *stubClient) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, fakestore.ErrNotFound
}

func (s *stubClient) ListCategories(ctx context.Context) ([]string, error) {
	return domain.Categories, nil
}

func (s *stubClient) CreateProduct(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.nextID++
	created := domain.Product{
		ID:          100 + s.nextID,
		Title:       draft.Title,
		Price:       draft.Price,
		Description: draft.Description,
		Category:    draft.Category,
		Image:       draft.Image,
	}
	return &created, nil
}

func (s *stubClient) UpdateProduct(ctx context.Context, id int, patch domain.ProductPatch) (*domain.Product, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	for _, p := range s.products {
		if p.ID == id {
			merged := p
			if patch.Title != nil {
				merged.Title = *patch.Title
			}
			if patch.Price != nil {
				merged.Price = *patch.Price
			}
			return &merged, nil
		}
	}
	return nil, fakestore.ErrNotFound
}

func (s *stubClient) DeleteProduct(ctx context.Context, id int) error {
	if s.deleteHook != nil {
		return s.deleteHook(id)
	}
	return s.deleteErr
}

func (s *stubClient) ListUsers(ctx context.Context) ([]domain.User, error) { return nil, nil }

func (s *stubClient) GetUser(ctx context.Context, id int) (*domain.User, error) {
	return nil, fakestore.ErrNotFound
}

func threeProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Title: "Alpha", Category: "electronics", Price: 10},
		{ID: 2, Title: "Beta", Category: "jewelery", Price: 20},
		{ID: 3, Title: "Gamma", Category: "electronics", Price: 30},
	}
}

func loadedCatalog(t *testing.T, products []domain.Product) (*Catalog, *stubClient) {
	t.Helper()
	client := &stubClient{products: products}
	cat := NewCatalog(client, zap.NewNop())
	if err := cat.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return cat, client
}

func catalogIDs(cat *Catalog) []int {
	products := cat.Products()
	ids := make([]int, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLoad_FailureKeepsPreviousState(t *testing.T) {
	cat, client := loadedCatalog(t, threeProducts())

	client.listErr = fmt.Errorf("connection refused")
	err := cat.Load(context.Background())

	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("Expected ErrFetchFailed, got %v", err)
	}
	if !equalInts(catalogIDs(cat), []int{1, 2, 3}) {
		t.Errorf("Expected the previous collection to survive, got %v", catalogIDs(cat))
	}
}

func TestFilterChanges_BeforeFirstLoadLeaveTheViewAlone(t *testing.T) {
	client := &stubClient{products: threeProducts(), listErr: fmt.Errorf("down")}
	cat := NewCatalog(client, zap.NewNop())

	if err := cat.Load(context.Background()); err == nil {
		t.Fatal("Expected the initial load to fail")
	}

	// The collection was never populated, so filter changes do not rebuild
	// the derived view.
	cat.SetSearch("alpha")
	page := cat.Page()
	if len(page.Items) != 0 || page.Pagination.TotalItems != 0 {
		t.Errorf("Expected an untouched empty view, got %+v", page)
	}

	// The criteria were recorded, though, and apply on the first success.
	client.listErr = nil
	if err := cat.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	page = cat.Page()
	if len(page.Items) != 1 || page.Items[0].ID != 1 {
		t.Errorf("Expected the recorded search to apply after load, got %+v", page.Items)
	}
}

func TestSetSearch_ResetsToFirstPage(t *testing.T) {
	products := make([]domain.Product, 0, 25)
	for i := 1; i <= 25; i++ {
		products = append(products, domain.Product{ID: i, Title: fmt.Sprintf("Product %d", i)})
	}
	cat, _ := loadedCatalog(t, products)

	cat.SetPage(3)
	if got := cat.Page().Pagination.CurrentPage; got != 3 {
		t.Fatalf("Expected page 3, got %d", got)
	}

	cat.SetSearch("product")
	if got := cat.Page().Pagination.CurrentPage; got != 1 {
		t.Errorf("Expected a filter change to reset to page 1, got %d", got)
	}
}

func TestSetItemsPerPage_ResetsPageAndRecomputesTotals(t *testing.T) {
	products := make([]domain.Product, 0, 25)
	for i := 1; i <= 25; i++ {
		products = append(products, domain.Product{ID: i})
	}
	cat, _ := loadedCatalog(t, products)

	cat.SetPage(3)
	cat.SetItemsPerPage(5)

	page := cat.Page()
	if page.Pagination.CurrentPage != 1 {
		t.Errorf("Expected page reset to 1, got %d", page.Pagination.CurrentPage)
	}
	if page.Pagination.TotalPages != 5 {
		t.Errorf("Expected 5 pages of 5, got %d", page.Pagination.TotalPages)
	}
	if len(page.Items) != 5 {
		t.Errorf("Expected 5 items on the page, got %d", len(page.Items))
	}
}

func TestSetPage_OutOfRangeClampsOnRead(t *testing.T) {
	cat, _ := loadedCatalog(t, threeProducts())

	cat.SetPage(99)
	if got := cat.Page().Pagination.CurrentPage; got != 1 {
		t.Errorf("Expected page 99 to clamp to 1 for 3 items, got %d", got)
	}

	cat.SetPage(-4)
	if got := cat.Page().Pagination.CurrentPage; got != 1 {
		t.Errorf("Expected a negative page to clamp to 1, got %d", got)
	}
}

func TestResetFilters_RestoresDefaults(t *testing.T) {
	cat, _ := loadedCatalog(t, threeProducts())

	min := 15.0
	cat.SetSearch("beta")
	cat.SetCategory("jewelery")
	cat.SetPriceRange(&min, nil)
	cat.ResetFilters()

	filters := cat.Filters()
	if filters.Search != "" || filters.Category != domain.CategoryAll || filters.MinPrice != nil || filters.MaxPrice != nil {
		t.Errorf("Expected default criteria, got %+v", filters)
	}
	if got := len(cat.Page().Items); got != 3 {
		t.Errorf("Expected the full collection back, got %d items", got)
	}
}

func TestAdd_AppendsTheServerRecord(t *testing.T) {
	cat, _ := loadedCatalog(t, threeProducts())

	created, err := cat.Add(context.Background(), domain.ProductDraft{
		Title:       "Delta Headphones",
		Price:       49.99,
		Description: "Closed-back wired headphones",
		Category:    "electronics",
		Image:       "https://img.example.com/delta.jpg",
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if created.ID == 0 {
		t.Error("Expected a server-assigned ID")
	}
	if got := len(cat.Products()); got != 4 {
		t.Errorf("Expected 4 products after add, got %d", got)
	}
}

func TestAdd_RejectionLeavesStateUnchanged(t *testing.T) {
	cat, client := loadedCatalog(t, threeProducts())
	client.createErr = fmt.Errorf("server error occurred")

	_, err := cat.Add(context.Background(), domain.ProductDraft{
		Title:       "Never Created",
		Price:       9.99,
		Description: "Rejected upstream every time",
		Category:    "electronics",
		Image:       "https://img.example.com/never.jpg",
	})

	if !errors.Is(err, ErrMutationRejected) {
		t.Errorf("Expected ErrMutationRejected, got %v", err)
	}
	if !equalInts(catalogIDs(cat), []int{1, 2, 3}) {
		t.Errorf("Expected the collection unchanged, got %v", catalogIDs(cat))
	}
}

func TestAdd_StructurallyInvalidDraftNeverReachesTheNetwork(t *testing.T) {
	cat, client := loadedCatalog(t, threeProducts())
	client.createErr = fmt.Errorf("must not be called")

	cases := []domain.ProductDraft{
		{Title: "ab", Price: 1, Category: "electronics"},
		{Title: "Fine Title", Price: 0, Category: "electronics"},
		{Title: "Fine Title", Price: 1, Category: "furniture"},
	}
	for _, draft := range cases {
		if _, err := cat.Add(context.Background(), draft); !errors.Is(err, ErrValidationFailed) {
			t.Errorf("Draft %+v: expected ErrValidationFailed, got %v", draft, err)
		}
	}
}

func TestUpdate_InvalidPatchIsRejectedUpFront(t *testing.T) {
	cat, _ := loadedCatalog(t, threeProducts())

	bad := "furniture"
	if _, err := cat.Update(context.Background(), 1, domain.ProductPatch{Category: &bad}); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("Expected ErrValidationFailed, got %v", err)
	}

	zero := 0.0
	if _, err := cat.Update(context.Background(), 1, domain.ProductPatch{Price: &zero}); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("Expected ErrValidationFailed, got %v", err)
	}
}

func TestUpdate_ReplacesTheMatchingRecord(t *testing.T) {
	cat, _ := loadedCatalog(t, threeProducts())

	title := "Beta v2"
	updated, err := cat.Update(context.Background(), 2, domain.ProductPatch{Title: &title})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != "Beta v2" {
		t.Errorf("Expected the merged record back, got %+v", updated)
	}

	for _, p := range cat.Products() {
		if p.ID == 2 && p.Title != "Beta v2" {
			t.Errorf("Expected the stored record replaced, got %+v", p)
		}
	}
}

func TestUpdate_NotFoundSurfacesBothSentinels(t *testing.T) {
	cat, _ := loadedCatalog(t, threeProducts())

	_, err := cat.Update(context.Background(), 404, domain.ProductPatch{})

	if !errors.Is(err, ErrMutationRejected) {
		t.Errorf("Expected ErrMutationRejected, got %v", err)
	}
	if !errors.Is(err, fakestore.ErrNotFound) {
		t.Errorf("Expected the not-found cause to stay matchable, got %v", err)
	}
}

func TestDelete_RemovesBeforeConfirmation(t *testing.T) {
	cat, client := loadedCatalog(t, threeProducts())

	var midFlight []int
	client.deleteHook = func(id int) error {
		// Observed while the network call is still in flight.
		midFlight = catalogIDs(cat)
		return nil
	}

	if err := cat.Delete(context.Background(), 2); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !equalInts(midFlight, []int{1, 3}) {
		t.Errorf("Expected the record gone before confirmation, saw %v", midFlight)
	}
	if !equalInts(catalogIDs(cat), []int{1, 3}) {
		t.Errorf("Expected [1 3] after delete, got %v", catalogIDs(cat))
	}
}

func TestDelete_FailureRollsBackInIDOrder(t *testing.T) {
	cat, client := loadedCatalog(t, threeProducts())
	client.deleteErr = fmt.Errorf("delete failed")

	before := cat.Page()
	err := cat.Delete(context.Background(), 2)

	if !errors.Is(err, ErrDeleteRejected) {
		t.Errorf("Expected ErrDeleteRejected, got %v", err)
	}
	if !equalInts(catalogIDs(cat), []int{1, 2, 3}) {
		t.Errorf("Expected the snapshot reinserted in ID order, got %v", catalogIDs(cat))
	}

	after := cat.Page()
	if len(after.Items) != len(before.Items) || after.Pagination != before.Pagination {
		t.Errorf("Expected the view indistinguishable from a no-op, before %+v after %+v", before, after)
	}
}

func TestDelete_FirstRecordRollbackRestoresOrder(t *testing.T) {
	cat, client := loadedCatalog(t, threeProducts())
	client.deleteErr = fmt.Errorf("delete failed")

	if err := cat.Delete(context.Background(), 1); !errors.Is(err, ErrDeleteRejected) {
		t.Fatalf("Expected ErrDeleteRejected, got %v", err)
	}
	if !equalInts(catalogIDs(cat), []int{1, 2, 3}) {
		t.Errorf("Expected ascending ID order after rollback, got %v", catalogIDs(cat))
	}
}

func TestDelete_UnknownIDIsNotFound(t *testing.T) {
	cat, _ := loadedCatalog(t, threeProducts())

	if err := cat.Delete(context.Background(), 404); !errors.Is(err, fakestore.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if !equalInts(catalogIDs(cat), []int{1, 2, 3}) {
		t.Errorf("Expected the collection unchanged, got %v", catalogIDs(cat))
	}
}

func TestCatalog_SimulatorFailureInjection(t *testing.T) {
	sim := fakestore.NewSimulator(fakestore.SimulatorConfig{
		CreateFail: 1,
		DeleteFail: 1,
		Rand:       rand.New(rand.NewSource(7)),
	})
	cat := NewCatalog(sim, zap.NewNop())
	if err := cat.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	before := catalogIDs(cat)

	_, err := cat.Add(context.Background(), domain.ProductDraft{
		Title:       "Doomed Product",
		Price:       1.99,
		Description: "Will never be created",
		Category:    "electronics",
		Image:       "https://img.example.com/x.jpg",
	})
	if !errors.Is(err, ErrMutationRejected) {
		t.Errorf("Expected ErrMutationRejected from the simulator, got %v", err)
	}

	if err := cat.Delete(context.Background(), before[0]); !errors.Is(err, ErrDeleteRejected) {
		t.Errorf("Expected ErrDeleteRejected from the simulator, got %v", err)
	}
	if !equalInts(catalogIDs(cat), before) {
		t.Errorf("Expected the collection rolled back to %v, got %v", before, catalogIDs(cat))
	}
}
