package fakestore

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"storedesk/internal/domain"
)

// SimulatorConfig controls the simulated network behavior. Latency applies to
// every call; the failure rates apply to create/update/delete only, matching
// the upstream demo API which never fails reads once reachable.
type SimulatorConfig struct {
	Latency     time.Duration
	CreateFail  float64
	UpdateFail  float64
	DeleteFail  float64
	Rand        *rand.Rand // nil means failures never trigger
	ProductSeed []domain.Product
	UserSeed    []domain.User
}

// Simulator is an in-process Client with injectable latency and failure
// rates, so the mutation error paths can be exercised deterministically.
type Simulator struct {
	mu       sync.Mutex
	cfg      SimulatorConfig
	products []domain.Product
	users    []domain.User
	nextID   func() int
}

// NewSimulator creates a simulator seeded with cfg.ProductSeed/UserSeed, or
// the built-in fixtures when the seeds are nil.
func NewSimulator(cfg SimulatorConfig) *Simulator {
	s := &Simulator{cfg: cfg}
	if cfg.ProductSeed != nil {
		s.products = append(s.products, cfg.ProductSeed...)
	} else {
		s.products = append(s.products, FixtureProducts()...)
	}
	if cfg.UserSeed != nil {
		s.users = append(s.users, cfg.UserSeed...)
	} else {
		s.users = append(s.users, FixtureUsers()...)
	}
	s.nextID = func() int {
		// The demo API hands out IDs in [100, 1100).
		if cfg.Rand != nil {
			return cfg.Rand.Intn(1000) + 100
		}
		max := 0
		for _, p := range s.products {
			if p.ID > max {
				max = p.ID
			}
		}
		return max + 100
	}
	return s
}

// sleep waits out the configured latency, honoring context cancellation.
func (s *Simulator) sleep(ctx context.Context) error {
	if s.cfg.Latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.cfg.Latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Simulator) shouldFail(rate float64) bool {
	return s.cfg.Rand != nil && rate > 0 && s.cfg.Rand.Float64() < rate
}

// ListProducts returns a copy of the simulated product collection.
func (s *Simulator) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if err := s.sleep(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// GetProduct returns a single simulated product.
func (s *Simulator) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	if err := s.sleep(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// ListCategories returns the fixed category set.
func (s *Simulator) ListCategories(ctx context.Context) ([]string, error) {
	if err := s.sleep(ctx); err != nil {
		return nil, err
	}
	out := make([]string, len(domain.Categories))
	copy(out, domain.Categories)
	return out, nil
}

// CreateProduct assigns an ID and a zero rating to the draft and appends it.
func (s *Simulator) CreateProduct(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	if err := s.sleep(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shouldFail(s.cfg.CreateFail) {
		return nil, fmt.Errorf("server error occurred")
	}
	created := domain.Product{
		ID:          s.nextID(),
		Title:       draft.Title,
		Price:       draft.Price,
		Description: draft.Description,
		Category:    draft.Category,
		Image:       draft.Image,
	}
	s.products = append(s.products, created)
	return &created, nil
}

// UpdateProduct merges the patch over the current record and returns the result.
func (s *Simulator) UpdateProduct(ctx context.Context, id int, patch domain.ProductPatch) (*domain.Product, error) {
	if err := s.sleep(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shouldFail(s.cfg.UpdateFail) {
		return nil, fmt.Errorf("update failed")
	}
	for i, p := range s.products {
		if p.ID == id {
			s.products[i] = mergePatch(p, patch)
			merged := s.products[i]
			return &merged, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteProduct removes the record, or fails per the configured rate.
func (s *Simulator) DeleteProduct(ctx context.Context, id int) error {
	if err := s.sleep(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shouldFail(s.cfg.DeleteFail) {
		return fmt.Errorf("delete failed")
	}
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	// The demo API reports success for unknown IDs too.
	return nil
}

// ListUsers returns a copy of the simulated user collection sorted by ID.
func (s *Simulator) ListUsers(ctx context.Context) ([]domain.User, error) {
	if err := s.sleep(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetUser returns a single simulated user.
func (s *Simulator) GetUser(ctx context.Context, id int) (*domain.User, error) {
	if err := s.sleep(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, ErrNotFound
}
