// Package fakestore talks to the upstream Product/User Directory Service,
// a fakestoreapi-compatible REST API. It also ships an in-process Simulator
// used in development and tests.
package fakestore

import (
	"context"
	"errors"

	"storedesk/internal/domain"
)

var (
	// ErrNotFound is returned when the requested record does not exist upstream.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized is returned on a 401; the session layer treats it as
	// "session invalid".
	ErrUnauthorized = errors.New("session invalid")
)

// Client defines the operations the directory service exposes. Users are
// read-only; only products support mutation.
type Client interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int, patch domain.ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int) error

	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id int) (*domain.User, error)
}

// mergePatch applies the non-nil fields of patch over base and returns the
// merged record. The ID and rating are never touched.
func mergePatch(base domain.Product, patch domain.ProductPatch) domain.Product {
	if patch.Title != nil {
		base.Title = *patch.Title
	}
	if patch.Price != nil {
		base.Price = *patch.Price
	}
	if patch.Description != nil {
		base.Description = *patch.Description
	}
	if patch.Category != nil {
		base.Category = *patch.Category
	}
	if patch.Image != nil {
		base.Image = *patch.Image
	}
	return base
}
