package fakestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"storedesk/internal/domain"
)

// HTTPClient is the real implementation of Client against the directory
// service's REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a client for the given base URL. The token is
// optional; when present it is sent as a bearer header on every request.
func NewHTTPClient(baseURL, token string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetToken swaps the bearer token used on subsequent requests.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s %s request: %w", method, path, err)
		}
		reqBody = bytes.NewBuffer(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call directory service %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("directory service %s %s error %d: %s", method, path, resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// ListProducts fetches the full product collection.
func (c *HTTPClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product by ID.
func (c *HTTPClient) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListCategories fetches the category list.
func (c *HTTPClient) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/products/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateProduct submits a candidate product. The service assigns the ID and
// a zero rating.
func (c *HTTPClient) CreateProduct(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	var created domain.Product
	if err := c.do(ctx, http.MethodPost, "/products", draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct submits a partial update and returns the merged canonical
// record from the service.
func (c *HTTPClient) UpdateProduct(ctx context.Context, id int, patch domain.ProductPatch) (*domain.Product, error) {
	var updated domain.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes a product upstream.
func (c *HTTPClient) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

// ListUsers fetches the full user collection.
func (c *HTTPClient) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches a single user by ID.
func (c *HTTPClient) GetUser(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
