// Package cart implements the per-session shopping cart and checkout.
package cart

import (
	"context"
	"errors"
	"math"
	"sync"

	"storedesk/internal/domain"
)

var (
	// ErrEmptyCart is returned when checkout is attempted on an empty cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrItemNotFound is returned when the cart holds no line for the product.
	ErrItemNotFound = errors.New("item not in cart")
)

// Item is one cart line.
type Item struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

// CheckoutData is the shipping and (mock) payment information collected at
// checkout. No real payment processing happens.
type CheckoutData struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	ZipCode    string `json:"zip_code" validate:"required"`
	CardNumber string `json:"card_number" validate:"required,min=12"`
	ExpiryDate string `json:"expiry_date" validate:"required"`
	CVV        string `json:"cvv" validate:"required,len=3"`
}

// Summary is the derived cart view: the lines plus the computed totals.
type Summary struct {
	Items     []Item  `json:"items"`
	ItemCount int     `json:"item_count"`
	Total     float64 `json:"total"`
}

// Cart holds the items for one session. Safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	items []Item
}

// Add puts one unit of the product in the cart, incrementing the quantity if
// a line for it already exists.
func (c *Cart) Add(p domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, Item{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.Price,
		Image:    p.Image,
		Quantity: 1,
	})
}

// Remove drops the line for the product.
func (c *Cart) Remove(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// SetQuantity updates one line's quantity; zero or less removes the line.
func (c *Cart) SetQuantity(id, quantity int) error {
	if quantity <= 0 {
		return c.Remove(id)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			return nil
		}
	}
	return ErrItemNotFound
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Summary returns the lines plus item count and total, rounded to cents.
func (c *Cart) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := Summary{Items: make([]Item, len(c.items))}
	copy(out.Items, c.items)
	for _, item := range c.items {
		out.ItemCount += item.Quantity
		out.Total += item.Price * float64(item.Quantity)
	}
	out.Total = math.Round(out.Total*100) / 100
	return out
}

// Checkout validates nothing beyond what the transport layer already has and
// clears the cart; payment is mocked out of existence.
func (c *Cart) Checkout(ctx context.Context, data CheckoutData) (Summary, error) {
	summary := c.Summary()
	if summary.ItemCount == 0 {
		return Summary{}, ErrEmptyCart
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	c.Clear()
	return summary, nil
}
