package transport

import (
	"errors"
	"net/http"
	"strconv"

	"storedesk/internal/cart"
	"storedesk/internal/domain"
	"storedesk/internal/fakestore"
	"storedesk/internal/middleware"
	"storedesk/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SessionHeader identifies the shopper's cart across requests.
const SessionHeader = "X-Session-ID"

// AddItemRequest puts one unit of a product in the cart.
type AddItemRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
}

// SetQuantityRequest changes one cart line's quantity.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// CartHandler serves the storefront cart and checkout.
type CartHandler struct {
	registry *cart.Registry
	catalog  *store.Catalog
	client   fakestore.Client
	logger   *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(registry *cart.Registry, catalog *store.Catalog, client fakestore.Client, logger *zap.Logger) *CartHandler {
	return &CartHandler{registry: registry, catalog: catalog, client: client, logger: logger}
}

// RegisterRoutes registers the cart routes. Carts are keyed by the session
// header, minted on first use; no sign-in required to shop.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Post("/items", h.AddItem)
		r.Put("/items/{id}", h.SetQuantity)
		r.Delete("/items/{id}", h.RemoveItem)
		r.Post("/checkout", h.Checkout)
	})
}

// session resolves the request's cart, echoing the session ID back so new
// shoppers learn theirs.
func (h *CartHandler) session(w http.ResponseWriter, r *http.Request) *cart.Cart {
	c, id := h.registry.Get(r.Header.Get(SessionHeader))
	w.Header().Set(SessionHeader, id)
	return c
}

// Get returns the cart summary.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	c := h.session(w, r)
	middleware.RespondWithJSON(w, http.StatusOK, c.Summary())
}

// AddItem puts one unit of a product in the cart. The product is looked up
// in the catalog's authoritative collection first, falling back to the
// directory service for products not yet cached.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	c := h.session(w, r)

	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add to cart rejected", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, found := h.lookupProduct(req.ProductID)
	if !found {
		fetched, err := h.client.GetProduct(r.Context(), req.ProductID)
		if err != nil {
			if errors.Is(err, fakestore.ErrNotFound) {
				middleware.RespondWithError(w, http.StatusNotFound, "product not found")
				return
			}
			h.logger.Error("Failed to fetch product for cart", zap.Int("id", req.ProductID), zap.Error(err))
			middleware.RespondWithError(w, http.StatusBadGateway, "failed to fetch product")
			return
		}
		product = *fetched
	}

	c.Add(product)
	h.logger.Info("Added to cart", zap.Int("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusOK, c.Summary())
}

// SetQuantity updates one line; quantity zero removes it.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	c := h.session(w, r)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req SetQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := c.SetQuantity(id, req.Quantity); err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "item not in cart")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, c.Summary())
}

// RemoveItem drops one line from the cart.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c := h.session(w, r)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := c.Remove(id); err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "item not in cart")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, c.Summary())
}

// Checkout validates the shipping/payment form and clears the cart. No real
// payment happens.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	c := h.session(w, r)

	var data cart.CheckoutData
	if err := middleware.DecodeAndValidate(r, &data); err != nil {
		h.logger.Debug("Checkout rejected", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	summary, err := c.Checkout(r.Context(), data)
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			middleware.RespondWithError(w, http.StatusBadRequest, "cart is empty")
			return
		}
		h.logger.Error("Checkout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "checkout failed")
		return
	}

	h.logger.Info("Checkout completed",
		zap.Int("items", summary.ItemCount),
		zap.Float64("total", summary.Total),
	)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": "order placed",
		"order":   summary,
	})
}

func (h *CartHandler) lookupProduct(id int) (domain.Product, bool) {
	for _, candidate := range h.catalog.Products() {
		if candidate.ID == id {
			return candidate, true
		}
	}
	return domain.Product{}, false
}
