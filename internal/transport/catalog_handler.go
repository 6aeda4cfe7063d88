package transport

import (
	"errors"
	"net/http"
	"strconv"

	"storedesk/internal/domain"
	"storedesk/internal/fakestore"
	"storedesk/internal/middleware"
	"storedesk/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogHandler serves the public catalog and the dashboard product CRUD.
type CatalogHandler struct {
	catalog *store.Catalog
	client  fakestore.Client
	logger  *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog *store.Catalog, client fakestore.Client, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, client: client, logger: logger}
}

// RegisterRoutes registers catalog routes. Mutations sit behind the session
// middleware; reads are public.
func (h *CatalogHandler) RegisterRoutes(r chi.Router, sessionMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/categories", h.Categories)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(sessionMiddleware)
			r.Post("/", h.Create)
			r.Post("/reload", h.Reload)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List serves one page of the filtered catalog. Query parameters map onto
// the store's filter actions; page is applied last because every filter
// change resets it to 1.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	h.catalog.SetSearch(q.Get("search"))

	category := q.Get("category")
	if category == "" {
		category = domain.CategoryAll
	}
	h.catalog.SetCategory(category)

	minPrice, err := parsePriceParam(q.Get("min_price"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid min_price")
		return
	}
	maxPrice, err := parsePriceParam(q.Get("max_price"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid max_price")
		return
	}
	h.catalog.SetPriceRange(minPrice, maxPrice)

	if perPage := q.Get("per_page"); perPage != "" {
		n, err := strconv.Atoi(perPage)
		if err != nil || n < 1 || n > 100 {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid per_page")
			return
		}
		h.catalog.SetItemsPerPage(n)
	}
	if page := q.Get("page"); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid page")
			return
		}
		h.catalog.SetPage(n)
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.catalog.Page())
}

// Categories proxies the category list from the directory service.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.client.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("Failed to fetch categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to fetch categories")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// Get serves a single product straight from the directory service.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.client.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, fakestore.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to fetch product", zap.Int("id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to fetch product")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Create validates a product draft and hands it to the catalog store.
// Validation failures never reach the network.
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft domain.ProductDraft
	if err := middleware.DecodeAndValidate(r, &draft); err != nil {
		h.logger.Debug("Product draft rejected", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.catalog.Add(r.Context(), draft)
	if err != nil {
		if errors.Is(err, store.ErrValidationFailed) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to add product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to add product")
		return
	}

	h.logger.Info("Product created", zap.Int("id", created.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, created)
}

// Update validates a patch and applies it through the catalog store.
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var patch domain.ProductPatch
	if err := middleware.DecodeAndValidate(r, &patch); err != nil {
		h.logger.Debug("Product patch rejected", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.catalog.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, store.ErrValidationFailed) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, fakestore.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to update product", zap.Int("id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to update product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, updated)
}

// Delete removes a product optimistically; a rejected delete has already
// been rolled back by the time the error surfaces here.
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		if errors.Is(err, fakestore.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Product delete rolled back", zap.Int("id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to delete product, change rolled back")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// Reload re-fetches the authoritative collection from the directory service.
func (h *CatalogHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Load(r.Context()); err != nil {
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "failed to load products")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, h.catalog.Page())
}

func parsePriceParam(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil, errors.New("invalid price")
	}
	return &v, nil
}
