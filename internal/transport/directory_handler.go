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

// UserView is a directory record plus its derived status. Status is computed
// from identifier parity, never stored.
type UserView struct {
	domain.User
	Status string `json:"status"`
}

// DirectoryPageResponse is one page of the filtered user directory.
type DirectoryPageResponse struct {
	Items      []UserView        `json:"items"`
	Pagination domain.Pagination `json:"pagination"`
}

// DirectoryHandler serves the dashboard's read-only user directory.
type DirectoryHandler struct {
	directory *store.Directory
	client    fakestore.Client
	logger    *zap.Logger
}

// NewDirectoryHandler creates a new DirectoryHandler
func NewDirectoryHandler(directory *store.Directory, client fakestore.Client, logger *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{directory: directory, client: client, logger: logger}
}

// RegisterRoutes registers the user directory routes, all session-protected.
func (h *DirectoryHandler) RegisterRoutes(r chi.Router, sessionMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/users", func(r chi.Router) {
		r.Use(sessionMiddleware)
		r.Get("/", h.List)
		r.Post("/reload", h.Reload)
		r.Get("/{id}", h.Get)
	})
}

// List serves one page of the filtered directory.
func (h *DirectoryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	h.directory.SetSearch(q.Get("search"))

	status := q.Get("status")
	if status == "" {
		status = domain.StatusAll
	}
	switch status {
	case domain.StatusAll, domain.StatusActive, domain.StatusInactive:
	default:
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid status")
		return
	}
	h.directory.SetStatus(status)

	if perPage := q.Get("per_page"); perPage != "" {
		n, err := strconv.Atoi(perPage)
		if err != nil || n < 1 || n > 100 {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid per_page")
			return
		}
		h.directory.SetItemsPerPage(n)
	}
	if page := q.Get("page"); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid page")
			return
		}
		h.directory.SetPage(n)
	}

	page := h.directory.Page()
	resp := DirectoryPageResponse{
		Items:      make([]UserView, 0, len(page.Items)),
		Pagination: page.Pagination,
	}
	for _, u := range page.Items {
		resp.Items = append(resp.Items, UserView{User: u, Status: u.Status()})
	}
	middleware.RespondWithJSON(w, http.StatusOK, resp)
}

// Get serves a single user straight from the directory service.
func (h *DirectoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.client.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, fakestore.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("Failed to fetch user", zap.Int("id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to fetch user")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, UserView{User: *user, Status: user.Status()})
}

// Reload re-fetches the authoritative collection from the directory service.
func (h *DirectoryHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.directory.Load(r.Context()); err != nil {
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "failed to load users")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, h.directory.Page())
}
