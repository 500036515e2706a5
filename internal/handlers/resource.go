package handlers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/otcheredev/hospital-console/internal/services"
)

// resource serves the five CRUD operations of one domain collection
type resource[T, C, U any] struct {
	api  *API
	name string
	pick func(*services.Services) services.Service[T, C, U]
	// query, when set, serves list requests that carry query parameters.
	// It reports false to fall back to GetAll.
	query func(r *http.Request, s *services.Services, q url.Values) ([]T, bool, error)
	// readOnly mounts only the list and get routes
	readOnly bool
}

// mount registers the collection routes on r
func (h *resource[T, C, U]) mount(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	if h.readOnly {
		return
	}
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

func (h *resource[T, C, U]) list(w http.ResponseWriter, r *http.Request) {
	s := h.api.services(r)

	if q := r.URL.Query(); h.query != nil && len(q) > 0 {
		items, handled, err := h.query(r, s, q)
		if err != nil {
			writeFailure(w, r, err)
			return
		}
		if handled {
			writeOK(w, http.StatusOK, nonNil(items))
			return
		}
	}

	items, err := h.pick(s).GetAll(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, nonNil(items))
}

func (h *resource[T, C, U]) get(w http.ResponseWriter, r *http.Request) {
	item, err := h.pick(h.api.services(r)).GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, item)
}

func (h *resource[T, C, U]) create(w http.ResponseWriter, r *http.Request) {
	var input C
	if err := decode(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	start := time.Now()
	item, m, err := h.pick(h.api.services(r)).Create(r.Context(), input)
	h.api.record(r, "create", h.name, m.ID, start, err)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, mutationResult[T]{Item: item, Mutation: m})
}

func (h *resource[T, C, U]) update(w http.ResponseWriter, r *http.Request) {
	var patch U
	if err := decode(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := chi.URLParam(r, "id")
	start := time.Now()
	item, m, err := h.pick(h.api.services(r)).Update(r.Context(), id, patch)
	h.api.record(r, "update", h.name, id, start, err)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, mutationResult[T]{Item: item, Mutation: m})
}

func (h *resource[T, C, U]) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	start := time.Now()
	m, err := h.pick(h.api.services(r)).Delete(r.Context(), id)
	h.api.record(r, "delete", h.name, id, start, err)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, m)
}

// nonNil keeps empty collections encoded as [] rather than null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
