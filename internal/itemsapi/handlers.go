// Package itemsapi is a small in-memory implementation of the /items API used
// for local development and as the counterpart in client tests.
package itemsapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/inventory-client/internal/models"
)

const maxBodyBytes = 1 << 20

// MessageResponse is the body of not-found and delete responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// Handler serves the /items resource from a Store.
type Handler struct {
	store *Store
	log   *slog.Logger
}

// NewHandler creates a handler over store.
func NewHandler(store *Store, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{store: store, log: log}
}

// ListItems handles GET /items.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.store.GetAll())
}

// GetItem handles GET /items/{id}.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetByID(itemID(r))
	if err != nil {
		h.notFound(w)
		return
	}
	h.respond(w, http.StatusOK, p)
}

// CreateItem handles POST /items.
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var in models.ProductInput
	if err := readJSON(w, r, &in); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	created := h.store.Create(in)
	h.log.Info("item created", "id", created.ID, "request_id", r.Header.Get("X-Request-ID"))
	h.respond(w, http.StatusCreated, created)
}

// UpdateItem handles PUT /items/{id}. Fields present in the body replace the
// stored ones; the id never changes.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := itemID(r)
	if _, err := h.store.GetByID(id); err != nil {
		h.notFound(w)
		return
	}

	var patch ProductPatch
	if err := readJSON(w, r, &patch); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	updated, err := h.store.Update(id, patch)
	if err != nil {
		h.notFound(w)
		return
	}
	h.respond(w, http.StatusOK, updated)
}

// DeleteItem handles DELETE /items/{id}.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := itemID(r)
	if err := h.store.Delete(id); err != nil {
		h.notFound(w)
		return
	}
	h.log.Info("item deleted", "id", id, "request_id", r.Header.Get("X-Request-ID"))
	h.respond(w, http.StatusOK, MessageResponse{Message: "product deleted"})
}

func itemID(r *http.Request) models.ProductID {
	return models.ProductID(chi.URLParam(r, "id"))
}

func (h *Handler) notFound(w http.ResponseWriter) {
	h.respond(w, http.StatusNotFound, MessageResponse{Message: ErrProductNotFound.Error()})
}

func (h *Handler) respond(w http.ResponseWriter, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

// readJSON decodes a single JSON value of at most maxBodyBytes from the
// request body.
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("decoding item body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("item body must hold a single JSON value")
	}
	return nil
}

// writeJSON encodes data before touching the response, so a marshal failure
// leaves the status unwritten.
func writeJSON(w http.ResponseWriter, status int, data any) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}
