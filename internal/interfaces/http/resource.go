package http

import (
	"fmt"
	"net/http"

	"spendwise/internal/domain/resource"
)

// ResourceHandler serves the generic collection and item endpoints of
// one entity type.
type ResourceHandler struct {
	svc *resource.Service
}

func NewResourceHandler(svc *resource.Service) *ResourceHandler {
	return &ResourceHandler{svc: svc}
}

// HandleCollection routes /api/<collection> by method.
func (h *ResourceHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

// HandleItem routes /api/<collection>/{id} by method.
func (h *ResourceHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, h.svc.Schema().Name+" not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, id)
	case http.MethodPatch, http.MethodPut:
		h.handleUpdate(w, r, id)
	case http.MethodDelete:
		h.handleDelete(w, r, id)
	default:
		methodNotAllowed(w, "GET, PATCH, PUT, DELETE")
	}
}

func (h *ResourceHandler) handleList(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "listing "+h.svc.Schema().Table)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *ResourceHandler) handleGet(w http.ResponseWriter, r *http.Request, id int64) {
	doc, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, fmt.Sprintf("getting %s %d", h.svc.Schema().Table, id))
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *ResourceHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	r = withActor(r)
	doc, err := h.svc.Create(r.Context(), payload)
	if err != nil {
		writeServiceError(w, r, err, "creating "+h.svc.Schema().Table)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (h *ResourceHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.svc.Update(r.Context(), id, payload)
	if err != nil {
		writeServiceError(w, r, err, fmt.Sprintf("updating %s %d", h.svc.Schema().Table, id))
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *ResourceHandler) handleDelete(w http.ResponseWriter, r *http.Request, id int64) {
	msg, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, fmt.Sprintf("deleting %s %d", h.svc.Schema().Table, id))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}
