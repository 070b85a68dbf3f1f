package http

import (
	"errors"
	"net/http"

	"spendwise/internal/domain/resource"
)

// CollaboratorHandler serves /api/wallets/{wallet_id}/collaborators. Every
// request is confined to the wallet named in the path.
type CollaboratorHandler struct {
	wallets       *resource.Service
	collaborators *resource.Service
}

func NewCollaboratorHandler(wallets, collaborators *resource.Service) *CollaboratorHandler {
	return &CollaboratorHandler{wallets: wallets, collaborators: collaborators}
}

// HandleCollection routes /api/wallets/{wallet_id}/collaborators.
func (h *CollaboratorHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	inner, ok := h.scoped(w, r)
	if !ok {
		return
	}
	inner.HandleCollection(w, r)
}

// HandleItem routes /api/wallets/{wallet_id}/collaborators/{id}.
func (h *CollaboratorHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	inner, ok := h.scoped(w, r)
	if !ok {
		return
	}
	inner.HandleItem(w, r)
}

// scoped resolves the wallet and returns a handler restricted to it.
// It writes the response itself when the wallet cannot be used.
func (h *CollaboratorHandler) scoped(w http.ResponseWriter, r *http.Request) (*ResourceHandler, bool) {
	notFound := h.wallets.Schema().Name + " not found"

	walletID, ok := parseID(r, "wallet_id")
	if !ok {
		writeError(w, http.StatusNotFound, notFound)
		return nil, false
	}

	if _, err := h.wallets.GetByID(r.Context(), walletID); err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			writeError(w, http.StatusNotFound, notFound)
			return nil, false
		}
		writeServiceError(w, r, err, "getting wallet for collaborators")
		return nil, false
	}

	return NewResourceHandler(h.collaborators.Scope("wallet_id", walletID)), true
}
