package http

import (
	"net/http"

	"spendwise/internal/domain/catalog"
	"spendwise/internal/domain/resource"
	"spendwise/internal/domain/wallet"
)

// RegisterRoutes mounts the collection and item endpoints of every entry
// under /api, the wallet-scoped collaborator routes and the health check.
func RegisterRoutes(mux *http.ServeMux, store resource.Store, db Pinger, entries []catalog.Entry) {
	services := make(map[*resource.Schema]*resource.Service, len(entries))

	for _, e := range entries {
		svc := resource.NewService(e.Schema, store)
		services[e.Schema] = svc

		h := NewResourceHandler(svc)
		mux.HandleFunc("/api/"+e.Path, h.HandleCollection)
		mux.HandleFunc("/api/"+e.Path+"/{id}", h.HandleItem)
	}

	wallets, collaborators := services[wallet.Schema], services[wallet.CollaboratorSchema]
	if wallets != nil && collaborators != nil {
		nested := NewCollaboratorHandler(wallets, collaborators)
		mux.HandleFunc("/api/wallets/{wallet_id}/collaborators", nested.HandleCollection)
		mux.HandleFunc("/api/wallets/{wallet_id}/collaborators/{id}", nested.HandleItem)
	}

	mux.HandleFunc("/api/health", NewHealthHandler(db).HandleHealth)
}
