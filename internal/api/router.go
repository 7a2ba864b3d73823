package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/jsoler/apunte/internal/index"
	"github.com/jsoler/apunte/internal/notes"
)

// NewRouter creates a chi router with the read-only API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
func NewRouter(manager *notes.Manager, idx index.Index, authEnabled bool, token string) chi.Router {
	h := NewHandler(manager, idx)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/notes", h.ListNotes)
	r.Get("/notes/{id}", h.GetNote)
	r.Get("/notes/{id}/refinements", h.ListRefinements)
	r.Get("/projects", h.ListProjects)
	r.Get("/projects/{id}/notes", h.ListProjectNotes)
	r.Get("/search", h.Search)

	return r
}
