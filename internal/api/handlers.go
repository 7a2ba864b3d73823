package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jsoler/apunte/internal/apperr"
	"github.com/jsoler/apunte/internal/index"
	"github.com/jsoler/apunte/internal/notes"
)

// Handler holds the read-only API route handlers.
type Handler struct {
	manager *notes.Manager
	idx     index.Index
}

// NewHandler creates a new Handler. idx may be nil when search is unavailable.
func NewHandler(manager *notes.Manager, idx index.Index) *Handler {
	return &Handler{manager: manager, idx: idx}
}

// ListNotes handles GET /api/notes?limit=N.
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items := h.manager.RecentNotes(limit)
	writeJSON(w, http.StatusOK, map[string]any{
		"notes": items,
		"total": len(items),
	})
}

// GetNote handles GET /api/notes/{id}.
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	note, err := h.manager.GetNote(id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get note failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// ListRefinements handles GET /api/notes/{id}/refinements.
func (h *Handler) ListRefinements(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	items := h.manager.RefinementsFor(id)
	writeJSON(w, http.StatusOK, map[string]any{
		"refinements": items,
		"total":       len(items),
	})
}

// ListProjects handles GET /api/projects.
func (h *Handler) ListProjects(w http.ResponseWriter, _ *http.Request) {
	items := h.manager.Projects()
	writeJSON(w, http.StatusOK, map[string]any{
		"projects": items,
		"total":    len(items),
	})
}

// ListProjectNotes handles GET /api/projects/{id}/notes.
func (h *Handler) ListProjectNotes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.manager.GetProject(id); err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	items := h.manager.NotesByProject(id)
	writeJSON(w, http.StatusOK, map[string]any{
		"notes": items,
		"total": len(items),
	})
}

// Search handles GET /api/search?q=...&limit=N.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("q is required"))
		return
	}
	if h.idx == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("search unavailable"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.idx.Search(q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if results == nil {
		results = []index.SearchResult{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"total":   len(results),
	})
}
