// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling mechanisms.
package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/protscope/core/internal/explorer"
	"github.com/protscope/core/internal/models"
	"github.com/protscope/core/internal/organ"
	"github.com/protscope/core/internal/views"
)

// Explorer serves the view models of one shared exploration session.
type Explorer struct {
	ctrl        *explorer.Controller
	defaultView models.View
	log         *zap.Logger
}

func NewExplorer(ctrl *explorer.Controller, defaultView models.View, log *zap.Logger) *Explorer {
	if log == nil {
		log = zap.NewNop()
	}
	if defaultView == "" {
		defaultView = models.ViewTable
	}
	return &Explorer{ctrl: ctrl, defaultView: defaultView, log: log}
}

// Register mounts every explorer route on mux.
func (h *Explorer) Register(mux *http.ServeMux) {
	mux.HandleFunc("/browse", h.Browse)
	mux.HandleFunc("/search", h.Search)
	mux.HandleFunc("/view", h.View)
	mux.HandleFunc("/organs", h.Organs)
	mux.HandleFunc("/organs/{id}", h.Organ)
	mux.HandleFunc("/categories", h.Category)
}

func (h *Explorer) view(w http.ResponseWriter, r *http.Request) (models.View, bool) {
	raw := r.URL.Query().Get("view")
	if raw == "" {
		return h.defaultView, true
	}
	view, err := models.ParseView(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return view, true
}

func (h *Explorer) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
	} else {
		h.log.Debug("request rejected", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
	}
	http.Error(w, err.Error(), status)
}

func (h *Explorer) render(w http.ResponseWriter, r *http.Request, view models.View) {
	v, err := h.ctrl.Render(view)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, v)
}

// Browse resets the session to the default query.
func (h *Explorer) Browse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	view, ok := h.view(w, r)
	if !ok {
		return
	}

	if _, err := h.ctrl.Reset(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, view)
}

func (h *Explorer) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	view, ok := h.view(w, r)
	if !ok {
		return
	}

	params := r.URL.Query()
	mode, err := models.ParseMode(params.Get("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sc := models.SearchContext{Mode: mode, Term: params.Get("term")}
	if _, err := h.ctrl.Search(r.Context(), sc); err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, view)
}

// View re-renders the current rows.
func (h *Explorer) View(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	h.render(w, r, view)
}

func (h *Explorer) Organs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, r, http.StatusOK, views.Human())
}

func (h *Explorer) Organ(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	panel, err := h.ctrl.Organ(r.Context(), organ.ID(r.PathValue("id")))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, panel)
}

// Category returns the bubble detail for ?label= over the current rows.
func (h *Explorer) Category(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	label := r.URL.Query().Get("label")
	if label == "" {
		http.Error(w, "label is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, r, http.StatusOK, h.ctrl.CategoryDetail(label))
}
