package api

import (
	"bytes"
	"context"
	"net/http"

	"github.com/neexbeast/weather-dashboard/internal/dashboard"
)

// Index handles GET / by rendering the current dashboard snapshot.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, h.dash.Snapshot()); err != nil {
		h.log.Error("render dashboard failed", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// Search handles POST /search. The search outlives the request, so it runs on
// a context that is not canceled when the redirect is sent. Blank input
// leaves the dashboard untouched.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if !h.dash.Submit(context.WithoutCancel(r.Context()), r.PostFormValue("q")) {
		h.log.Debug("blank search ignored")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SelectView handles POST /view.
func (h *Handlers) SelectView(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	v, err := dashboard.ParseView(r.PostFormValue("tab"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.dash.SelectView(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
