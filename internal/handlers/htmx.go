package handlers

import (
	"net/http"

	"github.com/a-h/templ"

	applog "nutrilabel/internal/log"
)

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" || r.Header.Get("HX-Boosted") == "true"
}

// render writes the partial for HTMX requests and the full page otherwise.
func render(w http.ResponseWriter, r *http.Request, full, partial templ.Component) {
	component := full
	if isHTMX(r) {
		component = partial
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render view", "path", r.URL.Path, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}
