package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/hotiphone/storefront/internal/auth"
	"github.com/hotiphone/storefront/internal/catalog"
	"github.com/hotiphone/storefront/internal/nav"
	"github.com/hotiphone/storefront/internal/storage"
	"github.com/hotiphone/storefront/internal/store"
)

// AdminHandler serves the back office: product, order and customer
// management.
type AdminHandler struct {
	Store     *store.Store
	Catalog   *catalog.Accessor
	Auth      *auth.SessionAuth
	Sessions  *sessions.CookieStore
	Templates *TemplateCache
	Disk      storage.Disk
}

// RequireAdmin gates the back office behind the admin role via the
// route guard; failures are redirected to the guard's fallback.
func (h *AdminHandler) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authCtx := h.Auth.Resolve(r)
		ctrl := nav.NewController(authCtx)
		ctrl.NavigateTo(nav.PageAdmin, nil)
		if resolved := ctrl.Resolve(); resolved != nav.PageAdmin {
			slog.Info("Admin access denied", "role", authCtx.Role(), "path", r.URL.Path)
			session, _ := h.Sessions.Get(r, auth.SessionName)
			session.AddFlash(FlashMessage{Type: "error", Message: "Acesso restrito."})
			session.Save(r, w)
			http.Redirect(w, r, PagePath(resolved), http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// Dashboard is the back-office landing page with collection counters.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.GetDashboardStats()
	if err != nil {
		http.Error(w, "Error fetching stats", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.Sessions.Get(r, auth.SessionName)
	data := map[string]interface{}{
		"Stats":   stats,
		"Flashes": GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
