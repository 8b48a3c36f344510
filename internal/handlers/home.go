package handlers

import (
	"net/http"

	"github.com/hotiphone/storefront/internal/auth"
	"github.com/hotiphone/storefront/internal/models"
)

func (h *SiteHandler) Index(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("home.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	authCtx := h.Auth.Resolve(r)
	session, _ := h.Sessions.Get(r, auth.SessionName)
	c := h.loadCart(session)

	data := map[string]interface{}{
		"Products":  h.Catalog.Active(),
		"CartCount": c.Count(),
		"Session":   authCtx.SessionPresent(),
		"IsAdmin":   authCtx.Role() == models.RoleAdmin,
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
