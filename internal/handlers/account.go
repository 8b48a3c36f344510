package handlers

import (
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/hotiphone/storefront/internal/auth"
	"github.com/hotiphone/storefront/internal/models"
	"github.com/hotiphone/storefront/internal/nav"
)

// AccountPage shows the visitor's profile and order history.
func (h *SiteHandler) AccountPage(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := h.gate(w, r, nav.PageAccount)
	if !ok {
		return
	}

	profile := authCtx.Profile()
	orders, err := h.Store.GetOrdersByCustomer(profile.ID)
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("account.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.Sessions.Get(r, auth.SessionName)
	c := h.loadCart(session)
	data := map[string]interface{}{
		"Profile":   profile,
		"Orders":    orders,
		"CartCount": c.Count(),
		"IsAdmin":   profile.Role == models.RoleAdmin,
		"IsMember":  profile.Role == models.RoleMember,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
