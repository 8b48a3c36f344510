package handlers

import (
	"net/http"

	"github.com/hotiphone/storefront/internal/auth"
	"github.com/hotiphone/storefront/internal/nav"
)

// MembersPage is gated behind the member role; everyone else is
// redirected home by the route guard.
func (h *SiteHandler) MembersPage(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := h.gate(w, r, nav.PageMembers)
	if !ok {
		return
	}

	tmpl := h.Templates.Get("members.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.Sessions.Get(r, auth.SessionName)
	c := h.loadCart(session)
	data := map[string]interface{}{
		"Profile":   authCtx.Profile(),
		"CartCount": c.Count(),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// MembersUpgradePage is the public upsell page; no gate.
func (h *SiteHandler) MembersUpgradePage(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("members_upgrade.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.Sessions.Get(r, auth.SessionName)
	c := h.loadCart(session)
	data := map[string]interface{}{
		"CartCount": c.Count(),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
