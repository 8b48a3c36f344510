package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/hotiphone/storefront/internal/auth"
	"github.com/hotiphone/storefront/internal/cart"
	"github.com/hotiphone/storefront/internal/catalog"
	"github.com/hotiphone/storefront/internal/events"
	"github.com/hotiphone/storefront/internal/nav"
	"github.com/hotiphone/storefront/internal/store"
)

// SiteHandler serves the customer-facing pages: catalog, product,
// cart, checkout, account, members and authentication.
type SiteHandler struct {
	Store     *store.Store
	Catalog   *catalog.Accessor
	Auth      *auth.SessionAuth
	Sessions  *sessions.CookieStore
	Templates *TemplateCache
	Events    *events.Publisher
}

// pagePaths maps the controller's page identifiers onto routes.
var pagePaths = map[nav.Page]string{
	nav.PageHome:           "/",
	nav.PageProduct:        "/product",
	nav.PageCart:           "/cart",
	nav.PageCheckout:       "/checkout",
	nav.PageAccount:        "/account",
	nav.PageAdmin:          "/admin",
	nav.PageMembers:        "/members",
	nav.PageMembersUpgrade: "/members/upgrade",
	nav.PageAuth:           "/auth",
}

func PagePath(p nav.Page) string {
	if path, ok := pagePaths[p]; ok {
		return path
	}
	return "/"
}

// gate runs the navigation controller for a destination. When the
// controller resolves somewhere else (missing session, failed role
// guard) the request is redirected there and gate reports false.
func (h *SiteHandler) gate(w http.ResponseWriter, r *http.Request, target nav.Page) (*auth.Context, bool) {
	authCtx := h.Auth.Resolve(r)
	ctrl := nav.NewController(authCtx)
	ctrl.NavigateTo(target, nil)
	if resolved := ctrl.Resolve(); resolved != target {
		http.Redirect(w, r, PagePath(resolved), http.StatusSeeOther)
		return authCtx, false
	}
	return authCtx, true
}

// loadCart rehydrates the visitor's cart from the session cookie.
func (h *SiteHandler) loadCart(session *sessions.Session) *cart.Cart {
	raw, _ := session.Values["cart"].(string)
	return cart.Decode(raw)
}

// saveCart re-serializes the cart into the session. Called after
// every mutation.
func saveCart(session *sessions.Session, c *cart.Cart) {
	session.Values["cart"] = c.Encode()
}
