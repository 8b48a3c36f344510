// Package nav is the page controller for the storefront: a small
// state machine over the finite set of page identifiers. Transitions
// and render decisions live here so they can be tested without an
// HTTP server or templates; the handlers layer only translates them
// into redirects.
package nav

import (
	"github.com/hotiphone/storefront/internal/models"
)

type Page string

const (
	PageHome           Page = "home"
	PageProduct        Page = "product"
	PageCart           Page = "cart"
	PageCheckout       Page = "checkout"
	PageAccount        Page = "account"
	PageAdmin          Page = "admin"
	PageMembers        Page = "members"
	PageMembersUpgrade Page = "members-upgrade"
	PageAuth           Page = "auth"

	// PageLoading is what every target renders as while the
	// session/role resolution is still in flight.
	PageLoading Page = "loading"
)

// AuthState is the slice of the auth context the controller needs.
type AuthState interface {
	SessionPresent() bool
	Role() models.Role
	Loading() bool
}

// Guard gates a destination behind a required role. Roles are treated
// as independent flags: admin does not satisfy a member-only gate.
type Guard struct {
	Required models.Role
	Fallback Page
}

func (g Guard) Allow(role models.Role) bool {
	return role == g.Required
}

// Controller holds the top-level navigation state: the current page
// and the selected product payload needed before rendering the
// product page.
type Controller struct {
	auth AuthState

	page          Page
	selected      *models.Product
	scrolledToTop bool
}

func NewController(auth AuthState) *Controller {
	return &Controller{auth: auth, page: PageHome}
}

// NavigateTo is the sole transition function. Checkout and account
// require a session; without one the transition lands on the auth
// page instead (the originally requested page is not remembered). A
// supplied product payload is always recorded, including on the
// redirect path, so it survives a later re-navigation.
func (c *Controller) NavigateTo(page Page, product *models.Product) {
	if product != nil {
		c.selected = product
	}
	if (page == PageCheckout || page == PageAccount) && !c.auth.SessionPresent() {
		c.page = PageAuth
	} else {
		c.page = page
	}
	c.scrolledToTop = true
}

// Resolve is the render decision: a pure function of (current page,
// session, role, loading). Guarded pages that fail their check
// transition to the guard's fallback as a side effect, mirroring a
// redirect.
func (c *Controller) Resolve() Page {
	if c.auth.Loading() {
		return PageLoading
	}
	switch c.page {
	case PageAdmin:
		return c.guarded(Guard{Required: models.RoleAdmin, Fallback: PageHome})
	case PageMembers:
		return c.guarded(Guard{Required: models.RoleMember, Fallback: PageHome})
	case PageCheckout, PageAccount:
		// Defensive re-check in addition to the gate in NavigateTo.
		if !c.auth.SessionPresent() {
			return PageAuth
		}
		return c.page
	case PageHome, PageProduct, PageCart, PageMembersUpgrade, PageAuth:
		return c.page
	default:
		return PageHome
	}
}

func (c *Controller) guarded(g Guard) Page {
	if g.Allow(c.auth.Role()) {
		return c.page
	}
	c.NavigateTo(g.Fallback, nil)
	return g.Fallback
}

func (c *Controller) CurrentPage() Page { return c.page }

func (c *Controller) SelectedProduct() *models.Product { return c.selected }

// ConsumeScrollReset reports whether the last transition asked for a
// scroll-to-top, clearing the flag.
func (c *Controller) ConsumeScrollReset() bool {
	s := c.scrolledToTop
	c.scrolledToTop = false
	return s
}
