package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotiphone/storefront/internal/models"
)

type fakeAuth struct {
	session bool
	role    models.Role
	loading bool
}

func (f *fakeAuth) SessionPresent() bool { return f.session }
func (f *fakeAuth) Role() models.Role    { return f.role }
func (f *fakeAuth) Loading() bool        { return f.loading }

func TestCheckoutWithoutSessionLandsOnAuth(t *testing.T) {
	c := NewController(&fakeAuth{session: false})
	c.NavigateTo(PageCheckout, nil)

	assert.Equal(t, PageAuth, c.CurrentPage())
	assert.Equal(t, PageAuth, c.Resolve())
}

func TestAccountWithoutSessionKeepsSelectedProduct(t *testing.T) {
	p := &models.Product{ID: 42, Name: "iPhone 16"}
	c := NewController(&fakeAuth{session: false})
	c.NavigateTo(PageAccount, p)

	assert.Equal(t, PageAuth, c.CurrentPage())
	require.NotNil(t, c.SelectedProduct())
	assert.Equal(t, int64(42), c.SelectedProduct().ID)
}

func TestCheckoutWithSession(t *testing.T) {
	c := NewController(&fakeAuth{session: true})
	c.NavigateTo(PageCheckout, nil)

	assert.Equal(t, PageCheckout, c.CurrentPage())
	assert.Equal(t, PageCheckout, c.Resolve())
}

func TestLoadingRendersPlaceholderForEveryPage(t *testing.T) {
	auth := &fakeAuth{session: true, role: models.RoleAdmin, loading: true}
	c := NewController(auth)
	for _, page := range []Page{PageHome, PageCart, PageAdmin, PageAuth} {
		c.NavigateTo(page, nil)
		assert.Equal(t, PageLoading, c.Resolve(), "page %s", page)
	}
}

func TestAdminGuard(t *testing.T) {
	tests := []struct {
		role models.Role
		want Page
	}{
		{models.RoleAdmin, PageAdmin},
		{models.RoleMember, PageHome},
		{models.RoleCustomer, PageHome},
	}
	for _, tt := range tests {
		c := NewController(&fakeAuth{session: true, role: tt.role})
		c.NavigateTo(PageAdmin, nil)
		assert.Equal(t, tt.want, c.Resolve(), "role %s", tt.role)
	}
}

func TestMemberGuardDoesNotAcceptAdmin(t *testing.T) {
	c := NewController(&fakeAuth{session: true, role: models.RoleAdmin})
	c.NavigateTo(PageMembers, nil)

	assert.Equal(t, PageHome, c.Resolve())
	// The failed guard redirected; current page moved to the fallback.
	assert.Equal(t, PageHome, c.CurrentPage())
}

func TestUnknownPageFallsBackToHome(t *testing.T) {
	c := NewController(&fakeAuth{session: true})
	c.NavigateTo(Page("no-such-page"), nil)

	assert.Equal(t, PageHome, c.Resolve())
}

func TestNavigationResetsScroll(t *testing.T) {
	c := NewController(&fakeAuth{})
	c.NavigateTo(PageCart, nil)

	assert.True(t, c.ConsumeScrollReset())
	assert.False(t, c.ConsumeScrollReset())
}
