package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotiphone/storefront/internal/auth"
	"github.com/hotiphone/storefront/internal/cart"
	"github.com/hotiphone/storefront/internal/catalog"
	"github.com/hotiphone/storefront/internal/models"
	"github.com/hotiphone/storefront/internal/store"
)

func newHandlerStore(t *testing.T) (*store.Store, *sessions.CookieStore) {
	t.Helper()
	db, err := store.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.DB.Close() })

	sessionStore := sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))
	return db, sessionStore
}

func newTestSite(t *testing.T) *SiteHandler {
	t.Helper()
	db, sessionStore := newHandlerStore(t)
	cat := catalog.NewAccessor(db)
	require.NoError(t, cat.Refresh())

	return &SiteHandler{
		Store:     db,
		Catalog:   cat,
		Auth:      &auth.SessionAuth{Store: db, Sessions: sessionStore},
		Sessions:  sessionStore,
		Templates: NewTemplateCache(),
	}
}

// bakeSession produces a session cookie carrying the given values, so
// requests can arrive already signed in or with a filled cart.
func bakeSession(t *testing.T, s *sessions.CookieStore, values map[interface{}]interface{}) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	session, _ := s.Get(req, auth.SessionName)
	for k, v := range values {
		session.Values[k] = v
	}
	require.NoError(t, session.Save(req, rec))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

// savedSession re-reads the session a handler wrote back on its
// response. Fails the test when the response carries no session
// cookie at all, so a dropped Set-Cookie cannot look like a cleared
// session.
func savedSession(t *testing.T, s *sessions.CookieStore, rec *httptest.ResponseRecorder) *sessions.Session {
	t.Helper()
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies, "handler did not write the session back")
	req := httptest.NewRequest("GET", "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	session, _ := s.Get(req, auth.SessionName)
	return session
}

func TestPlaceOrderOneItemPerLineAndClearsCart(t *testing.T) {
	h := newTestSite(t)

	profile := &models.Profile{Email: "ana@example.com", FullName: "Ana Souza", Password: "irrelevant"}
	require.NoError(t, h.Store.CreateProfile(profile))

	c := &cart.Cart{}
	c.Add(&models.Product{ID: 1, Name: "iPhone 15", Price: 4599}, "Azul", "128GB")
	c.Add(&models.Product{ID: 1, Name: "iPhone 15", Price: 4599}, "Azul", "128GB")
	c.Add(&models.Product{ID: 2, Name: "AirPods Pro 2", Price: 1899}, "Branco", "Único")

	cookie := bakeSession(t, h.Sessions, map[interface{}]interface{}{
		"profile_id": profile.ID,
		"cart":       c.Encode(),
	})

	req := httptest.NewRequest("POST", "/checkout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.PlaceOrder(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/account", rec.Header().Get("Location"))

	orders, err := h.Store.GetOrdersByCustomer(profile.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	order := orders[0]
	assert.Equal(t, models.StatusPlaced, order.Status)
	assert.NotEmpty(t, order.OrderRef)
	assert.InDelta(t, 4599*2+1899, order.TotalPrice, 0.001)

	// One order item per distinct cart line, carrying the line's
	// snapshot fields.
	require.Len(t, order.Items, 2)
	assert.Equal(t, int64(1), order.Items[0].ProductID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "Azul", order.Items[0].Color)
	assert.Equal(t, "128GB", order.Items[0].Capacity)
	assert.InDelta(t, 4599, order.Items[0].Price, 0.001)
	assert.Equal(t, int64(2), order.Items[1].ProductID)
	assert.Equal(t, 1, order.Items[1].Quantity)
	assert.Equal(t, "Branco", order.Items[1].Color)
	assert.Equal(t, "Único", order.Items[1].Capacity)

	// The re-saved session carries an empty cart.
	session := savedSession(t, h.Sessions, rec)
	raw, ok := session.Values["cart"].(string)
	require.True(t, ok, "cart missing from the re-saved session")
	assert.Empty(t, cart.Decode(raw).Items)
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	h := newTestSite(t)

	profile := &models.Profile{Email: "ana@example.com", FullName: "Ana Souza", Password: "irrelevant"}
	require.NoError(t, h.Store.CreateProfile(profile))

	cookie := bakeSession(t, h.Sessions, map[interface{}]interface{}{
		"profile_id": profile.ID,
	})

	req := httptest.NewRequest("POST", "/checkout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.PlaceOrder(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/cart", rec.Header().Get("Location"))

	orders, err := h.Store.GetOrdersByCustomer(profile.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPlaceOrderAnonymousRedirectsToAuth(t *testing.T) {
	h := newTestSite(t)

	req := httptest.NewRequest("POST", "/checkout", nil)
	rec := httptest.NewRecorder()
	h.PlaceOrder(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth", rec.Header().Get("Location"))
}
