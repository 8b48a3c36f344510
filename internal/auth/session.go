package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"github.com/hotiphone/storefront/internal/models"
	"github.com/hotiphone/storefront/internal/store"
)

// SessionName is the cookie carrying authentication state, the cart
// and flash messages for one browsing client.
const SessionName = "storefront-session"

var (
	ErrInvalidCredentials = errors.New("e-mail ou senha inválidos")
	ErrEmailTaken         = errors.New("este e-mail já está cadastrado")
)

// SessionAuth is the auth provider: cookie sessions in front of the
// profiles collection.
type SessionAuth struct {
	Store    *store.Store
	Sessions *sessions.CookieStore
}

// Resolve loads the session state for a request into a fresh Context.
// Lookup failures resolve to an anonymous context rather than an
// error; a broken cookie must not take a public page down.
func (a *SessionAuth) Resolve(r *http.Request) *Context {
	ctx := NewContext()
	unsubscribe := ctx.Subscribe(func(p *models.Profile) {
		if p != nil {
			slog.Debug("Session resolved", "profile_id", p.ID, "role", p.Role)
		}
	})
	defer unsubscribe()

	session, _ := a.Sessions.Get(r, SessionName)
	id, ok := session.Values["profile_id"].(int64)
	if !ok {
		ctx.Set(nil)
		return ctx
	}

	profile, err := a.Store.GetProfileByID(id)
	if err != nil {
		slog.Error("Failed to load profile for session", "profile_id", id, "error", err)
		ctx.Set(nil)
		return ctx
	}
	ctx.Set(profile) // profile may be nil if the record was removed
	return ctx
}

// SignIn verifies the credentials and binds the profile to the
// session cookie.
func (a *SessionAuth) SignIn(w http.ResponseWriter, r *http.Request, email, password string) (*models.Profile, error) {
	profile, err := a.Store.GetProfileByEmail(email)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session, _ := a.Sessions.Get(r, SessionName)
	session.Values["profile_id"] = profile.ID
	if err := session.Save(r, w); err != nil {
		return nil, err
	}
	return profile, nil
}

// Register creates a customer profile and signs it in. Role always
// defaults to customer; elevation happens out-of-band.
func (a *SessionAuth) Register(w http.ResponseWriter, r *http.Request, p *models.Profile, password string) error {
	existing, err := a.Store.GetProfileByEmail(p.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Password = string(hashed)
	p.Role = models.RoleCustomer
	if err := a.Store.CreateProfile(p); err != nil {
		return err
	}

	session, _ := a.Sessions.Get(r, SessionName)
	session.Values["profile_id"] = p.ID
	return session.Save(r, w)
}

// SignOut drops the authentication binding but keeps the session
// cookie itself (the cart survives a logout).
func (a *SessionAuth) SignOut(w http.ResponseWriter, r *http.Request) error {
	session, _ := a.Sessions.Get(r, SessionName)
	delete(session.Values, "profile_id")
	return session.Save(r, w)
}
