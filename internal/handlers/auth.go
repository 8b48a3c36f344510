package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/gorilla/csrf"

	"github.com/hotiphone/storefront/internal/auth"
	"github.com/hotiphone/storefront/internal/models"
)

// Basic email validation regex. Case-insensitive, matching the
// store's LOWER(email) lookup.
var emailRegex = regexp.MustCompile(`(?i)^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// AuthPage renders the combined login/signup view.
func (h *SiteHandler) AuthPage(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("auth.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.Sessions.Get(r, auth.SessionName)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *SiteHandler) Login(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, auth.SessionName)

	email := r.FormValue("email")
	password := r.FormValue("password")

	profile, err := h.Auth.SignIn(w, r, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		} else {
			slog.Error("Login failed", "error", err)
			session.AddFlash(FlashMessage{Type: "error", Message: "Erro interno. Tente novamente."})
		}
		session.Save(r, w)
		http.Redirect(w, r, "/auth", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Bem-vindo, " + profile.FullName + "!"})
	session.Save(r, w)

	slog.Info("Login successful", "profile_id", profile.ID)
	http.Redirect(w, r, "/account", http.StatusSeeOther)
}

func (h *SiteHandler) Register(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, auth.SessionName)

	email := r.FormValue("email")
	password := r.FormValue("password")
	fullName := r.FormValue("full_name")

	// Validation before touching the backend
	errs := make(map[string]string)
	if email == "" {
		errs["email"] = "E-mail é obrigatório."
	} else if !isValidEmail(email) {
		errs["email"] = "E-mail inválido."
	}
	if len(password) < 6 {
		errs["password"] = "A senha precisa de pelo menos 6 caracteres."
	}
	if fullName == "" {
		errs["full_name"] = "Nome completo é obrigatório."
	}
	if len(errs) > 0 {
		for _, msg := range errs {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		session.Save(r, w)
		http.Redirect(w, r, "/auth", http.StatusSeeOther)
		return
	}

	profile := &models.Profile{
		Email:    email,
		FullName: fullName,
		Phone:    r.FormValue("phone"),
		Document: r.FormValue("document"),
	}
	if err := h.Auth.Register(w, r, profile, password); err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		} else {
			slog.Error("Registration failed", "error", err)
			session.AddFlash(FlashMessage{Type: "error", Message: "Erro ao criar conta. Tente novamente."})
		}
		session.Save(r, w)
		http.Redirect(w, r, "/auth", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Conta criada com sucesso!"})
	session.Save(r, w)
	http.Redirect(w, r, "/account", http.StatusSeeOther)
}

func (h *SiteHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.SignOut(w, r); err != nil {
		slog.Error("Logout failed", "error", err)
	}

	session, _ := h.Sessions.Get(r, auth.SessionName)
	session.AddFlash(FlashMessage{Type: "success", Message: "Logout realizado com sucesso!"})
	session.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
