package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"

	"github.com/hotiphone/storefront/internal/auth"
)

func (h *SiteHandler) CartPage(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("cart.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.Sessions.Get(r, auth.SessionName)
	c := h.loadCart(session)
	data := map[string]interface{}{
		"Cart":      c,
		"CartCount": c.Count(),
		"Total":     c.Total(),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// AddToCart handles the "add to cart" form on the product page.
// Sessions are saved before the redirect is written; cookies added
// after WriteHeader never reach the client.
func (h *SiteHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, auth.SessionName)

	id, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Produto inválido."})
		session.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	product := h.Catalog.Find(id)
	if product == nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Produto não encontrado."})
		session.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	c := h.loadCart(session)
	c.Add(product, r.FormValue("color"), r.FormValue("capacity"))
	saveCart(session, c)

	session.AddFlash(FlashMessage{Type: "success", Message: "Produto adicionado ao carrinho!"})
	session.Save(r, w)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// UpdateCart sets a line's quantity; zero removes the line.
func (h *SiteHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, auth.SessionName)

	id, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || quantity < 0 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Quantidade inválida."})
		session.Save(r, w)
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	c := h.loadCart(session)
	c.UpdateQuantity(id, r.FormValue("color"), r.FormValue("capacity"), quantity)
	saveCart(session, c)
	session.Save(r, w)

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *SiteHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, auth.SessionName)

	id, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	c := h.loadCart(session)
	c.Remove(id, r.FormValue("color"), r.FormValue("capacity"))
	saveCart(session, c)
	session.Save(r, w)

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
