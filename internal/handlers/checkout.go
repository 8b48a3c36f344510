package handlers

import (
	"crypto/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/csrf"

	"github.com/hotiphone/storefront/internal/auth"
	"github.com/hotiphone/storefront/internal/models"
	"github.com/hotiphone/storefront/internal/nav"
)

func generateOrderRef() string {
	// 8 chars alphanumeric (uppercase); I, O, 1, 0 removed to avoid confusion
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "ORD" + strconv.FormatInt(time.Now().Unix(), 10)
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}

// CheckoutPage is session-gated; anonymous visitors land on the auth
// page instead.
func (h *SiteHandler) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := h.gate(w, r, nav.PageCheckout)
	if !ok {
		return
	}

	tmpl := h.Templates.Get("checkout.html")
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
		"PixTotal":  c.Total() * 0.9,
		"Profile":   authCtx.Profile(),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// PlaceOrder turns the cart into an order (one order item per line),
// clears the cart and announces the order downstream.
func (h *SiteHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := h.gate(w, r, nav.PageCheckout)
	if !ok {
		return
	}

	session, _ := h.Sessions.Get(r, auth.SessionName)

	c := h.loadCart(session)
	if len(c.Items) == 0 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Seu carrinho está vazio."})
		session.Save(r, w)
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	order := &models.Order{
		OrderRef:   generateOrderRef(),
		CustomerID: authCtx.Profile().ID,
		TotalPrice: c.Total(),
		Status:     models.StatusPlaced,
	}
	for _, item := range c.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Color:     item.Color,
			Capacity:  item.Capacity,
			Price:     item.Price,
		})
	}

	if err := h.Store.CreateOrder(order); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		session.Save(r, w)
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	h.Events.OrderPlaced(r.Context(), order)

	c.Clear()
	saveCart(session, c)

	session.AddFlash(FlashMessage{Type: "success", Message: "Pedido " + order.OrderRef + " realizado com sucesso!"})
	session.Save(r, w)
	http.Redirect(w, r, "/account", http.StatusSeeOther)
}
