package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"

	"github.com/hotiphone/storefront/internal/auth"
)

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Store.GetAllOrders()
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_orders.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.Sessions.Get(r, auth.SessionName)
	data := map[string]interface{}{
		"Orders":    orders,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// OrderDetails shows one order with its items and the tracking form.
func (h *AdminHandler) OrderDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	order, err := h.Store.GetOrderByID(id)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	tmpl := h.Templates.Get("admin_order_details.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.Sessions.Get(r, auth.SessionName)
	data := map[string]interface{}{
		"Order":     order,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// UpdateTracking is the only order mutation in the back office: a
// non-empty tracking code also moves the order to "Produto enviado";
// an empty code leaves the status alone.
func (h *AdminHandler) UpdateTracking(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, auth.SessionName)

	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "ID inválido."})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}

	order, err := h.Store.GetOrderByID(id)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Erro ao atualizar rastreio: " + err.Error()})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}

	order.ApplyTracking(r.FormValue("tracking_code"))
	if err := h.Store.UpdateOrderTracking(order.ID, order.TrackingCode, order.Status); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Erro ao atualizar rastreio: " + err.Error()})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Pedido atualizado com sucesso!"})
	session.Save(r, w)
	http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
}
