package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/hotiphone/storefront/internal/auth"
	"github.com/hotiphone/storefront/internal/models"
)

func (h *AdminHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Store.GetAllProfiles()
	if err != nil {
		http.Error(w, "Error fetching customers", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_customers.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.Sessions.Get(r, auth.SessionName)
	data := map[string]interface{}{
		"Customers": customers,
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// CustomersCSV serializes the list with the back-office column
// layout. Role falls back to customer when unset.
func CustomersCSV(customers []models.Profile) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write([]string{"ID", "Email", "Nome Completo", "Role", "Telefone", "Documento"}); err != nil {
		return nil, err
	}
	for _, c := range customers {
		role := c.Role
		if role == "" {
			role = models.RoleCustomer
		}
		row := []string{
			strconv.FormatInt(c.ID, 10),
			c.Email,
			c.FullName,
			string(role),
			c.Phone,
			c.Document,
		}
		if err := cw.Write(row); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	return buf.Bytes(), cw.Error()
}

// ExportCustomers serves the customer list as clientes.csv. An empty
// list warns instead of downloading.
func (h *AdminHandler) ExportCustomers(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, auth.SessionName)

	customers, err := h.Store.GetAllProfiles()
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/customers", http.StatusSeeOther)
		return
	}
	if len(customers) == 0 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Nenhum cliente para exportar."})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/customers", http.StatusSeeOther)
		return
	}

	data, err := CustomersCSV(customers)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/customers", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="clientes.csv"`)
	w.Write(data)
}
