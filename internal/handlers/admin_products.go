package handlers

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/nfnt/resize"
	"golang.org/x/sync/errgroup"

	"github.com/hotiphone/storefront/internal/auth"
	"github.com/hotiphone/storefront/internal/models"
)

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("admin_products.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.Sessions.Get(r, auth.SessionName)
	data := map[string]interface{}{
		"Products":  h.Catalog.Products(),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// ProductForm renders the create/edit dialog. An id query selects the
// product to edit; without one the form creates.
func (h *AdminHandler) ProductForm(w http.ResponseWriter, r *http.Request) {
	var product *models.Product
	if idStr := r.URL.Query().Get("id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			http.Error(w, "Invalid ID", http.StatusBadRequest)
			return
		}
		product, err = h.Store.GetProductByID(id)
		if err != nil {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
	}

	tmpl := h.Templates.Get("admin_product_form.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.Sessions.Get(r, auth.SessionName)
	data := map[string]interface{}{
		"Product":   product,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// splitList turns a comma-separated field into an ordered list with
// surrounding whitespace trimmed; empty entries are dropped.
func splitList(raw string) []string {
	var list []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}

// productInput is the typed form payload, validated before any
// backend call.
type productInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Colors      []string
	Capacities  []string
	Stock       int
	Status      string
}

func parseProductForm(r *http.Request) (productInput, map[string]string) {
	in := productInput{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: r.FormValue("description"),
		Category:    strings.TrimSpace(r.FormValue("category")),
		Colors:      splitList(r.FormValue("colors")),
		Capacities:  splitList(r.FormValue("capacities")),
		Status:      r.FormValue("status"),
	}

	errs := make(map[string]string)
	if in.Name == "" {
		errs["name"] = "Nome do produto é obrigatório."
	}
	if in.Category == "" {
		errs["category"] = "Categoria é obrigatória."
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		errs["price"] = "Preço inválido."
	} else if price <= 0 {
		errs["price"] = "Preço deve ser positivo."
	} else {
		in.Price = price
	}

	stock, err := strconv.Atoi(r.FormValue("stock"))
	if err != nil {
		errs["stock"] = "Estoque inválido."
	} else if stock < 0 {
		errs["stock"] = "Estoque não pode ser negativo."
	} else {
		in.Stock = stock
	}

	if in.Status == "" {
		in.Status = models.ProductActive
	}
	if in.Status != models.ProductActive && in.Status != models.ProductInactive {
		errs["status"] = "Status inválido."
	}

	return in, errs
}

// processUpload normalizes one image upload: decode, cap width at
// 800px, re-encode as JPEG. Returns the encoded bytes and the storage
// key (timestamp plus the original filename, extension rewritten).
func processUpload(fh *multipart.FileHeader) ([]byte, string, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, "", fmt.Errorf("abrir %s: %w", fh.Filename, err)
	}
	defer file.Close()

	var img image.Image
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	switch ext {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		return nil, "", fmt.Errorf("formato não suportado: %s (apenas PNG, JPG, JPEG)", fh.Filename)
	}
	if err != nil {
		return nil, "", fmt.Errorf("decodificar %s: %w", fh.Filename, err)
	}

	resized := resize.Resize(800, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 80}); err != nil {
		return nil, "", fmt.Errorf("codificar %s: %w", fh.Filename, err)
	}

	base := strings.TrimSuffix(filepath.Base(fh.Filename), filepath.Ext(fh.Filename))
	key := fmt.Sprintf("%d-%s.jpg", time.Now().UnixMilli(), base)
	return buf.Bytes(), key, nil
}

// uploadImages pushes every new image to the object store
// concurrently. All-or-nothing: the first failure aborts and no URL
// is returned, so a partially uploaded set never reaches the record.
func (h *AdminHandler) uploadImages(r *http.Request, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, len(files))
	g, ctx := errgroup.WithContext(r.Context())
	for i, fh := range files {
		i, fh := i, fh
		g.Go(func() error {
			data, key, err := processUpload(fh)
			if err != nil {
				return err
			}
			if err := h.Disk.Put(ctx, key, bytes.NewReader(data)); err != nil {
				return err
			}
			urls[i] = h.Disk.URL(key)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

// SaveProduct handles both create and update submissions.
func (h *AdminHandler) SaveProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, auth.SessionName)

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		session.AddFlash(FlashMessage{Type: "error", Message: "Arquivo muito grande. Máximo 10MB."})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	idStr := r.FormValue("id")
	formURL := "/admin/products/new"
	if idStr != "" {
		formURL = "/admin/products/edit?id=" + idStr
	}

	in, errs := parseProductForm(r)
	if len(errs) > 0 {
		for _, msg := range errs {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		session.Save(r, w)
		http.Redirect(w, r, formURL, http.StatusSeeOther)
		return
	}

	// Editing starts from the stored record so the existing image
	// list is preserved.
	var product *models.Product
	if idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: "ID inválido."})
			session.Save(r, w)
			http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
			return
		}
		product, err = h.Store.GetProductByID(id)
		if err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
			session.Save(r, w)
			http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
			return
		}
	} else {
		product = &models.Product{}
	}

	// New images upload before anything is written; a failed upload
	// aborts the whole submission.
	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["images"]; len(files) > 0 {
			urls, err := h.uploadImages(r, files)
			if err != nil {
				session.AddFlash(FlashMessage{Type: "error", Message: "Erro no upload de imagem: " + err.Error()})
				session.Save(r, w)
				http.Redirect(w, r, formURL, http.StatusSeeOther)
				return
			}
			product.Images = append(product.Images, urls...)
		}
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Category = in.Category
	product.Colors = in.Colors
	product.Capacities = in.Capacities
	product.Stock = in.Stock
	product.Status = in.Status

	var err error
	if idStr != "" {
		err = h.Store.UpdateProduct(product)
	} else {
		err = h.Store.CreateProduct(product)
	}
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		session.Save(r, w)
		http.Redirect(w, r, formURL, http.StatusSeeOther)
		return
	}

	if err := h.Catalog.Refresh(); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Produto salvo, mas falhou ao atualizar o catálogo."})
	} else if idStr != "" {
		session.AddFlash(FlashMessage{Type: "success", Message: "Produto atualizado com sucesso!"})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Produto criado com sucesso!"})
	}
	session.Save(r, w)
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// DeleteProductConfirm is step one of the two-step delete: a
// confirmation page naming the target.
func (h *AdminHandler) DeleteProductConfirm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	product, err := h.Store.GetProductByID(id)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	tmpl := h.Templates.Get("admin_product_delete.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.Sessions.Get(r, auth.SessionName)
	data := map[string]interface{}{
		"Product":   product,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// DeleteProduct is step two: the irreversible delete.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, auth.SessionName)

	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "ID inválido."})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	if err := h.Store.DeleteProduct(id); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Erro ao deletar produto: " + err.Error()})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	if err := h.Catalog.Refresh(); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Produto deletado, mas falhou ao atualizar o catálogo."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Produto deletado com sucesso!"})
	}
	session.Save(r, w)
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}
