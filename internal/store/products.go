package store

import (
	"database/sql"
	"encoding/json"

	"github.com/hotiphone/storefront/internal/models"
)

// Ordered string lists (colors, capacities, images) are stored as JSON
// text columns.
func marshalList(list []string) string {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func unmarshalList(raw string) []string {
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{}
	}
	return list
}

func scanProduct(scan func(dest ...any) error) (models.Product, error) {
	var p models.Product
	var colors, capacities, images string
	err := scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
		&colors, &capacities, &images, &p.Stock, &p.Status, &p.CreatedAt)
	if err != nil {
		return p, err
	}
	p.Colors = unmarshalList(colors)
	p.Capacities = unmarshalList(capacities)
	p.Images = unmarshalList(images)
	return p, nil
}

const productColumns = `id, name, description, price, category, colors, capacities, images, stock, COALESCE(status, 'active') as status, created_at`

func (s *Store) CreateProduct(p *models.Product) error {
	query := `
		INSERT INTO products (name, description, price, category, colors, capacities, images, stock, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	res, err := s.DB.Exec(query, p.Name, p.Description, p.Price, p.Category,
		marshalList(p.Colors), marshalList(p.Capacities), marshalList(p.Images), p.Stock, p.Status)
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		p.ID = id
	}
	return nil
}

func (s *Store) GetAllProducts() ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) GetProductByID(id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	p, err := scanProduct(s.DB.QueryRow(query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct replaces every field of the matching record
// (last-write-wins, no version check).
func (s *Store) UpdateProduct(p *models.Product) error {
	query := `
		UPDATE products
		SET name = ?, description = ?, price = ?, category = ?, colors = ?, capacities = ?, images = ?, stock = ?, status = ?
		WHERE id = ?
	`
	res, err := s.DB.Exec(query, p.Name, p.Description, p.Price, p.Category,
		marshalList(p.Colors), marshalList(p.Capacities), marshalList(p.Images), p.Stock, p.Status, p.ID)
	if err != nil {
		return err
	}
	return requireMatch(res)
}

func (s *Store) DeleteProduct(id int64) error {
	res, err := s.DB.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireMatch(res)
}

// requireMatch turns a zero-row update/delete into ErrNotFound so a
// concurrent second delete of the same id surfaces as a backend error
// instead of silently succeeding.
func requireMatch(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
