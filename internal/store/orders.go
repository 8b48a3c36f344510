package store

import (
	"database/sql"

	"github.com/hotiphone/storefront/internal/models"
)

// CreateOrder inserts the order and all its items in one transaction.
func (s *Store) CreateOrder(order *models.Order) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO orders (order_ref, customer_id, total_price, status, tracking_code, created_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, order.OrderRef, order.CustomerID, order.TotalPrice, order.Status, order.TrackingCode)
	if err != nil {
		return err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	order.ID = orderID

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = orderID
		res, err := tx.Exec(`
			INSERT INTO order_items (order_id, product_id, quantity, color, capacity, price)
			VALUES (?, ?, ?, ?, ?, ?)
		`, orderID, item.ProductID, item.Quantity, item.Color, item.Capacity, item.Price)
		if err != nil {
			return err
		}
		if id, err := res.LastInsertId(); err == nil {
			item.ID = id
		}
	}

	return tx.Commit()
}

const orderColumns = `id, order_ref, customer_id, total_price, status, COALESCE(tracking_code, '') as tracking_code, created_at`

func (s *Store) GetAllOrders() ([]models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.OrderRef, &o.CustomerID, &o.TotalPrice, &o.Status, &o.TrackingCode, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := s.getOrderItems(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *Store) GetOrderByID(id int64) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ?`
	var o models.Order
	err := s.DB.QueryRow(query, id).Scan(&o.ID, &o.OrderRef, &o.CustomerID, &o.TotalPrice, &o.Status, &o.TrackingCode, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	items, err := s.getOrderItems(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (s *Store) GetOrdersByCustomer(customerID int64) ([]models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id = ? ORDER BY created_at DESC`
	rows, err := s.DB.Query(query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.OrderRef, &o.CustomerID, &o.TotalPrice, &o.Status, &o.TrackingCode, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := s.getOrderItems(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *Store) getOrderItems(orderID int64) ([]models.OrderItem, error) {
	rows, err := s.DB.Query(`
		SELECT id, order_id, product_id, quantity, COALESCE(color, ''), COALESCE(capacity, ''), price
		FROM order_items WHERE order_id = ? ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Color, &it.Capacity, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateOrderTracking persists a tracking update (the only order
// mutation in the back office).
func (s *Store) UpdateOrderTracking(id int64, trackingCode, status string) error {
	res, err := s.DB.Exec(`UPDATE orders SET tracking_code = ?, status = ? WHERE id = ?`, trackingCode, status, id)
	if err != nil {
		return err
	}
	return requireMatch(res)
}
