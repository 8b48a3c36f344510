package store

import "database/sql"

// DashboardStats feeds the admin overview header.
type DashboardStats struct {
	TotalProducts  int
	TotalOrders    int
	TotalCustomers int
	OrdersByStatus map[string]int
	Revenue        float64
}

func (s *Store) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		OrdersByStatus: make(map[string]int),
	}

	if err := s.DB.QueryRow("SELECT COUNT(*) FROM products").Scan(&stats.TotalProducts); err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if err := s.DB.QueryRow("SELECT COUNT(*) FROM orders").Scan(&stats.TotalOrders); err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if err := s.DB.QueryRow("SELECT COUNT(*) FROM profiles").Scan(&stats.TotalCustomers); err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if err := s.DB.QueryRow("SELECT COALESCE(SUM(total_price), 0) FROM orders").Scan(&stats.Revenue); err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	rows, err := s.DB.Query("SELECT status, COUNT(*) FROM orders GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.OrdersByStatus[status] = count
	}

	return stats, rows.Err()
}
