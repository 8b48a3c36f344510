package store

import (
	"fmt"
	"log/slog"
)

// migrations are applied in order and recorded in schema_migrations.
// The base schema comes from InitSchema; entries here alter it.
var migrations = []struct {
	version string
	stmt    string
}{
	{"001_orders_tracking_index", `CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id);`},
	{"002_order_items_index", `CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);`},
	{"003_products_status_index", `CREATE INDEX IF NOT EXISTS idx_products_status ON products(status);`},
}

// Migrate brings the schema up to date. Safe to run on every start.
func (s *Store) Migrate() error {
	if err := s.InitSchema(); err != nil {
		return err
	}

	_, err := s.DB.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		if s.isApplied(m.version) {
			continue
		}
		slog.Info("Applying migration", "version", m.version)
		if _, err := s.DB.Exec(m.stmt); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", m.version, err)
		}
		if _, err := s.DB.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", m.version, err)
		}
	}
	return nil
}

func (s *Store) isApplied(version string) bool {
	var exists int
	err := s.DB.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, version).Scan(&exists)
	return err == nil
}
