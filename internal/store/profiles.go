package store

import (
	"database/sql"

	"github.com/hotiphone/storefront/internal/models"
)

const profileColumns = `id, email, COALESCE(full_name, ''), COALESCE(role, 'customer'), COALESCE(phone, ''), COALESCE(document, ''), password, created_at`

func scanProfile(scan func(dest ...any) error) (models.Profile, error) {
	var p models.Profile
	err := scan(&p.ID, &p.Email, &p.FullName, &p.Role, &p.Phone, &p.Document, &p.Password, &p.CreatedAt)
	return p, err
}

func (s *Store) GetProfileByEmail(email string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE LOWER(email) = LOWER(?)`
	p, err := scanProfile(s.DB.QueryRow(query, email).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) GetProfileByID(id int64) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ?`
	p, err := scanProfile(s.DB.QueryRow(query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) GetAllProfiles() ([]models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (s *Store) CreateProfile(p *models.Profile) error {
	if p.Role == "" {
		p.Role = models.RoleCustomer
	}
	res, err := s.DB.Exec(`
		INSERT INTO profiles (email, full_name, role, phone, document, password, created_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, p.Email, p.FullName, p.Role, p.Phone, p.Document, p.Password)
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		p.ID = id
	}
	return nil
}

// UpdateProfileRole is the out-of-band role assignment used by the CLI.
func (s *Store) UpdateProfileRole(email string, role models.Role) error {
	res, err := s.DB.Exec(`UPDATE profiles SET role = ? WHERE LOWER(email) = LOWER(?)`, role, email)
	if err != nil {
		return err
	}
	return requireMatch(res)
}
