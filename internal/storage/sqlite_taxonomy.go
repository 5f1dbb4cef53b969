package storage

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/prajanews/cms-backend/internal/models"
)

func (s *SQLiteStore) CreateState(ctx context.Context, state *models.State) error {
	query := `
        INSERT INTO states (id, name, code, is_active, sort_order, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `

	_, err := s.db.ExecContext(ctx, query,
		state.ID,
		state.Name,
		state.Code,
		state.IsActive,
		state.Order,
		state.CreatedAt,
		state.UpdatedAt,
	)

	return err
}

func (s *SQLiteStore) UpdateState(ctx context.Context, state *models.State) error {
	query := `
        UPDATE states SET name = ?, code = ?, is_active = ?, sort_order = ?, updated_at = ?
        WHERE id = ?
    `

	_, err := s.db.ExecContext(ctx, query,
		state.Name,
		state.Code,
		state.IsActive,
		state.Order,
		state.UpdatedAt,
		state.ID,
	)

	return err
}

func (s *SQLiteStore) DeleteState(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM states WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) GetState(ctx context.Context, id uuid.UUID) (*models.State, error) {
	query := `
        SELECT id, name, code, is_active, sort_order, created_at, updated_at
        FROM states
        WHERE id = ?
    `
	return scanState(s.db.QueryRowContext(ctx, query, id))
}

func (s *SQLiteStore) GetStateByNameOrCode(ctx context.Context, name, code string) (*models.State, error) {
	query := `
        SELECT id, name, code, is_active, sort_order, created_at, updated_at
        FROM states
        WHERE LOWER(name) = LOWER(?) OR LOWER(code) = LOWER(?)
    `
	return scanState(s.db.QueryRowContext(ctx, query, name, code))
}

func (s *SQLiteStore) ListStates(ctx context.Context) ([]*models.State, error) {
	query := `
        SELECT id, name, code, is_active, sort_order, created_at, updated_at
        FROM states
        ORDER BY sort_order, name
    `

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var states []*models.State
	for rows.Next() {
		state := &models.State{}
		err := rows.Scan(
			&state.ID,
			&state.Name,
			&state.Code,
			&state.IsActive,
			&state.Order,
			&state.CreatedAt,
			&state.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		states = append(states, state)
	}

	return states, rows.Err()
}

func (s *SQLiteStore) FindState(ctx context.Context, candidate string) (*models.State, error) {
	return s.GetStateByNameOrCode(ctx, candidate, candidate)
}

func (s *SQLiteStore) FindDistrict(ctx context.Context, candidate string) (*models.District, error) {
	query := sqliteDistrictSelect + `
        WHERE LOWER(d.slug) = LOWER(?) OR LOWER(d.name) = LOWER(?)
    `
	nameForm := strings.ReplaceAll(candidate, "-", " ")
	return scanDistrict(s.db.QueryRowContext(ctx, query, candidate, nameForm))
}

func (s *SQLiteStore) FindCategory(ctx context.Context, candidate string) (*models.Category, error) {
	query := `
        SELECT id, name, slug, type, is_active, sort_order, created_at, updated_at
        FROM categories
        WHERE LOWER(slug) = LOWER(?) OR LOWER(name) = LOWER(?)
    `
	nameForm := strings.ReplaceAll(candidate, "-", " ")
	return scanCategory(s.db.QueryRowContext(ctx, query, candidate, nameForm))
}

func (s *SQLiteStore) SearchStateIDs(ctx context.Context, term string) ([]uuid.UUID, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	query := `SELECT id FROM states WHERE LOWER(name) LIKE ? OR LOWER(code) LIKE ?`
	return s.queryIDs(ctx, query, pattern, pattern)
}

func (s *SQLiteStore) SearchDistrictIDs(ctx context.Context, term string) ([]uuid.UUID, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	query := `SELECT id FROM districts WHERE LOWER(name) LIKE ? OR LOWER(slug) LIKE ?`
	return s.queryIDs(ctx, query, pattern, pattern)
}

func (s *SQLiteStore) SearchCategoryIDs(ctx context.Context, term string) ([]uuid.UUID, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	query := `SELECT id FROM categories WHERE LOWER(name) LIKE ? OR LOWER(slug) LIKE ?`
	return s.queryIDs(ctx, query, pattern, pattern)
}

func (s *SQLiteStore) queryIDs(ctx context.Context, query string, args ...interface{}) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

const sqliteDistrictSelect = `
        SELECT d.id, d.name, d.state_id, d.slug, d.is_active, d.created_at, d.updated_at,
               s.id, s.name, s.code
        FROM districts d
        LEFT JOIN states s ON s.id = d.state_id`

func (s *SQLiteStore) CreateDistrict(ctx context.Context, district *models.District) error {
	query := `
        INSERT INTO districts (id, name, state_id, slug, is_active, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `

	_, err := s.db.ExecContext(ctx, query,
		district.ID,
		district.Name,
		district.StateID,
		district.Slug,
		district.IsActive,
		district.CreatedAt,
		district.UpdatedAt,
	)

	return err
}

func (s *SQLiteStore) UpdateDistrict(ctx context.Context, district *models.District) error {
	query := `
        UPDATE districts SET name = ?, state_id = ?, slug = ?, is_active = ?, updated_at = ?
        WHERE id = ?
    `

	_, err := s.db.ExecContext(ctx, query,
		district.Name,
		district.StateID,
		district.Slug,
		district.IsActive,
		district.UpdatedAt,
		district.ID,
	)

	return err
}

func (s *SQLiteStore) DeleteDistrict(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM districts WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) GetDistrict(ctx context.Context, id uuid.UUID) (*models.District, error) {
	return scanDistrict(s.db.QueryRowContext(ctx, sqliteDistrictSelect+` WHERE d.id = ?`, id))
}

func (s *SQLiteStore) ListDistricts(ctx context.Context, stateID *uuid.UUID) ([]*models.District, error) {
	query := sqliteDistrictSelect
	var args []interface{}
	if stateID != nil {
		query += ` WHERE d.state_id = ?`
		args = append(args, *stateID)
	}
	query += ` ORDER BY d.name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var districts []*models.District
	for rows.Next() {
		district, err := scanDistrict(rows)
		if err != nil {
			return nil, err
		}
		districts = append(districts, district)
	}

	return districts, rows.Err()
}

func (s *SQLiteStore) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `
        INSERT INTO categories (id, name, slug, type, is_active, sort_order, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err := s.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.Slug,
		category.Type,
		category.IsActive,
		category.Order,
		category.CreatedAt,
		category.UpdatedAt,
	)

	return err
}

func (s *SQLiteStore) UpdateCategory(ctx context.Context, category *models.Category) error {
	query := `
        UPDATE categories SET name = ?, slug = ?, type = ?, is_active = ?, sort_order = ?, updated_at = ?
        WHERE id = ?
    `

	_, err := s.db.ExecContext(ctx, query,
		category.Name,
		category.Slug,
		category.Type,
		category.IsActive,
		category.Order,
		category.UpdatedAt,
		category.ID,
	)

	return err
}

func (s *SQLiteStore) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	query := `
        SELECT id, name, slug, type, is_active, sort_order, created_at, updated_at
        FROM categories
        WHERE id = ?
    `
	return scanCategory(s.db.QueryRowContext(ctx, query, id))
}

func (s *SQLiteStore) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	query := `
        SELECT id, name, slug, type, is_active, sort_order, created_at, updated_at
        FROM categories
        WHERE LOWER(name) = LOWER(?)
    `
	return scanCategory(s.db.QueryRowContext(ctx, query, name))
}

func (s *SQLiteStore) ListCategories(ctx context.Context) ([]*models.Category, error) {
	query := `
        SELECT id, name, slug, type, is_active, sort_order, created_at, updated_at
        FROM categories
        ORDER BY sort_order, name
    `

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (s *SQLiteStore) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	query := `
        INSERT INTO admins (id, name, email, password_hash, role, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `

	_, err := s.db.ExecContext(ctx, query,
		admin.ID,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		admin.Role,
		admin.CreatedAt,
		admin.UpdatedAt,
	)

	return err
}

func (s *SQLiteStore) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := `
        SELECT id, name, email, password_hash, role, created_at, updated_at
        FROM admins
        WHERE LOWER(email) = LOWER(?)
    `
	return scanAdmin(s.db.QueryRowContext(ctx, query, email))
}

func (s *SQLiteStore) GetAdmin(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	query := `
        SELECT id, name, email, password_hash, role, created_at, updated_at
        FROM admins
        WHERE id = ?
    `
	return scanAdmin(s.db.QueryRowContext(ctx, query, id))
}
