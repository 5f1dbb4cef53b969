package storage

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/prajanews/cms-backend/internal/models"
)

func (s *PostgresStore) CreateState(ctx context.Context, state *models.State) error {
	query := `
        INSERT INTO states (id, name, code, is_active, sort_order, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
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

func (s *PostgresStore) UpdateState(ctx context.Context, state *models.State) error {
	query := `
        UPDATE states SET name = $2, code = $3, is_active = $4, sort_order = $5, updated_at = $6
        WHERE id = $1
    `

	_, err := s.db.ExecContext(ctx, query,
		state.ID,
		state.Name,
		state.Code,
		state.IsActive,
		state.Order,
		state.UpdatedAt,
	)

	return err
}

func (s *PostgresStore) DeleteState(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM states WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) GetState(ctx context.Context, id uuid.UUID) (*models.State, error) {
	query := `
        SELECT id, name, code, is_active, sort_order, created_at, updated_at
        FROM states
        WHERE id = $1
    `
	return scanState(s.db.QueryRowContext(ctx, query, id))
}

func (s *PostgresStore) GetStateByNameOrCode(ctx context.Context, name, code string) (*models.State, error) {
	query := `
        SELECT id, name, code, is_active, sort_order, created_at, updated_at
        FROM states
        WHERE LOWER(name) = LOWER($1) OR LOWER(code) = LOWER($2)
    `
	return scanState(s.db.QueryRowContext(ctx, query, name, code))
}

func (s *PostgresStore) ListStates(ctx context.Context) ([]*models.State, error) {
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

// FindState resolves a candidate string to a state by exact
// case-insensitive name or code match.
func (s *PostgresStore) FindState(ctx context.Context, candidate string) (*models.State, error) {
	return s.GetStateByNameOrCode(ctx, candidate, candidate)
}

// FindDistrict resolves a candidate to a district by exact slug match or
// by name with hyphens treated as spaces, case-insensitively.
func (s *PostgresStore) FindDistrict(ctx context.Context, candidate string) (*models.District, error) {
	query := pgDistrictSelect + `
        WHERE LOWER(d.slug) = LOWER($1) OR LOWER(d.name) = LOWER($2)
    `
	nameForm := strings.ReplaceAll(candidate, "-", " ")
	return scanDistrict(s.db.QueryRowContext(ctx, query, candidate, nameForm))
}

// FindCategory resolves a candidate to a category by exact slug match or
// by name with hyphens treated as spaces, case-insensitively.
func (s *PostgresStore) FindCategory(ctx context.Context, candidate string) (*models.Category, error) {
	query := `
        SELECT id, name, slug, type, is_active, sort_order, created_at, updated_at
        FROM categories
        WHERE LOWER(slug) = LOWER($1) OR LOWER(name) = LOWER($2)
    `
	nameForm := strings.ReplaceAll(candidate, "-", " ")
	return scanCategory(s.db.QueryRowContext(ctx, query, candidate, nameForm))
}

func (s *PostgresStore) SearchStateIDs(ctx context.Context, term string) ([]uuid.UUID, error) {
	query := `SELECT id FROM states WHERE name ILIKE $1 OR code ILIKE $1`
	return s.queryIDs(ctx, query, "%"+term+"%")
}

func (s *PostgresStore) SearchDistrictIDs(ctx context.Context, term string) ([]uuid.UUID, error) {
	query := `SELECT id FROM districts WHERE name ILIKE $1 OR slug ILIKE $1`
	return s.queryIDs(ctx, query, "%"+term+"%")
}

func (s *PostgresStore) SearchCategoryIDs(ctx context.Context, term string) ([]uuid.UUID, error) {
	query := `SELECT id FROM categories WHERE name ILIKE $1 OR slug ILIKE $1`
	return s.queryIDs(ctx, query, "%"+term+"%")
}

func (s *PostgresStore) queryIDs(ctx context.Context, query string, args ...interface{}) ([]uuid.UUID, error) {
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

const pgDistrictSelect = `
        SELECT d.id, d.name, d.state_id, d.slug, d.is_active, d.created_at, d.updated_at,
               s.id, s.name, s.code
        FROM districts d
        LEFT JOIN states s ON s.id = d.state_id`

func (s *PostgresStore) CreateDistrict(ctx context.Context, district *models.District) error {
	query := `
        INSERT INTO districts (id, name, state_id, slug, is_active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
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

func (s *PostgresStore) UpdateDistrict(ctx context.Context, district *models.District) error {
	query := `
        UPDATE districts SET name = $2, state_id = $3, slug = $4, is_active = $5, updated_at = $6
        WHERE id = $1
    `

	_, err := s.db.ExecContext(ctx, query,
		district.ID,
		district.Name,
		district.StateID,
		district.Slug,
		district.IsActive,
		district.UpdatedAt,
	)

	return err
}

func (s *PostgresStore) DeleteDistrict(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM districts WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) GetDistrict(ctx context.Context, id uuid.UUID) (*models.District, error) {
	return scanDistrict(s.db.QueryRowContext(ctx, pgDistrictSelect+` WHERE d.id = $1`, id))
}

func (s *PostgresStore) ListDistricts(ctx context.Context, stateID *uuid.UUID) ([]*models.District, error) {
	query := pgDistrictSelect
	var args []interface{}
	if stateID != nil {
		query += ` WHERE d.state_id = $1`
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

func (s *PostgresStore) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `
        INSERT INTO categories (id, name, slug, type, is_active, sort_order, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
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

func (s *PostgresStore) UpdateCategory(ctx context.Context, category *models.Category) error {
	query := `
        UPDATE categories SET name = $2, slug = $3, type = $4, is_active = $5, sort_order = $6, updated_at = $7
        WHERE id = $1
    `

	_, err := s.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.Slug,
		category.Type,
		category.IsActive,
		category.Order,
		category.UpdatedAt,
	)

	return err
}

func (s *PostgresStore) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	query := `
        SELECT id, name, slug, type, is_active, sort_order, created_at, updated_at
        FROM categories
        WHERE id = $1
    `
	return scanCategory(s.db.QueryRowContext(ctx, query, id))
}

func (s *PostgresStore) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	query := `
        SELECT id, name, slug, type, is_active, sort_order, created_at, updated_at
        FROM categories
        WHERE LOWER(name) = LOWER($1)
    `
	return scanCategory(s.db.QueryRowContext(ctx, query, name))
}

func (s *PostgresStore) ListCategories(ctx context.Context) ([]*models.Category, error) {
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

func (s *PostgresStore) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	query := `
        INSERT INTO admins (id, name, email, password_hash, role, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
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

func (s *PostgresStore) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := `
        SELECT id, name, email, password_hash, role, created_at, updated_at
        FROM admins
        WHERE LOWER(email) = LOWER($1)
    `
	return scanAdmin(s.db.QueryRowContext(ctx, query, email))
}

func (s *PostgresStore) GetAdmin(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	query := `
        SELECT id, name, email, password_hash, role, created_at, updated_at
        FROM admins
        WHERE id = $1
    `
	return scanAdmin(s.db.QueryRowContext(ctx, query, id))
}

func scanState(row rowScanner) (*models.State, error) {
	state := &models.State{}
	err := row.Scan(
		&state.ID,
		&state.Name,
		&state.Code,
		&state.IsActive,
		&state.Order,
		&state.CreatedAt,
		&state.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

func scanDistrict(row rowScanner) (*models.District, error) {
	district := &models.District{}
	var refID uuid.NullUUID
	var refName, refCode sql.NullString

	err := row.Scan(
		&district.ID,
		&district.Name,
		&district.StateID,
		&district.Slug,
		&district.IsActive,
		&district.CreatedAt,
		&district.UpdatedAt,
		&refID,
		&refName,
		&refCode,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if refID.Valid {
		district.State = &models.StateRef{ID: refID.UUID, Name: refName.String, Code: refCode.String}
	}
	return district, nil
}

func scanCategory(row rowScanner) (*models.Category, error) {
	category := &models.Category{}
	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Type,
		&category.IsActive,
		&category.Order,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

func scanAdmin(row rowScanner) (*models.Admin, error) {
	admin := &models.Admin{}
	err := row.Scan(
		&admin.ID,
		&admin.Name,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Role,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return admin, nil
}
