package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/prajanews/cms-backend/internal/models"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS admins (
            id UUID PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            email VARCHAR(255) UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role VARCHAR(32) NOT NULL DEFAULT 'admin',
            created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE TABLE IF NOT EXISTS states (
            id UUID PRIMARY KEY,
            name VARCHAR(255) UNIQUE NOT NULL,
            code VARCHAR(16) UNIQUE NOT NULL,
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            sort_order INTEGER NOT NULL DEFAULT 0,
            created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE TABLE IF NOT EXISTS districts (
            id UUID PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            state_id UUID NOT NULL,
            slug VARCHAR(255) UNIQUE NOT NULL,
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE TABLE IF NOT EXISTS categories (
            id UUID PRIMARY KEY,
            name VARCHAR(255) UNIQUE NOT NULL,
            slug VARCHAR(255) UNIQUE NOT NULL,
            type VARCHAR(16) NOT NULL DEFAULT 'news',
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            sort_order INTEGER NOT NULL DEFAULT 0,
            created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE TABLE IF NOT EXISTS news (
            id UUID PRIMARY KEY,
            title VARCHAR(500) NOT NULL,
            slug VARCHAR(600) UNIQUE NOT NULL,
            description VARCHAR(500),
            content TEXT NOT NULL,
            image VARCHAR(2048) NOT NULL,
            banner_image VARCHAR(2048),
            state_id UUID,
            district_id UUID,
            category_id UUID,
            tags TEXT[],
            status VARCHAR(16) NOT NULL DEFAULT 'draft',
            is_top_story BOOLEAN NOT NULL DEFAULT FALSE,
            is_trending BOOLEAN NOT NULL DEFAULT FALSE,
            is_banner BOOLEAN NOT NULL DEFAULT FALSE,
            views BIGINT NOT NULL DEFAULT 0,
            author_id UUID,
            published_at TIMESTAMP,
            created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE INDEX IF NOT EXISTS idx_news_status_created ON news(status, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_news_status_state_created ON news(status, state_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_news_status_category_created ON news(status, category_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_news_status_district_created ON news(status, district_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_news_slug ON news(slug)`,
		`CREATE INDEX IF NOT EXISTS idx_news_text ON news USING GIN (to_tsvector('english', title || ' ' || COALESCE(description, '')))`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

const pgNewsColumns = `
        n.id, n.title, n.slug, n.description, n.content, n.image, n.banner_image,
        n.state_id, n.district_id, n.category_id, n.tags, n.status,
        n.is_top_story, n.is_trending, n.is_banner, n.views, n.author_id,
        n.published_at, n.created_at, n.updated_at,
        s.id, s.name, s.code,
        d.id, d.name, d.slug,
        c.id, c.name, c.slug,
        a.id, a.name`

const pgNewsJoins = `
        FROM news n
        LEFT JOIN states s ON s.id = n.state_id
        LEFT JOIN districts d ON d.id = n.district_id
        LEFT JOIN categories c ON c.id = n.category_id
        LEFT JOIN admins a ON a.id = n.author_id`

func (s *PostgresStore) CreateNews(ctx context.Context, news *models.News) error {
	query := `
        INSERT INTO news (id, title, slug, description, content, image, banner_image,
            state_id, district_id, category_id, tags, status,
            is_top_story, is_trending, is_banner, views, author_id,
            published_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
    `

	_, err := s.db.ExecContext(ctx, query,
		news.ID,
		news.Title,
		news.Slug,
		nullString(news.Description),
		news.Content,
		news.Image,
		nullString(news.BannerImage),
		nullUUID(news.StateID),
		nullUUID(news.DistrictID),
		nullUUID(news.CategoryID),
		pq.Array(news.Tags),
		news.Status,
		news.IsTopStory,
		news.IsTrending,
		news.IsBanner,
		news.Views,
		nullUUID(news.AuthorID),
		news.PublishedAt,
		news.CreatedAt,
		news.UpdatedAt,
	)

	return err
}

func (s *PostgresStore) UpdateNews(ctx context.Context, news *models.News) error {
	query := `
        UPDATE news SET
            title = $2,
            slug = $3,
            description = $4,
            content = $5,
            image = $6,
            banner_image = $7,
            state_id = $8,
            district_id = $9,
            category_id = $10,
            tags = $11,
            status = $12,
            is_top_story = $13,
            is_trending = $14,
            is_banner = $15,
            published_at = $16,
            updated_at = $17
        WHERE id = $1
    `

	_, err := s.db.ExecContext(ctx, query,
		news.ID,
		news.Title,
		news.Slug,
		nullString(news.Description),
		news.Content,
		news.Image,
		nullString(news.BannerImage),
		nullUUID(news.StateID),
		nullUUID(news.DistrictID),
		nullUUID(news.CategoryID),
		pq.Array(news.Tags),
		news.Status,
		news.IsTopStory,
		news.IsTrending,
		news.IsBanner,
		news.PublishedAt,
		news.UpdatedAt,
	)

	return err
}

func (s *PostgresStore) DeleteNews(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) GetNews(ctx context.Context, id uuid.UUID) (*models.News, error) {
	query := `SELECT` + pgNewsColumns + pgNewsJoins + ` WHERE n.id = $1`
	return s.queryOneNews(ctx, query, id)
}

func (s *PostgresStore) GetNewsBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.News, error) {
	query := `SELECT` + pgNewsColumns + pgNewsJoins + ` WHERE n.slug = $1`
	if publishedOnly {
		query += ` AND n.status = 'published'`
	}
	return s.queryOneNews(ctx, query, slug)
}

func (s *PostgresStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM news WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

func (s *PostgresStore) ListNews(ctx context.Context, filter NewsFilter) ([]*models.News, error) {
	var conditions []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		conditions = append(conditions, "n.status = "+arg(filter.Status))
	}
	if filter.StateID != nil {
		conditions = append(conditions, "n.state_id = "+arg(*filter.StateID))
	}
	if filter.DistrictID != nil {
		conditions = append(conditions, "n.district_id = "+arg(*filter.DistrictID))
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, "n.category_id = "+arg(*filter.CategoryID))
	}
	if filter.Tag != "" {
		conditions = append(conditions, arg(filter.Tag)+" = ANY(n.tags)")
	}
	if filter.TopStory {
		conditions = append(conditions, "n.is_top_story = TRUE")
	}
	if filter.Trending {
		conditions = append(conditions, "n.is_trending = TRUE")
	}
	if filter.Banner {
		conditions = append(conditions, "n.is_banner = TRUE")
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		or := []string{
			"n.title ILIKE " + arg(pattern),
			"n.description ILIKE " + arg(pattern),
		}
		if len(filter.SearchStateIDs) > 0 {
			or = append(or, "n.state_id = ANY("+arg(pq.Array(uuidStrings(filter.SearchStateIDs)))+"::uuid[])")
		}
		if len(filter.SearchDistrictIDs) > 0 {
			or = append(or, "n.district_id = ANY("+arg(pq.Array(uuidStrings(filter.SearchDistrictIDs)))+"::uuid[])")
		}
		if len(filter.SearchCategoryIDs) > 0 {
			or = append(or, "n.category_id = ANY("+arg(pq.Array(uuidStrings(filter.SearchCategoryIDs)))+"::uuid[])")
		}
		conditions = append(conditions, "("+strings.Join(or, " OR ")+")")
	}

	if filter.CreatedFrom != nil {
		conditions = append(conditions, "n.created_at >= "+arg(*filter.CreatedFrom))
	}
	if filter.CreatedTo != nil {
		conditions = append(conditions, "n.created_at <= "+arg(*filter.CreatedTo))
	}

	query := `SELECT` + pgNewsColumns + pgNewsJoins
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	if filter.SortByCreated {
		query += " ORDER BY n.created_at DESC"
	} else {
		query += " ORDER BY n.published_at DESC NULLS LAST, n.created_at DESC"
	}

	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}

	return s.queryNews(ctx, query, args...)
}

func (s *PostgresStore) IncrementNewsViews(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `UPDATE news SET views = views + 1 WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{StateStats: []StateNewsCount{}}

	counts := []struct {
		query string
		dest  *int64
	}{
		{`SELECT COUNT(*) FROM news`, &stats.TotalPosts},
		{`SELECT COUNT(*) FROM news WHERE status = 'published'`, &stats.PublishedPosts},
		{`SELECT COUNT(*) FROM news WHERE status = 'draft'`, &stats.DraftPosts},
		{`SELECT COUNT(*) FROM categories`, &stats.TotalCategories},
		{`SELECT COUNT(*) FROM states`, &stats.TotalStates},
	}

	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, err
		}
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT s.name, COUNT(*)
        FROM news n
        JOIN states s ON s.id = n.state_id
        WHERE n.status = 'published'
        GROUP BY s.name
        ORDER BY COUNT(*) DESC, s.name
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sc StateNewsCount
		if err := rows.Scan(&sc.Name, &sc.Count); err != nil {
			return nil, err
		}
		stats.StateStats = append(stats.StateStats, sc)
	}

	return stats, rows.Err()
}

func (s *PostgresStore) queryOneNews(ctx context.Context, query string, args ...interface{}) (*models.News, error) {
	news, err := scanNewsRow(s.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return news, nil
}

func (s *PostgresStore) queryNews(ctx context.Context, query string, args ...interface{}) ([]*models.News, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.News
	for rows.Next() {
		news, err := scanNewsRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, news)
	}

	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanNewsRow scans the pgNewsColumns projection, including the joined
// taxonomy and author display fields.
func scanNewsRow(row rowScanner) (*models.News, error) {
	news := &models.News{}
	var (
		description, bannerImage            sql.NullString
		stateID, districtID, categoryID     uuid.NullUUID
		authorID                            uuid.NullUUID
		publishedAt                         sql.NullTime
		tags                                []string
		refStateID, refDistrictID           uuid.NullUUID
		refCategoryID, refAuthorID          uuid.NullUUID
		refStateName, refStateCode          sql.NullString
		refDistrictName, refDistrictSlug    sql.NullString
		refCategoryName, refCategorySlug    sql.NullString
		refAuthorName                       sql.NullString
	)

	err := row.Scan(
		&news.ID,
		&news.Title,
		&news.Slug,
		&description,
		&news.Content,
		&news.Image,
		&bannerImage,
		&stateID,
		&districtID,
		&categoryID,
		pq.Array(&tags),
		&news.Status,
		&news.IsTopStory,
		&news.IsTrending,
		&news.IsBanner,
		&news.Views,
		&authorID,
		&publishedAt,
		&news.CreatedAt,
		&news.UpdatedAt,
		&refStateID,
		&refStateName,
		&refStateCode,
		&refDistrictID,
		&refDistrictName,
		&refDistrictSlug,
		&refCategoryID,
		&refCategoryName,
		&refCategorySlug,
		&refAuthorID,
		&refAuthorName,
	)
	if err != nil {
		return nil, err
	}

	news.Description = description.String
	news.BannerImage = bannerImage.String
	news.StateID = uuidPtr(stateID)
	news.DistrictID = uuidPtr(districtID)
	news.CategoryID = uuidPtr(categoryID)
	news.AuthorID = uuidPtr(authorID)
	news.Tags = tags
	if publishedAt.Valid {
		t := publishedAt.Time
		news.PublishedAt = &t
	}

	if refStateID.Valid {
		news.State = &models.StateRef{ID: refStateID.UUID, Name: refStateName.String, Code: refStateCode.String}
	}
	if refDistrictID.Valid {
		news.District = &models.DistrictRef{ID: refDistrictID.UUID, Name: refDistrictName.String, Slug: refDistrictSlug.String}
	}
	if refCategoryID.Valid {
		news.Category = &models.CategoryRef{ID: refCategoryID.UUID, Name: refCategoryName.String, Slug: refCategorySlug.String}
	}
	if refAuthorID.Valid {
		news.Author = &models.AuthorRef{ID: refAuthorID.UUID, Name: refAuthorName.String}
	}

	return news, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func uuidPtr(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	u := id.UUID
	return &u
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
