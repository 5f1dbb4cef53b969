package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/prajanews/cms-backend/internal/models"
)

// SQLiteStore is the file or in-memory backend used for local
// development and tests. Tags are stored as a JSON array in a TEXT
// column; case-insensitive matching goes through LOWER().
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS admins (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'admin',
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE TABLE IF NOT EXISTS states (
            id TEXT PRIMARY KEY,
            name TEXT UNIQUE NOT NULL,
            code TEXT UNIQUE NOT NULL,
            is_active BOOLEAN NOT NULL DEFAULT 1,
            sort_order INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE TABLE IF NOT EXISTS districts (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            state_id TEXT NOT NULL,
            slug TEXT UNIQUE NOT NULL,
            is_active BOOLEAN NOT NULL DEFAULT 1,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE TABLE IF NOT EXISTS categories (
            id TEXT PRIMARY KEY,
            name TEXT UNIQUE NOT NULL,
            slug TEXT UNIQUE NOT NULL,
            type TEXT NOT NULL DEFAULT 'news',
            is_active BOOLEAN NOT NULL DEFAULT 1,
            sort_order INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE TABLE IF NOT EXISTS news (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            slug TEXT UNIQUE NOT NULL,
            description TEXT,
            content TEXT NOT NULL,
            image TEXT NOT NULL,
            banner_image TEXT,
            state_id TEXT,
            district_id TEXT,
            category_id TEXT,
            tags TEXT,
            status TEXT NOT NULL DEFAULT 'draft',
            is_top_story BOOLEAN NOT NULL DEFAULT 0,
            is_trending BOOLEAN NOT NULL DEFAULT 0,
            is_banner BOOLEAN NOT NULL DEFAULT 0,
            views INTEGER NOT NULL DEFAULT 0,
            author_id TEXT,
            published_at DATETIME,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE INDEX IF NOT EXISTS idx_news_status_created ON news(status, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_news_status_state_created ON news(status, state_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_news_status_category_created ON news(status, category_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_news_status_district_created ON news(status, district_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_news_slug ON news(slug)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

const sqliteNewsColumns = `
        n.id, n.title, n.slug, n.description, n.content, n.image, n.banner_image,
        n.state_id, n.district_id, n.category_id, n.tags, n.status,
        n.is_top_story, n.is_trending, n.is_banner, n.views, n.author_id,
        n.published_at, n.created_at, n.updated_at,
        s.id, s.name, s.code,
        d.id, d.name, d.slug,
        c.id, c.name, c.slug,
        a.id, a.name`

const sqliteNewsJoins = `
        FROM news n
        LEFT JOIN states s ON s.id = n.state_id
        LEFT JOIN districts d ON d.id = n.district_id
        LEFT JOIN categories c ON c.id = n.category_id
        LEFT JOIN admins a ON a.id = n.author_id`

func (s *SQLiteStore) CreateNews(ctx context.Context, news *models.News) error {
	query := `
        INSERT INTO news (id, title, slug, description, content, image, banner_image,
            state_id, district_id, category_id, tags, status,
            is_top_story, is_trending, is_banner, views, author_id,
            published_at, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	tagsJSON, err := json.Marshal(news.Tags)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query,
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
		string(tagsJSON),
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

func (s *SQLiteStore) UpdateNews(ctx context.Context, news *models.News) error {
	query := `
        UPDATE news SET
            title = ?, slug = ?, description = ?, content = ?, image = ?, banner_image = ?,
            state_id = ?, district_id = ?, category_id = ?, tags = ?, status = ?,
            is_top_story = ?, is_trending = ?, is_banner = ?, published_at = ?, updated_at = ?
        WHERE id = ?
    `

	tagsJSON, err := json.Marshal(news.Tags)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query,
		news.Title,
		news.Slug,
		nullString(news.Description),
		news.Content,
		news.Image,
		nullString(news.BannerImage),
		nullUUID(news.StateID),
		nullUUID(news.DistrictID),
		nullUUID(news.CategoryID),
		string(tagsJSON),
		news.Status,
		news.IsTopStory,
		news.IsTrending,
		news.IsBanner,
		news.PublishedAt,
		news.UpdatedAt,
		news.ID,
	)

	return err
}

func (s *SQLiteStore) DeleteNews(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM news WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) GetNews(ctx context.Context, id uuid.UUID) (*models.News, error) {
	query := `SELECT` + sqliteNewsColumns + sqliteNewsJoins + ` WHERE n.id = ?`
	return s.queryOneNews(ctx, query, id)
}

func (s *SQLiteStore) GetNewsBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.News, error) {
	query := `SELECT` + sqliteNewsColumns + sqliteNewsJoins + ` WHERE n.slug = ?`
	if publishedOnly {
		query += ` AND n.status = 'published'`
	}
	return s.queryOneNews(ctx, query, slug)
}

func (s *SQLiteStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM news WHERE slug = ?)`, slug).Scan(&exists)
	return exists, err
}

func (s *SQLiteStore) ListNews(ctx context.Context, filter NewsFilter) ([]*models.News, error) {
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, "n.status = ?")
		args = append(args, filter.Status)
	}
	if filter.StateID != nil {
		conditions = append(conditions, "n.state_id = ?")
		args = append(args, *filter.StateID)
	}
	if filter.DistrictID != nil {
		conditions = append(conditions, "n.district_id = ?")
		args = append(args, *filter.DistrictID)
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, "n.category_id = ?")
		args = append(args, *filter.CategoryID)
	}
	if filter.Tag != "" {
		conditions = append(conditions, "EXISTS (SELECT 1 FROM json_each(n.tags) WHERE json_each.value = ?)")
		args = append(args, filter.Tag)
	}
	if filter.TopStory {
		conditions = append(conditions, "n.is_top_story = 1")
	}
	if filter.Trending {
		conditions = append(conditions, "n.is_trending = 1")
	}
	if filter.Banner {
		conditions = append(conditions, "n.is_banner = 1")
	}

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		or := []string{
			"LOWER(n.title) LIKE ?",
			"LOWER(n.description) LIKE ?",
		}
		args = append(args, pattern, pattern)
		if len(filter.SearchStateIDs) > 0 {
			or = append(or, "n.state_id IN ("+placeholders(len(filter.SearchStateIDs))+")")
			args = appendIDs(args, filter.SearchStateIDs)
		}
		if len(filter.SearchDistrictIDs) > 0 {
			or = append(or, "n.district_id IN ("+placeholders(len(filter.SearchDistrictIDs))+")")
			args = appendIDs(args, filter.SearchDistrictIDs)
		}
		if len(filter.SearchCategoryIDs) > 0 {
			or = append(or, "n.category_id IN ("+placeholders(len(filter.SearchCategoryIDs))+")")
			args = appendIDs(args, filter.SearchCategoryIDs)
		}
		conditions = append(conditions, "("+strings.Join(or, " OR ")+")")
	}

	if filter.CreatedFrom != nil {
		conditions = append(conditions, "n.created_at >= ?")
		args = append(args, *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		conditions = append(conditions, "n.created_at <= ?")
		args = append(args, *filter.CreatedTo)
	}

	query := `SELECT` + sqliteNewsColumns + sqliteNewsJoins
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	if filter.SortByCreated {
		query += " ORDER BY n.created_at DESC"
	} else {
		query += " ORDER BY n.published_at DESC, n.created_at DESC"
	}

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	return s.queryNews(ctx, query, args...)
}

func (s *SQLiteStore) IncrementNewsViews(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `UPDATE news SET views = views + 1 WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
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

func (s *SQLiteStore) queryOneNews(ctx context.Context, query string, args ...interface{}) (*models.News, error) {
	news, err := scanSQLiteNewsRow(s.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return news, nil
}

func (s *SQLiteStore) queryNews(ctx context.Context, query string, args ...interface{}) ([]*models.News, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.News
	for rows.Next() {
		news, err := scanSQLiteNewsRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, news)
	}

	return items, rows.Err()
}

// scanSQLiteNewsRow matches scanNewsRow but decodes the JSON tags column.
func scanSQLiteNewsRow(row rowScanner) (*models.News, error) {
	news := &models.News{}
	var (
		description, bannerImage         sql.NullString
		stateID, districtID, categoryID  uuid.NullUUID
		authorID                         uuid.NullUUID
		publishedAt                      sql.NullTime
		tagsJSON                         sql.NullString
		refStateID, refDistrictID        uuid.NullUUID
		refCategoryID, refAuthorID       uuid.NullUUID
		refStateName, refStateCode       sql.NullString
		refDistrictName, refDistrictSlug sql.NullString
		refCategoryName, refCategorySlug sql.NullString
		refAuthorName                    sql.NullString
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
		&tagsJSON,
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
	if tagsJSON.Valid && tagsJSON.String != "" {
		json.Unmarshal([]byte(tagsJSON.String), &news.Tags)
	}
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

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func appendIDs(args []interface{}, ids []uuid.UUID) []interface{} {
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}
