package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/prajanews/cms-backend/internal/models"
)

// MaxNewsResults caps every discovery listing. Callers must not rely on
// list endpoints for exhaustive enumeration.
const MaxNewsResults = 100

// NewsFilter is the compiled filter expression for ListNews. All set
// fields are combined conjunctively; the Search* fields together form a
// single disjunctive clause (title/description substring OR taxonomy
// membership) AND-ed with the rest.
type NewsFilter struct {
	Status     string
	StateID    *uuid.UUID
	DistrictID *uuid.UUID
	CategoryID *uuid.UUID
	Tag        string
	TopStory   bool
	Trending   bool
	Banner     bool

	Search            string
	SearchStateIDs    []uuid.UUID
	SearchDistrictIDs []uuid.UUID
	SearchCategoryIDs []uuid.UUID

	CreatedFrom *time.Time
	CreatedTo   *time.Time

	// SortByCreated orders by created_at only (CMS listing); the default
	// discovery order is published_at DESC, created_at DESC.
	SortByCreated bool
	Limit         int
}

// StateNewsCount is one row of the dashboard's per-state breakdown.
type StateNewsCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type DashboardStats struct {
	TotalPosts      int64            `json:"totalPosts"`
	PublishedPosts  int64            `json:"publishedPosts"`
	DraftPosts      int64            `json:"draftPosts"`
	TotalCategories int64            `json:"totalCategories"`
	TotalStates     int64            `json:"totalStates"`
	StateStats      []StateNewsCount `json:"stateStats"`
}

// Store is the persistence boundary. Lookups return (nil, nil) when the
// entity does not exist; an error always means an infrastructure fault.
type Store interface {
	Initialize() error
	Close() error

	// News operations
	CreateNews(ctx context.Context, news *models.News) error
	UpdateNews(ctx context.Context, news *models.News) error
	DeleteNews(ctx context.Context, id uuid.UUID) error
	GetNews(ctx context.Context, id uuid.UUID) (*models.News, error)
	GetNewsBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.News, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListNews(ctx context.Context, filter NewsFilter) ([]*models.News, error)
	IncrementNewsViews(ctx context.Context, id uuid.UUID) error

	// Taxonomy resolution
	FindState(ctx context.Context, candidate string) (*models.State, error)
	FindDistrict(ctx context.Context, candidate string) (*models.District, error)
	FindCategory(ctx context.Context, candidate string) (*models.Category, error)
	SearchStateIDs(ctx context.Context, term string) ([]uuid.UUID, error)
	SearchDistrictIDs(ctx context.Context, term string) ([]uuid.UUID, error)
	SearchCategoryIDs(ctx context.Context, term string) ([]uuid.UUID, error)

	// State operations
	CreateState(ctx context.Context, state *models.State) error
	UpdateState(ctx context.Context, state *models.State) error
	DeleteState(ctx context.Context, id uuid.UUID) error
	GetState(ctx context.Context, id uuid.UUID) (*models.State, error)
	GetStateByNameOrCode(ctx context.Context, name, code string) (*models.State, error)
	ListStates(ctx context.Context) ([]*models.State, error)

	// District operations
	CreateDistrict(ctx context.Context, district *models.District) error
	UpdateDistrict(ctx context.Context, district *models.District) error
	DeleteDistrict(ctx context.Context, id uuid.UUID) error
	GetDistrict(ctx context.Context, id uuid.UUID) (*models.District, error)
	ListDistricts(ctx context.Context, stateID *uuid.UUID) ([]*models.District, error)

	// Category operations
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)

	// Admin operations
	CreateAdmin(ctx context.Context, admin *models.Admin) error
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetAdmin(ctx context.Context, id uuid.UUID) (*models.Admin, error)

	// Dashboard
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}
