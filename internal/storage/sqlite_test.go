package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prajanews/cms-backend/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Initialize())
	return store
}

func seedState(t *testing.T, store *SQLiteStore, name, code string) *models.State {
	t.Helper()
	state := models.NewState()
	state.Name = name
	state.Code = code
	require.NoError(t, store.CreateState(context.Background(), state))
	return state
}

func seedCategory(t *testing.T, store *SQLiteStore, name, slug string) *models.Category {
	t.Helper()
	category := models.NewCategory()
	category.Name = name
	category.Slug = slug
	require.NoError(t, store.CreateCategory(context.Background(), category))
	return category
}

func seedDistrict(t *testing.T, store *SQLiteStore, name, slug string, stateID uuid.UUID) *models.District {
	t.Helper()
	district := models.NewDistrict()
	district.Name = name
	district.Slug = slug
	district.StateID = stateID
	require.NoError(t, store.CreateDistrict(context.Background(), district))
	return district
}

func seedNews(t *testing.T, store *SQLiteStore, mutate func(*models.News)) *models.News {
	t.Helper()
	n := models.NewNews()
	n.Title = "Test Article"
	n.Slug = "test-article-" + uuid.NewString()
	n.Content = "<p>body</p>"
	n.Image = "https://example.com/img.jpg"
	n.Tags = []string{}
	if mutate != nil {
		mutate(n)
	}
	require.NoError(t, store.CreateNews(context.Background(), n))
	return n
}

func TestNewsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	state := seedState(t, store, "Telangana", "TS")
	category := seedCategory(t, store, "Politics", "politics")

	created := seedNews(t, store, func(n *models.News) {
		n.Title = "Assembly Session Begins"
		n.Description = "The winter session opened today."
		n.StateID = &state.ID
		n.CategoryID = &category.ID
		n.Tags = []string{"assembly", "session"}
		n.Status = models.StatusPublished
	})

	got, err := store.GetNews(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Slug, got.Slug)
	assert.Equal(t, []string{"assembly", "session"}, got.Tags)
	require.NotNil(t, got.State)
	assert.Equal(t, "Telangana", got.State.Name)
	assert.Equal(t, "TS", got.State.Code)
	require.NotNil(t, got.Category)
	assert.Equal(t, "politics", got.Category.Slug)
	assert.Nil(t, got.District)
	assert.Nil(t, got.Author)
}

func TestGetNewsMissing(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetNews(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDanglingReferenceTolerated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	state := seedState(t, store, "Karnataka", "KA")
	created := seedNews(t, store, func(n *models.News) {
		n.StateID = &state.ID
	})

	require.NoError(t, store.DeleteState(ctx, state.ID))

	got, err := store.GetNews(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.State)
}

func TestGetNewsBySlugPublishedOnly(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	draft := seedNews(t, store, func(n *models.News) {
		n.Slug = "hidden-draft"
		n.Status = models.StatusDraft
	})

	got, err := store.GetNewsBySlug(ctx, "hidden-draft", true)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = store.GetNewsBySlug(ctx, "hidden-draft", false)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, draft.ID, got.ID)
}

func TestSlugExists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedNews(t, store, func(n *models.News) { n.Slug = "taken-slug" })

	exists, err := store.SlugExists(ctx, "taken-slug")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.SlugExists(ctx, "free-slug")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListNewsFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	state := seedState(t, store, "Telangana", "TS")
	other := seedState(t, store, "Andhra Pradesh", "AP")

	published := seedNews(t, store, func(n *models.News) {
		n.StateID = &state.ID
		n.Status = models.StatusPublished
		n.Tags = []string{"metro", "transport"}
		n.IsTopStory = true
	})
	seedNews(t, store, func(n *models.News) {
		n.StateID = &state.ID
		n.Status = models.StatusDraft
	})
	seedNews(t, store, func(n *models.News) {
		n.StateID = &other.ID
		n.Status = models.StatusPublished
	})

	items, err := store.ListNews(ctx, NewsFilter{Status: "published", StateID: &state.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, published.ID, items[0].ID)

	items, err = store.ListNews(ctx, NewsFilter{Tag: "metro"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, published.ID, items[0].ID)

	items, err = store.ListNews(ctx, NewsFilter{Tag: "cricket"})
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = store.ListNews(ctx, NewsFilter{TopStory: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, published.ID, items[0].ID)
}

func TestListNewsSearchDisjunction(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	category := seedCategory(t, store, "Sports", "sports")

	byTitle := seedNews(t, store, func(n *models.News) {
		n.Title = "Union Budget Tabled in Parliament"
		n.Status = models.StatusPublished
	})
	byCategory := seedNews(t, store, func(n *models.News) {
		n.Title = "League Final Tonight"
		n.CategoryID = &category.ID
		n.Status = models.StatusPublished
	})
	seedNews(t, store, func(n *models.News) {
		n.Title = "Unrelated Story"
		n.Status = models.StatusPublished
	})

	items, err := store.ListNews(ctx, NewsFilter{
		Status:            "published",
		Search:            "budget",
		SearchCategoryIDs: []uuid.UUID{category.ID},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	ids := []uuid.UUID{items[0].ID, items[1].ID}
	assert.Contains(t, ids, byTitle.ID)
	assert.Contains(t, ids, byCategory.ID)
}

func TestListNewsOrderingAndLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	var newest *models.News
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		newest = seedNews(t, store, func(n *models.News) {
			n.Status = models.StatusPublished
			n.PublishedAt = &at
			n.CreatedAt = at
		})
	}

	items, err := store.ListNews(ctx, NewsFilter{Status: "published"})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, newest.ID, items[0].ID)

	items, err = store.ListNews(ctx, NewsFilter{Status: "published", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestListNewsDateWindow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	inside := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	outside := inside.AddDate(0, 0, -3)

	wanted := seedNews(t, store, func(n *models.News) {
		n.Status = models.StatusPublished
		n.CreatedAt = inside
	})
	seedNews(t, store, func(n *models.News) {
		n.Status = models.StatusPublished
		n.CreatedAt = outside
	})

	from := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.August, 15, 23, 59, 59, 999_000_000, time.UTC)
	items, err := store.ListNews(ctx, NewsFilter{CreatedFrom: &from, CreatedTo: &to})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, wanted.ID, items[0].ID)
}

func TestIncrementNewsViews(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created := seedNews(t, store, nil)

	require.NoError(t, store.IncrementNewsViews(ctx, created.ID))
	require.NoError(t, store.IncrementNewsViews(ctx, created.ID))

	got, err := store.GetNews(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Views)
}

func TestFindState(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	state := seedState(t, store, "Tamil Nadu", "TN")

	for _, candidate := range []string{"Tamil Nadu", "tamil nadu", "TN", "tn"} {
		got, err := store.FindState(ctx, candidate)
		require.NoError(t, err)
		require.NotNil(t, got, "candidate %q", candidate)
		assert.Equal(t, state.ID, got.ID)
	}

	got, err := store.FindState(ctx, "Kerala")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindDistrict(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	state := seedState(t, store, "Karnataka", "KA")
	district := seedDistrict(t, store, "Bengaluru Urban", "bengaluru-urban", state.ID)

	for _, candidate := range []string{"bengaluru-urban", "Bengaluru-Urban", "bengaluru urban"} {
		got, err := store.FindDistrict(ctx, candidate)
		require.NoError(t, err)
		require.NotNil(t, got, "candidate %q", candidate)
		assert.Equal(t, district.ID, got.ID)
	}

	got, err := store.FindDistrict(ctx, "mysuru")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindCategory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	category := seedCategory(t, store, "World News", "world-news")

	for _, candidate := range []string{"world-news", "World-News", "world news"} {
		got, err := store.FindCategory(ctx, candidate)
		require.NoError(t, err)
		require.NotNil(t, got, "candidate %q", candidate)
		assert.Equal(t, category.ID, got.ID)
	}
}

func TestSearchTaxonomyIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	state := seedState(t, store, "Maharashtra", "MH")
	seedState(t, store, "Telangana", "TS")
	category := seedCategory(t, store, "Marathi Cinema", "marathi-cinema")

	stateIDs, err := store.SearchStateIDs(ctx, "maha")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{state.ID}, stateIDs)

	categoryIDs, err := store.SearchCategoryIDs(ctx, "cinema")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{category.ID}, categoryIDs)

	none, err := store.SearchDistrictIDs(ctx, "nowhere")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDashboardStats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ts := seedState(t, store, "Telangana", "TS")
	ap := seedState(t, store, "Andhra Pradesh", "AP")
	seedCategory(t, store, "National", "national")

	seedNews(t, store, func(n *models.News) {
		n.Status = models.StatusPublished
		n.StateID = &ts.ID
	})
	seedNews(t, store, func(n *models.News) {
		n.Status = models.StatusPublished
		n.StateID = &ts.ID
	})
	seedNews(t, store, func(n *models.News) {
		n.Status = models.StatusDraft
		n.StateID = &ap.ID
	})

	stats, err := store.GetDashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalPosts)
	assert.Equal(t, int64(2), stats.PublishedPosts)
	assert.Equal(t, int64(1), stats.DraftPosts)
	assert.Equal(t, int64(1), stats.TotalCategories)
	assert.Equal(t, int64(2), stats.TotalStates)

	// Drafts never show in the per-state breakdown.
	require.Len(t, stats.StateStats, 1)
	assert.Equal(t, "Telangana", stats.StateStats[0].Name)
	assert.Equal(t, int64(2), stats.StateStats[0].Count)
}

func TestAdminRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	admin := models.NewAdmin()
	admin.Name = "Editor"
	admin.Email = "editor@example.com"
	admin.PasswordHash = "hash"
	require.NoError(t, store.CreateAdmin(ctx, admin))

	got, err := store.GetAdminByEmail(ctx, "editor@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, admin.ID, got.ID)
	assert.Equal(t, models.RoleAdmin, got.Role)

	got, err = store.GetAdminByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}
