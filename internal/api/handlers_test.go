package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prajanews/cms-backend/internal/auth"
	"github.com/prajanews/cms-backend/internal/models"
	"github.com/prajanews/cms-backend/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.SQLiteStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Initialize())

	tokens := auth.TokenService{
		Secret:   []byte("test-secret"),
		Issuer:   "test",
		Duration: time.Hour,
	}
	return NewServer(0, store, tokens), store
}

func doRequest(t *testing.T, srv *Server, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func seedArticle(t *testing.T, store storage.Store, mutate func(*models.News)) *models.News {
	t.Helper()
	n := models.NewNews()
	n.Title = "Seed Article"
	n.Slug = "seed-article-" + uuid.NewString()
	n.Content = "<p>body</p>"
	n.Image = "https://example.com/img.jpg"
	n.Tags = []string{}
	n.Status = models.StatusPublished
	if mutate != nil {
		mutate(n)
	}
	require.NoError(t, store.CreateNews(context.Background(), n))
	return n
}

func loginToken(t *testing.T, srv *Server, store storage.Store) string {
	t.Helper()

	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	admin := models.NewAdmin()
	admin.Name = "Editor"
	admin.Email = "editor@example.com"
	admin.PasswordHash = hash
	require.NoError(t, store.CreateAdmin(context.Background(), admin))

	rec := doRequest(t, srv, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "editor@example.com",
		"password": "s3cret",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListNewsPublic(t *testing.T) {
	srv, store := newTestServer(t)

	seedArticle(t, store, nil)
	seedArticle(t, store, func(n *models.News) { n.Status = models.StatusDraft })

	rec := doRequest(t, srv, http.MethodGet, "/api/news?date=all", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.News
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 1, "drafts must not appear in discovery")
}

func TestListNewsSearchIgnoresDate(t *testing.T) {
	srv, store := newTestServer(t)

	old := time.Now().AddDate(0, -1, 0)
	older := old.AddDate(0, 0, -7)

	latest := seedArticle(t, store, func(n *models.News) {
		n.Title = "Union Budget Session Concludes"
		n.CreatedAt = old
		n.PublishedAt = &old
	})
	seedArticle(t, store, func(n *models.News) {
		n.Title = "Budget Speech Highlights"
		n.CreatedAt = older
		n.PublishedAt = &older
	})
	seedArticle(t, store, func(n *models.News) {
		n.Title = "Monsoon Update"
		n.CreatedAt = older
		n.PublishedAt = &older
	})

	rec := doRequest(t, srv, http.MethodGet, "/api/news?search=budget", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.News
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, latest.ID, items[0].ID, "newest published first")
}

func TestListNewsUnknownTaxonomyIsEmptyArray(t *testing.T) {
	srv, store := newTestServer(t)

	seedArticle(t, store, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/news?categorySlug=sports&date=all", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestListNewsBadDate(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/news?date=31-08-2026", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetNewsBySlug(t *testing.T) {
	srv, store := newTestServer(t)

	article := seedArticle(t, store, func(n *models.News) { n.Slug = "metro-opens" })

	rec := doRequest(t, srv, http.MethodGet, "/api/news/slug/metro-opens", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.News
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, article.ID, got.ID)
	assert.Equal(t, int64(1), got.Views)

	// The increment lands in the store shortly after the response.
	require.Eventually(t, func() bool {
		stored, err := store.GetNews(context.Background(), article.ID)
		return err == nil && stored != nil && stored.Views == 1
	}, time.Second, 10*time.Millisecond)

	rec = doRequest(t, srv, http.MethodGet, "/api/news/slug/no-such-slug", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditorialRoutesRequireAuth(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, route := range []struct {
		method, path string
	}{
		{http.MethodPost, "/api/news"},
		{http.MethodGet, "/api/news/cms/all"},
		{http.MethodGet, "/api/news/stats/dashboard"},
		{http.MethodGet, "/api/cms/states"},
	} {
		rec := doRequest(t, srv, route.method, route.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	srv, store := newTestServer(t)

	hash, err := auth.HashPassword("right")
	require.NoError(t, err)
	admin := models.NewAdmin()
	admin.Name = "Editor"
	admin.Email = "editor@example.com"
	admin.PasswordHash = hash
	require.NoError(t, store.CreateAdmin(context.Background(), admin))

	rec := doRequest(t, srv, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "editor@example.com",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAndUpdateNews(t *testing.T) {
	srv, store := newTestServer(t)
	token := loginToken(t, srv, store)

	rec := doRequest(t, srv, http.MethodPost, "/api/news", gin.H{
		"title":    "New Flyover Inaugurated",
		"content":  "<p>The flyover opened to traffic.</p>",
		"image":    "https://example.com/flyover.jpg",
		"category": uuid.NewString(),
		"status":   "published",
		"tags":     []string{"infrastructure"},
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.News
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.Slug)
	require.NotNil(t, created.PublishedAt)

	rec = doRequest(t, srv, http.MethodPut, "/api/news/"+created.ID.String(), gin.H{
		"description": "A shorter commute for thousands.",
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.News
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, created.Slug, updated.Slug)
	assert.Equal(t, "A shorter commute for thousands.", updated.Description)
}

func TestCreateNewsValidation(t *testing.T) {
	srv, store := newTestServer(t)
	token := loginToken(t, srv, store)

	rec := doRequest(t, srv, http.MethodPost, "/api/news", gin.H{
		"content": "<p>missing everything else</p>",
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteNews(t *testing.T) {
	srv, store := newTestServer(t)
	token := loginToken(t, srv, store)

	article := seedArticle(t, store, nil)

	rec := doRequest(t, srv, http.MethodDelete, "/api/news/"+article.ID.String(), nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodDelete, "/api/news/"+article.ID.String(), nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboardStatsEndpoint(t *testing.T) {
	srv, store := newTestServer(t)
	token := loginToken(t, srv, store)

	seedArticle(t, store, nil)
	seedArticle(t, store, func(n *models.News) { n.Status = models.StatusDraft })

	rec := doRequest(t, srv, http.MethodGet, "/api/news/stats/dashboard", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats storage.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(2), stats.TotalPosts)
	assert.Equal(t, int64(1), stats.PublishedPosts)
	assert.Equal(t, int64(1), stats.DraftPosts)
}

func TestStateLifecycle(t *testing.T) {
	srv, store := newTestServer(t)
	token := loginToken(t, srv, store)

	rec := doRequest(t, srv, http.MethodPost, "/api/cms/states", gin.H{
		"name": "Telangana",
		"code": "ts",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var state models.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "TS", state.Code, "codes are stored uppercased")

	// Duplicate names are rejected.
	rec = doRequest(t, srv, http.MethodPost, "/api/cms/states", gin.H{
		"name": "Telangana",
		"code": "TG",
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/cms/states", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var states []models.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &states))
	assert.Len(t, states, 1)
}

func TestCategorySlugStableAcrossRename(t *testing.T) {
	srv, store := newTestServer(t)
	token := loginToken(t, srv, store)

	rec := doRequest(t, srv, http.MethodPost, "/api/cms/categories", gin.H{
		"name": "World News",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var category models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &category))
	assert.Equal(t, "world-news", category.Slug)

	// Updating without renaming keeps the slug.
	rec = doRequest(t, srv, http.MethodPut, "/api/cms/categories/"+category.ID.String(), gin.H{
		"name":  "World News",
		"order": 5,
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "world-news", updated.Slug)

	// An actual rename regenerates it.
	rec = doRequest(t, srv, http.MethodPut, "/api/cms/categories/"+category.ID.String(), gin.H{
		"name": "Global Affairs",
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "global-affairs", updated.Slug)
}

func TestDistrictSlugDerivedOnce(t *testing.T) {
	srv, store := newTestServer(t)
	token := loginToken(t, srv, store)

	stateRec := doRequest(t, srv, http.MethodPost, "/api/cms/states", gin.H{
		"name": "Karnataka",
		"code": "KA",
	}, token)
	require.Equal(t, http.StatusCreated, stateRec.Code)

	var state models.State
	require.NoError(t, json.Unmarshal(stateRec.Body.Bytes(), &state))

	rec := doRequest(t, srv, http.MethodPost, "/api/cms/districts", gin.H{
		"name":  "Bengaluru Urban",
		"state": state.ID.String(),
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var district models.District
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &district))
	assert.Equal(t, "bengaluru-urban", district.Slug)

	rec = doRequest(t, srv, http.MethodPut, "/api/cms/districts/"+district.ID.String(), gin.H{
		"name": "Bengaluru",
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var renamed models.District
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &renamed))
	assert.Equal(t, "bengaluru-urban", renamed.Slug, "district slugs never regenerate")
}
