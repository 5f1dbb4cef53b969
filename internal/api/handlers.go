package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/prajanews/cms-backend/internal/auth"
	"github.com/prajanews/cms-backend/internal/news"
	"github.com/prajanews/cms-backend/internal/storage"
)

type Handler struct {
	store storage.Store
	news  *news.Service
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewHandler(store storage.Store) *Handler {
	return &Handler{store: store, news: news.NewService(store)}
}

// ListNews is the public discovery endpoint. Filters combine
// conjunctively; a filter naming a nonexistent taxonomy value yields an
// empty array, not an error.
func (h *Handler) ListNews(c *gin.Context) {
	params := news.DiscoveryParams{
		State:        c.Query("state"),
		District:     c.Query("district"),
		Category:     c.Query("category"),
		StateName:    c.Query("stateName"),
		DistrictSlug: c.Query("districtSlug"),
		CategorySlug: c.Query("categorySlug"),
		Tag:          c.Query("tag"),
		Search:       c.Query("search"),
		TopStory:     c.Query("featured") == "true",
		Trending:     c.Query("trending") == "true",
		Banner:       c.Query("banner") == "true",
		Date:         c.Query("date"),
	}

	items, err := h.news.Discover(c.Request.Context(), params)
	if errors.Is(err, news.ErrBadDate) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		log.Printf("Failed to list news: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch news"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetNewsBySlug serves the public permalink: published articles only,
// and the only path that counts a view.
func (h *Handler) GetNewsBySlug(c *gin.Context) {
	item, err := h.news.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		log.Printf("Failed to fetch news by slug %q: %v", c.Param("slug"), err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch news"})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "News article not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// GetNews is the editorial fetch by identifier: any status, no view
// counting.
func (h *Handler) GetNews(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid news ID"})
		return
	}

	item, err := h.news.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("Failed to fetch news %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch news"})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "News article not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) CreateNews(c *gin.Context) {
	var in news.CreateNewsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid news payload"})
		return
	}

	claims := auth.MustGetClaims(c)
	authorID, err := uuid.Parse(claims.AdminID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
		return
	}

	item, err := h.news.Create(c.Request.Context(), in, authorID)
	if errors.Is(err, news.ErrInvalid) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		log.Printf("Failed to create news: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create news"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateNews(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid news ID"})
		return
	}

	var in news.UpdateNewsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid news payload"})
		return
	}

	item, err := h.news.Update(c.Request.Context(), id, in)
	if errors.Is(err, news.ErrInvalid) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		log.Printf("Failed to update news %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update news"})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "News article not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteNews(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid news ID"})
		return
	}

	found, err := h.news.Delete(c.Request.Context(), id)
	if err != nil {
		log.Printf("Failed to delete news %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete news"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "News article not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// AdminListNews is the CMS listing: all statuses by default, optional
// status and search filters, newest created first.
func (h *Handler) AdminListNews(c *gin.Context) {
	items, err := h.news.AdminList(c.Request.Context(), c.Query("status"), c.Query("search"))
	if err != nil {
		log.Printf("Failed to list news for CMS: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch news"})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) DashboardStats(c *gin.Context) {
	stats, err := h.news.Stats(c.Request.Context())
	if err != nil {
		log.Printf("Failed to compute dashboard stats: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
