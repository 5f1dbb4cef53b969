package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/prajanews/cms-backend/internal/models"
	"github.com/prajanews/cms-backend/internal/news"
)

// Taxonomy management handlers. These are thin record mutations; the
// only rules that matter are the uniqueness conflicts and the slug
// derivation invariants (district slugs are assigned once, category
// slugs follow actual name changes).

func (h *Handler) ListStates(c *gin.Context) {
	states, err := h.store.ListStates(c.Request.Context())
	if err != nil {
		log.Printf("Failed to list states: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch states"})
		return
	}
	if states == nil {
		states = []*models.State{}
	}

	c.JSON(http.StatusOK, states)
}

type stateRequest struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	IsActive *bool  `json:"isActive"`
	Order    *int   `json:"order"`
}

func (h *Handler) CreateState(c *gin.Context) {
	var req stateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name and code are required"})
		return
	}

	existing, err := h.store.GetStateByNameOrCode(c.Request.Context(), req.Name, req.Code)
	if err != nil {
		log.Printf("Failed to check state %q: %v", req.Name, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create state"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "State already exists"})
		return
	}

	state := models.NewState()
	state.Name = strings.TrimSpace(req.Name)
	state.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if req.IsActive != nil {
		state.IsActive = *req.IsActive
	}
	if req.Order != nil {
		state.Order = *req.Order
	}

	if err := h.store.CreateState(c.Request.Context(), state); err != nil {
		log.Printf("Failed to create state %q: %v", state.Name, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create state"})
		return
	}

	c.JSON(http.StatusCreated, state)
}

func (h *Handler) UpdateState(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid state ID"})
		return
	}

	var req stateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid state payload"})
		return
	}

	state, err := h.store.GetState(c.Request.Context(), id)
	if err != nil {
		log.Printf("Failed to fetch state %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update state"})
		return
	}
	if state == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "State not found"})
		return
	}

	if req.Name != "" {
		state.Name = strings.TrimSpace(req.Name)
	}
	if req.Code != "" {
		state.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	}
	if req.IsActive != nil {
		state.IsActive = *req.IsActive
	}
	if req.Order != nil {
		state.Order = *req.Order
	}
	state.UpdatedAt = nowFunc()

	if err := h.store.UpdateState(c.Request.Context(), state); err != nil {
		log.Printf("Failed to update state %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update state"})
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *Handler) DeleteState(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid state ID"})
		return
	}

	state, err := h.store.GetState(c.Request.Context(), id)
	if err != nil {
		log.Printf("Failed to fetch state %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete state"})
		return
	}
	if state == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "State not found"})
		return
	}

	if err := h.store.DeleteState(c.Request.Context(), id); err != nil {
		log.Printf("Failed to delete state %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete state"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.store.ListCategories(c.Request.Context())
	if err != nil {
		log.Printf("Failed to list categories: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch categories"})
		return
	}
	if categories == nil {
		categories = []*models.Category{}
	}

	c.JSON(http.StatusOK, categories)
}

type categoryRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsActive *bool  `json:"isActive"`
	Order    *int   `json:"order"`
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name is required"})
		return
	}
	if req.Type != "" && req.Type != models.CategoryTypeNews && req.Type != models.CategoryTypeGeneral {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown category type"})
		return
	}

	existing, err := h.store.GetCategoryByName(c.Request.Context(), req.Name)
	if err != nil {
		log.Printf("Failed to check category %q: %v", req.Name, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create category"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Category already exists"})
		return
	}

	category := models.NewCategory()
	category.Name = strings.TrimSpace(req.Name)
	category.Slug = news.CategorySlug(category.Name)
	if req.Type != "" {
		category.Type = req.Type
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.Order != nil {
		category.Order = *req.Order
	}

	if err := h.store.CreateCategory(c.Request.Context(), category); err != nil {
		log.Printf("Failed to create category %q: %v", category.Name, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid category ID"})
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid category payload"})
		return
	}
	if req.Type != "" && req.Type != models.CategoryTypeNews && req.Type != models.CategoryTypeGeneral {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown category type"})
		return
	}

	category, err := h.store.GetCategory(c.Request.Context(), id)
	if err != nil {
		log.Printf("Failed to fetch category %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update category"})
		return
	}
	if category == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Category not found"})
		return
	}

	// The slug follows the name, but only on an actual change; a no-op
	// resave must not reslug.
	if name := strings.TrimSpace(req.Name); name != "" && name != category.Name {
		category.Name = name
		category.Slug = news.CategorySlug(name)
	}
	if req.Type != "" {
		category.Type = req.Type
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.Order != nil {
		category.Order = *req.Order
	}
	category.UpdatedAt = nowFunc()

	if err := h.store.UpdateCategory(c.Request.Context(), category); err != nil {
		log.Printf("Failed to update category %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid category ID"})
		return
	}

	category, err := h.store.GetCategory(c.Request.Context(), id)
	if err != nil {
		log.Printf("Failed to fetch category %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete category"})
		return
	}
	if category == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Category not found"})
		return
	}

	if err := h.store.DeleteCategory(c.Request.Context(), id); err != nil {
		log.Printf("Failed to delete category %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) ListDistricts(c *gin.Context) {
	var stateID *uuid.UUID
	if raw := c.Query("state"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid state ID"})
			return
		}
		stateID = &id
	}

	districts, err := h.store.ListDistricts(c.Request.Context(), stateID)
	if err != nil {
		log.Printf("Failed to list districts: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch districts"})
		return
	}
	if districts == nil {
		districts = []*models.District{}
	}

	c.JSON(http.StatusOK, districts)
}

type districtRequest struct {
	Name     string `json:"name"`
	State    string `json:"state"`
	IsActive *bool  `json:"isActive"`
}

func (h *Handler) CreateDistrict(c *gin.Context) {
	var req districtRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.State == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name and state are required"})
		return
	}

	stateID, err := uuid.Parse(req.State)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid state ID"})
		return
	}

	district := models.NewDistrict()
	district.Name = strings.TrimSpace(req.Name)
	district.StateID = stateID
	district.Slug = news.DistrictSlug(district.Name)
	if req.IsActive != nil {
		district.IsActive = *req.IsActive
	}

	existing, err := h.store.FindDistrict(c.Request.Context(), district.Slug)
	if err != nil {
		log.Printf("Failed to check district %q: %v", district.Name, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create district"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "District already exists"})
		return
	}

	if err := h.store.CreateDistrict(c.Request.Context(), district); err != nil {
		log.Printf("Failed to create district %q: %v", district.Name, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create district"})
		return
	}

	c.JSON(http.StatusCreated, district)
}

func (h *Handler) UpdateDistrict(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid district ID"})
		return
	}

	var req districtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid district payload"})
		return
	}

	district, err := h.store.GetDistrict(c.Request.Context(), id)
	if err != nil {
		log.Printf("Failed to fetch district %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update district"})
		return
	}
	if district == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "District not found"})
		return
	}

	// The slug was assigned at creation and stays put even if the name
	// changes, so existing permalinks keep working.
	if req.Name != "" {
		district.Name = strings.TrimSpace(req.Name)
	}
	if req.State != "" {
		stateID, err := uuid.Parse(req.State)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid state ID"})
			return
		}
		district.StateID = stateID
	}
	if req.IsActive != nil {
		district.IsActive = *req.IsActive
	}
	district.UpdatedAt = nowFunc()

	if err := h.store.UpdateDistrict(c.Request.Context(), district); err != nil {
		log.Printf("Failed to update district %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update district"})
		return
	}

	c.JSON(http.StatusOK, district)
}

func (h *Handler) DeleteDistrict(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid district ID"})
		return
	}

	district, err := h.store.GetDistrict(c.Request.Context(), id)
	if err != nil {
		log.Printf("Failed to fetch district %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete district"})
		return
	}
	if district == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "District not found"})
		return
	}

	if err := h.store.DeleteDistrict(c.Request.Context(), id); err != nil {
		log.Printf("Failed to delete district %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete district"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
