package main

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/prajanews/cms-backend/config"
	"github.com/prajanews/cms-backend/internal/auth"
	"github.com/prajanews/cms-backend/internal/models"
	"github.com/prajanews/cms-backend/internal/news"
	"github.com/prajanews/cms-backend/internal/storage"
	"github.com/prajanews/cms-backend/internal/utils"
)

// Seeds the taxonomy, a default admin and a handful of published
// articles so a fresh install has something to serve.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Seed.AdminPassword == "" {
		log.Fatal("seed.adminpassword must be configured")
	}

	var store storage.Store
	if cfg.Database.Driver == "sqlite" {
		store, err = storage.NewSQLiteStore(cfg.Database.Path)
	} else {
		store, err = storage.NewPostgresStore(cfg.Database.URL)
	}
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	if err := store.Initialize(); err != nil {
		log.Fatalf("Failed to initialize database tables: %v", err)
	}

	logger, err := utils.NewRunLogger("seed")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	ctx := context.Background()

	adminID, err := seedAdmin(ctx, store, cfg, logger)
	if err != nil {
		logger.LogError("Seeding admin failed: %v", err)
		return
	}

	states, err := seedStates(ctx, store, logger)
	if err != nil {
		logger.LogError("Seeding states failed: %v", err)
		return
	}

	if err := seedDistricts(ctx, store, states, logger); err != nil {
		logger.LogError("Seeding districts failed: %v", err)
		return
	}

	categories, err := seedCategories(ctx, store, logger)
	if err != nil {
		logger.LogError("Seeding categories failed: %v", err)
		return
	}

	if err := seedArticles(ctx, store, adminID, states, categories, logger); err != nil {
		logger.LogError("Seeding articles failed: %v", err)
		return
	}

	logger.LogInfo("Seeding complete")
}

func seedAdmin(ctx context.Context, store storage.Store, cfg *config.Config, logger *utils.RunLogger) (uuid.UUID, error) {
	existing, err := store.GetAdminByEmail(ctx, cfg.Seed.AdminEmail)
	if err != nil {
		return uuid.Nil, err
	}
	if existing != nil {
		logger.LogInfo("Admin %s already present", cfg.Seed.AdminEmail)
		return existing.ID, nil
	}

	hash, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return uuid.Nil, err
	}

	admin := models.NewAdmin()
	admin.Name = "Administrator"
	admin.Email = cfg.Seed.AdminEmail
	admin.PasswordHash = hash

	if err := store.CreateAdmin(ctx, admin); err != nil {
		return uuid.Nil, err
	}
	logger.LogInfo("Created admin %s", admin.Email)
	return admin.ID, nil
}

func seedStates(ctx context.Context, store storage.Store, logger *utils.RunLogger) (map[string]uuid.UUID, error) {
	seeds := []struct {
		name  string
		code  string
		order int
	}{
		{"Telangana", "TS", 1},
		{"Andhra Pradesh", "AP", 2},
		{"Karnataka", "KA", 3},
		{"Tamil Nadu", "TN", 4},
		{"Maharashtra", "MH", 5},
	}

	ids := make(map[string]uuid.UUID, len(seeds))
	for _, seed := range seeds {
		existing, err := store.GetStateByNameOrCode(ctx, seed.name, seed.code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			ids[seed.name] = existing.ID
			continue
		}

		state := models.NewState()
		state.Name = seed.name
		state.Code = seed.code
		state.Order = seed.order
		if err := store.CreateState(ctx, state); err != nil {
			return nil, err
		}
		ids[seed.name] = state.ID
		logger.LogInfo("Created state %s (%s)", seed.name, seed.code)
	}

	return ids, nil
}

func seedDistricts(ctx context.Context, store storage.Store, states map[string]uuid.UUID, logger *utils.RunLogger) error {
	seeds := []struct {
		name  string
		state string
	}{
		{"Hyderabad", "Telangana"},
		{"Warangal", "Telangana"},
		{"Visakhapatnam", "Andhra Pradesh"},
		{"Guntur", "Andhra Pradesh"},
		{"Bengaluru Urban", "Karnataka"},
	}

	for _, seed := range seeds {
		slug := news.DistrictSlug(seed.name)
		existing, err := store.FindDistrict(ctx, slug)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		district := models.NewDistrict()
		district.Name = seed.name
		district.StateID = states[seed.state]
		district.Slug = slug
		if err := store.CreateDistrict(ctx, district); err != nil {
			return err
		}
		logger.LogInfo("Created district %s", seed.name)
	}

	return nil
}

func seedCategories(ctx context.Context, store storage.Store, logger *utils.RunLogger) (map[string]uuid.UUID, error) {
	seeds := []struct {
		name  string
		order int
	}{
		{"National", 1},
		{"World", 2},
		{"Politics", 3},
		{"Sports", 4},
		{"Business", 5},
		{"Entertainment", 6},
	}

	ids := make(map[string]uuid.UUID, len(seeds))
	for _, seed := range seeds {
		existing, err := store.GetCategoryByName(ctx, seed.name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			ids[seed.name] = existing.ID
			continue
		}

		category := models.NewCategory()
		category.Name = seed.name
		category.Slug = news.CategorySlug(seed.name)
		category.Order = seed.order
		if err := store.CreateCategory(ctx, category); err != nil {
			return nil, err
		}
		ids[seed.name] = category.ID
		logger.LogInfo("Created category %s", seed.name)
	}

	return ids, nil
}

func seedArticles(ctx context.Context, store storage.Store, adminID uuid.UUID, states, categories map[string]uuid.UUID, logger *utils.RunLogger) error {
	svc := news.NewService(store)

	seeds := []news.CreateNewsInput{
		{
			Title:       "Union Budget Allocates Record Funds for Infrastructure",
			Description: "Finance Minister announces a massive infrastructure push with highways, railways and smart city projects.",
			Content:     "<p>The Union Budget has announced a historic allocation for infrastructure development, a 25% increase from the previous year.</p>",
			Image:       "https://images.unsplash.com/photo-1524492412937-b28074a5d7da?w=800",
			Category:    categories["National"].String(),
			Tags:        []string{"budget", "infrastructure", "economy"},
			Status:      models.StatusPublished,
			IsTopStory:  true,
			IsTrending:  true,
		},
		{
			Title:       "Metro Rail Phase Two Opens in Hyderabad",
			Description: "The new corridor connects the IT hub with the old city, cutting commute times in half.",
			Content:     "<p>Commuters celebrated as the second phase of the metro opened to the public this morning.</p>",
			Image:       "https://images.unsplash.com/photo-1474487548417-781cb71495f3?w=800",
			State:       states["Telangana"].String(),
			Category:    categories["Politics"].String(),
			Tags:        []string{"metro", "transport"},
			Status:      models.StatusPublished,
			IsBanner:    true,
		},
		{
			Title:       "Coastal Tourism Drive Announced for Visakhapatnam",
			Description: "A new beachfront development plan aims to double tourist footfall within three years.",
			Content:     "<p>The state tourism board unveiled a development plan covering the full stretch of the coastline.</p>",
			Image:       "https://images.unsplash.com/photo-1507525428034-b723cf961d3e?w=800",
			State:       states["Andhra Pradesh"].String(),
			Category:    categories["Business"].String(),
			Tags:        []string{"tourism", "coast"},
			Status:      models.StatusPublished,
		},
	}

	for _, seed := range seeds {
		created, err := svc.Create(ctx, seed, adminID)
		if err != nil {
			return err
		}
		logger.LogInfo("Created article %q as %s", created.Title, created.Slug)
	}

	return nil
}
