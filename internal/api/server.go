package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/prajanews/cms-backend/internal/auth"
	"github.com/prajanews/cms-backend/internal/storage"
)

var nowFunc = time.Now

type Server struct {
	router *gin.Engine
	port   int
	server *http.Server
}

func NewServer(port int, store storage.Store, tokens auth.TokenService) *Server {
	router := gin.Default()

	// Setup CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handler := NewHandler(store)
	authHandler := auth.NewHandler(store, tokens)
	requireAdmin := auth.RequireAdmin(tokens)

	api := router.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		api.POST("/auth/login", authHandler.Login)

		// Public discovery routes
		newsRoutes := api.Group("/news")
		{
			newsRoutes.GET("", handler.ListNews)
			newsRoutes.GET("/slug/:slug", handler.GetNewsBySlug)
			newsRoutes.GET("/:id", handler.GetNews)

			// Editorial routes
			newsRoutes.POST("", requireAdmin, handler.CreateNews)
			newsRoutes.PUT("/:id", requireAdmin, handler.UpdateNews)
			newsRoutes.DELETE("/:id", requireAdmin, handler.DeleteNews)
			newsRoutes.GET("/cms/all", requireAdmin, handler.AdminListNews)
			newsRoutes.GET("/stats/dashboard", requireAdmin, handler.DashboardStats)
		}

		// Taxonomy management routes
		cms := api.Group("/cms", requireAdmin)
		{
			cms.GET("/states", handler.ListStates)
			cms.POST("/states", handler.CreateState)
			cms.PUT("/states/:id", handler.UpdateState)
			cms.DELETE("/states/:id", handler.DeleteState)

			cms.GET("/categories", handler.ListCategories)
			cms.POST("/categories", handler.CreateCategory)
			cms.PUT("/categories/:id", handler.UpdateCategory)
			cms.DELETE("/categories/:id", handler.DeleteCategory)

			cms.GET("/districts", handler.ListDistricts)
			cms.POST("/districts", handler.CreateDistrict)
			cms.PUT("/districts/:id", handler.UpdateDistrict)
			cms.DELETE("/districts/:id", handler.DeleteDistrict)
		}
	}

	return &Server{
		router: router,
		port:   port,
	}
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Router exposes the gin engine for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
