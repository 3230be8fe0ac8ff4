package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/middleware"
	"library-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.Metrics(c.Metrics),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))
		v1.GET("/metrics", gin.WrapH(c.Metrics.Handler()))

		auth := middleware.AuthMiddleware(c.JWTManager)

		setupBookRoutes(v1, c, auth)
		setupMeRoutes(v1, c, auth)
		setupAdminRoutes(v1, c, auth)
	}

	return router
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	books := v1.Group("/books")
	{
		// Public
		books.GET("/public", c.BookHandler.ListPublicBooks)

		// Authenticated
		authed := books.Group("", auth)
		authed.GET("", c.BookHandler.ListBooks)
		authed.GET("/validate-isbn", c.BookHandler.ValidateISBN)
		authed.GET("/name-suggestions", c.BookHandler.NameSuggestions)
		authed.GET("/author-suggestions", c.BookHandler.AuthorSuggestions)
		authed.POST("/borrow-status/batch", c.LoanHandler.BorrowStatusBatch)
		authed.GET("/:id/availability", c.LoanHandler.Availability)
		authed.GET("/:id/borrow-status", c.LoanHandler.BorrowStatus)
		authed.POST("/:id/borrow", c.LoanHandler.Borrow)
		authed.POST("/:id/return", c.LoanHandler.Return)

		// Admin
		books.POST("", auth, middleware.AdminMiddleware(), c.BookHandler.CreateBook)
	}
}

// ========================================
// CURRENT USER ROUTES
// ========================================
func setupMeRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	me := v1.Group("/me", auth)
	{
		me.GET("/borrowed-books", c.LoanHandler.BorrowedBooks)
		me.GET("/returned-books", c.LoanHandler.ReturnedBooks)
		me.GET("/loan-history", c.LoanHandler.LoanHistory)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	admin := v1.Group("/admin", auth, middleware.AdminMiddleware())
	{
		admin.GET("/users/stats", c.AdminHandler.UserStats)
		admin.GET("/users/stats/export", c.AdminHandler.ExportUserStats)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = "error"
				health["status"] = "degraded"
			}
		}
		health["services"] = gin.H{"database": dbStatus}

		status := http.StatusOK
		if health["status"] != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, health)
	}
}
