package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobtrail/internal/api/handlers"
	"github.com/yoockh/jobtrail/internal/api/middleware"
)

type Deps struct {
	Auth        *handlers.AuthHandler
	Application *handlers.ApplicationHandler
	Company     *handlers.CompanyHandler
	Stats       *handlers.StatsHandler
	Document    *handlers.DocumentHandler
	Keyword     *handlers.KeywordHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/auth/register", d.Auth.Register)
	r.POST("/auth/login", d.Auth.Login)

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.DELETE("/auth/account", d.Auth.DeleteAccount)

	auth.POST("/applications", d.Application.Create)
	auth.GET("/applications", d.Application.List)
	auth.GET("/applications/:id", d.Application.Get)
	auth.PUT("/applications/:id", d.Application.Update)
	auth.PATCH("/applications/:id/status", d.Application.UpdateStatus)
	auth.DELETE("/applications/:id", d.Application.Delete)
	auth.GET("/applications/:id/timeline", d.Application.Timeline)

	auth.GET("/applications/:id/keywords", d.Keyword.ListForApplication)
	auth.POST("/applications/:id/keywords", d.Keyword.Attach)
	auth.DELETE("/applications/:id/keywords/:keyword_id", d.Keyword.Detach)

	auth.POST("/companies", d.Company.Create)
	auth.GET("/companies", d.Company.List)
	auth.GET("/companies/:id", d.Company.Get)
	auth.PUT("/companies/:id", d.Company.Update)
	auth.DELETE("/companies/:id", d.Company.Delete)

	auth.GET("/stats/overview", d.Stats.Overview)
	auth.GET("/stats/time-in-status", d.Stats.TimeInStatus)

	auth.POST("/documents", d.Document.Upload)
	auth.GET("/documents", d.Document.List)
	auth.GET("/documents/:id/url", d.Document.DownloadURL)
	auth.DELETE("/documents/:id", d.Document.Delete)

	auth.GET("/keywords", d.Keyword.List)
	auth.POST("/keywords", middleware.RequireAdmin(), d.Keyword.Create)
}
