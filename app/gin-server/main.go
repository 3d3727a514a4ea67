package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yoockh/jobtrail/config"
	"github.com/yoockh/jobtrail/internal/api/handlers"
	"github.com/yoockh/jobtrail/internal/api/middleware"
	"github.com/yoockh/jobtrail/internal/api/routes"
	"github.com/yoockh/jobtrail/internal/cache"
	"github.com/yoockh/jobtrail/internal/logger"
	pgrepo "github.com/yoockh/jobtrail/internal/repositories/postgres"
	"github.com/yoockh/jobtrail/internal/services"
	"github.com/yoockh/jobtrail/internal/storage"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()

	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	l.Info("PostgreSQL connected")

	if err := config.Migrate(config.PostgresDB); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	l.Info("Redis connected")

	db := config.PostgresDB
	rc := cache.NewRedisCache(config.RedisClient)

	var store *storage.GCSStore
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		var err error
		store, err = storage.NewGCSStore(context.Background(), bucket)
		if err != nil {
			log.Fatalf("GCS init error: %v", err)
		}
		defer store.Close()
	} else {
		l.Warn("GCS_BUCKET not set; document uploads disabled")
	}

	userRepo := pgrepo.NewUserRepo(db)
	companyRepo := pgrepo.NewCompanyRepo(db)
	appRepo := pgrepo.NewApplicationRepo(db)
	historyRepo := pgrepo.NewHistoryRepo(db)
	documentRepo := pgrepo.NewDocumentRepo(db)
	keywordRepo := pgrepo.NewKeywordRepo(db)
	statsRepo := pgrepo.NewStatsRepo(db)

	authSvc := services.NewAuthService(userRepo, os.Getenv("JWT_SECRET"))
	companySvc := services.NewCompanyService(companyRepo)
	appSvc := services.NewApplicationService(appRepo, historyRepo, companyRepo, rc)
	statsSvc := services.NewStatsService(statsRepo, rc)
	keywordSvc := services.NewKeywordService(keywordRepo, appRepo)

	var uploader storage.Uploader
	var signer storage.Signer
	if store != nil {
		uploader = store
		signer = store
	}
	documentSvc := services.NewDocumentService(documentRepo, appRepo, uploader)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		Auth:        handlers.NewAuthHandler(authSvc),
		Application: handlers.NewApplicationHandler(appSvc),
		Company:     handlers.NewCompanyHandler(companySvc),
		Stats:       handlers.NewStatsHandler(statsSvc),
		Document:    handlers.NewDocumentHandler(documentSvc, signer),
		Keyword:     handlers.NewKeywordHandler(keywordSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
