package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"resumeforge/config"
	"resumeforge/database"
	"resumeforge/handlers"
	"resumeforge/middleware"
	"resumeforge/models"
	"resumeforge/parsers"
	"resumeforge/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := config.GetAppConfig()

	db, err := database.Connect(cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.DBName, cfg.Database.SSLMode)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	if err := database.InitSchema(db); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}

	extractionClient := services.NewGeminiClient(cfg.AI.APIKey, cfg.AI.ExtractionModel, cfg.AI.RequestTimeout)
	optimizerClient := services.NewGeminiClient(cfg.AI.APIKey, cfg.AI.OptimizerModel, cfg.AI.RequestTimeout)

	var storage *services.StorageService
	s3cfg := services.StorageConfig{
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Region:    cfg.S3.Region,
		Bucket:    cfg.S3.Bucket,
	}
	if s3cfg.Configured() {
		storage, err = services.NewStorageService(s3cfg)
		if err != nil {
			log.Fatalf("S3 storage setup failed: %v", err)
		}
	} else {
		log.Println("S3 storage not configured, generated documents will not be archived")
	}

	h := handlers.New(
		models.NewUserModel(db),
		models.NewProfileModel(db),
		models.NewHistoryModel(db),
		services.NewJWTService(cfg.JWTSecret, cfg.JWTLifetime),
		parsers.NewExtractor(),
		services.NewParserService(extractionClient),
		services.NewOptimizerService(optimizerClient),
		services.NewDocumentService(),
		storage,
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)

	aiLimiter := middleware.NewRateLimiter(cfg.AIRateLimit, cfg.AIRateLimitWindow)

	auth := r.Group("/api", h.AuthMiddleware())
	{
		auth.GET("/profile", h.GetProfile)
		auth.PUT("/profile", middleware.ValidateContentType("application/json"), h.SaveProfile)
		auth.GET("/resume/history", h.GetHistory)
		auth.DELETE("/resume/history/:id", h.DeleteHistory)

		// Upload slack on top of the document limit covers multipart framing.
		auth.POST("/resume/parse",
			middleware.MaxRequestSize(parsers.MaxDocumentSize+64*1024),
			aiLimiter.Limit(),
			h.ParseResume)

		auth.POST("/resume/optimize",
			middleware.ValidateContentType("application/json"),
			aiLimiter.Limit(),
			h.OptimizeResume)
		auth.POST("/resume/generate",
			middleware.ValidateContentType("application/json"),
			aiLimiter.Limit(),
			h.GenerateResume)
	}

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
