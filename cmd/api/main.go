package main

import (
	"log"
	"log/slog"
	"os"

	"autonews/db"
	"autonews/internal/handler"
	"autonews/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(); err != nil {
		log.Fatalf("error ensuring DB schema: %v", err)
	}

	var status handler.IngestStatus
	if os.Getenv("REDIS_URL") != "" {
		if err := db.ConnectRedis(); err != nil {
			slog.Warn("error connecting to Redis, health endpoint will omit last fetch time", "error", err)
		} else {
			defer db.CloseRedis()
			status = db.IngestTracker{}
		}
	}

	articleRepo := repository.NewArticleRepository(db.DB)
	newsHandler := handler.NewNewsHandler(articleRepo, status)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/api/news", newsHandler.GetNews)
	r.GET("/api/trending", newsHandler.GetTrending)
	r.GET("/api/breaking", newsHandler.GetBreaking)
	r.GET("/health", newsHandler.GetHealth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	err = r.Run(":" + port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
