package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ClementVasseur/SnapFeed-Back/internal/auth"
	"github.com/ClementVasseur/SnapFeed-Back/internal/config"
	"github.com/ClementVasseur/SnapFeed-Back/internal/database"
	"github.com/ClementVasseur/SnapFeed-Back/internal/middleware"
	"github.com/ClementVasseur/SnapFeed-Back/internal/post"
	"github.com/ClementVasseur/SnapFeed-Back/internal/storage"
	"github.com/ClementVasseur/SnapFeed-Back/internal/user"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	if cfg.DBUrl == "" {
		panic("SUPABASE_DB_URL manquant")
	}

	database.Connect(cfg.DBUrl)

	store, err := newStorage(cfg)
	if err != nil {
		panic(fmt.Sprintf("initialisation du stockage: %v", err))
	}

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Inscription & Connexion
	api.POST("/signup", auth.Signup)
	api.POST("/login", auth.Login)
	api.POST("/password/recover", auth.RecoverPassword)
	api.POST("/verify", auth.Verify)

	api.Use(middleware.AuthMiddleware())
	api.GET("/me", user.GetMe)

	posts := post.NewHandler(store)
	api.POST("/upload", posts.Upload)
	api.GET("/feed", posts.Feed)
	api.DELETE("/posts/:id", posts.Delete)

	err = r.Run(":8080")
	if err != nil {
		return
	}
}

// newStorage construit le client de médias selon STORAGE_BACKEND.
func newStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case "s3":
		return storage.NewS3Storage(context.Background(),
			cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, cfg.AWSRegion, cfg.AWSBucket)
	default:
		if cfg.ImageKitPrivateKey == "" {
			return nil, fmt.Errorf("IMAGEKIT_PRIVATE_KEY manquant")
		}
		return storage.NewImageKitStorage(cfg.ImageKitPrivateKey, cfg.ImageKitUploadURL, cfg.ImageKitAPIURL), nil
	}
}
