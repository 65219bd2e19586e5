package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mediaconsole/internal/blobstore"
	"mediaconsole/internal/config"
	"mediaconsole/internal/database"
	"mediaconsole/internal/domain/auth"
	"mediaconsole/internal/domain/book"
	"mediaconsole/internal/domain/image"
	"mediaconsole/internal/domain/video"
	"mediaconsole/internal/middleware"
	"mediaconsole/internal/pkg/token"
	"mediaconsole/internal/recordstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	records, err := buildRecordStore(cfg)
	if err != nil {
		log.Fatal(err)
	}
	blobs, err := buildBlobStore(cfg)
	if err != nil {
		log.Fatal(err)
	}

	tokens := token.New(cfg.SessionSecret, cfg.SessionTTL)
	authService := auth.NewService(tokens, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminPasswordHash)
	authHandler := auth.NewHandler(authService)

	imageHandler := image.NewHandler(image.NewService(records, blobs))
	videoHandler := video.NewHandler(video.NewService(records))
	bookHandler := book.NewHandler(book.NewService(records, blobs))

	r := gin.Default()
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.ErrorLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// disk-backed blobs are served straight from the upload directory
	if disk, ok := blobs.(*blobstore.DiskStore); ok {
		r.Static(disk.StaticBase(), disk.BaseDir())
	}

	v1 := r.Group("/api/v1")
	{
		protected := v1.Group("/")
		protected.Use(middleware.RequireSession(authService))

		auth.RegisterRoutes(v1, protected, authHandler)

		admin := protected.Group("/admin")
		{
			image.RegisterRoutes(admin, imageHandler)
			video.RegisterRoutes(admin, videoHandler)
			book.RegisterRoutes(admin, bookHandler)
		}
	}

	log.Printf("record backend: %s, blob backend: %s", cfg.RecordBackend, cfg.BlobBackend)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}

func buildRecordStore(cfg *config.Config) (recordstore.Store, error) {
	switch cfg.RecordBackend {
	case config.RecordBackendFile:
		return recordstore.NewFileStore(cfg.DataDir)
	case config.RecordBackendREST:
		return recordstore.NewRESTStore(cfg.RESTBaseURL, nil), nil
	default:
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return recordstore.NewGormStore(db)
	}
}

func buildBlobStore(cfg *config.Config) (blobstore.Store, error) {
	switch cfg.BlobBackend {
	case config.BlobBackendS3:
		return blobstore.NewS3Store(context.Background(), blobstore.S3Options{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicBaseURL,
			SignTTL:       cfg.S3SignTTL,
		})
	case config.BlobBackendDisk:
		return blobstore.NewDiskStore(cfg.UploadDir, cfg.StaticBase), nil
	default:
		return blobstore.NewMemoryStore(), nil
	}
}
